package hexdump

import (
	"fmt"
	"strings"

	"github.com/zhengshuai-xiao/xdump/internal"
)

// ByteOrder decides which byte of a pair becomes the high half of a word.
type ByteOrder int

const (
	LittleEndian ByteOrder = iota
	BigEndian
)

func (o ByteOrder) String() string {
	switch o {
	case LittleEndian:
		return "little"
	case BigEndian:
		return "big"
	default:
		return fmt.Sprintf("ByteOrder(%d)", int(o))
	}
}

// HostByteOrder probes the byte order of the running machine.
func HostByteOrder() ByteOrder {
	if internal.IsLittleEndianHost() {
		return LittleEndian
	}
	return BigEndian
}

// ParseByteOrder maps "auto", "little" and "big" to a ByteOrder, probing the
// host for "auto" and the empty string.
func ParseByteOrder(s string) (ByteOrder, error) {
	switch strings.ToLower(s) {
	case "", internal.EndianAuto:
		return HostByteOrder(), nil
	case internal.EndianLittle:
		return LittleEndian, nil
	case internal.EndianBig:
		return BigEndian, nil
	default:
		return 0, fmt.Errorf("%w: %q", internal.ErrInvalidEndian, s)
	}
}

// PackWords appends the words of w to dst. Bytes are taken pairwise; with
// LittleEndian the even byte is the low half, with BigEndian the high half.
// An odd trailing byte is packed as if a zero byte followed it.
func PackWords(dst []uint16, w Window, order ByteOrder) []uint16 {
	for i := 0; i < len(w); i += 2 {
		first := uint16(w[i])
		var second uint16
		if i+1 < len(w) {
			second = uint16(w[i+1])
		}
		if order == BigEndian {
			dst = append(dst, first<<8|second)
		} else {
			dst = append(dst, second<<8|first)
		}
	}
	return dst
}

// AppendLine appends the rendered line for w at offset, without the newline:
// the 8 digit offset followed by one 4 digit word per byte pair.
func AppendLine(dst []byte, offset uint32, w Window, order ByteOrder) []byte {
	var words [LineSize / 2]uint16
	dst = internal.AppendHex(dst, offset)
	for _, word := range PackWords(words[:0], w, order) {
		dst = append(dst, ' ')
		dst = internal.AppendHex(dst, word)
	}
	return dst
}

package internal

import "unsafe"

// Unsigned is the set of fixed-width unsigned integers AppendHex can render.
type Unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

const hexDigits = "0123456789abcdef"

// AppendHex appends v to dst as exactly 2*sizeof(T) lowercase hex digits,
// most significant nibble first. The digits come from the value itself, not
// from its layout in memory, so the result is the same on every host.
func AppendHex[T Unsigned](dst []byte, v T) []byte {
	width := int(unsafe.Sizeof(v)) * 2
	u := uint64(v)
	for shift := (width - 1) * 4; shift >= 0; shift -= 4 {
		dst = append(dst, hexDigits[(u>>uint(shift))&0x0f])
	}
	return dst
}

// FormatHex is AppendHex into a fresh string.
func FormatHex[T Unsigned](v T) string {
	var buf [16]byte
	return string(AppendHex(buf[:0], v))
}

// IsLittleEndianHost reports whether the running machine stores the low
// order byte of a multi-byte integer first. It looks at memory rather than
// trusting build tags.
func IsLittleEndianHost() bool {
	var probe uint32 = 1
	b := (*[4]byte)(unsafe.Pointer(&probe))
	return b[0] == 1
}

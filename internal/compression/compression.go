package compression

import (
	"errors"
	"io"
)

type CompressionType byte

const (
	Compress_none   CompressionType = iota //0
	Compress_zlib                          //1
	Compress_snappy                        //2
)

var (
	CompressionMethods = map[string]CompressionType{
		"none":   Compress_none,
		"zlib":   Compress_zlib,
		"snappy": Compress_snappy,
	}

	ErrInvalidCompressionType = errors.New("invalid compression type, expected none/zlib/snappy")
)

// Compressor decodes a compressed byte source so its plain content can be
// dumped.
type Compressor interface {
	// NewReader wraps r so that reads return decompressed bytes.
	NewReader(r io.Reader) (io.Reader, error)

	TypeString() string
	Type() CompressionType
}

// GetCompressorViaString returns nil without error for "none" and "".
func GetCompressorViaString(compressionStr string) (Compressor, error) {
	if compressionStr == "" {
		return nil, nil
	}
	compressionType, ok := CompressionMethods[compressionStr]
	if !ok {
		return nil, ErrInvalidCompressionType
	}
	return GetCompressorViaType(compressionType)
}

func GetCompressorViaType(compressionType CompressionType) (Compressor, error) {
	switch compressionType {
	case Compress_none:
		return nil, nil
	case Compress_zlib:
		return NewZlib(), nil
	case Compress_snappy:
		return NewSnappy(), nil
	default:
		return nil, ErrInvalidCompressionType
	}
}

package compression

import (
	"compress/zlib"
	"io"
)

// ZlibCompressor implements the Compressor interface using Zlib.
type ZlibCompressor struct{}

// NewZlib returns a new ZlibCompressor.
func NewZlib() *ZlibCompressor {
	return &ZlibCompressor{}
}

func (c *ZlibCompressor) Type() CompressionType {
	return Compress_zlib
}

func (c *ZlibCompressor) TypeString() string {
	return "zlib"
}

// NewReader streams the zlib payload of r. The header is read eagerly so a
// source that is not zlib at all fails here rather than on the first line.
func (c *ZlibCompressor) NewReader(r io.Reader) (io.Reader, error) {
	zr, err := zlib.NewReader(r)
	if err != nil {
		return nil, err
	}
	return zr, nil
}

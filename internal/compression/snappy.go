package compression

import (
	"bufio"
	"bytes"
	"io"

	"github.com/golang/snappy"
)

// magic of the snappy framing format, chunk type 0xff with a 6 byte body.
var snappyStreamHeader = []byte("\xff\x06\x00\x00sNaPpY")

// SnappyCompressor implements the Compressor interface using Snappy.
type SnappyCompressor struct{}

// NewSnappy returns a new SnappyCompressor.
func NewSnappy() *SnappyCompressor {
	return &SnappyCompressor{}
}

// Type returns the compression type.
func (c *SnappyCompressor) Type() CompressionType {
	return Compress_snappy
}

// Type returns the compression type string.
func (c *SnappyCompressor) TypeString() string {
	return "snappy"
}

// Decompress decodes a whole snappy block.
func (c *SnappyCompressor) Decompress(data []byte) ([]byte, error) {
	decompressed, err := snappy.Decode(nil, data)
	if err != nil {
		return nil, err
	}
	if decompressed == nil {
		return []byte{}, nil
	}
	return decompressed, nil
}

// NewReader accepts both snappy encodings. Framed streams are decoded as they
// are read; a raw block has no framing and is decoded as a whole.
func (c *SnappyCompressor) NewReader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(len(snappyStreamHeader))
	if err == nil && bytes.Equal(head, snappyStreamHeader) {
		return snappy.NewReader(br), nil
	}
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, err
	}

	data, err := io.ReadAll(br)
	if err != nil {
		return nil, err
	}
	decompressed, err := c.Decompress(data)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(decompressed), nil
}

package hexdump

import (
	"bytes"
	"io"
)

// LineSize is the number of input bytes shown on one dump line.
const LineSize = 16

// Window is one dump line worth of input, at most LineSize bytes.
type Window []byte

// Equal reports whether w and o hold the same bytes. Windows of different
// lengths are never equal.
func (w Window) Equal(o Window) bool {
	return bytes.Equal(w, o)
}

// Chunker is an interface that returns the next window from a stream.
// io.EOF is returned once the stream has been fully chunked.
type Chunker interface {
	Next() (Window, error)
}

// lineChunker cuts a stream into LineSize windows. It alternates between two
// buffers, so a returned window stays valid until the second following call
// to Next. That is enough for the caller to keep the previous window around
// for comparison.
type lineChunker struct {
	r       io.Reader
	bufs    [2][LineSize]byte
	slot    int
	emitted bool
}

// NewLineChunker returns a Chunker over r. A non-zero limit stops chunking
// after that many bytes, whatever is left in r.
func NewLineChunker(r io.Reader, limit uint32) Chunker {
	if limit > 0 {
		r = io.LimitReader(r, int64(limit))
	}
	return &lineChunker{r: r}
}

// Next returns the next window. Every window but the last is full. An empty
// stream yields a single empty window; a stream whose length is a multiple of
// LineSize ends with its last full window, not an extra empty one.
func (c *lineChunker) Next() (Window, error) {
	buf := c.bufs[c.slot][:]
	n, err := io.ReadFull(c.r, buf)

	switch {
	case err == io.EOF: // Clean end of stream, no bytes read.
		if c.emitted {
			return nil, io.EOF
		}
	case err == io.ErrUnexpectedEOF: // Last partial window.
	case err != nil:
		return nil, err
	}

	c.emitted = true
	c.slot ^= 1
	return Window(buf[:n]), nil
}

// Package hexdump renders a byte stream as 16-bit hex words, sixteen bytes a
// line, the way `od -t x2` does:
//
//	00000000 0000 0000 0000 0000 0000 0000 0000 0000
//	*
//	00000020
//
// Repeated lines collapse into a single "*" and the last line carries the
// total byte count.
package hexdump

import (
	"bufio"
	"context"
	"io"

	"github.com/zhengshuai-xiao/xdump/internal"
)

// State is the stage a Dumper is in.
type State int

const (
	StateReading State = iota
	StateFlushing
	StateDone
)

func (s State) String() string {
	switch s {
	case StateReading:
		return "reading"
	case StateFlushing:
		return "flushing"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// Stats summarises a finished dump.
type Stats struct {
	Bytes      uint32 // bytes read, respecting the limit
	Lines      int    // data lines printed, "*" markers and the summary excluded
	Suppressed int    // windows replaced by or folded into a "*"
}

type Option func(*Dumper)

// WithByteOrder overrides the host byte order probe.
func WithByteOrder(order ByteOrder) Option {
	return func(d *Dumper) {
		d.order = order
	}
}

// Dumper writes hex dumps to an output stream. A Dumper is not safe for
// concurrent use.
type Dumper struct {
	out   io.Writer
	w     *bufio.Writer
	order ByteOrder
	state State
	line  []byte

	offset     uint32
	count      uint32
	prev       Window
	hasPrev    bool
	starred    bool
	lines      int
	suppressed int
}

// NewDumper returns a Dumper writing to w. The host byte order is probed
// here, once, unless WithByteOrder is given.
func NewDumper(w io.Writer, opts ...Option) *Dumper {
	d := &Dumper{
		out:   w,
		w:     bufio.NewWriter(w),
		order: HostByteOrder(),
		line:  make([]byte, 0, 8+LineSize/2*5+1),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Dumper) ByteOrder() ByteOrder { return d.order }

func (d *Dumper) State() State { return d.state }

func (d *Dumper) reset() {
	d.w.Reset(d.out)
	d.state = StateReading
	d.offset, d.count = 0, 0
	d.prev, d.hasPrev, d.starred = nil, false, false
	d.lines, d.suppressed = 0, 0
}

// Dump writes the dump of r, stopping after limit bytes when limit is not
// zero. Output written before a failure is flushed before the error is
// returned, so a partial dump stays visible.
func (d *Dumper) Dump(ctx context.Context, r io.Reader, limit uint32) (Stats, error) {
	d.reset()
	err := d.run(ctx, NewLineChunker(r, limit))
	if ferr := d.w.Flush(); err == nil && ferr != nil {
		err = &WriteError{Err: ferr}
	}
	return d.stats(), err
}

func (d *Dumper) run(ctx context.Context, chunker Chunker) error {
	for d.state == StateReading {
		if err := ctx.Err(); err != nil {
			return &ReadError{Offset: d.offset, Err: err}
		}
		w, err := chunker.Next()
		if err == io.EOF {
			d.state = StateFlushing
			break
		}
		if err != nil {
			return &ReadError{Offset: d.offset, Err: err}
		}
		if err := d.emit(w); err != nil {
			return err
		}
	}

	// Every window, the last partial one included, went through emit above;
	// all that is left is the byte count.
	d.line = internal.AppendHex(d.line[:0], d.count)
	d.line = append(d.line, '\n')
	if _, err := d.w.Write(d.line); err != nil {
		return &WriteError{Err: err}
	}
	d.state = StateDone
	return nil
}

// emit prints w, or a "*" if it repeats the previous window, then advances
// the offset past it.
func (d *Dumper) emit(w Window) error {
	var out []byte
	switch {
	case d.hasPrev && w.Equal(d.prev):
		d.suppressed++
		if !d.starred {
			d.starred = true
			out = append(d.line[:0], '*', '\n')
		}
	default:
		d.starred = false
		d.lines++
		out = AppendLine(d.line[:0], d.offset, w, d.order)
		out = append(out, '\n')
	}
	if out != nil {
		d.line = out
		if _, err := d.w.Write(out); err != nil {
			return &WriteError{Err: err}
		}
	}

	d.prev, d.hasPrev = w, true
	d.offset += uint32(len(w))
	d.count += uint32(len(w))
	return nil
}

func (d *Dumper) stats() Stats {
	return Stats{Bytes: d.count, Lines: d.lines, Suppressed: d.suppressed}
}

// Dump writes the hex dump of r to w using the host byte order. limit caps
// the number of bytes read; zero reads r to the end.
func Dump(w io.Writer, r io.Reader, limit uint32) error {
	_, err := NewDumper(w).Dump(context.Background(), r, limit)
	return err
}

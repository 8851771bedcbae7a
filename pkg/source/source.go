// Package source opens the byte sources that get dumped: local files, stdin
// and S3 objects, optionally decompressed on the way in.
package source

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/zhengshuai-xiao/xdump/internal"
	"github.com/zhengshuai-xiao/xdump/internal/compression"
	"github.com/zhengshuai-xiao/xdump/pkg/hexdump"
)

var logger = internal.GetLogger("xdump_source")

const (
	StdinLocation = "-"
	S3Scheme      = "s3://"
)

// Source is an opened byte source.
type Source struct {
	io.Reader
	closers []io.Closer
	// Size is the stored size when the backend reports one, -1 otherwise.
	Size int64
}

func (s *Source) Close() error {
	var first error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Opener opens the S3 objects; tests replace it.
type Opener struct {
	NewS3Client func(ctx context.Context, conf *internal.Config) (ObjectGetter, error)
	Stdin       io.Reader
}

var DefaultOpener = &Opener{NewS3Client: NewS3Client, Stdin: os.Stdin}

// Open opens conf.Location with the default opener.
func Open(ctx context.Context, conf *internal.Config) (*Source, error) {
	return DefaultOpener.Open(ctx, conf)
}

// Open resolves conf.Location into a Source. Every failure is wrapped with
// hexdump.ErrSourceUnavailable.
func (o *Opener) Open(ctx context.Context, conf *internal.Config) (*Source, error) {
	codec, err := compression.GetCompressorViaString(conf.Decompress)
	if err != nil {
		return nil, err
	}

	var src *Source
	switch {
	case conf.Location == StdinLocation:
		src = &Source{Reader: bufio.NewReader(o.Stdin), Size: -1}
	case strings.HasPrefix(conf.Location, S3Scheme):
		src, err = o.openS3(ctx, conf, codec == nil)
	default:
		src, err = openFile(conf.Location)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", hexdump.ErrSourceUnavailable, err)
	}

	if codec != nil {
		logger.Debugf("decompressing %s with %s", conf.Location, codec.TypeString())
		r, err := codec.NewReader(src.Reader)
		if err != nil {
			src.Close()
			return nil, fmt.Errorf("%w: %s is not %s data: %w", hexdump.ErrSourceUnavailable, conf.Location, codec.TypeString(), err)
		}
		if c, ok := r.(io.Closer); ok {
			src.closers = append(src.closers, c)
		}
		src.Reader = r
		src.Size = -1
	}
	return src, nil
}

func openFile(name string) (*Source, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if fi.IsDir() {
		f.Close()
		return nil, fmt.Errorf("%s: is a directory", name)
	}
	logger.Tracef("opened %s, mode %s", name, fi.Mode())
	return &Source{Reader: bufio.NewReader(f), closers: []io.Closer{f}, Size: fi.Size()}, nil
}

package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path"
	"strconv"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"
	"github.com/zhengshuai-xiao/xdump/internal"
	"github.com/zhengshuai-xiao/xdump/pkg/hexdump"
	"github.com/zhengshuai-xiao/xdump/pkg/source"
)

func dumpFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "length",
			Aliases: []string{"n"},
			Usage:   "dump at most LEN bytes, 0 for the whole file",
			Value:   "0",
		},
		&cli.StringFlag{
			Name:  "endian",
			Usage: "byte order used to pack words: auto/little/big",
			Value: internal.EndianAuto,
		},
		&cli.StringFlag{
			Name:  "decompress",
			Usage: "decompress the input before dumping: none/zlib/snappy",
			Value: "none",
		},
		&cli.StringFlag{
			Name:  "loglevel",
			Usage: "log level: trace/debug/info/warn/error",
			Value: "info",
		},
		&cli.StringFlag{
			Name:  "logdir",
			Usage: "write logs to a rotated file in this directory instead of stderr",
		},
		&cli.StringFlag{
			Name:    "endpoint",
			Usage:   "S3 endpoint for s3://bucket/key inputs, including the scheme",
			EnvVars: []string{"XDUMP_S3_ENDPOINT"},
		},
		&cli.StringFlag{
			Name:    "region",
			Usage:   "S3 region",
			Value:   internal.DefaultRegion,
			EnvVars: []string{"AWS_REGION", "AWS_DEFAULT_REGION"},
		},
		&cli.StringFlag{
			Name:    "access-key",
			Usage:   "S3 access key",
			EnvVars: []string{"AWS_ACCESS_KEY_ID", "MINIO_ROOT_USER"},
		},
		&cli.StringFlag{
			Name:    "secret-key",
			Usage:   "S3 secret key",
			EnvVars: []string{"AWS_SECRET_ACCESS_KEY", "MINIO_ROOT_PASSWORD"},
		},
	}
}

// parseLength accepts the -n value as a decimal that fits in 32 bits.
func parseLength(s string) (uint32, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, internal.ErrInvalidLength
	}
	return uint32(n), nil
}

func configFromContext(c *cli.Context) (*internal.Config, error) {
	switch c.NArg() {
	case 0:
		return nil, internal.ErrNoFile
	case 1:
	default:
		return nil, internal.ErrAmbiguousFile
	}
	length, err := parseLength(c.String("length"))
	if err != nil {
		return nil, err
	}
	return &internal.Config{
		Location:   c.Args().First(),
		Length:     length,
		Endian:     c.String("endian"),
		Decompress: c.String("decompress"),
		Endpoint:   c.String("endpoint"),
		Region:     c.String("region"),
		AccessKey:  c.String("access-key"),
		SecretKey:  c.String("secret-key"),
	}, nil
}

func setupLogging(c *cli.Context) error {
	internal.SetLogLevel(internal.ParseLogLevel(c.String("loglevel")))
	if logDir := c.String("logdir"); logDir != "" {
		if err := os.MkdirAll(logDir, 0750); err != nil {
			return fmt.Errorf("failed to create log directory %s: %w", logDir, err)
		}
		return internal.SetOutFile(path.Join(logDir, "xdump.log"))
	}
	return nil
}

func dumpAction(c *cli.Context) error {
	// bare "xdump" prints the usage, like most dump tools
	if c.NArg() == 0 && c.NumFlags() == 0 {
		return cli.ShowAppHelp(c)
	}
	if err := setupLogging(c); err != nil {
		return err
	}

	conf, err := configFromContext(c)
	if err != nil {
		return err
	}
	order, err := hexdump.ParseByteOrder(conf.Endian)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	src, err := source.Open(ctx, conf)
	if err != nil {
		return err
	}
	defer src.Close()
	if src.Size >= 0 {
		logger.Debugf("dumping %s (%s), byte order %s", conf.Location, humanize.IBytes(uint64(src.Size)), order)
	}

	start := time.Now()
	stats, err := hexdump.NewDumper(c.App.Writer, hexdump.WithByteOrder(order)).Dump(ctx, src, conf.Length)
	if err != nil {
		return err
	}
	logger.Debugf("dumped %s from %s in %s: %d lines, %d windows folded",
		humanize.IBytes(uint64(stats.Bytes)), conf.Location, time.Since(start), stats.Lines, stats.Suppressed)
	return nil
}

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
	"github.com/zhengshuai-xiao/xdump/internal"
	"github.com/zhengshuai-xiao/xdump/internal/compression"
)

var logger = internal.GetLogger("xdump_cmd")

// Main runs the xdump command line with os.Args style args.
func Main(args []string) error {
	return runApp(newApp(os.Stdout, os.Stderr), args)
}

func newApp(stdout, stderr io.Writer) *cli.App {
	cli.VersionFlag = &cli.BoolFlag{
		Name: "version", Aliases: []string{"V"},
		Usage: "print version only",
	}
	return &cli.App{
		Name:                 "xdump",
		Usage:                "Print a hex dump of a file in 16-bit words, od -t x2 style",
		UsageText:            "xdump [-n LEN] FILE",
		Version:              internal.Version(),
		Copyright:            "Apache License 2.0",
		HideHelpCommand:      true,
		EnableBashCompletion: true,
		Flags:                dumpFlags(),
		Action:               dumpAction,
		Writer:               stdout,
		ErrWriter:            stderr,
		// errors are rendered by the caller
		ExitErrHandler: func(*cli.Context, error) {},
	}
}

func runApp(app *cli.App, args []string) error {
	args, err := reorderOptions(app, args)
	if err != nil {
		return err
	}
	return app.Run(args)
}

// ExitCode maps an error returned by Main to a process exit status: 2 for
// usage errors, 1 for everything else.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, internal.ErrInvalidLength),
		errors.Is(err, internal.ErrAmbiguousFile),
		errors.Is(err, internal.ErrNoFile),
		errors.Is(err, internal.ErrInvalidEndian),
		errors.Is(err, compression.ErrInvalidCompressionType),
		errors.Is(err, errUnknownOption):
		return 2
	default:
		return 1
	}
}

var errUnknownOption = errors.New("unknown option")

// reorderOptions moves every option in front of the positional arguments so
// that "xdump FILE -n 16" parses like "xdump -n 16 FILE".
func reorderOptions(app *cli.App, args []string) ([]string, error) {
	var newArgs = []string{args[0]}
	var others []string
	flags := append(append([]cli.Flag{}, app.Flags...), cli.VersionFlag, cli.HelpFlag)
	for i := 1; i < len(args); i++ {
		option := args[i]
		if option == "--" {
			others = append(others, args[i+1:]...)
			break
		}
		if ok, hasValue := isFlag(flags, option); ok {
			newArgs = append(newArgs, option)
			if hasValue {
				i++
				if i >= len(args) {
					return nil, fmt.Errorf("option %s requires value", option)
				}
				newArgs = append(newArgs, args[i])
			}
		} else {
			if option != "-" && strings.HasPrefix(option, "-") && !internal.StringContains(args, "--generate-bash-completion") {
				return nil, fmt.Errorf("%w: %s", errUnknownOption, option)
			}
			others = append(others, option)
		}
	}
	if len(others) == 0 {
		return newArgs, nil
	}
	newArgs = append(newArgs, "--")
	return append(newArgs, others...), nil
}

func isFlag(flags []cli.Flag, option string) (bool, bool) {
	if !strings.HasPrefix(option, "-") {
		return false, false
	}
	// --V or -v work the same
	option = strings.TrimLeft(option, "-")
	for _, flag := range flags {
		_, isBool := flag.(*cli.BoolFlag)
		for _, name := range flag.Names() {
			if option == name || strings.HasPrefix(option, name+"=") {
				return true, !isBool && !strings.Contains(option, "=")
			}
		}
	}
	return false, false
}

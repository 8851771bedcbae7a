package main

import (
	"fmt"
	"os"

	"github.com/zhengshuai-xiao/xdump/cmd"
)

func main() {
	err := cmd.Main(os.Args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", os.Args[0], err)
		os.Exit(cmd.ExitCode(err))
	}
}

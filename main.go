package main

import (
	"fmt"
	"os"

	"github.com/lugassawan/gitlogjson/cmd"
	"github.com/lugassawan/gitlogjson/internal/output"
)

func main() {
	if err := cmd.Execute(); err != nil {
		if cmd.IsJSONMode() {
			_ = output.WriteJSONError(os.Stdout, cmd.Version(), cmd.CommandName(), err)
			os.Exit(output.ExitCode(err))
		}

		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(output.ExitCode(err))
	}
}

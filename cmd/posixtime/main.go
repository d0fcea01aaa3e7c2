package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/posixtime/internal/cli"
)

func main() {
	err := cli.NewRootCommand().Execute()
	if err == nil {
		return
	}

	var exitErr *cli.ExitError
	if !errors.As(err, &exitErr) {
		// Flag and argument errors from cobra.
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.ExitCommandError)
	}

	// Wrapped errors were already reported by the command's formatter.
	if exitErr.Err == nil {
		fmt.Fprintln(os.Stderr, exitErr.Message)
	}
	os.Exit(exitErr.Code)
}

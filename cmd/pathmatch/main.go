package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/pathmatch/internal/cli"
	"github.com/arthur-debert/pathmatch/pkg/output"
)

func main() {
	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		msg := fmt.Sprintf("Error: %v", err)
		if output.ColorAuto.Enabled(os.Stderr) {
			msg = output.ErrorStyle.Render(msg)
		}
		fmt.Fprintln(os.Stderr, msg)
		os.Exit(1)
	}
}

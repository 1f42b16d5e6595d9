// Command blockctl exposes the downstream interface of the
// block-validation core: verifying a serialized block file and
// inspecting the genesis constant, mirroring the node's own cobra-based
// cmd package structure.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/icryptix/core/logx"
)

var rootCmd = &cobra.Command{
	Use:   "blockctl",
	Short: "Block-validation core CLI",
	Long:  "Command line interface for verifying and inspecting serialized blocks.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logx.Error("CMD", "command execution failed:", err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}

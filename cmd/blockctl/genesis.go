package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/icryptix/core/block"
)

func init() {
	rootCmd.AddCommand(genesisCmd)
}

var genesisCmd = &cobra.Command{
	Use:   "genesis",
	Short: "Print the genesis block's hash and proof-of-work status",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("hash=%s difficulty=%.4f verify=%t\n",
			block.GenesisHash(), block.GENESIS.Header.Difficulty(), block.GENESIS.Verify())
		return nil
	},
}

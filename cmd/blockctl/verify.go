package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/icryptix/core/block"
	"github.com/icryptix/core/jsonx"
	"github.com/icryptix/core/logx"
)

var verifyAsJSON bool

func init() {
	verifyCmd.Flags().BoolVar(&verifyAsJSON, "json", false, "print the result as indented JSON instead of a summary line")
	rootCmd.AddCommand(verifyCmd)
}

type verifyResult struct {
	Hash   string `json:"hash"`
	Height uint32 `json:"height"`
	Verify bool   `json:"verify"`
}

var verifyCmd = &cobra.Command{
	Use:   "verify <block-file>",
	Short: "Parse a serialized block and report whether it verifies",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		blk, err := block.Unserialize(raw)
		if err != nil {
			logx.Error("CMD:VERIFY", "failed to parse block:", err)
			return err
		}

		ok := blk.Verify()
		if verifyAsJSON {
			out, err := jsonx.MarshalIndent(verifyResult{
				Hash:   blk.Hash().String(),
				Height: blk.Header.Height,
				Verify: ok,
			}, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
		} else {
			fmt.Printf("hash=%s height=%d verify=%t\n", blk.Hash(), blk.Header.Height, ok)
		}
		if !ok {
			os.Exit(1)
		}
		return nil
	},
}

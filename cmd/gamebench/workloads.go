package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katharostech/benchmark-games/internal/game"
)

var workloadsCmd = &cobra.Command{
	Use:   "workloads",
	Short: "List the available benchmark workloads",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range game.Names() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
	},
}

func init() {
	rootCmd.AddCommand(workloadsCmd)
}

package main

import (
	"github.com/osier-lang/osier/cmd"
	"github.com/spf13/cobra"
	"os"
)

func main() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "osier [subcommand]",
	Short:        "osier 🌿\n the union type checker of a gradually-typed scripting subset",
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(cmd.NormCmd)
	rootCmd.AddCommand(cmd.CheckCmd)
}

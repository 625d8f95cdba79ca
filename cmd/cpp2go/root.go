package main

import (
	"github.com/spf13/cobra"

	"github.com/cpp2-lang/cpp2go/internal/cli"
)

var rootCmd = &cobra.Command{
	Use:   "cpp2go",
	Short: "A front end for the Cpp2 experimental C++ syntax",
	Long: `cpp2go is the front end for an experimental alternate surface syntax
for C++ ("Cpp2"). It lexes and parses Cpp2 source into a typed parse
tree and reports diagnostics with source positions.`,
	Version:       cli.Version,
	SilenceUsage:  true,
	SilenceErrors: false,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		jsonOutput, _ := cmd.Flags().GetBool("json")
		cli.PrintVersion("cpp2go", jsonOutput)
	},
}

func init() {
	versionCmd.Flags().Bool("json", false, "print version information as JSON")
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(parseCmd)
}

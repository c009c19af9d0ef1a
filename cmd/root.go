package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagRefresh bool
	flagConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "sentimentscope",
	Short: "TUI product review explorer",
	Long:  "sentimentscope browses a sentiment-analyzed product catalog: filter by star rating, review sentiment, and the topics customers actually talk about.",
	RunE:  runTUI,
}

func init() {
	rootCmd.Flags().BoolVar(&flagRefresh, "refresh", false, "force refresh the catalog before launching")
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "path to config file")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(pruneCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(classifyCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("sentimentscope %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}

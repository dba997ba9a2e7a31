package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "kotoba",
	Short: "Learn Japanese words by talking to villagers",
	Long: "Kotoba is a terminal dialogue game that tracks every Japanese word you read.\n" +
		"Tap words you do not know and answer quizzes to earn coins.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to a kotoba.yaml config file")
	pf.String("db", "", "Path to SQLite database file (overrides KOTOBA_DB_PATH)")
	pf.String("content", "", "Path to a JSON content pack (default: built-in pack)")
	pf.String("log-level", "", "Log level: debug, info, warn, error")
	pf.String("log-file", "", "Log file used while the game is running")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(contentCmd)
	rootCmd.AddCommand(versionCmd)
}

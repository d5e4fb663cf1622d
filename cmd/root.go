package cmd

import (
	"github.com/vchandu111/IntervueAI/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "intervueai",
	Short: "AI mock interviews in your terminal",
	Long: "IntervueAI — terminal client for AI-powered mock interviews: " +
		"pick a job role or a set of skills, answer five questions by typing " +
		"or speaking, and get graded feedback and a final report.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite journal file (overrides INTERVUE_DB env var)")
	rootCmd.Flags().Bool("no-audio", false, "Disable narration and voice answers for this run")

	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the journal path using --db flag (highest
// priority), then INTERVUE_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

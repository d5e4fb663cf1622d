package cmd

import (
	"fmt"

	"github.com/vchandu111/IntervueAI/internal/store"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show interview statistics from the local journal",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		defer st.Close()

		stats, err := st.EventRepo().Stats(cmd.Context())
		if err != nil {
			return fmt.Errorf("read stats: %w", err)
		}

		fmt.Printf("Interviews started:   %d\n", stats.Sessions)
		fmt.Printf("Interviews completed: %d\n", stats.CompletedCount)
		fmt.Printf("Answers graded:       %d\n", stats.AnswersTotal)
		if stats.ScoredSessions > 0 {
			fmt.Printf("Average score:        %.1f/10 (over %d graded interviews)\n",
				stats.AverageScore, stats.ScoredSessions)
		} else {
			fmt.Println("Average score:        no graded interviews yet")
		}
		if stats.FlaggedSessions > 0 {
			fmt.Printf("Flagged sessions:     %d\n", stats.FlaggedSessions)
		}
		return nil
	},
}

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the local interview journal",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}

		confirmed, _ := cmd.Flags().GetBool("yes")
		if !confirmed {
			fmt.Printf("This deletes all interview history at %s.\n", dbPath)
			fmt.Println("Run again with --yes to confirm.")
			return nil
		}

		if err := os.Remove(dbPath); err != nil {
			if os.IsNotExist(err) {
				fmt.Println("No journal found; nothing to delete.")
				return nil
			}
			return fmt.Errorf("delete journal: %w", err)
		}
		fmt.Println("Interview journal deleted.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm deletion without prompting")
}

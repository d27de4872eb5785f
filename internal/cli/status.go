package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show catalog size and scan freshness",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.close()

		ctx := cmd.Context()
		records, err := a.catalog.GetAll(ctx)
		if err != nil {
			return err
		}
		lastScan, err := a.catalog.LastScanTime(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("projects:  %d\n", len(records))
		if lastScan == nil {
			fmt.Printf("last scan: %s\n", mutedStyle.Render("never"))
		} else {
			fmt.Printf("last scan: %s\n", lastScan.Local().Format("2006-01-02 15:04:05"))
		}
		fmt.Printf("roots:     %d enabled\n", len(a.cfg.EnabledRoots()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

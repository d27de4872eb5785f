package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Rescan every enabled drive root and reconcile the catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.close()

		if len(a.cfg.EnabledRoots()) == 0 {
			return fmt.Errorf("no enabled roots configured; add roots to the config file")
		}

		summaries, err := a.runner.SyncAll(cmd.Context())
		for _, s := range summaries {
			fmt.Printf("root %s: upserted %d, deleted %d\n",
				accentStyle.Render(string(s.DriveLocation)),
				s.Upserted,
				s.Deleted,
			)
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

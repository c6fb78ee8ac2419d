package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cosmiccodedger/portfolio/internal/profile"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the config and profile",
	Long: `Loads the config and the profile it names and reports problems. The server
itself never refuses to start over a bad profile; it falls back to defaults.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Config OK (port %d, site_dir %s)\n", cfg.Port, cfg.SiteDir)

		res := profile.Load(cmd.Context(), cfg.Profile, nil)
		if res.Fallback {
			return fmt.Errorf("profile %s: %w", cfg.Profile, res.Err)
		}
		if err := res.Profile.Validate(); err != nil {
			return fmt.Errorf("profile %s: %w", cfg.Profile, err)
		}

		p := res.Profile
		fmt.Fprintf(os.Stderr, "Profile OK: %s (%d tabs, %d songs)\n", p.Name, len(p.Tabs), len(p.Songs))
		if p.DiscordID == "" {
			fmt.Fprintln(os.Stderr, "  Warning: discordID is empty; presence will always show the fallback")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

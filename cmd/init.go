package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cosmiccodedger/portfolio/internal/profile"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a profile with an interactive wizard",
	Long:  `Runs an interactive wizard to describe your portfolio and writes the profile JSON file named by the config.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if strings.Contains(cfg.Profile, "://") {
			return fmt.Errorf("profile %s is remote; point profile at a local file to use init", cfg.Profile)
		}
		_, err = profile.RunWizard(cfg.Profile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

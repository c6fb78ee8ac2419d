package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cosmiccodedger/portfolio/internal/presence"
	"github.com/cosmiccodedger/portfolio/internal/profile"
)

var presenceCmd = &cobra.Command{
	Use:   "presence [discord-id]",
	Short: "Fetch Discord presence once and print it",
	Long: `Polls Lanyard once for the given Discord user id, or the profile's
discordID when none is given, and prints the snapshot the page would show.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		var userID string
		if len(args) == 1 {
			userID = args[0]
		} else {
			userID = profile.Load(cmd.Context(), cfg.Profile, nil).Profile.DiscordID
		}

		res := newPresenceClient(cfg).Poll(cmd.Context(), userID)
		snap := res.Snapshot
		display := presence.DisplayFor(snap.Status)

		fmt.Printf("User:    %s (%s)\n", snap.DisplayName, snap.Username)
		fmt.Printf("Status:  %s\n", display.Text)
		fmt.Printf("Avatar:  %s\n", snap.AvatarURL)
		if snap.Activity != nil {
			fmt.Printf("Activity: %s\n", snap.Activity.Name)
		}
		if res.Live {
			fmt.Println("Source:  lanyard")
		} else {
			fmt.Printf("Source:  fallback (%v)\n", res.Err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(presenceCmd)
}

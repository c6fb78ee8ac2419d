package cmd

import (
	"log"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Personal portfolio page with live Discord presence",
	Long: `Portfolio serves a single-page personal portfolio rendered from a JSON
profile. The page shows tabbed content, a playlist and the owner's live
Discord presence fetched from Lanyard, pushed to browsers over a websocket.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if !verbose {
			log.SetFlags(log.LstdFlags)
			return
		}
		log.SetFlags(log.LstdFlags | log.Lmicroseconds | log.Lshortfile)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".portfolio.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

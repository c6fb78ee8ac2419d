package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"

	"github.com/cosmiccodedger/portfolio/internal/db"
	"github.com/cosmiccodedger/portfolio/internal/dots"
	"github.com/cosmiccodedger/portfolio/internal/history"
	"github.com/cosmiccodedger/portfolio/internal/live"
	"github.com/cosmiccodedger/portfolio/internal/metrics"
	"github.com/cosmiccodedger/portfolio/internal/page"
	"github.com/cosmiccodedger/portfolio/internal/presence"
	"github.com/cosmiccodedger/portfolio/internal/profile"
	"github.com/cosmiccodedger/portfolio/internal/server"
)

var serverPort int

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the portfolio web server",
	Long: `Serves the portfolio page, static assets from site_dir, the presence and
profile JSON APIs and the live websocket feed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		// An explicit --port beats the config file but not the platform's PORT.
		if cmd.Flags().Changed("port") && os.Getenv("PORT") == "" {
			cfg.Port = serverPort
		}

		metrics.Register()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		loaded := profile.Load(ctx, cfg.Profile, nil)
		prof := loaded.Profile

		poller := presence.NewPoller(newPresenceClient(cfg), prof.DiscordID, cfg.Lanyard.PollInterval)

		pg, err := page.New(prof, poller)
		if err != nil {
			return fmt.Errorf("building page: %w", err)
		}

		field := dots.NewField(dots.NewGenerator(uint64(time.Now().UnixNano())), time.Now)

		hub := live.NewHub(func() []live.Message {
			patch := pg.CurrentPatch()
			return []live.Message{
				{Type: live.TypePresence, Patch: &patch},
				{Type: live.TypeDots, Dots: append(field.Burst(cfg.Dots.Initial), field.Live()...)},
			}
		})
		defer hub.Close()

		poller.Subscribe(func(presence.Result) {
			hub.BroadcastPresence(pg.CurrentPatch())
		})

		var dbPath string
		var store *history.Store
		if cfg.History {
			dbPath = filepath.Join(cfg.DataDir, "portfolio.db")
			database, err := db.Open(dbPath)
			if err != nil {
				return fmt.Errorf("opening database: %w", err)
			}
			defer database.Close()

			store = history.NewStore(database)
			poller.Subscribe(store.Subscriber(context.Background()))
		}

		animator := dots.NewAnimator(field, cfg.Dots.Initial, cfg.Dots.PerTick, cfg.Dots.Interval, hub.BroadcastDots)

		srv := server.New(server.Config{
			Port:          cfg.Port,
			SiteDir:       cfg.SiteDir,
			StaticExclude: cfg.StaticExclude,
			AllowAll:      cfg.AllowAllOrigins,
		}, pg)

		srv.API(func(r chi.Router) {
			profile.RegisterRoutes(r, loaded)
			presence.RegisterRoutes(r, poller)
			if store != nil {
				history.RegisterRoutes(r, store, prof.DiscordID)
			}
		})
		hub.RegisterRoutes(srv.Router())

		poller.Start(ctx)
		animator.Start(ctx)

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			poller.Stop()
			animator.Stop()
			hub.Close()

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()

		fmt.Fprintf(os.Stderr, "portfolio server v%s starting on port %d\n", Version, cfg.Port)
		fmt.Fprintf(os.Stderr, "  Profile: %s", cfg.Profile)
		if loaded.Fallback {
			fmt.Fprint(os.Stderr, " (unavailable, using fallback)")
		}
		fmt.Fprintln(os.Stderr)
		fmt.Fprintf(os.Stderr, "  Site: %s\n", cfg.SiteDir)
		if dbPath != "" {
			fmt.Fprintf(os.Stderr, "  History: %s\n", dbPath)
		}

		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	},
}

func init() {
	serverCmd.Flags().IntVar(&serverPort, "port", 8000, "Port to listen on (overridden by $PORT)")
	rootCmd.AddCommand(serverCmd)
}

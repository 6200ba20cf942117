// Package cli provides the command-line interface for flowlens.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/arunjmoorthy/flowlens/internal/analyze"
	"github.com/arunjmoorthy/flowlens/internal/cache"
	"github.com/arunjmoorthy/flowlens/internal/config"
	"github.com/arunjmoorthy/flowlens/internal/openai"
	"github.com/arunjmoorthy/flowlens/internal/preview"
)

// Version is set at build time.
var Version = "dev"

// GlobalFlags are available to all commands.
var GlobalFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "flow",
		Aliases: []string{"f"},
		Usage:   "Path to the recorded flow document (.json or .yaml)",
		EnvVars: []string{"FLOW_PATH"},
	},
	&cli.StringFlag{
		Name:    "out",
		Aliases: []string{"o"},
		Usage:   "Path for the generated markdown report",
		EnvVars: []string{"REPORT_PATH"},
	},
	&cli.StringFlag{
		Name:    "cache",
		Usage:   "Directory for cached API responses",
		EnvVars: []string{"CACHE_DIR"},
	},
	&cli.BoolFlag{
		Name:    "verbose",
		Usage:   "Enable verbose logging",
		EnvVars: []string{"FLOWLENS_VERBOSE"},
	},
}

// Execute runs the CLI.
func Execute() {
	app := &cli.App{
		Name:    "flowlens",
		Usage:   "Analyze recorded user flows and generate shareable reports",
		Version: Version,
		Description: `Flowlens reads a recorded user-interaction flow, derives the actions the
user performed, summarizes them with the OpenAI API, generates a social
media image, and writes a markdown report.

Examples:
  flowlens analyze
  flowlens analyze --flow demo/flow.json --out demo/FLOW_REPORT.md
  flowlens serve --addr :8090`,
		Flags: GlobalFlags,
		Commands: []*cli.Command{
			analyzeCommand,
			serveCommand,
		},
		DefaultCommand: "analyze",
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var analyzeCommand = &cli.Command{
	Name:  "analyze",
	Usage: "Analyze a flow recording and write the report",
	Action: func(c *cli.Context) error {
		log := newLogger(c.Bool("verbose"))
		cfg := loadConfig(c)

		if err := cfg.Validate(); err != nil {
			return cli.Exit(fmt.Sprintf("invalid configuration: %v", err), 1)
		}
		if _, err := os.Stat(cfg.FlowPath); err != nil {
			return cli.Exit(fmt.Sprintf("flow document %s not found", cfg.FlowPath), 1)
		}

		store, err := cache.NewStore(cfg.CacheDir)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		client := openai.NewClient(cfg.OpenAIAPIKey, cfg.ChatModel, cfg.ImageModel,
			cfg.Temperature, cfg.MaxTokens, cfg.ProbeTimeout)

		a := analyze.NewAnalyzer(cfg, client, store, log)
		path, err := a.Run(c.Context)
		if err != nil {
			return fmt.Errorf("analysis failed: %w", err)
		}

		fmt.Println("Analysis complete!")
		fmt.Printf("Report saved to: %s\n", path)
		return nil
	},
}

var serveCommand = &cli.Command{
	Name:  "serve",
	Usage: "Serve the generated report and image for browser preview",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "addr",
			Usage:   "Listen address",
			EnvVars: []string{"PREVIEW_ADDR"},
		},
	},
	Action: func(c *cli.Context) error {
		log := newLogger(c.Bool("verbose"))
		cfg := loadConfig(c)
		if v := c.String("addr"); v != "" {
			cfg.PreviewAddr = v
		}

		srv := preview.NewServer(cfg.ReportPath, log)
		httpServer := &http.Server{
			Addr:         cfg.PreviewAddr,
			Handler:      srv,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		}

		go func() {
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			<-sigCh
			log.Info("shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			httpServer.Shutdown(shutdownCtx)
		}()

		log.Info("serving report preview", "addr", cfg.PreviewAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("preview server: %w", err)
		}
		return nil
	},
}

// loadConfig reads env configuration and applies flag overrides.
func loadConfig(c *cli.Context) config.Config {
	cfg := config.Load()
	if v := c.String("flow"); v != "" {
		cfg.FlowPath = v
	}
	if v := c.String("out"); v != "" {
		cfg.ReportPath = v
	}
	if v := c.String("cache"); v != "" {
		cfg.CacheDir = v
	}
	return cfg
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

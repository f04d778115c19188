// Package cli implements the thoughtlands command-line interface.
package cli

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/jpmoo/thoughtlands-sub000/pkg/arrange"
	"github.com/jpmoo/thoughtlands-sub000/pkg/buildinfo"
	"github.com/jpmoo/thoughtlands-sub000/pkg/cache"
	"github.com/jpmoo/thoughtlands-sub000/pkg/embedding"
	"github.com/jpmoo/thoughtlands-sub000/pkg/summarize"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "thoughtlands"

	// collaboratorTimeout bounds one embedding or summarizer request.
	collaboratorTimeout = 60 * time.Second
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "thoughtlands",
		Short:        "Thoughtlands arranges semantic notes on a 2D canvas",
		Long:         `Thoughtlands is a layout engine for semantic note canvases. It takes notes with embedding vectors and arranges them around a focal concept using one of five layout modes: walkabout, hopscotch, rollingpath, regiment, and gaggle.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.arrangeCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// runnerConfig collects the shared collaborator flags.
type runnerConfig struct {
	noCache      bool
	redisAddr    string
	embedURL     string
	summarizeURL string
}

// registerRunnerFlags adds the shared collaborator flags to a command.
func (rc *runnerConfig) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&rc.noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&rc.redisAddr, "redis", "", "redis address for caching (default: local file cache)")
	cmd.Flags().StringVar(&rc.embedURL, "embed-url", "", "embedding service URL for items without embeddings")
	cmd.Flags().StringVar(&rc.summarizeURL, "summarize-url", "", "summarizer service URL for cluster and path cards")
}

// newRunner creates an arrangement runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, rc runnerConfig) (*arrange.Runner, error) {
	store, err := newCache(ctx, rc)
	if err != nil {
		return nil, err
	}

	client := &http.Client{Timeout: collaboratorTimeout}

	var source embedding.Source
	if rc.embedURL != "" {
		source = embedding.NewCachedSource(embedding.NewHTTPSource(rc.embedURL, client), store, nil, 0)
	}

	var summarizer summarize.Summarizer
	if rc.summarizeURL != "" {
		summarizer = summarize.NewCached(summarize.NewHTTPSummarizer(rc.summarizeURL, client), store, nil, 0)
	}

	return arrange.NewRunner(store, nil, source, summarizer, c.Logger), nil
}

func newCache(ctx context.Context, rc runnerConfig) (cache.Cache, error) {
	if rc.noCache {
		return cache.NewNullCache(), nil
	}
	if rc.redisAddr != "" {
		return cache.NewRedisCache(ctx, cache.RedisConfig{Addr: rc.redisAddr})
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/thoughtlands/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// loadTuning loads a tuning file, or the defaults when path is empty.
func loadTuning(path string) (arrange.Tuning, error) {
	if path == "" {
		return arrange.DefaultTuning(), nil
	}
	return arrange.LoadTuning(path)
}

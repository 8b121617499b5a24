package cli

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/eqsteps/pkg/buildinfo"
	"github.com/matzehuels/eqsteps/pkg/cache"
	"github.com/matzehuels/eqsteps/pkg/config"
	"github.com/matzehuels/eqsteps/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "eqsteps"

	// configFile is the name of the user configuration file looked up in the
	// config directory when --config is not given.
	configFile = "config.toml"
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

	configPath string
	noCache    bool
	cfg        *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "eqsteps lays out and animates step-by-step equation derivations",
		Long:         `eqsteps reads a derivation (a list of terms and one layout tree per step), lays every step out as nested boxes and renders or plays the transitions between them.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "configuration file (toml or yaml)")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "disable the artifact cache")

	root.AddCommand(c.stepsCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.playCommand())
	root.AddCommand(c.treeCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.easingCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.cacheCommand())

	return root
}

// =============================================================================
// Configuration
// =============================================================================

// loadConfig reads --config, or the user config file if one exists, over
// the defaults.
func (c *CLI) loadConfig() error {
	path := c.configPath
	if path == "" {
		var err error
		if path, err = userConfigPath(); err != nil {
			c.cfg = config.Default()
			return nil
		}
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			c.cfg = config.Default()
			return nil
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	c.Logger.Debug("loaded config", "path", path)
	c.cfg = cfg
	return nil
}

// config returns the loaded configuration, or the defaults before
// loadConfig has run.
func (c *CLI) config() *config.Config {
	if c.cfg == nil {
		return config.Default()
	}
	return c.cfg
}

// pipelineOptions returns pipeline options carrying the CLI's configuration
// and logger.
func (c *CLI) pipelineOptions() pipeline.Options {
	return pipeline.Options{Config: c.config(), Logger: c.Logger}
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache. Keys
// are scoped by release so upgraded renderers never serve stale artifacts.
func (c *CLI) newRunner(ctx context.Context) (*pipeline.Runner, error) {
	ch, err := c.newCache(ctx)
	if err != nil {
		return nil, err
	}
	keyer := cache.NewScopedKeyer(nil, buildinfo.CacheScope())
	return pipeline.NewRunner(ch, keyer, c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context) (cache.Cache, error) {
	if c.noCache {
		return cache.NewNullCache(), nil
	}
	cc := c.config().Cache
	opts := cache.Options{
		Backend:  cc.Backend,
		Dir:      cc.Dir,
		RedisURL: cc.RedisURL,
		MongoURI: cc.MongoURI,
		MongoDB:  cc.MongoDB,
	}
	if (opts.Backend == "" || opts.Backend == "file") && opts.Dir == "" {
		dir, err := cacheDir()
		if err != nil {
			c.Logger.Warn("no cache directory, caching disabled", "err", err)
			return cache.NewNullCache(), nil
		}
		opts.Dir = dir
	}
	return cache.Open(ctx, opts)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/eqsteps/).
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

// configDir returns the config directory using XDG standard (~/.config/eqsteps/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// basePath derives the base output path from the output and input paths.
// Known format extensions are stripped from output.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	for _, f := range append([]string{pipeline.FormatTree}, pipeline.FormatNames()...) {
		if strings.HasSuffix(output, "."+f) {
			return strings.TrimSuffix(output, "."+f)
		}
	}
	return output
}

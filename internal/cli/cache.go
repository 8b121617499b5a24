package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/eqsteps/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the artifact cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePruneCommand())
	cmd.AddCommand(c.cacheStatsCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached artifact",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withCache(cmd.Context(), func(ch cache.Cache) error {
				switch ch := ch.(type) {
				case *cache.FileCache:
					entries, _, err := ch.Stats()
					if err != nil {
						return err
					}
					if err := ch.Clear(); err != nil {
						return err
					}
					printSuccess("Cleared %d cached entries", entries)
					printDetail("Directory: %s", ch.Dir())
				case interface {
					Clear(context.Context) (int, error)
				}:
					n, err := ch.Clear(cmd.Context())
					if err != nil {
						return err
					}
					printSuccess("Cleared %d cached entries", n)
				default:
					printInfo("Cache is disabled")
				}
				return nil
			})
		},
	}
}

// cachePruneCommand creates the "cache prune" subcommand.
func (c *CLI) cachePruneCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Remove expired entries from the file cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withCache(cmd.Context(), func(ch cache.Cache) error {
				fc, ok := ch.(*cache.FileCache)
				if !ok {
					printInfo("Only the file cache needs pruning; other backends expire entries themselves")
					return nil
				}
				n, err := fc.Prune(cmd.Context())
				if err != nil {
					return err
				}
				printSuccess("Pruned %d expired entries", n)
				return nil
			})
		},
	}
}

// cacheStatsCommand creates the "cache stats" subcommand.
func (c *CLI) cacheStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show cache backend and size",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.config().Cache
			return c.withCache(cmd.Context(), func(ch cache.Cache) error {
				backend := cfg.Backend
				if c.noCache {
					backend = "none"
				}
				printKeyValue("Backend", backend)
				printKeyValue("TTL", cfg.TTL)
				if fc, ok := ch.(*cache.FileCache); ok {
					entries, size, err := fc.Stats()
					if err != nil {
						return err
					}
					printKeyValue("Directory", fc.Dir())
					printKeyValue("Entries", strconv.Itoa(entries))
					printKeyValue("Size", formatBytes(int(size)))
				}
				return nil
			})
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := c.config().Cache.Dir
			if dir == "" {
				var err error
				if dir, err = cacheDir(); err != nil {
					return fmt.Errorf("get cache dir: %w", err)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}

// withCache opens the configured cache, runs fn and closes it.
func (c *CLI) withCache(ctx context.Context, fn func(cache.Cache) error) error {
	ch, err := c.newCache(ctx)
	if err != nil {
		return err
	}
	defer ch.Close()
	return fn(ch)
}

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/haystackd/haystack/internal/cache"
	"github.com/haystackd/haystack/internal/config"
	"github.com/haystackd/haystack/internal/corpus"
	"github.com/haystackd/haystack/internal/search"
	"github.com/haystackd/haystack/internal/searchtypes"
	"github.com/haystackd/haystack/pkg/pathutil"
)

func searchFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "substring",
			Aliases: []string{"s"},
			Usage:   "Match anywhere in a line instead of on word boundaries",
		},
		&cli.IntFlag{
			Name:  "max-files",
			Usage: "Maximum number of files to enumerate (overrides config)",
		},
		&cli.IntFlag{
			Name:  "max-lines",
			Usage: "Maximum lines scanned per file (overrides config)",
		},
		&cli.DurationFlag{
			Name:  "max-time",
			Usage: "Search deadline; partial results are returned on expiry (overrides config)",
		},
		&cli.IntFlag{
			Name:  "progress-every",
			Usage: "Emit a progress diagnostic every N files (overrides config)",
		},
		&cli.StringFlag{
			Name:  "priority-file",
			Usage: "Scan this file first",
		},
		&cli.BoolFlag{
			Name:  "single-group",
			Usage: "Skip size categorization and scan all files in one pass",
		},
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Emit the final result set as JSON",
		},
		&cli.BoolFlag{
			Name:    "watch",
			Aliases: []string{"w"},
			Usage:   "Re-run the search whenever the corpus changes",
		},
	}
}

func searchCommand(c *cli.Context) error {
	if c.NArg() < 1 {
		return errors.New("usage: haystack search <query>")
	}
	query := c.Args().First()
	if strings.TrimSpace(query) == "" {
		return errors.New("query must not be empty")
	}

	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	req := cfg.Request(query)
	if c.Bool("substring") {
		req.Mode = searchtypes.ModeSubstring
	}
	if c.IsSet("max-files") {
		req.MaxFiles = c.Int("max-files")
	}
	if c.IsSet("max-lines") {
		req.MaxLinesPerFile = c.Int("max-lines")
	}
	if c.IsSet("max-time") {
		req.MaxSearchTime = c.Duration("max-time")
	}
	if c.IsSet("progress-every") {
		req.ProgressEvery = c.Int("progress-every")
	}
	req.SingleGroup = c.Bool("single-group")

	watch := c.Bool("watch") || cfg.Watch.Enabled

	engineOpts := []search.Option{search.WithDiagnostics(search.DebugDiagnostics())}
	if !watch {
		// The expansion cache only helps when results cannot go stale
		// underneath us; watch mode rescans on every change instead.
		engineOpts = append(engineOpts, search.WithCache(cache.NewResultCache()))
	}
	engine := search.New(engineOpts...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runOnce := func() error {
		return runSearch(ctx, c, cfg, engine, req)
	}

	if err := runOnce(); err != nil {
		return err
	}
	if !watch {
		return nil
	}

	changes := make(chan struct{}, 1)
	watcher, err := corpus.NewWatcher(cfg.Project.Root,
		time.Duration(cfg.Watch.DebounceMs)*time.Millisecond,
		func() {
			select {
			case changes <- struct{}{}:
			default:
			}
		})
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to start watcher: %v", err), 2)
	}
	if err := watcher.Start(); err != nil {
		watcher.Close()
		return cli.Exit(fmt.Sprintf("failed to start watcher: %v", err), 2)
	}
	defer watcher.Close()

	fmt.Fprintf(os.Stderr, "watching %s for changes (ctrl-c to stop)\n", cfg.Project.Root)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-changes:
			fmt.Println()
			if err := runOnce(); err != nil {
				return err
			}
		}
	}
}

func runSearch(ctx context.Context, c *cli.Context, cfg *config.Config, engine *search.Engine, req searchtypes.Request) error {
	enum := corpus.NewEnumerator(cfg)
	files, err := enum.Enumerate(ctx)
	if err != nil {
		// Enumeration failure is the one fatal error class: report it
		// and present an empty result set.
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		return cli.Exit("no files to search", 1)
	}
	files = corpus.Prioritize(files, c.String("priority-file"))

	start := time.Now()
	jsonOut := c.Bool("json")

	var onBatch func(searchtypes.Batch)
	if !jsonOut {
		onBatch = func(batch searchtypes.Batch) {
			for _, hit := range pathutil.ToRelativeHits(batch.Hits, cfg.Project.Root) {
				printHit(hit)
			}
		}
	}

	result := engine.Search(ctx, req, files, onBatch)

	if jsonOut {
		out := result
		out.Hits = pathutil.ToRelativeHits(result.Hits, cfg.Project.Root)
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	status := "complete"
	if !result.Complete {
		status = "partial (deadline reached)"
	}
	fmt.Fprintf(os.Stderr, "%d hits in %d files, %s, %s\n",
		len(result.Hits), result.FilesScanned, time.Since(start).Round(time.Millisecond), status)
	return nil
}

func printHit(hit searchtypes.Hit) {
	// 1-based line/column for display; the engine works 0-based.
	fmt.Printf("%s:%d:%d: %s\n", hit.Path, hit.Line+1, hit.Column+1, hit.Preview)
	if len(hit.Symbols) > 0 {
		fmt.Printf("    symbols: %s\n", strings.Join(hit.Symbols, ", "))
	}
}

// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/poiesic/scriptura"
	"github.com/poiesic/scriptura/config"
	"github.com/poiesic/scriptura/ingest"
	"github.com/urfave/cli/v2"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "scriptura",
		Usage: "Resumable semantic indexing of Bible translations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file (default: ./scriptura.yaml or $HOME/.scriptura/scriptura.yaml)",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "ingest",
				Usage:     "Index every book of one or more versions, skipping books already done",
				ArgsUsage: "[version...]",
				Action:    ingestCommand,
				Flags: append(commonFlags(),
					&cli.StringFlag{
						Name:  "source-dir",
						Usage: "Read {version}.json from this directory instead of downloading",
					},
					&cli.StringFlag{
						Name:  "source-url",
						Usage: "Download URL template; {version} is replaced with the version label",
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of verses per embedding call",
					},
					&cli.IntFlag{
						Name:  "max-attempts",
						Usage: "Attempts per batch before the book is abandoned",
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Wait after the first failed attempt; grows linearly",
					},
					&cli.Float64Flag{
						Name:  "rps",
						Usage: "Maximum embedding requests per second (0 = unlimited)",
					},
					&cli.BoolFlag{
						Name:  "no-progress",
						Usage: "Do not print verse progress",
					},
				),
			},
			{
				Name:      "status",
				Usage:     "Show the books already completed for a version",
				ArgsUsage: "[version]",
				Action:    statusCommand,
				Flags:     commonFlags(),
			},
			{
				Name:      "reset",
				Usage:     "Clear a version's checkpoint so the next ingest starts over",
				ArgsUsage: "[version]",
				Action:    resetCommand,
				Flags:     commonFlags(),
			},
			{
				Name:      "search",
				Usage:     "Find verses similar to a query",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: append(commonFlags(),
					&cli.StringFlag{
						Name:  "version",
						Usage: "Version to search",
					},
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Maximum number of results",
						Value:   5,
					},
				),
			},
		},
	}
}

// commonFlags override the storage and embedding sections of the config.
func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			Aliases: []string{"d"},
			Usage:   "Path to BadgerDB database directory",
		},
		&cli.BoolFlag{
			Name:  "in-memory",
			Usage: "Use a throwaway in-memory database",
		},
		&cli.StringFlag{
			Name:  "checkpoint-backend",
			Usage: "Checkpoint store: file, badger or redis",
		},
		&cli.StringFlag{
			Name:  "checkpoint-dir",
			Usage: "Directory for processed_<version>_books.json files",
		},
		&cli.StringFlag{
			Name:  "redis-addr",
			Usage: "Redis address for the redis checkpoint backend",
		},
		&cli.StringFlag{
			Name:  "embedding-host",
			Usage: "Embedding service host URL",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
		},
	}
}

// loadConfig reads the config file and environment, then applies any flags
// the user set explicitly.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}

	setString := func(flag string, dst *string) {
		if c.IsSet(flag) {
			*dst = c.String(flag)
		}
	}
	setInt := func(flag string, dst *int) {
		if c.IsSet(flag) {
			*dst = c.Int(flag)
		}
	}

	setString("db", &cfg.Database.Path)
	if c.IsSet("in-memory") {
		cfg.Database.InMemory = c.Bool("in-memory")
	}
	setString("checkpoint-backend", &cfg.Checkpoint.Backend)
	setString("checkpoint-dir", &cfg.Checkpoint.Dir)
	setString("redis-addr", &cfg.Checkpoint.RedisAddr)
	setString("embedding-host", &cfg.Embedding.Host)
	setString("embedding-model", &cfg.Embedding.Model)
	setString("source-dir", &cfg.Source.Dir)
	setString("source-url", &cfg.Source.URLTemplate)
	setInt("batch-size", &cfg.Pipeline.BatchSize)
	setInt("max-attempts", &cfg.Pipeline.MaxAttempts)
	if c.IsSet("retry-delay") {
		cfg.Pipeline.RetryBaseDelay = c.Duration("retry-delay")
	}
	if c.IsSet("rps") {
		cfg.Embedding.RequestsPerSecond = c.Float64("rps")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func openDatabase(c *cli.Context) (*scriptura.Database, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}
	db, err := scriptura.Open(c.Context, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// versionArg returns the first argument, or the configured version.
func versionArg(c *cli.Context, db *scriptura.Database) string {
	if c.Args().Present() {
		return c.Args().First()
	}
	return db.Config().Version
}

func ingestCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	versions := c.Args().Slice()
	if len(versions) == 0 {
		versions = []string{db.Config().Version}
	}

	var progress io.Writer
	if !c.Bool("no-progress") {
		progress = c.App.ErrWriter
	}
	pipeline, err := db.NewIngestionPipeline(progress)
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}

	failed := 0
	for _, version := range versions {
		start := time.Now()
		report, err := pipeline.Run(c.Context, version)
		if err != nil {
			return fmt.Errorf("ingesting %s: %w", version, err)
		}
		printReport(c.App.Writer, report, time.Since(start))
		failed += report.Count(ingest.StatePartialFailure)
	}

	if failed > 0 {
		return cli.Exit(fmt.Sprintf("%d book(s) failed and need another run", failed), 2)
	}
	return nil
}

func printReport(w io.Writer, report *ingest.Report, elapsed time.Duration) {
	if !report.Found {
		fmt.Fprintf(w, "%s: nothing to process\n", report.Version)
		return
	}

	fmt.Fprintf(w, "%s (%s): %d complete, %d already done, %d unresolved, %d failed in %s\n",
		report.Version, report.Translation,
		report.Count(ingest.StateComplete),
		report.Count(ingest.StateAlreadyDone),
		report.Count(ingest.StateUnresolved),
		report.Count(ingest.StatePartialFailure),
		elapsed.Round(time.Millisecond))

	for _, book := range report.Books {
		switch book.State {
		case ingest.StateUnresolved:
			fmt.Fprintf(w, "  unresolved: %q (book %d)\n", book.Name, book.Index+1)
		case ingest.StatePartialFailure:
			fmt.Fprintf(w, "  failed: %s at verse offset %d after %d attempts: %v\n",
				book.BookID, book.FailedOffset, book.Attempts, book.Err)
		case ingest.StateComplete:
			if !book.Persisted {
				fmt.Fprintf(w, "  warning: %s completed but its checkpoint was not saved\n", book.BookID)
			}
		}
	}
}

func statusCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	version := versionArg(c, db)
	checkpoint, err := db.Status(c.Context, version)
	if err != nil {
		return fmt.Errorf("failed to load checkpoint: %w", err)
	}

	w := c.App.Writer
	fmt.Fprintf(w, "%s: %d book(s) complete\n", version, len(checkpoint.Books))
	if len(checkpoint.Books) > 0 {
		fmt.Fprintf(w, "  %s\n", strings.Join(checkpoint.Books, " "))
	}
	if !checkpoint.UpdatedAt.IsZero() {
		fmt.Fprintf(w, "  updated %s\n", checkpoint.UpdatedAt.Format(time.RFC3339))
	}
	return nil
}

func resetCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	version := versionArg(c, db)
	if err := db.Reset(c.Context, version); err != nil {
		return fmt.Errorf("failed to reset checkpoint: %w", err)
	}
	slog.Info("checkpoint reset", "version", version)
	fmt.Fprintf(c.App.Writer, "%s: checkpoint cleared\n", version)
	return nil
}

func searchCommand(c *cli.Context) error {
	query := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("a query is required")
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	version := c.String("version")
	if version == "" {
		version = db.Config().Version
	}

	searcher, err := db.NewSearcher()
	if err != nil {
		return fmt.Errorf("failed to create searcher: %w", err)
	}
	results, err := searcher.Search(c.Context, version, query, c.Int("limit"))
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	w := c.App.Writer
	fmt.Fprintf(w, "Found %d hits\n", len(results))
	for i, hit := range results {
		record := hit.Verse.Record
		fmt.Fprintf(w, "%d: %s %d:%d [%0.3f] %s\n", i+1, record.Book, record.Chapter, record.Verse, hit.Score, record.TextOrEmpty())
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}

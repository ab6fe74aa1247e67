package cmd

import (
	"context"
	"fmt"
	"sort"

	"github.com/urfave/cli/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/mediadex/mediadex/pkg/catalog"
	"github.com/mediadex/mediadex/pkg/config"
)

// StatsCommand creates the stats command
func StatsCommand() *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Show catalog statistics",
		Action: func(ctx context.Context, c *cli.Command) error {
			return showStats(ctx, c.String("config"))
		},
	}
}

func showStats(ctx context.Context, configPath string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store, err := catalog.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("opening catalog: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			fmt.Printf("Warning: failed to close catalog: %v\n", err)
		}
	}()

	stats, err := store.GetStats(ctx)
	if err != nil {
		return fmt.Errorf("reading stats: %w", err)
	}

	p := message.NewPrinter(language.English)
	p.Printf("Catalog: %s\n", cfg.Database)
	p.Printf("Total items: %d\n", stats.TotalItems)
	p.Printf("Indexed titles: %d\n", stats.IndexedRows)
	if stats.IndexedRows != stats.TotalItems {
		p.Printf("Index is out of sync; it is rebuilt the next time serve starts.\n")
	}

	if len(stats.ByCategory) == 0 {
		return nil
	}

	cats := make([]string, 0, len(stats.ByCategory))
	for cat := range stats.ByCategory {
		cats = append(cats, cat)
	}
	sort.Slice(cats, func(i, j int) bool {
		return stats.ByCategory[cats[i]] > stats.ByCategory[cats[j]]
	})

	p.Printf("\nItems per category:\n")
	for _, cat := range cats {
		p.Printf("  %-20s %d\n", cat, stats.ByCategory[cat])
	}
	return nil
}

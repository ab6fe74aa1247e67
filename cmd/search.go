package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v3"

	"github.com/mediadex/mediadex/pkg/catalog"
	"github.com/mediadex/mediadex/pkg/config"
	"github.com/mediadex/mediadex/pkg/search"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	metaStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
)

// SearchCommand creates the search command
func SearchCommand() *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search the catalog from the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "query",
				Usage: "Search query",
			},
			&cli.StringFlag{
				Name:  "category",
				Usage: "Category label (Movies, TV, Games, Music, Books, Software, Adult)",
			},
			&cli.StringFlag{
				Name:  "sort-col",
				Usage: "Sort column (title, date, size)",
				Value: "title",
			},
			&cli.StringFlag{
				Name:  "sort-dir",
				Usage: "Sort direction (asc, desc)",
				Value: "asc",
			},
			&cli.IntFlag{
				Name:  "page",
				Usage: "Page number",
				Value: 1,
			},
			&cli.IntFlag{
				Name:  "per-page",
				Usage: "Results per page",
				Value: 20,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			params := search.Params{
				Query:    c.String("query"),
				Category: c.String("category"),
				SortCol:  c.String("sort-col"),
				SortDir:  c.String("sort-dir"),
				Page:     c.Int("page"),
				PerPage:  c.Int("per-page"),
			}
			return searchCatalog(ctx, c.String("config"), params)
		},
	}
}

func searchCatalog(ctx context.Context, configPath string, params search.Params) error {
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

	if cfg.MatchMode == catalog.MatchFTS {
		if err := store.EnsureIndex(ctx); err != nil {
			return fmt.Errorf("preparing full-text index: %w", err)
		}
	}

	service := search.NewService(store, cfg.MatchMode)
	page, err := service.Search(ctx, params)
	if err != nil {
		var verr *search.ValidationError
		if errors.As(err, &verr) {
			fmt.Println(errorStyle.Render(verr.Error()))
			return nil
		}
		return fmt.Errorf("searching: %w", err)
	}

	if page.TotalCount == 0 {
		fmt.Println(metaStyle.Render("no matches"))
		return nil
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("%d matches", page.TotalCount)))
	for _, res := range page.Results {
		fmt.Println(titleStyle.Render(res.Title))
		meta := fmt.Sprintf("  %s  %s  %s", res.Cat, res.Date, formatSize(res.Size))
		fmt.Println(metaStyle.Render(meta))
		if res.Magnet != "" {
			fmt.Println(metaStyle.Render("  " + res.Magnet))
		}
	}
	return nil
}

package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/mediadex/mediadex/pkg/catalog"
)

// CategoriesCommand creates the categories command
func CategoriesCommand() *cli.Command {
	return &cli.Command{
		Name:  "categories",
		Usage: "List category labels and the codes they expand to",
		Action: func(ctx context.Context, c *cli.Command) error {
			for _, label := range catalog.CategoryLabels() {
				fmt.Printf("%s: %s\n", label, strings.Join(catalog.ResolveCategory(label), ", "))
			}
			return nil
		},
	}
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"

	"recipebox"
	"recipebox/recipe"
	"recipebox/screen"
	"recipebox/spoonacular"
	"recipebox/tools"
)

func out(cmd *cli.Command) io.Writer { return cmd.Root().Writer }

func searchCmd(s *session) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Find recipes that use the given ingredients",
		ArgsUsage: "<ingredient, ingredient, ...>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "number",
				Usage: "Maximum number of recipes to ask for (defaults to RECIPE_RESULT_COUNT)",
			},
			&cli.IntFlag{
				Name:  "ranking",
				Usage: "1 maximizes used ingredients, 2 minimizes missing ones",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ingredients := strings.Join(cmd.Args().Slice(), " ")
			if !screen.CanSearch(ingredients) {
				return fmt.Errorf("enter ingredients separated by commas")
			}

			opts := s.search
			if n := cmd.Int("number"); n > 0 {
				opts.Count = n
			}
			if r := cmd.Int("ranking"); r != 0 {
				opts.Ranking = spoonacular.Ranking(r)
				if !opts.Ranking.IsValid() {
					return fmt.Errorf("invalid ranking %d", r)
				}
			}

			searcher := screen.SearchFunc(func(ctx context.Context, ingredients string) ([]recipe.Summary, error) {
				found, err := s.api.SearchByIngredients(ctx, ingredients, opts)
				if s.debug {
					recipebox.Dump(cmd.Root().ErrWriter, found)
				}
				return found, err
			})

			results := screen.NewResultsScreen(ctx, searcher, s.store)
			defer results.Close()

			results.Load(ingredients)
			return results.Render(out(cmd))
		},
	}
}

func detailsCmd(s *session) *cli.Command {
	return &cli.Command{
		Name:      "details",
		Usage:     "Show a recipe's ingredients and instructions",
		ArgsUsage: "<recipe id>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "favorite",
				Usage: "Toggle the recipe as a favorite after showing it",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			id, err := recipeID(cmd)
			if err != nil {
				return err
			}

			detail := screen.NewDetailScreen(ctx, s.api, s.store)
			defer detail.Close()

			detail.Load(id)
			if cmd.Bool("favorite") {
				if _, err := detail.ToggleFavorite(ctx); err != nil {
					return err
				}
			}
			if s.debug {
				recipebox.Dump(cmd.Root().ErrWriter, detail.State().Detail)
			}
			return detail.Render(out(cmd))
		},
	}
}

func favoritesCmd(s *session) *cli.Command {
	return &cli.Command{
		Name:  "favorites",
		Usage: "Manage saved recipes",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List saved recipes",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					list := screen.NewFavoritesScreen(s.store)
					defer list.Close()
					return list.Render(out(cmd))
				},
			},
			{
				Name:      "add",
				Usage:     "Save a recipe by id",
				ArgsUsage: "<recipe id>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					id, err := recipeID(cmd)
					if err != nil {
						return err
					}
					d, err := s.api.GetDetails(ctx, id)
					if err != nil {
						return err
					}
					if err := s.store.Add(ctx, d.Favorite()); err != nil {
						return err
					}
					_, err = fmt.Fprintf(out(cmd), "Saved %q\n", d.Title)
					return err
				},
			},
			{
				Name:      "remove",
				Usage:     "Forget a saved recipe",
				ArgsUsage: "<recipe id>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					id, err := recipeID(cmd)
					if err != nil {
						return err
					}
					if !s.store.Contains(id) {
						_, err := fmt.Fprintf(out(cmd), "Recipe %d is not a favorite\n", id)
						return err
					}
					if err := s.store.Remove(ctx, id); err != nil {
						return err
					}
					_, err = fmt.Fprintf(out(cmd), "Removed %d\n", id)
					return err
				},
			},
		},
	}
}

func toolCmd(s *session) *cli.Command {
	return &cli.Command{
		Name:      "tool",
		Usage:     "Run a registered tool with a JSON input object",
		ArgsUsage: "<name> [json input]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "list",
				Usage: "List registered tools instead of running one",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Bool("list") {
				for _, t := range s.registry.GetTools() {
					if _, err := fmt.Fprintf(out(cmd), "%-16s %s\n", t.Name(), t.Description()); err != nil {
						return err
					}
				}
				return nil
			}

			call := tools.Call{Name: cmd.Args().First()}
			if call.Name == "" {
				return fmt.Errorf("tool name is required")
			}
			if raw := cmd.Args().Get(1); raw != "" {
				if err := json.Unmarshal([]byte(raw), &call.Input); err != nil {
					return fmt.Errorf("failed to parse tool input: %w", err)
				}
			}

			result, err := recipebox.RunTool(ctx, s.registry, s.logger, call)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(out(cmd))
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}
}

func recipeID(cmd *cli.Command) (int, error) {
	raw := cmd.Args().First()
	if raw == "" {
		return 0, fmt.Errorf("recipe id is required")
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid recipe id %q", raw)
	}
	return id, nil
}

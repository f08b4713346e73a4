package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"recipefinder/internal/models"
	"recipefinder/internal/util"
	"recipefinder/internal/views"
)

var (
	favoriteFlag int
	pageFlag     int
	limitFlag    int
	allFlag      bool
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show a random selection of recipes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		out := cmd.OutOrStdout()
		dashboard := views.NewDashboard(a.env)
		printNav(out, dashboard.Nav())

		if err := dashboard.Load(cmd.Context()); err != nil {
			return fmt.Errorf("%s: %w", dashboard.Error, err)
		}
		if len(dashboard.Recipes) == 0 {
			fmt.Fprintln(out, views.MsgNoRecipes)
			return nil
		}

		printCards(out, dashboard.Cards())
		return nil
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <ingredient>",
	Short: "Search recipes by ingredient",
	Long: `Search recipes containing an ingredient. When logged in, results that
are already favorites are marked, and --favorite N saves the Nth result.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		out := cmd.OutOrStdout()
		search := views.NewSearch(a.env)
		search.Ingredient = strings.Join(args, " ")

		req, err := search.BeginSearch()
		if err != nil {
			return err
		}
		preloadSeq, preload := search.BeginPreload()

		// The favorites preload runs alongside the search. Its failure
		// only means results are not marked.
		var (
			favorites, results    []models.Recipe
			preloadErr, searchErr error
		)
		g, ctx := errgroup.WithContext(cmd.Context())
		if preload {
			g.Go(func() error {
				favorites, preloadErr = a.client.Favorites(ctx, 0, 0)
				return nil
			})
		}
		g.Go(func() error {
			results, searchErr = a.client.Search(ctx, req.Ingredient)
			return searchErr
		})
		_ = g.Wait()

		if preload {
			search.ApplyPreload(preloadSeq, favorites, preloadErr)
		}
		search.ApplySearch(req, results, searchErr)
		if searchErr != nil {
			return fmt.Errorf("%s: %w", search.Error, searchErr)
		}

		if msg := search.EmptyMessage(); msg != "" {
			fmt.Fprintln(out, msg)
			return nil
		}
		fmt.Fprintf(out, "%s for %q\n\n", util.Plural(len(search.Recipes), "recipe"), req.Ingredient)

		if favoriteFlag != 0 {
			if favoriteFlag < 1 || favoriteFlag > len(search.Recipes) {
				return fmt.Errorf("--favorite must be between 1 and %d", len(search.Recipes))
			}
			recipe := search.Recipes[favoriteFlag-1]
			err := search.Favorite(cmd.Context(), recipe)
			switch {
			case errors.Is(err, models.ErrAlreadyFavorite):
				printWarning(out, "%s: %s", recipe.Title, search.Notice)
			case err != nil && search.Error != "":
				printError(out, "%s", search.Error)
				printCards(out, search.Cards())
				return err
			case err != nil:
				return err
			default:
				printSuccess(out, "%s: %s", recipe.Title, search.Notice)
			}
			fmt.Fprintln(out)
		}

		printCards(out, search.Cards())
		return nil
	},
}

var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "List your favorite recipes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		if !a.session.Authenticated() {
			return models.ErrNotAuthenticated
		}

		out := cmd.OutOrStdout()
		favorites := views.NewFavorites(a.env)
		if limitFlag > 0 {
			favorites.Limit = limitFlag
		}
		if pageFlag > 0 {
			favorites.Page = pageFlag
		}

		if allFlag {
			err = favorites.LoadAll(cmd.Context())
		} else {
			_, err = favorites.LoadMore(cmd.Context())
		}
		if err != nil {
			return fmt.Errorf("%s: %w", favorites.Error, err)
		}

		if msg := favorites.EmptyMessage(); msg != "" {
			fmt.Fprintln(out, msg)
			return nil
		}

		printCards(out, favorites.Cards())
		if favorites.HasMore && !allFlag {
			mutedColor.Fprintf(out, "More favorites: recipes favorites --page %d --limit %d\n", favorites.Page, favorites.Limit)
		}
		return nil
	},
}

var unfavoriteCmd = &cobra.Command{
	Use:   "unfavorite <id>",
	Short: "Remove a recipe from your favorites",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		favorites := views.NewFavorites(a.env)
		return favorites.Unfavorite(recipeRef(args[0]))
	},
}

var rateCmd = &cobra.Command{
	Use:   "rate <id> <rating>",
	Short: "Rate a recipe from 1 to 5",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		rating, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("%w: got %q", models.ErrRatingOutOfRange, args[1])
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		card := views.NewCard(recipeRef(args[0]), views.FromFavorites, true)
		if err := card.SubmitRating(cmd.Context(), a.env.API, rating); err != nil {
			return fmt.Errorf("rating failed: %w", newViewError(card.Error, err))
		}

		printSuccess(cmd.OutOrStdout(), "%s. Average rating: %s", card.Notice, util.FormatRating(card.Recipe.Rating()))
		return nil
	},
}

var reviewCmd = &cobra.Command{
	Use:   "review <id> <text>",
	Short: "Write a review for a recipe",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		card := views.NewCard(recipeRef(args[0]), views.FromFavorites, true)
		if err := card.SubmitReview(cmd.Context(), a.env.API, strings.Join(args[1:], " ")); err != nil {
			return fmt.Errorf("review failed: %w", newViewError(card.Error, err))
		}

		printSuccess(cmd.OutOrStdout(), "%s", card.Notice)
		return nil
	},
}

// recipeRef builds a recipe from an id typed on the command line. Search
// results have numeric ids; saved favorites have server-assigned ones.
func recipeRef(id string) models.Recipe {
	if util.IsNumeric(id) {
		return models.Recipe{ID: models.RecipeID(id)}
	}
	return models.Recipe{FavoriteID: id}
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(favoritesCmd)
	rootCmd.AddCommand(unfavoriteCmd)
	rootCmd.AddCommand(rateCmd)
	rootCmd.AddCommand(reviewCmd)

	searchCmd.Flags().IntVar(&favoriteFlag, "favorite", 0, "Save the Nth result as a favorite")

	favoritesCmd.Flags().IntVar(&pageFlag, "page", 0, "Page to fetch, starting at 1")
	favoritesCmd.Flags().IntVar(&limitFlag, "limit", 0, "Favorites per page (defaults to page_size)")
	favoritesCmd.Flags().BoolVar(&allFlag, "all", false, "Fetch every page")
}

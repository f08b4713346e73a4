package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"recipefinder/internal/models"
	"recipefinder/internal/util"
	"recipefinder/internal/views"
)

var (
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
	titleColor   = color.New(color.Bold, color.FgCyan)
	mutedColor   = color.New(color.Faint)
)

// printCards lists recipe cards, numbered from 1
func printCards(w io.Writer, cards []views.RecipeCard) {
	for i, card := range cards {
		r := card.Recipe
		titleColor.Fprintf(w, "%d. %s", i+1, r.Title)
		if key := r.Key(); key != "" {
			mutedColor.Fprintf(w, "  [id %s]", key)
		}
		fmt.Fprintln(w)

		fmt.Fprintf(w, "   %s\n", util.Truncate(r.Summary, 100))
		if len(r.Ingredients) > 0 {
			fmt.Fprintf(w, "   Ingredients: %s\n", util.Truncate(strings.Join(r.Ingredients, ", "), 100))
		}
		if r.SourceURL != models.PlaceholderSourceURL {
			mutedColor.Fprintf(w, "   Source: %s\n", r.SourceURL)
		}

		switch card.Affordance() {
		case views.AffordanceAlreadyFavorited:
			warnColor.Fprintf(w, "   ★ %s\n", views.MsgAlreadyFavorited)
		case views.AffordanceRateReview:
			fmt.Fprintf(w, "   Rating: %s\n", util.FormatRating(r.Rating()))
		}
		fmt.Fprintln(w)
	}
}

// printNav shows the navigation the web client would offer
func printNav(w io.Writer, links []views.Link) {
	labels := make([]string, 0, len(links))
	for _, link := range links {
		labels = append(labels, link.Label)
	}
	mutedColor.Fprintf(w, "%s\n", strings.Join(labels, " | "))
}

func printSuccess(w io.Writer, format string, args ...interface{}) {
	successColor.Fprintf(w, format+"\n", args...)
}

func printWarning(w io.Writer, format string, args ...interface{}) {
	warnColor.Fprintf(w, format+"\n", args...)
}

func printError(w io.Writer, format string, args ...interface{}) {
	errorColor.Fprintf(w, format+"\n", args...)
}

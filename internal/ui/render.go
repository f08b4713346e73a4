package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"recipefinder/internal/views"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Padding(0, 1)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")).
			Padding(0, 1)

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			Padding(0, 1)

	navActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true).
			Foreground(lipgloss.Color("205"))

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
)

// renderCard draws the detail panel for one recipe card
func renderCard(card views.RecipeCard, width int) string {
	if width < 20 {
		width = 20
	}
	inner := width - 4
	r := card.Recipe

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).Render(r.Title))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Width(inner).Render(r.Summary))
	b.WriteString("\n\n")

	if len(r.Ingredients) > 0 {
		b.WriteString(lipgloss.NewStyle().Bold(true).Render("Ingredients"))
		b.WriteString("\n")
		for _, ingredient := range r.Ingredients {
			b.WriteString("  • " + ingredient + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(mutedStyle.Render(fmt.Sprintf("Image:  %s", r.Image)))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("Source: %s", r.SourceURL)))
	b.WriteString("\n")

	switch card.Affordance() {
	case views.AffordanceFavorite:
		b.WriteString(noticeStyle.Render("[enter] Favorite"))
	case views.AffordanceAlreadyFavorited:
		b.WriteString(mutedStyle.Render(views.MsgAlreadyFavorited))
	case views.AffordanceRateReview:
		b.WriteString(mutedStyle.Render(fmt.Sprintf("Average rating: %s (%.1f)", stars(r.Rating()), r.Rating())))
		b.WriteString("\n")
		b.WriteString(noticeStyle.Render("[1-5] Rate  [r] Review"))
	}

	return cardStyle.Width(width - 2).Render(b.String())
}

// renderNav draws the navigation row, highlighting the active screen
func renderNav(links []views.Link, active views.Route) string {
	parts := make([]string, 0, len(links))
	for _, link := range links {
		label := fmt.Sprintf("%s (%s)", link.Label, navKey(link))
		if link.Route == active && link.Label != "Logout" {
			parts = append(parts, navActiveStyle.Render(label))
		} else {
			parts = append(parts, label)
		}
	}
	return mutedStyle.Render(strings.Join(parts, "  "))
}

func navKey(link views.Link) string {
	switch link.Label {
	case "Search":
		return "s"
	case "Favorites":
		return "f"
	case "Logout":
		return "x"
	case "Login":
		return "l"
	case "Register":
		return "R"
	}
	return "?"
}

func stars(rating float64) string {
	full := int(rating + 0.5)
	if full > 5 {
		full = 5
	}
	if full < 0 {
		full = 0
	}
	return strings.Repeat("★", full) + strings.Repeat("☆", 5-full)
}

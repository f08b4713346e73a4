package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"recipefinder/internal/views"
)

// RecipeItem represents a recipe card in the list
type RecipeItem struct {
	Card views.RecipeCard
}

// FilterValue returns the filter value for the recipe item
func (i RecipeItem) FilterValue() string {
	return i.Card.Recipe.Title
}

// Title returns the title for the recipe item
func (i RecipeItem) Title() string {
	return i.Card.Recipe.Title
}

// Description returns the description for the recipe item
func (i RecipeItem) Description() string {
	switch i.Card.Affordance() {
	case views.AffordanceAlreadyFavorited:
		return "★ " + views.MsgAlreadyFavorited
	case views.AffordanceRateReview:
		return fmt.Sprintf("Rating %.1f - %s", i.Card.Recipe.Rating(), firstLine(i.Card.Recipe.Summary))
	default:
		return firstLine(i.Card.Recipe.Summary)
	}
}

// RecipeListModel represents the recipe list model
type RecipeListModel struct {
	List     list.Model
	Cards    []views.RecipeCard
	Selected *views.RecipeCard
}

// NewRecipeListModel creates a new recipe list model
func NewRecipeListModel(title string, width, height int) RecipeListModel {
	listModel := list.New([]list.Item{}, list.NewDefaultDelegate(), width, height)
	listModel.Title = title
	listModel.SetShowStatusBar(false)
	listModel.SetShowHelp(false)
	listModel.SetFilteringEnabled(false)
	listModel.Styles.Title = lipgloss.NewStyle().
		Foreground(lipgloss.Color("39")).
		Bold(true).
		MarginLeft(2)

	return RecipeListModel{
		List:  listModel,
		Cards: []views.RecipeCard{},
	}
}

// SetCards replaces the cards, keeping the cursor where it was when possible
func (m *RecipeListModel) SetCards(cards []views.RecipeCard) tea.Cmd {
	m.Cards = cards

	items := make([]list.Item, len(cards))
	for i, card := range cards {
		items[i] = RecipeItem{Card: card}
	}

	index := m.List.Index()
	cmd := m.List.SetItems(items)
	if index >= len(items) {
		index = len(items) - 1
	}
	if index >= 0 {
		m.List.Select(index)
	}
	m.syncSelected()
	return cmd
}

// SetTitle changes the list heading
func (m *RecipeListModel) SetTitle(title string) {
	m.List.Title = title
}

// SetSize resizes the list
func (m *RecipeListModel) SetSize(width, height int) {
	m.List.SetSize(width, height)
}

// AtBottom reports whether the cursor is on the last card
func (m RecipeListModel) AtBottom() bool {
	return len(m.Cards) > 0 && m.List.Index() >= len(m.Cards)-1
}

// Update handles recipe list updates
func (m RecipeListModel) Update(msg tea.Msg) (RecipeListModel, tea.Cmd) {
	var cmd tea.Cmd
	m.List, cmd = m.List.Update(msg)
	m.syncSelected()
	return m, cmd
}

// View renders the recipe list
func (m RecipeListModel) View() string {
	return m.List.View()
}

func (m *RecipeListModel) syncSelected() {
	index := m.List.Index()
	if index >= 0 && index < len(m.Cards) {
		card := m.Cards[index]
		m.Selected = &card
	} else {
		m.Selected = nil
	}
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, ".\n"); i > 0 {
		return s[:i+1]
	}
	return s
}

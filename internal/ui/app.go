package ui

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"recipefinder/internal/models"
	"recipefinder/internal/session"
	"recipefinder/internal/ui/components"
	"recipefinder/internal/views"
)

// Auth form field indexes
const (
	fieldEmail = iota
	fieldUsername
	fieldPassword
)

// Model represents the UI model
type Model struct {
	env    views.Env
	events <-chan session.Event
	logger *zap.Logger

	Screen views.Route
	ctx    context.Context
	cancel context.CancelFunc

	Auth      *views.AuthScreen
	Dashboard *views.Dashboard
	Search    *views.Search
	Favorites *views.Favorites

	inputs    []textinput.Model
	focus     int
	query     textinput.Model
	review    textinput.Model
	reviewing bool

	List    components.RecipeListModel
	Spinner spinner.Model

	StatusMessage string
	ErrorMessage  string
	Width         int
	Height        int
	Ready         bool

	initCmd tea.Cmd
}

// NewModel creates a new UI model. events may be nil when session changes
// made outside the program need not be followed.
func NewModel(env views.Env, events <-chan session.Event) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	inputs := make([]textinput.Model, 3)
	for i := range inputs {
		ti := textinput.New()
		ti.CharLimit = 128
		inputs[i] = ti
	}
	inputs[fieldEmail].Placeholder = "Email"
	inputs[fieldUsername].Placeholder = "Name"
	inputs[fieldPassword].Placeholder = "Password"
	inputs[fieldPassword].EchoMode = textinput.EchoPassword
	inputs[fieldPassword].EchoCharacter = '•'

	query := textinput.New()
	query.Placeholder = "Enter an ingredient..."
	query.CharLimit = 64

	review := textinput.New()
	review.Placeholder = "Write a review and press enter"
	review.CharLimit = 500

	logger := env.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(context.Background())

	m := Model{
		env:           env,
		events:        events,
		logger:        logger,
		ctx:           ctx,
		cancel:        cancel,
		Auth:          views.NewAuthScreen(env),
		Dashboard:     views.NewDashboard(env),
		Search:        views.NewSearch(env),
		Favorites:     views.NewFavorites(env),
		inputs:        inputs,
		query:         query,
		review:        review,
		List:          components.NewRecipeListModel("Recipes", 40, 20),
		Spinner:       s,
		StatusMessage: "Ready",
	}

	// Anonymous users land on the auth screen
	if env.Session.Authenticated() {
		m.Screen = views.RouteDashboard
	} else {
		m.Screen = views.RouteHome
	}
	m.initCmd = m.enter()
	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Spinner.Tick, m.initCmd, waitForSession(m.events))
}

// Update handles UI updates
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.resizeList()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.cancel()
			return m, tea.Quit
		}
		return m.handleKey(msg)

	case sessionMsg:
		cmds = append(cmds, waitForSession(m.events))
		m.Dashboard.Refresh()
		switch {
		case !msg.Authenticated && m.Screen == views.RouteFavorites:
			m.StatusMessage = "Session ended"
			m.Auth.Mode = views.ModeLogin
			cmds = append(cmds, m.goTo(views.RouteHome))
		case msg.Authenticated && m.Screen == views.RouteHome:
			m.StatusMessage = "Logged in"
			cmds = append(cmds, m.goTo(views.RouteDashboard))
		case m.Screen == views.RouteSearch:
			cmds = append(cmds, m.syncList())
		}
		return m, tea.Batch(cmds...)

	case loginDoneMsg:
		route, err := m.Auth.Login.Complete(msg.auth, msg.err)
		if err != nil {
			m.ErrorMessage = m.Auth.Login.Error
			return m, nil
		}
		m.inputs[fieldPassword].SetValue("")
		m.StatusMessage = "Logged in"
		next := m.goTo(route)
		return m, next

	case registerDoneMsg:
		route, err := m.Auth.Register.Complete(msg.err)
		if err != nil {
			m.ErrorMessage = m.Auth.Register.Error
			return m, nil
		}
		m.Auth.Follow(route)
		m.StatusMessage = "Account created, please log in"
		m.inputs[fieldPassword].SetValue("")
		next := m.focusField(fieldEmail)
		return m, next

	case randomDoneMsg:
		if m.Dashboard.ApplyLoad(msg.seq, msg.recipes, msg.err) {
			m.ErrorMessage = m.Dashboard.Error
			m.StatusMessage = "Loaded " + strconv.Itoa(len(m.Dashboard.Recipes)) + " recipes"
		}
		next := m.syncList()
		return m, next

	case preloadDoneMsg:
		m.Search.ApplyPreload(msg.seq, msg.recipes, msg.err)
		next := m.syncList()
		return m, next

	case searchDoneMsg:
		if m.Search.ApplySearch(msg.req, msg.recipes, msg.err) {
			m.ErrorMessage = m.Search.Error
			m.StatusMessage = "Found " + strconv.Itoa(len(m.Search.Recipes)) + " recipes"
		}
		next := m.syncList()
		return m, next

	case favoriteSavedMsg:
		err := m.Search.ApplyFavorite(msg.recipe, msg.err)
		if m.Screen != views.RouteSearch || cancelled(err) {
			return m, nil
		}
		m.ErrorMessage = m.Search.Error
		m.StatusMessage = m.Search.Notice
		next := m.syncList()
		return m, next

	case favoritesPageMsg:
		if m.Favorites.ApplyLoad(msg.req, msg.recipes, msg.err) {
			m.ErrorMessage = m.Favorites.Error
			m.StatusMessage = "Loaded " + strconv.Itoa(len(m.Favorites.Items)) + " favorites"
		}
		next := m.syncList()
		return m, next

	case ratedMsg:
		if cancelled(msg.err) {
			return m, nil
		}
		card := msg.card
		if err := card.ApplyRating(msg.result, msg.err); err != nil {
			m.ErrorMessage = card.Error
			return m, nil
		}
		m.Favorites.PatchRecipe(card.Recipe)
		m.Dashboard.PatchRecipe(card.Recipe)
		m.StatusMessage = card.Notice
		next := m.syncList()
		return m, next

	case reviewedMsg:
		if cancelled(msg.err) {
			return m, nil
		}
		card := msg.card
		if err := card.ApplyReview(msg.err); err != nil {
			m.ErrorMessage = card.Error
			return m, nil
		}
		m.StatusMessage = card.Notice
		return m, nil

	case logoutDoneMsg:
		route, err := m.Dashboard.FinishLogout(msg.err)
		if err != nil {
			m.ErrorMessage = m.Dashboard.Error
			return m, nil
		}
		m.StatusMessage = "Logged out"
		next := m.goTo(route)
		return m, next
	}

	return m, nil
}

// handleKey routes key presses to text inputs first, then to navigation
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.Screen == views.RouteHome {
		return m.handleAuthKey(msg)
	}

	if m.reviewing {
		return m.handleReviewKey(msg)
	}

	if m.Screen == views.RouteSearch && m.query.Focused() {
		switch msg.Type {
		case tea.KeyEnter:
			next := m.startSearch()
			return m, next
		case tea.KeyEsc, tea.KeyTab, tea.KeyDown:
			m.query.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.query, cmd = m.query.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q":
		m.cancel()
		return m, tea.Quit
	case "d":
		next := m.goTo(views.RouteDashboard)
		return m, next
	case "s":
		next := m.goTo(views.RouteSearch)
		return m, next
	case "f":
		if m.env.Session.Authenticated() {
			next := m.goTo(views.RouteFavorites)
			return m, next
		}
		m.ErrorMessage = models.ErrNotAuthenticated.Error()
		return m, nil
	case "l":
		m.Auth.Mode = views.ModeLogin
		next := m.goTo(views.RouteHome)
		return m, next
	case "R":
		m.Auth.Mode = views.ModeRegister
		next := m.goTo(views.RouteHome)
		return m, next
	case "x":
		if m.env.Session.Authenticated() {
			m.StatusMessage = "Logging out..."
			return m, doLogout(m.ctx, m.env.API)
		}
		return m, nil
	}

	switch m.Screen {
	case views.RouteSearch:
		switch msg.String() {
		case "/":
			next := m.query.Focus()
			return m, next
		case "enter", "+":
			next := m.startFavorite()
			return m, next
		}
	case views.RouteDashboard:
		switch msg.String() {
		case "n":
			next := m.enter()
			return m, next
		case "r":
			next := m.startReview()
			return m, next
		case "1", "2", "3", "4", "5", "0", "6", "7", "8", "9":
			next := m.startRating(msg.String())
			return m, next
		}
	case views.RouteFavorites:
		switch msg.String() {
		case "u":
			if m.List.Selected != nil {
				_ = m.Favorites.Unfavorite(m.List.Selected.Recipe)
				m.StatusMessage = m.Favorites.Notice
			}
			return m, nil
		case "r":
			next := m.startReview()
			return m, next
		case "1", "2", "3", "4", "5", "0", "6", "7", "8", "9":
			next := m.startRating(msg.String())
			return m, next
		}
	}

	var cmd tea.Cmd
	m.List, cmd = m.List.Update(msg)
	next := tea.Batch(cmd, m.maybeLoadMore())
	return m, next
}

func (m Model) handleAuthKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	fields := m.authFields()

	switch msg.Type {
	case tea.KeyEsc:
		next := m.goTo(views.RouteDashboard)
		return m, next
	case tea.KeyCtrlR:
		m.Auth.Toggle()
		m.ErrorMessage = ""
		next := m.focusField(fieldEmail)
		return m, next
	case tea.KeyTab, tea.KeyDown:
		next := m.focusField(fields[(m.indexOf(fields)+1)%len(fields)])
		return m, next
	case tea.KeyShiftTab, tea.KeyUp:
		next := m.focusField(fields[(m.indexOf(fields)+len(fields)-1)%len(fields)])
		return m, next
	case tea.KeyEnter:
		if m.indexOf(fields) < len(fields)-1 {
			next := m.focusField(fields[m.indexOf(fields)+1])
			return m, next
		}
		next := m.submitAuth()
		return m, next
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) handleReviewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.reviewing = false
		m.review.Blur()
		m.review.SetValue("")
		return m, nil
	case tea.KeyEnter:
		if m.List.Selected == nil {
			m.reviewing = false
			return m, nil
		}
		card := *m.List.Selected
		text := strings.TrimSpace(m.review.Value())
		if err := card.BeginReview(text); err != nil {
			m.ErrorMessage = card.Error
			return m, nil
		}
		m.reviewing = false
		m.review.Blur()
		m.review.SetValue("")
		m.StatusMessage = "Submitting review..."
		return m, submitReview(m.ctx, m.env.API, card, text)
	}

	var cmd tea.Cmd
	m.review, cmd = m.review.Update(msg)
	return m, cmd
}

// authFields lists the inputs of the current auth form in tab order
func (m *Model) authFields() []int {
	if m.Auth.Mode == views.ModeRegister {
		return []int{fieldEmail, fieldUsername, fieldPassword}
	}
	return []int{fieldEmail, fieldPassword}
}

func (m *Model) indexOf(fields []int) int {
	for i, f := range fields {
		if f == m.focus {
			return i
		}
	}
	return 0
}

func (m *Model) focusField(field int) tea.Cmd {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.focus = field
	return m.inputs[field].Focus()
}

func (m *Model) submitAuth() tea.Cmd {
	m.ErrorMessage = ""
	if m.Auth.Mode == views.ModeRegister {
		form := m.Auth.Register
		form.Email = m.inputs[fieldEmail].Value()
		form.Username = m.inputs[fieldUsername].Value()
		form.Password = m.inputs[fieldPassword].Value()
		reg, err := form.Begin()
		if err != nil {
			m.ErrorMessage = form.Error
			return nil
		}
		m.StatusMessage = "Registering..."
		return doRegister(m.ctx, m.env.API, reg)
	}

	form := m.Auth.Login
	form.Email = m.inputs[fieldEmail].Value()
	form.Password = m.inputs[fieldPassword].Value()
	creds, err := form.Begin()
	if err != nil {
		if !errors.Is(err, views.ErrBusy) {
			m.ErrorMessage = form.Error
		}
		return nil
	}
	m.StatusMessage = "Logging in..."
	return doLogin(m.ctx, m.env.API, creds)
}

func (m *Model) startSearch() tea.Cmd {
	m.Search.Ingredient = m.query.Value()
	req, err := m.Search.BeginSearch()
	if err != nil {
		m.ErrorMessage = "Please enter an ingredient"
		return nil
	}
	m.ErrorMessage = ""
	m.query.Blur()
	m.StatusMessage = "Searching for " + req.Ingredient + "..."
	return fetchSearch(m.ctx, m.env.API, req)
}

func (m *Model) startFavorite() tea.Cmd {
	index := m.List.List.Index()
	if m.List.Selected == nil || index < 0 || index >= len(m.Search.Recipes) {
		return nil
	}
	recipe := m.Search.Recipes[index]
	if err := m.Search.BeginFavorite(recipe); err != nil {
		m.ErrorMessage = m.Search.Error
		m.StatusMessage = m.Search.Notice
		return nil
	}
	m.StatusMessage = "Saving " + recipe.Title + "..."
	return saveFavorite(m.ctx, m.env.API, recipe)
}

func (m *Model) startRating(key string) tea.Cmd {
	if m.List.Selected == nil {
		return nil
	}
	rating, _ := strconv.Atoi(key)
	card := *m.List.Selected
	if err := card.BeginRating(rating); err != nil {
		m.ErrorMessage = card.Error
		return nil
	}
	m.ErrorMessage = ""
	m.StatusMessage = "Rating " + card.Recipe.Title + "..."
	return submitRating(m.ctx, m.env.API, card, rating)
}

func (m *Model) startReview() tea.Cmd {
	if m.List.Selected == nil {
		return nil
	}
	m.reviewing = true
	return m.review.Focus()
}

// maybeLoadMore fetches the next favorites page once the cursor reaches
// the end of the list
func (m *Model) maybeLoadMore() tea.Cmd {
	if m.Screen != views.RouteFavorites || !m.List.AtBottom() {
		return nil
	}
	req, ok := m.Favorites.BeginLoad()
	if !ok {
		return nil
	}
	m.StatusMessage = "Loading more favorites..."
	return fetchFavoritesPage(m.ctx, m.env.API, req)
}

// goTo leaves the current screen, abandoning its requests, and enters route
func (m *Model) goTo(route views.Route) tea.Cmd {
	m.cancel()
	m.ctx, m.cancel = context.WithCancel(context.Background())
	m.Dashboard.Cancel()
	m.Search.Cancel()
	m.Favorites.Cancel()
	m.Screen = route
	m.reviewing = false
	m.ErrorMessage = ""
	m.List.List.Select(0)
	return m.enter()
}

// cancelled reports whether err only means the request was abandoned by
// leaving its screen
func cancelled(err error) bool {
	return errors.Is(err, context.Canceled)
}

// enter starts the fetches the current screen shows on arrival
func (m *Model) enter() tea.Cmd {
	m.logger.Debug("entering screen", zap.String("screen", string(m.Screen)))
	m.Dashboard.Refresh()

	switch m.Screen {
	case views.RouteHome:
		return m.focusField(fieldEmail)

	case views.RouteDashboard:
		m.List.SetTitle("Random recipes")
		seq := m.Dashboard.BeginLoad()
		m.StatusMessage = "Loading recipes..."
		return tea.Batch(m.syncList(), fetchRandom(m.ctx, m.env.API, seq))

	case views.RouteSearch:
		m.List.SetTitle("Search results")
		cmds := []tea.Cmd{m.syncList(), m.query.Focus()}
		if seq, ok := m.Search.BeginPreload(); ok {
			cmds = append(cmds, fetchPreload(m.ctx, m.env.API, seq))
		}
		return tea.Batch(cmds...)

	case views.RouteFavorites:
		m.List.SetTitle("Your favorite recipes")
		m.Favorites.Reset()
		cmds := []tea.Cmd{m.syncList()}
		if req, ok := m.Favorites.BeginLoad(); ok {
			m.StatusMessage = "Loading favorites..."
			cmds = append(cmds, fetchFavoritesPage(m.ctx, m.env.API, req))
		}
		return tea.Batch(cmds...)
	}
	return nil
}

// syncList refreshes the list from the current screen's view state
func (m *Model) syncList() tea.Cmd {
	switch m.Screen {
	case views.RouteDashboard:
		return m.List.SetCards(m.Dashboard.Cards())
	case views.RouteSearch:
		return m.List.SetCards(m.Search.Cards())
	case views.RouteFavorites:
		return m.List.SetCards(m.Favorites.Cards())
	}
	return nil
}

func (m *Model) resizeList() {
	height := m.Height - 8
	if height < 5 {
		height = 5
	}
	width := m.Width / 2
	if width < 30 {
		width = m.Width
	}
	m.List.SetSize(width, height)
}

func (m Model) loading() bool {
	switch m.Screen {
	case views.RouteHome:
		return m.Auth.Login.Loading || m.Auth.Register.Loading
	case views.RouteDashboard:
		return m.Dashboard.Loading
	case views.RouteSearch:
		return m.Search.Loading
	case views.RouteFavorites:
		return m.Favorites.Loading
	}
	return false
}

// View renders the UI
func (m Model) View() string {
	if !m.Ready {
		return "Initializing..."
	}

	var status string
	if m.loading() {
		status = m.Spinner.View() + " " + m.StatusMessage
	} else {
		status = m.StatusMessage
	}

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		titleStyle.Render("Recipe Finder"),
		renderNav(views.NavLinks(m.env.Session.Authenticated()), m.Screen),
	)

	var body string
	switch m.Screen {
	case views.RouteHome:
		body = m.authView()
	default:
		body = m.recipesView()
	}

	errorView := ""
	if m.ErrorMessage != "" {
		errorView = errorStyle.Render(m.ErrorMessage)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		mutedStyle.Render(status),
		body,
		errorView,
		mutedStyle.Render(m.help()),
	)
}

func (m Model) authView() string {
	var title, hint string
	if m.Auth.Mode == views.ModeRegister {
		title = "Register to continue"
		hint = "Already have an account? ctrl+r to login"
	} else {
		title = "Login to continue"
		hint = "Don't have an account? ctrl+r to register"
	}

	rows := []string{titleStyle.Render(title)}
	for _, field := range m.authFields() {
		rows = append(rows, "  "+m.inputs[field].View())
	}
	rows = append(rows, mutedStyle.Render(hint))
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m Model) recipesView() string {
	var top string
	empty := ""
	switch m.Screen {
	case views.RouteSearch:
		top = "  " + m.query.View()
		if !m.Search.Loading {
			empty = m.Search.EmptyMessage()
		}
	case views.RouteFavorites:
		if !m.Favorites.Loading {
			empty = m.Favorites.EmptyMessage()
		}
	}

	if m.reviewing {
		top = "  " + m.review.View()
	}

	var content string
	if empty != "" && len(m.List.Cards) == 0 {
		content = mutedStyle.Render(empty)
	} else {
		list := m.List.View()
		detail := ""
		if m.List.Selected != nil {
			detail = renderCard(*m.List.Selected, m.Width-m.List.List.Width()-2)
		}
		if m.Width/2 >= 30 {
			content = lipgloss.JoinHorizontal(lipgloss.Top, list, detail)
		} else {
			content = lipgloss.JoinVertical(lipgloss.Left, list, detail)
		}
	}

	if top == "" {
		return content
	}
	return lipgloss.JoinVertical(lipgloss.Left, top, content)
}

func (m Model) help() string {
	switch {
	case m.Screen == views.RouteHome:
		return "tab next field • enter submit • ctrl+r switch form • esc skip • ctrl+c quit"
	case m.reviewing:
		return "enter submit review • esc cancel"
	case m.Screen == views.RouteSearch && m.query.Focused():
		return "enter search • esc browse results"
	case m.Screen == views.RouteSearch:
		return "/ new search • enter favorite • d dashboard • f favorites • q quit"
	case m.Screen == views.RouteFavorites:
		return "1-5 rate • r review • u unfavorite • ↓ load more • d dashboard • s search • q quit"
	default:
		return "1-5 rate • r review • n more recipes • s search • f favorites • q quit"
	}
}

// Run starts the interactive client and blocks until the user quits.
// Session changes made by other processes are followed while it runs.
func Run(ctx context.Context, env views.Env, store *session.Store) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events, unsubscribe := store.Subscribe()
	defer unsubscribe()

	go func() {
		if err := store.Watch(ctx); err != nil && env.Logger != nil {
			env.Logger.Warn("session watch stopped", zap.Error(err))
		}
	}()

	p := tea.NewProgram(NewModel(env, events), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

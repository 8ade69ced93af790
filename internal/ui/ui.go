package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lttslabs/etlctl/internal/api"
	"github.com/lttslabs/etlctl/internal/router"
	"github.com/lttslabs/etlctl/internal/session"
)

// Services groups the API wrappers the TUI renders.
type Services struct {
	Auth        *api.AuthService
	DataSources *api.DataSourceService
	Variables   *api.VariableService
	Missions    *api.MissionService
	Files       *api.FileService
	RunLogs     *api.RunLogService
}

// pageSize is how many records the run-log and file pages fetch.
const pageSize = 50

// login form field indexes.
const (
	fieldUsername = iota
	fieldPassword
	fieldCode
	fieldCount
)

// Model is the console's view state. The current view always mirrors the
// router: every switch goes through Navigate so the guard runs.
type Model struct {
	ctx    context.Context
	sess   *session.Session
	nav    *router.Router
	svc    Services
	width  int
	height int

	route    router.Route
	pageList list.Model
	loading  bool
	notice   string

	inputs [fieldCount]textinput.Model
	focus  int

	help help.Model
	keys keyMap
}

// NewModel creates a TUI model over the session, router, and services.
func NewModel(ctx context.Context, sess *session.Session, nav *router.Router, svc Services) *Model {
	m := &Model{
		ctx:  ctx,
		sess: sess,
		nav:  nav,
		svc:  svc,
		help: help.New(),
		keys: newKeyMap(),
	}

	username := textinput.New()
	username.Placeholder = "username"
	username.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword

	code := textinput.New()
	code.Placeholder = "verification code (optional)"

	m.inputs[fieldUsername] = username
	m.inputs[fieldPassword] = password
	m.inputs[fieldCode] = code

	return m
}

// Init settles on the initial route and starts loading it.
func (m *Model) Init() tea.Cmd {
	route := m.nav.Navigate(router.RootPath)
	m.route = route
	return tea.Batch(textinput.Blink, m.loadCurrent())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.pageList.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		if m.onLogin() {
			return m.handleLoginKeys(msg)
		}
		return m.handlePageKeys(msg)

	case noticeMsg:
		m.notice = string(msg)
		// An expired session has already moved the router to login.
		return m, m.syncRoute()

	case loginResultMsg:
		if msg.err != nil {
			m.notice = msg.err.Error()
			return m, nil
		}
		m.notice = ""
		if msg.result.Message != "" {
			m.notice = msg.result.Message
		}
		m.route = m.nav.Navigate(router.RootPath)
		return m, m.loadCurrent()

	case pageLoadedMsg:
		m.loading = false
		if msg.err != nil {
			return m, m.syncRoute()
		}
		if msg.path != m.route.Path {
			// A stale load finishing after a page switch.
			return m, nil
		}
		m.pageList = list.New(msg.items, list.NewDefaultDelegate(), 0, 0)
		m.pageList.Title = msg.title
		m.pageList.SetSize(m.width-4, m.height-8)
		return m, nil

	case missionTriggeredMsg:
		if msg.err != nil {
			return m, m.syncRoute()
		}
		m.notice = fmt.Sprintf("started %s (record %s)", msg.name, msg.record)
		return m, nil
	}

	if !m.onLogin() {
		var cmd tea.Cmd
		m.pageList, cmd = m.pageList.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the current route.
func (m *Model) View() string {
	if m.onLogin() {
		return m.renderLogin()
	}
	if m.route.Name == "NotFound" {
		return styles.err.Render("Page not found") + "\n\n" + m.help.ShortHelpView(m.keys.ShortHelp())
	}
	return m.renderPage()
}

func (m *Model) onLogin() bool {
	return m.route.Path == router.LoginPath
}

// syncRoute re-reads the router's current route. Used after errors, since
// an auth expiry navigates to login from the request goroutine.
func (m *Model) syncRoute() tea.Cmd {
	route := m.nav.Resolve(m.nav.Current())
	if route.Path == m.route.Path {
		return nil
	}
	m.route = route
	if m.onLogin() {
		m.focus = fieldUsername
		return m.focusField(fieldUsername)
	}
	return m.loadCurrent()
}

func (m *Model) handleLoginKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "tab", "down":
		return m, m.focusField((m.focus + 1) % fieldCount)
	case "shift+tab", "up":
		return m, m.focusField((m.focus + fieldCount - 1) % fieldCount)
	case "enter":
		if m.focus < fieldCode {
			return m, m.focusField(m.focus + 1)
		}
		return m, m.submitLogin()
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) focusField(idx int) tea.Cmd {
	m.focus = idx
	for i := range m.inputs {
		if i == idx {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return textinput.Blink
}

func (m *Model) submitLogin() tea.Cmd {
	creds := session.Credentials{
		Username: m.inputs[fieldUsername].Value(),
		Password: m.inputs[fieldPassword].Value(),
		Code:     m.inputs[fieldCode].Value(),
	}
	m.notice = ""

	return func() tea.Msg {
		res, err := m.sess.Login(m.ctx, m.svc.Auth, creds)
		return loginResultMsg{result: res, err: err}
	}
}

func (m *Model) handlePageKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "r":
		return m, m.loadCurrent()
	case "L":
		m.sess.Logout()
		m.route = m.nav.Navigate(router.LoginPath)
		return m, m.focusField(fieldUsername)
	case "1":
		return m, m.switchTo(router.DataSourcePath)
	case "2":
		return m, m.switchTo(router.VariablesPath)
	case "3":
		return m, m.switchTo(router.MissionsPath)
	case "4":
		return m, m.switchTo(router.RunLogsPath)
	case "5":
		return m, m.switchTo(router.FilesPath)
	case "enter":
		if m.route.Path == router.MissionsPath {
			if item, ok := m.pageList.SelectedItem().(missionItem); ok {
				return m, m.runMission(item.mission)
			}
		}
	}

	var cmd tea.Cmd
	m.pageList, cmd = m.pageList.Update(msg)
	return m, cmd
}

func (m *Model) switchTo(path string) tea.Cmd {
	route := m.nav.Navigate(path)
	if route.Path == m.route.Path {
		return nil
	}
	m.route = route
	m.notice = ""
	if m.onLogin() {
		return m.focusField(fieldUsername)
	}
	return m.loadCurrent()
}

// loadCurrent fetches the data behind the current route.
func (m *Model) loadCurrent() tea.Cmd {
	path := m.route.Path
	m.loading = true

	switch path {
	case router.DataSourcePath:
		return func() tea.Msg {
			sources, err := m.svc.DataSources.List(m.ctx)
			items := make([]list.Item, len(sources))
			for i, s := range sources {
				items[i] = dataSourceItem{source: s}
			}
			return pageLoadedMsg{path: path, title: "Data Sources", items: items, err: err}
		}
	case router.VariablesPath:
		return func() tea.Msg {
			vars, err := m.svc.Variables.List(m.ctx)
			items := make([]list.Item, len(vars))
			for i, v := range vars {
				items[i] = variableItem{variable: v}
			}
			return pageLoadedMsg{path: path, title: "System Variables", items: items, err: err}
		}
	case router.MissionsPath:
		return func() tea.Msg {
			missions, err := m.svc.Missions.All(m.ctx)
			items := make([]list.Item, len(missions))
			for i, mission := range missions {
				items[i] = missionItem{mission: mission}
			}
			return pageLoadedMsg{path: path, title: "Missions", items: items, err: err}
		}
	case router.RunLogsPath:
		return func() tea.Msg {
			page, err := m.svc.RunLogs.Records(m.ctx, 1, pageSize, api.RecordFilter{Status: api.RecordStatusAny})
			var items []list.Item
			if page != nil {
				items = make([]list.Item, len(page.List))
				for i, r := range page.List {
					items[i] = recordItem{record: r}
				}
			}
			return pageLoadedMsg{path: path, title: "Run Records", items: items, err: err}
		}
	case router.FilesPath:
		return func() tea.Msg {
			page, err := m.svc.Files.List(m.ctx, 1, pageSize)
			var items []list.Item
			if page != nil {
				items = make([]list.Item, len(page.List))
				for i, f := range page.List {
					items[i] = fileItem{file: f}
				}
			}
			return pageLoadedMsg{path: path, title: "Files", items: items, err: err}
		}
	}
	return nil
}

func (m *Model) runMission(mission api.Mission) tea.Cmd {
	return func() tea.Msg {
		record, err := m.svc.Missions.RunOnce(m.ctx, mission.ID)
		return missionTriggeredMsg{name: mission.Name, record: record, err: err}
	}
}

func (m *Model) renderLogin() string {
	title := styles.title.Render("ETL Console Login")

	form := ""
	for i := range m.inputs {
		form += m.inputs[i].View() + "\n"
	}

	notice := ""
	if m.notice != "" {
		notice = "\n" + styles.err.Render(m.notice)
	}

	hint := styles.help.Render("tab: next field • enter: log in • ctrl+c: quit")
	return fmt.Sprintf("%s\n%s%s\n\n%s", title, form, notice, hint)
}

func (m *Model) renderPage() string {
	body := m.pageList.View()
	if m.loading {
		body = styles.warn.Render("Loading...")
	}

	notice := ""
	if m.notice != "" {
		notice = "\n" + styles.err.Render(m.notice)
	}

	helpView := m.help.ShortHelpView(m.keys.ShortHelp())
	return fmt.Sprintf("%s%s\n\n%s", body, notice, helpView)
}

// Package admin is the terminal client used to manage portfolio projects.
package admin

import (
	"context"
	"time"

	"portfolio-api/internal/models"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

// requestTimeout bounds every API call made from the UI.
const requestTimeout = 15 * time.Second

// API is the subset of the portfolio client the UI needs.
type API interface {
	Login(ctx context.Context, password string) error
	ListProjects(ctx context.Context) ([]models.Project, error)
	GetProject(ctx context.Context, id int64) (*models.Project, error)
	CreateProject(ctx context.Context, in models.CreateProjectRequest) (*models.Project, error)
	UpdateProject(ctx context.Context, id int64, patch models.UpdateProjectRequest) (*models.Project, error)
	DeleteProject(ctx context.Context, id int64) error
}

type screen int

const (
	screenLogin screen = iota
	screenMain
)

// focus cycles search -> list -> form fields.
type focus int

const (
	focusSearch focus = iota
	focusList
	focusForm // focusForm + formField
)

const numFocus = int(focusForm) + int(numFields)

// Messages produced by commands.
type (
	loginMsg struct{ err error }

	projectsLoadedMsg struct {
		projects []models.Project
		err      error
	}

	projectLoadedMsg struct {
		project *models.Project
		err     error
	}

	savedMsg struct {
		op      string
		project *models.Project
		err     error
	}

	deletedMsg struct {
		id  int64
		err error
	}

	copiedMsg struct {
		text string
		err  error
	}
)

// App is the root Bubble Tea model.
type App struct {
	api    API
	copyFn func(string) error

	screen   screen
	password string
	loginErr string

	all      []models.Project
	visible  []models.Project
	search   string
	cursor   int
	selected *models.Project
	form     form
	focus    focus

	busy          bool
	confirmDelete bool
	modal         string
	status        string

	width  int
	height int
}

// NewApp creates the admin UI over api.
func NewApp(api API) App {
	return App{
		api:    api,
		copyFn: clipboard.WriteAll,
		screen: screenLogin,
	}
}

func (a App) Init() tea.Cmd {
	return nil
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case loginMsg:
		a.busy = false
		if msg.err != nil {
			a.loginErr = errorText(msg.err)
			a.password = ""
			return a, nil
		}
		a.screen = screenMain
		a.loginErr = ""
		a.password = ""
		a.focus = focusList
		return a.startRefresh()

	case projectsLoadedMsg:
		a.busy = false
		if msg.err != nil {
			a.modal = "Could not load projects: " + errorText(msg.err)
			return a, nil
		}
		a.all = msg.projects
		a.applyFilter()
		return a, nil

	case projectLoadedMsg:
		a.busy = false
		if msg.err != nil {
			a.modal = "Could not load project: " + errorText(msg.err)
			return a, nil
		}
		a.selected = msg.project
		a.form = formFromProject(msg.project)
		return a, nil

	case savedMsg:
		a.busy = false
		if msg.err != nil {
			a.modal = "Could not " + msg.op + " project: " + errorText(msg.err)
			return a, nil
		}
		a.status = "Project " + msg.op + "d"
		a.clearForm()
		return a.startRefresh()

	case deletedMsg:
		a.busy = false
		if msg.err != nil {
			a.modal = "Could not delete project: " + errorText(msg.err)
			return a, nil
		}
		a.status = "Project deleted"
		a.clearForm()
		return a.startRefresh()

	case copiedMsg:
		if msg.err != nil {
			a.modal = "Could not copy to clipboard: " + msg.err.Error()
			return a, nil
		}
		a.status = "Copied " + msg.text
		return a, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}
		if a.screen == screenLogin {
			return a.updateLogin(msg)
		}
		return a.updateMain(msg)
	}
	return a, nil
}

func (a App) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.busy {
		return a, nil
	}
	switch msg.Type {
	case tea.KeyEnter:
		a.busy = true
		a.loginErr = ""
		return a, a.loginCmd(a.password)
	case tea.KeyEsc:
		return a, tea.Quit
	default:
		a.password = editText(a.password, msg)
	}
	return a, nil
}

func (a App) updateMain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The error notification captures all keys until dismissed.
	if a.modal != "" {
		switch msg.Type {
		case tea.KeyEnter, tea.KeyEsc:
			a.modal = ""
		}
		return a, nil
	}

	if a.confirmDelete {
		switch msg.String() {
		case "y", "Y":
			a.confirmDelete = false
			if a.selected == nil || a.busy {
				return a, nil
			}
			a.busy = true
			return a, a.deleteCmd(a.selected.ID)
		case "n", "N", "esc":
			a.confirmDelete = false
		}
		return a, nil
	}

	switch msg.String() {
	case "tab":
		a.focus = focus((int(a.focus) + 1) % numFocus)
		return a, nil
	case "shift+tab":
		a.focus = focus((int(a.focus) + numFocus - 1) % numFocus)
		return a, nil
	case "ctrl+r":
		a.status = ""
		return a.startRefresh()
	case "ctrl+n":
		if a.busy {
			return a, nil
		}
		a.status = ""
		a.busy = true
		return a, a.createCmd(a.form.createRequest())
	case "ctrl+s":
		if a.busy {
			return a, nil
		}
		if a.selected == nil {
			a.modal = "Select a project to update"
			return a, nil
		}
		a.status = ""
		a.busy = true
		return a, a.updateCmd(a.selected.ID, a.form.updateRequest())
	case "ctrl+d":
		if a.busy {
			return a, nil
		}
		if a.selected == nil {
			a.modal = "Select a project to delete"
			return a, nil
		}
		a.confirmDelete = true
		return a, nil
	case "ctrl+y":
		return a.copyGithubURL()
	case "esc":
		a.clearForm()
		return a, nil
	}

	switch {
	case a.focus == focusSearch:
		before := a.search
		a.search = editText(a.search, msg)
		if a.search != before {
			a.applyFilter()
			return a.startRefresh()
		}
	case a.focus == focusList:
		return a.updateList(msg)
	default:
		field := formField(a.focus - focusForm)
		a.form[field] = editText(a.form[field], msg)
	}
	return a, nil
}

func (a App) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(a.visible)-1 {
			a.cursor++
		}
	case "enter":
		if a.busy || len(a.visible) == 0 {
			return a, nil
		}
		a.busy = true
		return a, a.getCmd(a.visible[a.cursor].ID)
	}
	return a, nil
}

func (a App) copyGithubURL() (tea.Model, tea.Cmd) {
	if a.selected == nil || a.selected.GithubURL == nil {
		a.modal = "The selected project has no GitHub URL"
		return a, nil
	}
	text := *a.selected.GithubURL
	copyFn := a.copyFn
	return a, func() tea.Msg {
		return copiedMsg{text: text, err: copyFn(text)}
	}
}

// startRefresh reloads the list unless a call is already in flight.
func (a App) startRefresh() (App, tea.Cmd) {
	if a.busy {
		return a, nil
	}
	a.busy = true
	return a, a.listCmd()
}

func (a *App) applyFilter() {
	a.visible = filterProjects(a.all, a.search)
	if a.cursor >= len(a.visible) {
		a.cursor = len(a.visible) - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

func (a *App) clearForm() {
	a.form = form{}
	a.selected = nil
}

package admin

import (
	"context"

	"portfolio-api/internal/models"
	"portfolio-api/pkg/client"

	tea "github.com/charmbracelet/bubbletea"
)

func (a App) loginCmd(password string) tea.Cmd {
	api := a.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return loginMsg{err: api.Login(ctx, password)}
	}
}

func (a App) listCmd() tea.Cmd {
	api := a.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		projects, err := api.ListProjects(ctx)
		return projectsLoadedMsg{projects: projects, err: err}
	}
}

func (a App) getCmd(id int64) tea.Cmd {
	api := a.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		p, err := api.GetProject(ctx, id)
		return projectLoadedMsg{project: p, err: err}
	}
}

func (a App) createCmd(in models.CreateProjectRequest) tea.Cmd {
	api := a.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		p, err := api.CreateProject(ctx, in)
		return savedMsg{op: "create", project: p, err: err}
	}
}

func (a App) updateCmd(id int64, patch models.UpdateProjectRequest) tea.Cmd {
	api := a.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		p, err := api.UpdateProject(ctx, id, patch)
		return savedMsg{op: "update", project: p, err: err}
	}
}

func (a App) deleteCmd(id int64) tea.Cmd {
	api := a.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return deletedMsg{id: id, err: api.DeleteProject(ctx, id)}
	}
}

// errorText prefers the server's message over the wrapped client error.
func errorText(err error) string {
	return client.Message(err)
}

package admin

import (
	"strings"
	"unicode/utf8"

	"portfolio-api/internal/models"

	tea "github.com/charmbracelet/bubbletea"
)

// maxInputLen is the maximum number of runes allowed in any input.
const maxInputLen = 2000

type formField int

const (
	fieldTitle formField = iota
	fieldDescription
	fieldImageURL
	fieldVideoURL
	fieldGithubURL
	numFields
)

var fieldNames = [numFields]string{
	"Title",
	"Description",
	"Image URL",
	"Video URL",
	"GitHub URL",
}

// form holds the five project inputs as plain text.
type form [numFields]string

func formFromProject(p *models.Project) form {
	var f form
	f[fieldTitle] = p.Title
	f[fieldDescription] = p.Description
	f[fieldImageURL] = p.ImageURL
	if p.VideoURL != nil {
		f[fieldVideoURL] = *p.VideoURL
	}
	if p.GithubURL != nil {
		f[fieldGithubURL] = *p.GithubURL
	}
	return f
}

// createRequest sends all five fields. Blank optional links are stored as NULL
// by the server.
func (f form) createRequest() models.CreateProjectRequest {
	video, github := f[fieldVideoURL], f[fieldGithubURL]
	return models.CreateProjectRequest{
		Title:       f[fieldTitle],
		Description: f[fieldDescription],
		ImageURL:    f[fieldImageURL],
		VideoURL:    &video,
		GithubURL:   &github,
	}
}

// updateRequest also sends every field, so emptying a link clears it.
func (f form) updateRequest() models.UpdateProjectRequest {
	title, desc, image := f[fieldTitle], f[fieldDescription], f[fieldImageURL]
	return models.UpdateProjectRequest{
		Title:       &title,
		Description: &desc,
		ImageURL:    &image,
		VideoURL:    models.Some(f[fieldVideoURL]),
		GithubURL:   models.Some(f[fieldGithubURL]),
	}
}

// editText applies a keystroke to an input. Non-editing keys leave it as is.
func editText(text string, msg tea.KeyMsg) string {
	switch msg.Type {
	case tea.KeyBackspace:
		if text == "" {
			return text
		}
		_, size := utf8.DecodeLastRuneInString(text)
		return text[:len(text)-size]
	case tea.KeySpace:
		return appendClamped(text, " ")
	case tea.KeyRunes:
		return appendClamped(text, string(msg.Runes))
	}
	return text
}

func appendClamped(text, add string) string {
	room := maxInputLen - utf8.RuneCountInString(text)
	if room <= 0 {
		return text
	}
	if utf8.RuneCountInString(add) > room {
		add = string([]rune(add)[:room])
	}
	return text + add
}

// filterProjects keeps projects whose title contains query, ignoring case.
func filterProjects(projects []models.Project, query string) []models.Project {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return projects
	}
	out := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		if strings.Contains(strings.ToLower(p.Title), query) {
			out = append(out, p)
		}
	}
	return out
}

// truncStr truncates a string to maxLen runes, appending an ellipsis if needed.
func truncStr(s string, maxLen int) string {
	if maxLen <= 1 || utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen-1]) + "…"
}

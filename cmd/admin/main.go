package main

import (
	"fmt"
	"os"

	"portfolio-api/internal/admin"
	"portfolio-api/pkg/client"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	baseURL := os.Getenv("PORTFOLIO_API_URL")
	if baseURL == "" {
		baseURL = client.DefaultBaseURL
	}

	p := tea.NewProgram(admin.NewApp(client.New(baseURL)), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "admin: %v\n", err)
		os.Exit(1)
	}
}

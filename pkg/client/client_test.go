package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"portfolio-api/internal"
	"portfolio-api/internal/config"
	"portfolio-api/internal/logging"
	"portfolio-api/internal/models"
	"portfolio-api/internal/testutil"
)

func TestLoginStoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			var req map[string]string
			json.NewDecoder(r.Body).Decode(&req) //nolint:errcheck
			if req["password"] != "admin123" {
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"error": "Invalid password"}) //nolint:errcheck
				return
			}
			json.NewEncoder(w).Encode(map[string]string{"access_token": "tok"}) //nolint:errcheck
		case "/api/projects":
			if r.Header.Get("Authorization") != "Bearer tok" {
				t.Errorf("Authorization = %q, want bearer token", r.Header.Get("Authorization"))
			}
			json.NewEncoder(w).Encode([]models.Project{}) //nolint:errcheck
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := New(srv.URL + "/api/")
	err := c.Login(context.Background(), "wrong")
	if !IsStatus(err, http.StatusUnauthorized) {
		t.Fatalf("Login(wrong) error = %v, want HTTP 401", err)
	}
	if got := Message(err); got != "Invalid password" {
		t.Errorf("Message = %q, want %q", got, "Invalid password")
	}
	if c.Token() != "" {
		t.Error("failed login must not store a token")
	}

	if err := c.Login(context.Background(), "admin123"); err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	if c.Token() != "tok" {
		t.Errorf("Token = %q, want %q", c.Token(), "tok")
	}
	if _, err := c.ListProjects(context.Background()); err != nil {
		t.Fatalf("ListProjects() error: %v", err)
	}
}

func TestValidationErrorsAreJoined(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string][]string{ //nolint:errcheck
			"errors": {"Title is required", "Image URL is required"},
		})
	}))
	defer srv.Close()

	_, err := New(srv.URL).CreateProject(context.Background(), models.CreateProjectRequest{})
	if err == nil {
		t.Fatal("expected error")
	}
	if got := err.Error(); !strings.Contains(got, "HTTP 400") {
		t.Errorf("error = %q, want it to contain 'HTTP 400'", got)
	}
	if got := Message(err); got != "Title is required; Image URL is required" {
		t.Errorf("Message = %q", got)
	}
}

func TestPlainTextErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "db: unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := New(srv.URL).ListProjects(context.Background())
	if !IsStatus(err, http.StatusServiceUnavailable) {
		t.Fatalf("error = %v, want HTTP 503", err)
	}
	if got := Message(err); got != "db: unavailable" {
		t.Errorf("Message = %q", got)
	}
}

func TestNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url).ListProjects(context.Background())
	if err == nil {
		t.Fatal("expected error from closed server")
	}
	if IsStatus(err, http.StatusNotFound) {
		t.Error("a transport error is not an HTTPError")
	}
}

// TestAgainstServer drives the real router over HTTP.
func TestAgainstServer(t *testing.T) {
	cfg := &config.Config{
		AdminPassword: "admin123",
		JWTSecret:     "client-test-secret-that-is-long-enough",
		JWTIssuer:     "portfolio-api",
		JWTAudience:   "portfolio-api",
		JWTExpiry:     time.Hour,
		ProtectWrites: true,
		CORSOrigins:   []string{"*"},
	}
	s, err := internal.NewServer(cfg, testutil.NewMemoryStore(), logging.Discard())
	if err != nil {
		t.Fatalf("NewServer() error: %v", err)
	}
	srv := httptest.NewServer(s.Router)
	defer srv.Close()

	ctx := context.Background()
	c := New(srv.URL + "/api")

	video := "https://youtu.be/demo"
	_, err = c.CreateProject(ctx, models.CreateProjectRequest{Title: "t", Description: "d", ImageURL: "i"})
	if !IsStatus(err, http.StatusUnauthorized) {
		t.Fatalf("CreateProject before login: %v, want HTTP 401", err)
	}

	if err := c.Login(ctx, "admin123"); err != nil {
		t.Fatalf("Login() error: %v", err)
	}

	created, err := c.CreateProject(ctx, models.CreateProjectRequest{
		Title: "CLI", Description: "A tool", ImageURL: "https://img/1.png", VideoURL: &video,
	})
	if err != nil {
		t.Fatalf("CreateProject() error: %v", err)
	}
	if created.ID != 1 || created.VideoURL == nil || *created.VideoURL != video {
		t.Errorf("created = %+v", created)
	}

	title := "CLI v2"
	updated, err := c.UpdateProject(ctx, created.ID, models.UpdateProjectRequest{Title: &title, VideoURL: models.Null()})
	if err != nil {
		t.Fatalf("UpdateProject() error: %v", err)
	}
	if updated.Title != title || updated.VideoURL != nil {
		t.Errorf("updated = %+v", updated)
	}

	got, err := c.GetProject(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetProject() error: %v", err)
	}
	if got.Title != title {
		t.Errorf("Title = %q, want %q", got.Title, title)
	}

	if err := c.DeleteProject(ctx, created.ID); err != nil {
		t.Fatalf("DeleteProject() error: %v", err)
	}
	_, err = c.GetProject(ctx, created.ID)
	if !IsStatus(err, http.StatusNotFound) {
		t.Errorf("GetProject after delete: %v, want HTTP 404", err)
	}

	projects, err := c.ListProjects(ctx)
	if err != nil {
		t.Fatalf("ListProjects() error: %v", err)
	}
	if len(projects) != 0 {
		t.Errorf("got %d projects, want 0", len(projects))
	}
}

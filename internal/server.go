package internal

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"net/http"
	"time"

	"portfolio-api/db"
	"portfolio-api/internal/auth"
	"portfolio-api/internal/config"
	"portfolio-api/internal/handlers"
	"portfolio-api/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/sirupsen/logrus"
)

//go:embed openapi
var openapiFS embed.FS

// Server is the application context: every dependency a handler needs is
// built once at startup and reached through it.
type Server struct {
	Config     *config.Config
	Log        *logrus.Logger
	Store      store.ProjectStore
	DB         *sql.DB
	Pool       *pgxpool.Pool
	Router     *chi.Mux
	JWTManager *auth.JWTManager
	Auth       *auth.Authenticator
	Metrics    *Metrics
}

// Open connects to PostgreSQL, applies migrations when enabled and builds the
// server around a PostgresStore.
func Open(ctx context.Context, cfg *config.Config, log *logrus.Logger) (*Server, error) {
	conn, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("database ping: %w", err)
	}

	if cfg.AutoMigrate {
		applied, err := db.Migrate(ctx, conn)
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		for _, name := range applied {
			log.WithField("migration", name).Info("Applied migration")
		}
	}

	// The importer works on pgx directly for its batch transaction.
	pool, err := pgxpool.New(ctx, cfg.DatabaseDSN)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("create pgxpool: %w", err)
	}

	s, err := newServer(cfg, store.NewPostgresStore(conn), pool, log)
	if err != nil {
		pool.Close()
		conn.Close()
		return nil, err
	}
	s.DB = conn
	return s, nil
}

// NewServer builds a server over an existing store with no pgx pool, so the
// Excel import route is not mounted. The router is ready when it returns.
func NewServer(cfg *config.Config, projects store.ProjectStore, log *logrus.Logger) (*Server, error) {
	return newServer(cfg, projects, nil, log)
}

func newServer(cfg *config.Config, projects store.ProjectStore, pool *pgxpool.Pool, log *logrus.Logger) (*Server, error) {
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience, cfg.JWTExpiry)
	if err := jwtManager.ValidateConfig(); err != nil {
		return nil, fmt.Errorf("JWT configuration validation failed: %w", err)
	}
	if cfg.AdminPassword == "" && cfg.AdminPasswordHash == "" {
		return nil, errors.New("an admin password or password hash must be configured")
	}

	s := &Server{
		Config:     cfg,
		Log:        log,
		Store:      projects,
		Pool:       pool,
		JWTManager: jwtManager,
		Auth:       auth.NewAuthenticator(cfg.AdminPassword, cfg.AdminPasswordHash, jwtManager),
		Metrics:    NewMetrics(),
	}
	s.routes()
	return s, nil
}

// Close properly shuts down the server and cleans up resources
func (s *Server) Close(ctx context.Context) error {
	if s.Pool != nil {
		s.Pool.Close()
	}
	if s.DB != nil {
		return s.DB.Close()
	}
	return nil
}

func (s *Server) routes() {
	r := chi.NewRouter()

	// Middleware must be registered before any route on a chi mux.
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(s.Log))
	r.Use(middleware.Recoverer)
	r.Use(CORS(s.Config.CORSOrigins))
	if s.Config.EnableMetrics {
		r.Use(s.Metrics.Middleware())
		r.Get("/metrics", s.Metrics.Handler().ServeHTTP)
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		if _, err := w.Write([]byte("ok")); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
	r.Get("/dbping", s.dbPing)
	s.mountDocs(r)

	r.Route("/api", func(r chi.Router) {
		r.With(RequireJSON).Post("/auth/login", s.login)

		r.Get("/projects", s.listProjects)
		r.Get("/projects/{id}", s.getProject)

		r.Group(func(r chi.Router) {
			if s.Config.ProtectWrites {
				r.Use(auth.AuthMiddleware(s.Auth))
				r.Use(auth.RequireAdmin)
			}
			r.With(RequireJSON).Post("/projects", s.createProject)
			r.With(RequireJSON).Put("/projects/{id}", s.updateProject)
			r.Delete("/projects/{id}", s.deleteProject)

			if s.Pool != nil {
				imports := handlers.NewImportsHandler(s.Pool, s.Log)
				r.Post("/imports/excel", imports.UploadExcel)
			}
		})
	})

	s.Router = r
}

func (s *Server) dbPing(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := s.Store.Ping(ctx); err != nil {
		s.requestLog(r).WithError(err).Error("database ping failed")
		http.Error(w, "db: unavailable", http.StatusServiceUnavailable)
		return
	}
	if _, err := w.Write([]byte("db: ok")); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// mountDocs serves the OpenAPI document and Swagger UI
func (s *Server) mountDocs(r chi.Router) {
	if !s.Config.EnableSwagger {
		return
	}

	r.Get("/openapi.yaml", func(w http.ResponseWriter, _ *http.Request) {
		data, err := openapiFS.ReadFile("openapi/openapi.yaml")
		if err != nil {
			http.Error(w, "Failed to read OpenAPI document", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/x-yaml")
		if _, err := w.Write(data); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})

	r.Get("/docs", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(swaggerPage)) //nolint:errcheck
	})
}

const swaggerPage = `<!doctype html>
<html lang="en">
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <title>Portfolio API - Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.9.0/swagger-ui.css">
</head>
<body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5.9.0/swagger-ui-bundle.js"></script>
    <script>
        window.onload = function() {
            window.ui = SwaggerUIBundle({
                url: '/openapi.yaml',
                dom_id: '#swagger-ui',
                deepLinking: true,
                tryItOutEnabled: true
            });
        };
    </script>
</body>
</html>`

package server

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"charitydash/internal/store"
	"charitydash/internal/upload"
	"charitydash/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/go-chi/httprate"
	"github.com/go-playground/form/v4"
	"github.com/sirupsen/logrus"
)

//go:embed templates static
var uiFS embed.FS
var decoder = form.NewDecoder()

// CredentialVerifier checks a login attempt against the stored credential.
type CredentialVerifier interface {
	Verify(ctx context.Context, username, password string) bool
}

type Service struct {
	logger       *logrus.Logger
	config       *types.Config
	eventsRepo   *store.EventRepository
	partnersRepo *store.PartnerRepository
	statsService *store.StatsService
	templates    *template.Template

	verifier CredentialVerifier
	sessions *SessionManager
	uploads  *upload.Handler

	handler http.Handler
	server  *http.Server
}

func New(
	config *types.Config,
	logger *logrus.Logger,
	sessions *SessionManager,
	verifier CredentialVerifier,
	eventsRepo *store.EventRepository,
	partnersRepo *store.PartnerRepository,
	statsService *store.StatsService,
	uploads *upload.Handler,
) (*Service, error) {
	mux := flow.New()

	s := &Service{
		logger:   logger,
		config:   config,
		sessions: sessions,
		verifier: verifier,
		uploads:  uploads,

		eventsRepo:   eventsRepo,
		partnersRepo: partnersRepo,
		statsService: statsService,

		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", config.ServerPort),
			ReadTimeout:       time.Duration(config.ReadTimeoutSec) * time.Second,
			ReadHeaderTimeout: time.Duration(config.ReadTimeoutSec) * time.Second,
			WriteTimeout:      time.Duration(config.WriteTimeoutSec) * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
	}

	templates, err := loadTemplates()
	if err != nil {
		return nil, err
	}
	s.templates = templates

	if err := s.buildRouter(mux); err != nil {
		return nil, err
	}

	// flow only runs r.Use middleware for matched routes, so these wrap the
	// whole mux to cover redirects and the 404 page as well.
	s.handler = s.LoggingMiddleware(s.StripTrailingSlash(s.LoadSession(mux)))
	s.server.Handler = s.handler

	return s, nil
}

func (s *Service) Start() error {
	return s.server.ListenAndServe()
}

func (s *Service) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Handler exposes the routed mux, mainly for httptest.
func (s *Service) Handler() http.Handler {
	return s.handler
}

func (s *Service) buildRouter(r *flow.Mux) error {
	r.NotFound = http.HandlerFunc(s.handleNotFound)

	r.HandleFunc("/", s.handleHome, http.MethodGet)
	r.HandleFunc("/event/:id", s.handleEventDetail, http.MethodGet)

	r.HandleFunc("/login", s.handleGetLogin, http.MethodGet)
	r.Group(func(r *flow.Mux) {
		if s.config.LoginRateLimit > 0 {
			r.Use(httprate.LimitByIP(s.config.LoginRateLimit, time.Minute))
		}
		r.HandleFunc("/login", s.handlePostLogin, http.MethodPost)
	})
	r.HandleFunc("/login/logout", s.handleLogout, http.MethodGet, http.MethodPost)

	r.HandleFunc("/api/public/events", s.handleAPIEvents, http.MethodGet)
	r.HandleFunc("/api/public/partners", s.handleAPIPartners, http.MethodGet)
	r.HandleFunc("/api/public/event/:id", s.handleAPIEvent, http.MethodGet)

	r.Group(func(r *flow.Mux) {
		r.Use(s.RequireAuth)

		r.HandleFunc("/dashboard", s.handleGetDashboard, http.MethodGet)
		r.HandleFunc("/dashboard/add-event", s.handleGetAddEvent, http.MethodGet)
		r.HandleFunc("/dashboard/add-event", s.handlePostAddEvent, http.MethodPost)
		r.HandleFunc("/dashboard/add-partner", s.handleGetAddPartner, http.MethodGet)
		r.HandleFunc("/dashboard/add-partner", s.handlePostAddPartner, http.MethodPost)
		r.HandleFunc("/dashboard/event/:id", s.handleDashboardEventDetail, http.MethodGet)
		r.HandleFunc("/dashboard/event/:id/delete", s.handlePostDeleteEvent, http.MethodPost)
		r.HandleFunc("/dashboard/partner/:id/delete", s.handlePostDeletePartner, http.MethodPost)

		r.HandleFunc("/dashboard/api/event/:id", s.handleAPIEvent, http.MethodGet)
		r.HandleFunc("/dashboard/api/stats", s.handleAPIStats, http.MethodGet)
		r.HandleFunc("/dashboard/api/events", s.handleAPIEvents, http.MethodGet)
		r.HandleFunc("/dashboard/api/partners", s.handleAPIPartners, http.MethodGet)
	})

	if s.config.UploadBackend == types.UploadBackendLocal {
		prefix := strings.TrimSuffix(s.config.UploadURLPrefix, "/")
		uploads := http.StripPrefix(prefix+"/", http.FileServer(noDirListing{http.Dir(s.config.UploadDir)}))
		r.Handle(prefix+"/...", uploads, http.MethodGet)
	}

	staticRoot, err := fs.Sub(uiFS, "static")
	if err != nil {
		return fmt.Errorf("failed to mount static assets: %w", err)
	}
	r.Handle("/static/...", http.StripPrefix("/static/", http.FileServer(http.FS(staticRoot))), http.MethodGet)

	return nil
}

// noDirListing hides directory indexes of the uploads directory.
type noDirListing struct {
	fs http.FileSystem
}

func (n noDirListing) Open(name string) (http.File, error) {
	f, err := n.fs.Open(name)
	if err != nil {
		return nil, err
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}

	if stat.IsDir() {
		f.Close()
		return nil, fs.ErrNotExist
	}

	return f, nil
}

func loadTemplates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"date": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("2006-01-02 15:04")
		},
		"money": func(v types.FlexFloat) string {
			return fmt.Sprintf("%.2f", float64(v))
		},
		"index0": func(images []types.EventImage) *types.EventImage {
			if len(images) == 0 {
				return nil
			}
			return &images[0]
		},
		"marker": markerText,
	}

	t := template.New("").Funcs(funcMap)
	err := fs.WalkDir(uiFS, "templates", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".html") {
			return nil
		}

		data, err := fs.ReadFile(uiFS, path)
		if err != nil {
			return fmt.Errorf("read template %s: %w", path, err)
		}

		if _, err := t.Parse(string(data)); err != nil {
			return fmt.Errorf("parse template %s: %w", path, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return t, nil
}

var markerMessages = map[string]string{
	"event_added":         "Event added.",
	"partner_added":       "Partner added.",
	"event_deleted":       "Event deleted.",
	"partner_deleted":     "Partner deleted.",
	"logged_out":          "You have been logged out.",
	"unauthorized":        "Please log in to continue.",
	"missing_fields":      "Enter a username and password.",
	"invalid_credentials": "Invalid username or password.",
	"invalid_file_type":   "Only image files can be uploaded.",
	"file_too_large":      "Each image must be 5 MB or smaller.",
	"too_many_files":      "Upload at most 10 images.",
	"upload_failed":       "The images could not be saved. Please try again.",
	"save_failed":         "The record could not be saved. Please try again.",
	"delete_failed":       "The record could not be deleted. Please try again.",
	"event_not_found":     "That event no longer exists.",
	"partner_not_found":   "That partner no longer exists.",
	"server_error":        "Something went wrong. Please try again.",
}

// markerText turns a redirect marker into a sentence. Validation messages
// arrive as free text and pass through unchanged.
func markerText(marker string) string {
	if msg, ok := markerMessages[marker]; ok {
		return msg
	}
	return marker
}

// Package httpapi exposes the JSON API: public reading endpoints plus the
// cookie-gated admin surface the CLI publishes against.
package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-press/internal/auth"
	"github.com/goliatone/go-press/internal/documents"
	"github.com/goliatone/go-press/internal/folders"
	"github.com/goliatone/go-press/internal/logging"
	"github.com/goliatone/go-press/internal/notes"
	"github.com/goliatone/go-press/internal/settings"
	"github.com/goliatone/go-press/internal/timeline"
)

// API registers the public and admin endpoints.
type API struct {
	basePath          string
	gate              *auth.Gate
	adminPasswordHash string
	documents         *documents.Service
	folders           *folders.Service
	notes             *notes.Service
	settings          *settings.Service
	timeline          *timeline.Service
	logger            logging.Logger
}

// Option mutates the API configuration.
type Option func(*API)

// WithBasePath overrides the base API path (defaults to "/api").
func WithBasePath(path string) Option {
	return func(api *API) {
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			api.basePath = trimmed
		}
	}
}

// WithGate wires the admin session gate.
func WithGate(gate *auth.Gate) Option {
	return func(api *API) {
		api.gate = gate
	}
}

// WithAdminPasswordHash sets the digest the login endpoint compares against.
func WithAdminPasswordHash(hash string) Option {
	return func(api *API) {
		api.adminPasswordHash = hash
	}
}

// WithDocumentService wires the document service.
func WithDocumentService(service *documents.Service) Option {
	return func(api *API) {
		api.documents = service
	}
}

// WithFolderService wires the folder service.
func WithFolderService(service *folders.Service) Option {
	return func(api *API) {
		api.folders = service
	}
}

// WithNoteService wires the quick note service.
func WithNoteService(service *notes.Service) Option {
	return func(api *API) {
		api.notes = service
	}
}

// WithSettingsService wires the settings service.
func WithSettingsService(service *settings.Service) Option {
	return func(api *API) {
		api.settings = service
	}
}

// WithTimelineService wires the timeline service.
func WithTimelineService(service *timeline.Service) Option {
	return func(api *API) {
		api.timeline = service
	}
}

// WithLogger attaches a logger (defaults to no-op).
func WithLogger(logger logging.Logger) Option {
	return func(api *API) {
		if logger != nil {
			api.logger = logger
		}
	}
}

// New constructs an API instance.
func New(opts ...Option) *API {
	api := &API{
		basePath: "/api",
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	return api
}

// Register attaches every endpoint to the provided mux.
func (api *API) Register(mux *http.ServeMux) error {
	if mux == nil {
		return fmt.Errorf("httpapi: mux is required")
	}
	if api.gate == nil {
		return fmt.Errorf("httpapi: auth gate is required")
	}

	base := strings.TrimRight(api.basePath, "/")

	api.registerPublicRoutes(mux, base)
	api.registerAdminRoutes(mux, base+"/admin")

	return nil
}

func (api *API) registerPublicRoutes(mux *http.ServeMux, base string) {
	mux.HandleFunc("GET "+base+"/documents/{slug}", api.handleDocumentGet)
	mux.HandleFunc("POST "+base+"/documents/{slug}", api.handleDocumentUnlock)
	mux.HandleFunc("GET "+base+"/timeline", api.handleTimeline)
	mux.HandleFunc("GET "+base+"/mixed-timeline", api.handleMixedTimeline)
	mux.HandleFunc("GET "+base+"/folders", api.handleFolderTree)
}

func (api *API) registerAdminRoutes(mux *http.ServeMux, root string) {
	mux.HandleFunc("POST "+root+"/login", api.handleLogin)
	mux.HandleFunc("POST "+root+"/logout", api.handleLogout)

	mux.HandleFunc("GET "+root+"/documents", api.requireAdmin(api.handleAdminDocumentList))
	mux.HandleFunc("POST "+root+"/documents", api.requireAdmin(api.handleAdminDocumentCreate))
	mux.HandleFunc("GET "+root+"/documents/{id}", api.requireAdmin(api.handleAdminDocumentGet))
	mux.HandleFunc("PUT "+root+"/documents/{id}", api.requireAdmin(api.handleAdminDocumentUpdate))
	mux.HandleFunc("DELETE "+root+"/documents/{id}", api.requireAdmin(api.handleAdminDocumentDelete))

	mux.HandleFunc("GET "+root+"/folders", api.requireAdmin(api.handleAdminFolderList))
	mux.HandleFunc("POST "+root+"/folders", api.requireAdmin(api.handleAdminFolderCreate))
	mux.HandleFunc("GET "+root+"/folders/{id}", api.requireAdmin(api.handleAdminFolderGet))
	mux.HandleFunc("PUT "+root+"/folders/{id}", api.requireAdmin(api.handleAdminFolderUpdate))
	mux.HandleFunc("DELETE "+root+"/folders/{id}", api.requireAdmin(api.handleAdminFolderDelete))

	mux.HandleFunc("GET "+root+"/quick-notes", api.requireAdmin(api.handleAdminNoteList))
	mux.HandleFunc("POST "+root+"/quick-notes", api.requireAdmin(api.handleAdminNoteCreate))
	mux.HandleFunc("PUT "+root+"/quick-notes/{id}", api.requireAdmin(api.handleAdminNoteUpdate))
	mux.HandleFunc("DELETE "+root+"/quick-notes/{id}", api.requireAdmin(api.handleAdminNoteDelete))

	mux.HandleFunc("GET "+root+"/settings", api.requireAdmin(api.handleAdminSettingsGet))
	mux.HandleFunc("PUT "+root+"/settings", api.requireAdmin(api.handleAdminSettingsUpdate))
}

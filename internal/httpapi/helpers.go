package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-press/internal/auth"
	"github.com/goliatone/go-press/internal/documents"
	"github.com/goliatone/go-press/internal/folders"
	"github.com/goliatone/go-press/internal/notes"
)

// UnlockedHeader is the header clients send back with the slugs they have
// already unlocked, comma separated.
const UnlockedHeader = "X-Unlocked-Documents"

type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func decodeJSON(r *http.Request, target any) error {
	if r == nil || r.Body == nil {
		return io.EOF
	}
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

func writeFailure(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: false, Error: message})
}

func writeUnauthorized(w http.ResponseWriter) {
	writeFailure(w, http.StatusUnauthorized, "unauthorized")
}

// writeError maps service errors onto the envelope. Unknown errors collapse
// into a generic 500 so internals never leak.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, documents.ErrNotFound),
		errors.Is(err, folders.ErrNotFound),
		errors.Is(err, notes.ErrNotFound):
		writeFailure(w, http.StatusNotFound, "not found")
	case errors.Is(err, documents.ErrSlugTaken):
		writeFailure(w, http.StatusConflict, err.Error())
	case errors.Is(err, documents.ErrTitleRequired),
		errors.Is(err, folders.ErrNameRequired),
		errors.Is(err, notes.ErrContentRequired):
		writeFailure(w, http.StatusBadRequest, err.Error())
	case isValidationError(err):
		writeFailure(w, http.StatusBadRequest, err.Error())
	default:
		writeFailure(w, http.StatusInternalServerError, "internal error")
	}
}

func pathID(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func queryInt(r *http.Request, key string) int {
	value, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0
	}
	return value
}

func queryUUID(r *http.Request, key string) *uuid.UUID {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	return &id
}

// unlockedSlugs parses the client-held unlock list. Unlock state lives with
// the client, never in a server session.
func unlockedSlugs(r *http.Request) map[string]bool {
	out := map[string]bool{}
	for _, entry := range strings.Split(r.Header.Get(UnlockedHeader), ",") {
		if trimmed := strings.TrimSpace(entry); trimmed != "" {
			out[trimmed] = true
		}
	}
	return out
}

// requireAdmin verifies the session cookie before running next. Every
// failure shape (missing cookie, garbage token, expired token) produces the
// same 401 envelope.
func (api *API) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(auth.CookieName)
		if err != nil || !api.gate.Verify(cookie.Value) {
			writeUnauthorized(w)
			return
		}
		next(w, r)
	}
}

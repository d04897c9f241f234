package httpapi

import (
	"net/http"

	"github.com/goliatone/go-press/internal/documents"
	"github.com/goliatone/go-press/internal/timeline"
)

func (api *API) handleDocumentGet(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	detail, err := api.documents.GetBySlug(r.Context(), slug, documents.GetOptions{
		IncludeContent:  true,
		SessionUnlocked: unlockedSlugs(r)[slug],
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, detail)
}

type unlockRequest struct {
	AccessCode string `json:"access_code"`
}

// handleDocumentUnlock checks an access code for a private document. Success
// is remembered client-side only; the server issues no session state.
func (api *API) handleDocumentUnlock(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	var req unlockRequest
	if err := decodeJSON(r, &req); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ok, err := api.documents.Unlock(r.Context(), slug, req.AccessCode)
	if err != nil {
		writeError(w, err)
		return
	}
	if !ok {
		writeFailure(w, http.StatusForbidden, "invalid access code")
		return
	}
	writeData(w, http.StatusOK, map[string]bool{"unlocked": true})
}

func (api *API) handleTimeline(w http.ResponseWriter, r *http.Request) {
	page, err := api.timeline.Documents(r.Context(), timeline.Options{
		Page:     queryInt(r, "page"),
		Limit:    queryInt(r, "limit"),
		FolderID: queryUUID(r, "folder_id"),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, page)
}

func (api *API) handleMixedTimeline(w http.ResponseWriter, r *http.Request) {
	page, err := api.timeline.Mixed(r.Context(), timeline.Options{
		Page:     queryInt(r, "page"),
		Limit:    queryInt(r, "limit"),
		FolderID: queryUUID(r, "folder_id"),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, page)
}

func (api *API) handleFolderTree(w http.ResponseWriter, r *http.Request) {
	tree, err := api.folders.Tree(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, tree)
}

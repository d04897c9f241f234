package httpapi

import (
	"net/http"

	"github.com/goliatone/go-press/internal/auth"
	"github.com/goliatone/go-press/internal/documents"
	"github.com/goliatone/go-press/internal/folders"
	"github.com/goliatone/go-press/internal/notes"
)

type loginRequest struct {
	Password string `json:"password"`
}

func (api *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !auth.VerifySecret(req.Password, api.adminPasswordHash) {
		api.logger.Warn("login rejected", "remote", r.RemoteAddr)
		writeUnauthorized(w)
		return
	}

	token, err := api.gate.IssueToken()
	if err != nil {
		api.logger.Error("token issue failed", "error", err)
		writeFailure(w, http.StatusInternalServerError, "internal error")
		return
	}

	http.SetCookie(w, auth.SessionCookie(token))
	writeData(w, http.StatusOK, map[string]bool{"authenticated": true})
}

func (api *API) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, auth.ExpiredCookie())
	writeData(w, http.StatusOK, map[string]bool{"authenticated": false})
}

// Documents

func (api *API) handleAdminDocumentList(w http.ResponseWriter, r *http.Request) {
	page, err := api.documents.List(r.Context(), documents.ListOptions{
		Page:  queryInt(r, "page"),
		Limit: queryInt(r, "limit"),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, page)
}

func (api *API) handleAdminDocumentCreate(w http.ResponseWriter, r *http.Request) {
	var input documents.CreateInput
	if err := decodeJSON(r, &input); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := input.Validate(); err != nil {
		writeError(w, wrapValidationError(err))
		return
	}

	doc, err := api.documents.Create(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, doc)
}

type adminDocumentDetail struct {
	*documents.Document
	Content string `json:"content"`
}

func (api *API) handleAdminDocumentGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeFailure(w, http.StatusBadRequest, "invalid id")
		return
	}

	doc, err := api.documents.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	content, err := api.documents.Content(r.Context(), doc.Slug)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, adminDocumentDetail{Document: doc, Content: content})
}

func (api *API) handleAdminDocumentUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeFailure(w, http.StatusBadRequest, "invalid id")
		return
	}

	var input documents.UpdateInput
	if err := decodeJSON(r, &input); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid request body")
		return
	}

	doc, err := api.documents.Update(r.Context(), id, input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, doc)
}

func (api *API) handleAdminDocumentDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeFailure(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := api.documents.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]bool{"deleted": true})
}

// Folders

func (api *API) handleAdminFolderList(w http.ResponseWriter, r *http.Request) {
	items, err := api.folders.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, items)
}

func (api *API) handleAdminFolderCreate(w http.ResponseWriter, r *http.Request) {
	var input folders.CreateInput
	if err := decodeJSON(r, &input); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := input.Validate(); err != nil {
		writeError(w, wrapValidationError(err))
		return
	}

	folder, err := api.folders.Create(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, folder)
}

func (api *API) handleAdminFolderGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeFailure(w, http.StatusBadRequest, "invalid id")
		return
	}

	folder, err := api.folders.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, folder)
}

func (api *API) handleAdminFolderUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeFailure(w, http.StatusBadRequest, "invalid id")
		return
	}

	var input folders.UpdateInput
	if err := decodeJSON(r, &input); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid request body")
		return
	}

	folder, err := api.folders.Update(r.Context(), id, input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, folder)
}

func (api *API) handleAdminFolderDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeFailure(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := api.folders.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]bool{"deleted": true})
}

// Quick notes

type noteCreateRequest struct {
	Content string `json:"content"`
}

func (api *API) handleAdminNoteList(w http.ResponseWriter, r *http.Request) {
	page, err := api.notes.List(r.Context(), notes.ListOptions{
		Page:            queryInt(r, "page"),
		Limit:           queryInt(r, "limit"),
		IncludeArchived: r.URL.Query().Get("include_archived") == "true",
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, page)
}

func (api *API) handleAdminNoteCreate(w http.ResponseWriter, r *http.Request) {
	var req noteCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid request body")
		return
	}

	note, err := api.notes.Create(r.Context(), req.Content)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, note)
}

func (api *API) handleAdminNoteUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeFailure(w, http.StatusBadRequest, "invalid id")
		return
	}

	var input notes.UpdateInput
	if err := decodeJSON(r, &input); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid request body")
		return
	}

	note, err := api.notes.Update(r.Context(), id, input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, note)
}

func (api *API) handleAdminNoteDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeFailure(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := api.notes.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]bool{"deleted": true})
}

// Settings

func (api *API) handleAdminSettingsGet(w http.ResponseWriter, r *http.Request) {
	values, err := api.settings.All(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, values)
}

func (api *API) handleAdminSettingsUpdate(w http.ResponseWriter, r *http.Request) {
	var values map[string]string
	if err := decodeJSON(r, &values); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := api.settings.Update(r.Context(), values); err != nil {
		writeError(w, err)
		return
	}
	updated, err := api.settings.All(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, updated)
}

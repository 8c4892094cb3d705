// Package rest exposes the phone book as a JSON-over-HTTP API.
package rest

import (
	"encoding/json"
	"net/http"

	"github.com/mmynk/telefonbuch/internal/models"
	"github.com/mmynk/telefonbuch/internal/service"
)

// Handlers holds the services behind the HTTP API.
type Handlers struct {
	auth      *service.AuthService
	phonebook *service.PhonebookService
}

// NewHandlers creates the HTTP handler set.
func NewHandlers(authSvc *service.AuthService, phonebookSvc *service.PhonebookService) *Handlers {
	return &Handlers{auth: authSvc, phonebook: phonebookSvc}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type entriesResponse struct {
	Entries []models.Entry `json:"entries"`
}

// HandleSignup handles POST /api/v1/auth/signup
func (h *Handlers) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	token, err := h.auth.Signup(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, tokenResponse{Token: token})
}

// HandleLogin handles POST /api/v1/auth/login
func (h *Handlers) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	token, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}

// HandleGuestLogin handles POST /api/v1/auth/guest
func (h *Handlers) HandleGuestLogin(w http.ResponseWriter, r *http.Request) {
	token, err := h.auth.GuestLogin()
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}

// HandleUsernameAvailable handles GET /api/v1/auth/username-available?username=
func (h *Handlers) HandleUsernameAvailable(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	if username == "" {
		writeError(w, http.StatusBadRequest, "invalid_argument", "username query parameter required")
		return
	}

	available, err := h.auth.CheckUsernameAvailable(r.Context(), username)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"available": available})
}

// HandleListEntries handles GET /api/v1/entries
func (h *Handlers) HandleListEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := h.phonebook.ListEntries(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if entries == nil {
		entries = []models.Entry{}
	}

	writeJSON(w, http.StatusOK, entriesResponse{Entries: entries})
}

// HandleSearchEntries handles GET /api/v1/entries/search?term=
func (h *Handlers) HandleSearchEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := h.phonebook.Search(r.Context(), r.URL.Query().Get("term"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entriesResponse{Entries: entries})
}

// HandleCheckDuplicate handles GET /api/v1/entries/duplicate?name=&phone=
func (h *Handlers) HandleCheckDuplicate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	duplicate, err := h.phonebook.CheckDuplicate(r.Context(), q.Get("name"), q.Get("phone"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"duplicate": duplicate})
}

// HandleAddEntry handles POST /api/v1/entries
func (h *Handlers) HandleAddEntry(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	entry, err := h.phonebook.AddEntry(r.Context(), req.Name, req.Phone)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, entry)
}

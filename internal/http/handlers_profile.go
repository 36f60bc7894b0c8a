package http

import (
	"net/http"
	"strings"

	"zenny/internal/core"
)

type profileRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	PhotoURI string `json:"photoUri"`
}

type categoryEntry struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

type categoriesResponse struct {
	Type       string          `json:"type"`
	Categories []categoryEntry `json:"categories"`
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.profile.Get())
}

// handleSaveProfile replaces the profile wholesale; there is no partial
// update.
func (s *Server) handleSaveProfile(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p := core.UserProfile{
		Name:     sanitizeInput(req.Name),
		Email:    sanitizeInput(req.Email),
		Phone:    sanitizeInput(req.Phone),
		PhotoURI: strings.TrimSpace(req.PhotoURI),
	}
	if p.Name == "" {
		writeError(w, http.StatusUnprocessableEntity, "name cannot be empty")
		return
	}

	s.profile.Save(p)
	writeJSON(w, http.StatusOK, p)
}

// handleCategories lists the category taxonomy for a transaction type,
// with the icon the clients render next to each name.
func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	t := core.TransactionType(strings.TrimSpace(r.URL.Query().Get("type")))
	if t == "" {
		t = core.Expense
	}
	if t != core.Income && t != core.Expense {
		writeError(w, http.StatusUnprocessableEntity, "type must be income or expense")
		return
	}

	names := core.Categories(t)
	entries := make([]categoryEntry, 0, len(names))
	for _, name := range names {
		entries = append(entries, categoryEntry{Name: name, Icon: core.CategoryIcon(name)})
	}
	writeJSON(w, http.StatusOK, categoriesResponse{Type: string(t), Categories: entries})
}

package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/amterp/foxhole/internal/cards"
	foxerr "github.com/amterp/foxhole/internal/errors"
	"github.com/amterp/foxhole/internal/model"
	"github.com/amterp/foxhole/internal/service"
	"go.uber.org/zap"
)

// maxBodyBytes bounds request bodies. Actions and prefs are tiny.
const maxBodyBytes = 64 << 10

// CollectionResponse is the current snapshot and its revision.
type CollectionResponse struct {
	Revision   string           `json:"revision"`
	Collection model.Collection `json:"collection"`
}

// SetThemeRequest is the body of PUT /api/v1/prefs/theme.
type SetThemeRequest struct {
	Theme string `json:"theme"`
}

// SetNameRequest is the body of PUT /api/v1/prefs/name.
type SetNameRequest struct {
	UserName string `json:"user_name"`
}

// PrefsListener is told about preference changes made through the API.
type PrefsListener interface {
	OnPrefs(prefs service.Prefs)
}

// Handler contains all HTTP handlers for the API.
type Handler struct {
	session   *service.Session
	prefs     *service.PrefsService
	listeners []PrefsListener
	logger    *zap.Logger
}

// NewHandler creates a new API handler.
func NewHandler(session *service.Session, prefs *service.PrefsService, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{session: session, prefs: prefs, logger: logger}
}

// AddPrefsListener registers l for preference changes.
func (h *Handler) AddPrefsListener(l PrefsListener) {
	h.listeners = append(h.listeners, l)
}

// RegisterRoutes sets up all API routes on the given mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/collection", h.GetCollection)
	mux.HandleFunc("POST /api/v1/dispatch", h.Dispatch)

	mux.HandleFunc("GET /api/v1/prefs", h.GetPrefs)
	mux.HandleFunc("PUT /api/v1/prefs/theme", h.SetTheme)
	mux.HandleFunc("POST /api/v1/prefs/theme/toggle", h.ToggleTheme)
	mux.HandleFunc("PUT /api/v1/prefs/name", h.SetName)
}

// GetCollection returns the current snapshot.
func (h *Handler) GetCollection(w http.ResponseWriter, r *http.Request) {
	c, rev := h.session.Snapshot()
	JSON(w, http.StatusOK, CollectionResponse{Revision: rev, Collection: c.Normalize()})
}

// Dispatch applies one action and returns the resulting snapshot.
// No-op actions succeed and return the unchanged revision.
func (h *Handler) Dispatch(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		BadRequest(w, "failed to read body")
		return
	}

	action, err := cards.DecodeAction(body)
	if err != nil {
		Error(w, err)
		return
	}

	c, rev, err := h.session.Dispatch(r.Context(), action)
	if err != nil {
		h.logger.Debug("rejected action", zap.String("action", string(action.Kind())), zap.Error(err))
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, CollectionResponse{Revision: rev, Collection: c.Normalize()})
}

// GetPrefs returns the theme and display name.
func (h *Handler) GetPrefs(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, h.prefs.Get(r.Context()))
}

// SetTheme stores the theme named in the body.
func (h *Handler) SetTheme(w http.ResponseWriter, r *http.Request) {
	var req SetThemeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	theme, err := model.ParseTheme(req.Theme)
	if err != nil {
		Error(w, foxerr.InvalidField("theme", err.Error()))
		return
	}

	h.prefs.SetTheme(r.Context(), theme)
	h.respondPrefs(w, r)
}

// ToggleTheme switches between the dark and white themes.
func (h *Handler) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	h.prefs.ToggleTheme(r.Context())
	h.respondPrefs(w, r)
}

// SetName stores the display name. A blank name leaves it unchanged.
func (h *Handler) SetName(w http.ResponseWriter, r *http.Request) {
	var req SetNameRequest
	if !decodeBody(w, r, &req) {
		return
	}

	h.prefs.SetUserName(r.Context(), req.UserName)
	h.respondPrefs(w, r)
}

func (h *Handler) respondPrefs(w http.ResponseWriter, r *http.Request) {
	prefs := h.prefs.Get(r.Context())
	for _, l := range h.listeners {
		l.OnPrefs(prefs)
	}
	JSON(w, http.StatusOK, prefs)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		BadRequest(w, "invalid JSON body")
		return false
	}
	return true
}

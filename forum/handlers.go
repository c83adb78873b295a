// forum/handlers.go
package forum

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Handlers wires the forum service and identity provider into the HTTP
// API. The session manager is exported so main can wrap the router with
// LoadAndSave.
type Handlers struct {
	svc      *Service
	identity *IdentityProvider
	Session  *scs.SessionManager
	log      *zap.Logger
	throttle int
}

func NewHandlers(svc *Service, identity *IdentityProvider, session *scs.SessionManager, log *zap.Logger, throttle int) *Handlers {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handlers{svc: svc, identity: identity, Session: session, log: log, throttle: throttle}
}

// Routes builds the API router. Throttling sits in front of everything the
// service does; it is policy, not service logic.
func (h *Handlers) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if h.throttle > 0 {
		r.Use(middleware.Throttle(h.throttle))
	}

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		h.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		h.writeError(w, http.StatusNotFound, "not found")
	})

	r.Get("/healthz", h.health)
	r.Route("/api", func(r chi.Router) {
		r.Get("/forum/threads", h.getThreads)
		r.Post("/forum/threads", h.createThreadOrReply)
		r.Get("/identity", h.getIdentity)
		r.Post("/identity/regenerate", h.regenerateIdentity)
	})
	return r
}

// createRequest covers both creation shapes: a threadId means "reply to
// that thread", no threadId means "new thread" (title required then).
type createRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	AuthorID string `json:"authorId"`
	ThreadID string `json:"threadId"`
}

type identityResponse struct {
	AnonymousID string `json:"anonymousId"`
	Pseudonym   string `json:"pseudonym"`
}

// getThreads serves both the listing and, when threadId is present, a
// single thread with its replies.
func (h *Handlers) getThreads(w http.ResponseWriter, r *http.Request) {
	if threadID := r.URL.Query().Get("threadId"); threadID != "" {
		detail, err := h.svc.GetThread(r.Context(), threadID)
		if err != nil {
			h.renderError(w, err)
			return
		}
		h.writeJSON(w, http.StatusOK, detail)
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	result, err := h.svc.ListThreads(r.Context(), page, limit)
	if err != nil {
		h.renderError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

func (h *Handlers) createThreadOrReply(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.ThreadID != "" {
		post, err := h.svc.CreateReply(r.Context(), req.ThreadID, req.Content, req.AuthorID)
		if err != nil {
			h.renderError(w, err)
			return
		}
		h.writeJSON(w, http.StatusCreated, post)
		return
	}

	thread, err := h.svc.CreateThread(r.Context(), req.Title, req.Content, req.AuthorID)
	if err != nil {
		h.renderError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, thread)
}

func (h *Handlers) getIdentity(w http.ResponseWriter, r *http.Request) {
	id, err := h.identity.GetOrCreate(r.Context())
	if err != nil {
		h.log.Error("failed to issue anonymous id", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "could not issue identity")
		return
	}
	h.writeJSON(w, http.StatusOK, identityResponse{AnonymousID: id, Pseudonym: GeneratePseudonym(id)})
}

func (h *Handlers) regenerateIdentity(w http.ResponseWriter, r *http.Request) {
	id, err := h.identity.Regenerate(r.Context())
	if err != nil {
		h.log.Error("failed to regenerate anonymous id", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "could not issue identity")
		return
	}
	h.writeJSON(w, http.StatusOK, identityResponse{AnonymousID: id, Pseudonym: GeneratePseudonym(id)})
}

func (h *Handlers) health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handlers) renderError(w http.ResponseWriter, err error) {
	switch {
	case IsValidation(err):
		h.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrThreadNotFound):
		h.writeError(w, http.StatusNotFound, "thread not found")
	default:
		h.writeError(w, http.StatusInternalServerError, errStoreFailure.Error())
	}
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error("failed to encode response", zap.Error(err))
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, map[string]string{"error": msg})
}

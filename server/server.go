package server

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"survey_questionnaire_builder/exporter"
	"survey_questionnaire_builder/generator"
)

//go:embed web/dist
var embeddedStatic embed.FS

// gatewayTimeout bounds every completion round-trip; there is no user-facing
// cancel.
const gatewayTimeout = 60 * time.Second

type Server struct {
	agent    *generator.Agent
	cfg      Config
	store    *sessionStore
	log      *zap.SugaredLogger
	staticFS http.Handler
}

type sessionStore struct {
	mu       sync.Mutex
	sessions map[string]*generator.Session
}

func newStore() *sessionStore {
	return &sessionStore{sessions: make(map[string]*generator.Session)}
}

func (s *sessionStore) set(id string, sess *generator.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = sess
}

func (s *sessionStore) get(id string) (*generator.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

func New(agent *generator.Agent, cfg Config, log *zap.SugaredLogger) (*Server, error) {
	if agent == nil {
		return nil, errors.New("generator agent required")
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	sub, err := fs.Sub(embeddedStatic, "web/dist")
	if err != nil {
		return nil, err
	}

	return &Server{
		agent:    agent,
		cfg:      cfg,
		store:    newStore(),
		log:      log,
		staticFS: http.FileServer(http.FS(sub)),
	}, nil
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.logMiddleware)

	r.Post("/api/openai", s.handleRelay)
	r.Route("/api/sessions", func(r chi.Router) {
		r.Post("/", s.handleSessionCreate)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleSessionGet)
			r.Put("/context", s.handleContextUpdate)
			r.Post("/generate", s.handleGenerate)
			r.Post("/regenerate", s.handleRegenerate)
			r.Post("/discussion", s.handleSendToDiscussion)
			r.Post("/comments", s.handleAddComment)
			r.Patch("/likert/{index}", s.handleLikertEdit)
			r.Get("/export/json", s.handleExportJSON)
			r.Get("/export/script", s.handleExportScript)
			r.Get("/preview", s.handlePreview)
		})
	})
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		s.staticFS.ServeHTTP(w, req)
	})
	return r
}

// --- Handlers ---

type sessionCreateReq struct {
	Intro         string `json:"intro"`
	PreviousWorks string `json:"previous_works"`
	Methods       string `json:"methods"`
	Mode          string `json:"mode,omitempty"`
}

type commentReq struct {
	Message string `json:"message"`
}

type commentResp struct {
	Reply   string                `json:"reply"`
	Session generator.SessionView `json:"session"`
}

type likertEditReq struct {
	TogglePolarity bool    `json:"toggle_polarity,omitempty"`
	Text           *string `json:"text,omitempty"`
}

func (s *Server) handleSessionCreate(w http.ResponseWriter, r *http.Request) {
	var req sessionCreateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	mode := generator.Mode(req.Mode)
	switch mode {
	case "", generator.ModeLabeled, generator.ModeUnlabeled:
	default:
		http.Error(w, "unsupported mode", http.StatusBadRequest)
		return
	}
	id := uuid.NewString()
	sess := generator.NewSession(id, generator.ResearchContext{
		Intro:         req.Intro,
		PreviousWorks: req.PreviousWorks,
		Methods:       req.Methods,
	}, mode, s.agent)
	s.store.set(id, sess)
	view := sess.View()
	s.log.Infow("session created", "session_id", id, "mode", view.Mode)
	writeJSON(w, view)
}

func (s *Server) handleSessionGet(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, sess.View())
}

func (s *Server) handleContextUpdate(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var rc generator.ResearchContext
	if err := json.NewDecoder(r.Body).Decode(&rc); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	sess.UpdateContext(rc)
	writeJSON(w, sess.View())
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	s.runCycle(w, r, false)
}

func (s *Server) handleRegenerate(w http.ResponseWriter, r *http.Request) {
	s.runCycle(w, r, true)
}

func (s *Server) runCycle(w http.ResponseWriter, r *http.Request, regen bool) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), gatewayTimeout)
	defer cancel()

	var err error
	if regen {
		_, err = sess.Regenerate(ctx)
	} else {
		_, err = sess.Generate(ctx)
	}
	if err != nil {
		s.fail(w, err)
		return
	}
	if dropped := sess.LastDropped(); len(dropped) > 0 {
		s.log.Debugw("parser dropped unlabeled lines", "session_id", sess.ID, "lines", dropped)
	}
	view := sess.View()
	s.log.Infow("draft committed", "session_id", sess.ID, "draft_count", view.DraftCount, "regenerate", regen)
	writeJSON(w, view)
}

func (s *Server) handleSendToDiscussion(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	if err := sess.SendToDiscussion(); err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, sess.View())
}

func (s *Server) handleAddComment(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var req commentReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), gatewayTimeout)
	defer cancel()
	reply, err := sess.AddComment(ctx, req.Message)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, commentResp{Reply: reply, Session: sess.View()})
}

func (s *Server) handleLikertEdit(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		http.Error(w, "bad index", http.StatusBadRequest)
		return
	}
	var req likertEditReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.TogglePolarity {
		err = sess.ToggleLikert(index)
	} else if req.Text != nil {
		err = sess.UpdateLikert(index, *req.Text)
	} else {
		http.Error(w, "nothing to change", http.StatusBadRequest)
		return
	}
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, sess.View())
}

func (s *Server) handleExportJSON(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	out, err := exporter.ToJSON(sess.Draft())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(out))
}

func (s *Server) handleExportScript(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(exporter.ToFormsScript(sess.Draft())))
}

// --- Helpers ---

func (s *Server) session(w http.ResponseWriter, r *http.Request) (*generator.Session, bool) {
	id := chi.URLParam(r, "id")
	sess, ok := s.store.get(id)
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return nil, false
	}
	return sess, true
}

// fail maps guard and gateway errors onto HTTP statuses.
func (s *Server) fail(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	var upstream *generator.UpstreamError
	var transport *generator.TransportError
	var parse *generator.ParseError
	switch {
	case errors.Is(err, generator.ErrBusy), errors.Is(err, generator.ErrEmptyDraft):
		status = http.StatusConflict
	case errors.Is(err, generator.ErrContextIncomplete):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, generator.ErrEmptyComment):
		status = http.StatusBadRequest
	case errors.Is(err, generator.ErrNoSuchItem):
		status = http.StatusNotFound
	case errors.As(err, &upstream), errors.As(err, &transport), errors.As(err, &parse):
		status = http.StatusBadGateway
	}
	if status >= 500 || status == http.StatusBadGateway {
		s.log.Errorw("request failed", "err", err)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Infow("http", "method", r.Method, "path", r.URL.Path,
			"status", rec.status, "duration", time.Since(start))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

package server

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/eqsteps/pkg/errors"
	"github.com/matzehuels/eqsteps/pkg/playback"
	"github.com/matzehuels/eqsteps/pkg/render"
	"github.com/matzehuels/eqsteps/pkg/render/sink"
)

type session struct {
	mu       sync.Mutex
	ctrl     *playback.Controller
	buf      *render.Buffer
	lastUsed time.Time
}

type sessionKey struct{}

type sessionResponse struct {
	ID       string  `json:"id"`
	Step     int     `json:"step"`
	Steps    int     `json:"steps"`
	Busy     bool    `json:"busy"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Progress float64 `json:"progress"`
	Caption  string  `json:"caption,omitempty"`
	Frames   []frame `json:"frames"`
}

type frame struct {
	Ref     string  `json:"ref"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Scale   float64 `json:"scale"`
	Color   string  `json:"color"`
	Opacity float64 `json:"opacity"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	buf := render.NewBuffer()
	ctrl, err := s.newController(buf)
	if err != nil {
		s.writeError(w, err)
		return
	}
	now := s.opts.Now()
	sess := &session{ctrl: ctrl, buf: buf, lastUsed: now}
	if _, err := ctrl.Start(now); err != nil {
		s.writeError(w, err)
		return
	}
	ctrl.Tick(now)

	s.mu.Lock()
	s.evictLocked(now)
	s.sessions[ctrl.ID()] = sess
	count := len(s.sessions)
	s.mu.Unlock()

	s.logger.Debug("session created", "id", ctrl.ID(), "sessions", count)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	writeJSON(w, http.StatusCreated, sess.state())
}

func (s *Server) newController(buf *render.Buffer) (*playback.Controller, error) {
	opts := s.opts.Pipeline
	cfg := opts.Config
	return playback.New(s.doc.Instructions.Clone(), buf,
		playback.WithLogger(s.logger),
		playback.WithStyles(cfg.Styles()),
		playback.WithTimings(cfg.AnimTimings()),
		playback.WithLayout(cfg.LayoutOptions()),
		playback.WithContent(cfg.ContentOptions()),
		playback.WithWidth(opts.Width),
	)
}

// evictLocked drops expired sessions and, if the server is full, the least
// recently used one. s.mu must be held.
func (s *Server) evictLocked(now time.Time) {
	var oldestID string
	var oldest time.Time
	for id, sess := range s.sessions {
		sess.mu.Lock()
		used := sess.lastUsed
		sess.mu.Unlock()
		if now.Sub(used) > s.opts.SessionTTL {
			delete(s.sessions, id)
			continue
		}
		if oldestID == "" || used.Before(oldest) {
			oldestID, oldest = id, used
		}
	}
	if len(s.sessions) >= s.opts.MaxSessions && oldestID != "" {
		delete(s.sessions, oldestID)
	}
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !ok {
		s.writeError(w, errors.New(errors.ErrCodeNotFound, "session %s not found", id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// withSession resolves the session, locks it for the duration of the
// request and advances its transition to the current time.
func (s *Server) withSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		s.mu.Lock()
		sess, ok := s.sessions[id]
		s.mu.Unlock()
		if !ok {
			s.writeError(w, errors.New(errors.ErrCodeNotFound, "session %s not found", id))
			return
		}

		sess.mu.Lock()
		defer sess.mu.Unlock()
		now := s.opts.Now()
		sess.lastUsed = now
		sess.ctrl.Tick(now)
		next(w, r.WithContext(context.WithValue(r.Context(), sessionKey{}, sess)))
	}
}

func sessionFrom(r *http.Request) *session {
	return r.Context().Value(sessionKey{}).(*session)
}

func (sess *session) state() sessionResponse {
	scene := sess.buf.Scene()
	c := sess.ctrl
	resp := sessionResponse{
		ID:       c.ID(),
		Step:     c.Step(),
		Steps:    c.Steps(),
		Busy:     c.Busy(),
		Width:    scene.Width,
		Height:   scene.Height,
		Progress: scene.Progress,
		Caption:  scene.Caption,
		Frames:   make([]frame, 0, len(scene.Frames)),
	}
	for _, f := range scene.Frames {
		fr := frame{
			X: f.X, Y: f.Y, Width: f.Width, Height: f.Height, Scale: f.Scale,
			Color: f.Color.Hex(), Opacity: f.Opacity,
		}
		if content, ok := f.Content(); ok {
			fr.Ref = content.Ref().String()
		}
		resp.Frames = append(resp.Frames, fr)
	}
	return resp
}

func (s *Server) handleSessionState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sessionFrom(r).state())
}

func (s *Server) handleSessionSVG(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	var opts []sink.SVGOption
	if s.opts.Pipeline.Caption {
		opts = append(opts, sink.WithCaption())
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(sink.RenderSVG(sess.buf.Scene(), opts...))
}

type navigation int

const (
	navNext navigation = iota
	navPrev
	navRestart
	navGoTo
)

type navigateResponse struct {
	Accepted bool `json:"accepted"`
	sessionResponse
}

func (s *Server) handleNavigate(nav navigation) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)
		now := s.opts.Now()
		var ok bool
		var err error
		switch nav {
		case navNext:
			ok, err = sess.ctrl.Next(now)
		case navPrev:
			ok, err = sess.ctrl.Prev(now)
		case navRestart:
			ok, err = sess.ctrl.Restart(now)
		case navGoTo:
			var n int
			if n, err = stepParam(r); err == nil {
				if _, err = sess.ctrl.Instructions().Step(n); err == nil {
					ok, err = sess.ctrl.GoTo(n, now)
				}
			}
		}
		if err != nil {
			s.writeError(w, err)
			return
		}
		if ok {
			// Draw the first tick so the state reflects the new transition.
			sess.ctrl.Tick(now)
		}
		writeJSON(w, http.StatusOK, navigateResponse{Accepted: ok, sessionResponse: sess.state()})
	}
}

func (s *Server) handleSkip(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	sess.ctrl.Skip()
	writeJSON(w, http.StatusOK, sess.state())
}

func (s *Server) handleResize(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	width, err := strconv.ParseFloat(r.URL.Query().Get("width"), 64)
	if err != nil {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid width %q", r.URL.Query().Get("width")))
		return
	}
	if err := sess.ctrl.Resize(width); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.state())
}

package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/eqsteps/pkg/buildinfo"
	"github.com/matzehuels/eqsteps/pkg/errors"
	"github.com/matzehuels/eqsteps/pkg/pipeline"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		buildinfo.Info
	}{"ok", buildinfo.Get()})
}

type stepsResponse struct {
	Steps    int      `json:"steps"`
	Hash     string   `json:"hash"`
	Captions []string `json:"captions"`
}

func (s *Server) handleSteps(w http.ResponseWriter, r *http.Request) {
	resp := stepsResponse{Steps: s.doc.Steps(), Hash: s.doc.Hash}
	for _, st := range s.doc.Instructions.Steps {
		resp.Captions = append(resp.Captions, st.Text)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStepFormat(format, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := stepParam(r)
		if err != nil {
			s.writeError(w, err)
			return
		}
		opts, err := s.requestOptions(r)
		if err != nil {
			s.writeError(w, err)
			return
		}
		opts.Formats = []string{format}

		artifacts, hit, err := s.runner.RenderWithCacheInfo(r.Context(), s.doc, n, opts)
		if err != nil {
			s.writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", contentType)
		if hit {
			w.Header().Set("X-Cache", "hit")
		} else {
			w.Header().Set("X-Cache", "miss")
		}
		_, _ = w.Write(artifacts[format])
	}
}

func stepParam(r *http.Request) (int, error) {
	n, err := strconv.Atoi(chi.URLParam(r, "n"))
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "invalid step %q", chi.URLParam(r, "n"))
	}
	return n, nil
}

// requestOptions copies the server's pipeline options and applies the
// width, scale and caption query parameters.
func (s *Server) requestOptions(r *http.Request) (pipeline.Options, error) {
	opts := s.opts.Pipeline
	opts.Formats = nil
	q := r.URL.Query()
	if v := q.Get("width"); v != "" {
		w, err := strconv.ParseFloat(v, 64)
		if err != nil || w <= 0 {
			return opts, errors.New(errors.ErrCodeInvalidInput, "invalid width %q", v)
		}
		opts.Width = w
	}
	if v := q.Get("scale"); v != "" {
		sc, err := strconv.ParseFloat(v, 64)
		if err != nil || sc <= 0 || sc > 8 {
			return opts, errors.New(errors.ErrCodeInvalidInput, "invalid scale %q", v)
		}
		opts.Scale = sc
	}
	if v := q.Get("caption"); v != "" {
		c, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "invalid caption %q", v)
		}
		opts.Caption = c
	}
	if v := q.Get("detailed"); v != "" {
		d, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "invalid detailed %q", v)
		}
		opts.Detailed = d
	}
	return opts, nil
}

package server

import (
	"encoding/json"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/matzehuels/dockyard/pkg/buildinfo"
	"github.com/matzehuels/dockyard/pkg/dock"
	"github.com/matzehuels/dockyard/pkg/errors"
	"github.com/matzehuels/dockyard/pkg/geom"
	sceneio "github.com/matzehuels/dockyard/pkg/io"
	"github.com/matzehuels/dockyard/pkg/pipeline"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status string         `json:"status"`
		Build  buildinfo.Info `json:"build"`
	}{"ok", buildinfo.Get()})
}

// AnchorRequest is the body of POST /v1/anchor.
type AnchorRequest struct {
	Pointer     geom.Point  `json:"pointer"`
	Target      dock.Target `json:"target"`
	SameFrame   bool        `json:"sameFrame"`
	CanSplit    bool        `json:"canSplit"`
	HasTitleBar bool        `json:"hasTitleBar"`
}

// AnchorResponse reports the resolved anchor. Anchor is nil on a miss.
type AnchorResponse struct {
	Hit    bool         `json:"hit"`
	Anchor *dock.Anchor `json:"anchor,omitempty"`
}

func (s *Server) handleAnchor(w http.ResponseWriter, r *http.Request) {
	var req AnchorRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode anchor request"))
		return
	}
	if req.Target.ID == "" {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "target id is required"))
		return
	}

	a, ok := s.resolver.Resolve(req.Pointer, req.SameFrame, req.CanSplit, req.Target, req.HasTitleBar)
	resp := AnchorResponse{Hit: ok}
	if ok {
		resp.Anchor = &a
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := errors.ValidateFormat(format); err != nil {
		writeError(w, err)
		return
	}

	docFormat, err := sceneFormat(r.Header.Get("Content-Type"))
	if err != nil {
		writeError(w, err)
		return
	}
	doc, err := sceneio.ReadScene(http.MaxBytesReader(w, r.Body, s.maxBody), docFormat)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := s.runner.Execute(r.Context(), pipeline.Options{
		Scene:   doc,
		Formats: []string{format},
		Refresh: r.URL.Query().Get("refresh") == "true",
	})
	if err != nil {
		writeError(w, err)
		return
	}

	h := w.Header()
	h.Set("Content-Type", contentType(format))
	h.Set("X-Surface-ID", res.Surface.ID())
	h.Set("X-Scene-Warnings", strconv.Itoa(len(res.Warnings)))
	if len(res.CacheInfo.Hits) > 0 {
		h.Set("X-Cache", "hit")
	} else {
		h.Set("X-Cache", "miss")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

func sceneFormat(header string) (sceneio.Format, error) {
	if header == "" {
		return sceneio.FormatJSON, nil
	}
	mt, _, err := mime.ParseMediaType(header)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "bad content type")
	}
	switch {
	case mt == "application/json":
		return sceneio.FormatJSON, nil
	case strings.HasSuffix(mt, "/toml"):
		return sceneio.FormatTOML, nil
	case strings.HasSuffix(mt, "/yaml"), strings.HasSuffix(mt, "/x-yaml"):
		return sceneio.FormatYAML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported content type %s", mt)
}

func contentType(format string) string {
	switch format {
	case pipeline.FormatSVG, pipeline.FormatGraphviz:
		return "image/svg+xml"
	case pipeline.FormatJSON:
		return "application/json"
	case pipeline.FormatDOT:
		return "text/vnd.graphviz; charset=utf-8"
	}
	return "text/plain; charset=utf-8"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, statusFor(code), struct {
		Error errorBody `json:"error"`
	}{errorBody{Code: code, Message: errors.UserMessage(err)}})
}

func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidZone:
		return http.StatusBadRequest
	case errors.ErrCodeInvalidScene, errors.ErrCodeOutOfRange, errors.ErrCodeMergeConflict:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

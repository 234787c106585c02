package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/matzehuels/flatbox/pkg/cache"
	ferrors "github.com/matzehuels/flatbox/pkg/errors"
	"github.com/matzehuels/flatbox/pkg/observability"
	"github.com/matzehuels/flatbox/pkg/panel"
	"github.com/matzehuels/flatbox/pkg/pipeline"
)

// enclosureRequest is the body of both API calls. Missing thicknesses
// default to [panel.DefaultThickness].
type enclosureRequest struct {
	Width            int    `json:"width"`
	Height           int    `json:"height"`
	Depth            int    `json:"depth"`
	PerspexThickness *int   `json:"perspex_thickness,omitempty"`
	WoodThickness    *int   `json:"wood_thickness,omitempty"`
	Grouping         string `json:"grouping,omitempty"`
}

func (req enclosureRequest) enclosure() panel.Enclosure {
	e := panel.NewEnclosure(req.Width, req.Height, req.Depth)
	if req.PerspexThickness != nil {
		e.PerspexThickness = *req.PerspexThickness
	}
	if req.WoodThickness != nil {
		e.WoodThickness = *req.WoodThickness
	}
	return e
}

type panelsResponse struct {
	Enclosure panel.Enclosure `json:"enclosure"`
	Grouping  string          `json:"grouping"`
	Groups    []groupSummary  `json:"groups"`
}

type groupSummary struct {
	Name   string        `json:"name"`
	Panels []panel.Panel `json:"panels"`
	Width  int           `json:"sheet_width"`
	Height int           `json:"sheet_height"`
	Area   int           `json:"panel_area"`
}

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok")
}

func (s *Server) handlePanels(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decode(w, r)
	if !ok {
		return
	}

	opts := pipeline.Options{Enclosure: req.enclosure(), Grouping: req.Grouping, Logger: s.logger}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		s.fail(w, r, err)
		return
	}
	_, groups, err := pipeline.BuildGroups(opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	hash, err := opts.InputHash()
	if err != nil {
		s.fail(w, r, ferrors.Wrap(ferrors.ErrCodeInternal, err, "hash input"))
		return
	}
	key := s.runner.Keyer.PanelsKey(hash)
	if data, hit, err := s.runner.Cache.Get(r.Context(), key); err == nil && hit {
		observability.Cache().OnCacheHit(r.Context(), "panels")
		writeRaw(w, "application/json", data, true)
		return
	}
	observability.Cache().OnCacheMiss(r.Context(), "panels")

	resp := panelsResponse{Enclosure: opts.Enclosure, Grouping: opts.Grouping}
	for _, g := range groups {
		gr := pipeline.LayoutGroup(r.Context(), g, s.logger)
		resp.Groups = append(resp.Groups, groupSummary{
			Name:   g.Name,
			Panels: g.Panels,
			Width:  gr.Layout.Bounds.Width,
			Height: gr.Layout.Bounds.Height,
			Area:   panel.TotalArea(g.Panels),
		})
	}
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		s.fail(w, r, ferrors.Wrap(ferrors.ErrCodeInternal, err, "encode panels"))
		return
	}
	data = append(data, '\n')
	if err := s.runner.Cache.Set(r.Context(), key, data, cache.ArtifactTTL); err != nil {
		s.logger.Warn("cache write failed", "key", key, "err", err)
	} else {
		observability.Cache().OnCacheSet(r.Context(), "panels", len(data))
	}
	writeRaw(w, "application/json", data, false)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decode(w, r)
	if !ok {
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if strings.Contains(format, ",") {
		s.fail(w, r, ferrors.New(ferrors.ErrCodeInvalidFormat, "render returns a single format, got %q", format))
		return
	}
	opts := pipeline.Options{
		Enclosure: req.enclosure(),
		Grouping:  req.Grouping,
		Formats:   []string{format},
		Logger:    s.logger,
	}
	if size := r.URL.Query().Get("size"); size != "" {
		n, err := strconv.Atoi(size)
		if err != nil || n <= 0 {
			s.fail(w, r, ferrors.New(ferrors.ErrCodeInvalidInput, "size must be a positive integer, got %q", size))
			return
		}
		opts.ThumbnailSize = n
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		s.fail(w, r, err)
		return
	}
	format = opts.Formats[0]

	// A cut list without group= covers every group, as on the command line.
	group := r.URL.Query().Get("group")
	if group == "" && format != pipeline.FormatXLSX {
		_, groups, err := pipeline.BuildGroups(opts)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		group = groups[0].Name
	}
	if group != "" {
		if err := ferrors.ValidateGroupName(group); err != nil {
			s.fail(w, r, err)
			return
		}
		opts.Groups = []string{group}
	}

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	a, found := res.Artifact(group, format)
	if !found {
		s.fail(w, r, ferrors.New(ferrors.ErrCodeInternal, "artifact %s missing from result", pipeline.ArtifactName(group, format)))
		return
	}

	w.Header().Set("Content-Disposition", `inline; filename="`+a.Name+`"`)
	writeRaw(w, pipeline.ContentTypes[format], a.Data, a.Cached)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request) (enclosureRequest, bool) {
	var req enclosureRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.fail(w, r, ferrors.Wrap(ferrors.ErrCodeInvalidInput, err, "decode request body"))
		return req, false
	}
	return req, true
}

// fail maps err to a status code and writes a JSON error body.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := string(ferrors.GetCode(err))
	if code == "" {
		code = string(ferrors.ErrCodeInternal)
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
	}
	body := errorResponse{Error: ferrors.UserMessage(err), Code: code, RequestID: RequestIDFromContext(r.Context())}
	writeJSON(w, status, body)
}

func statusFor(err error) int {
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxErr):
		return http.StatusRequestEntityTooLarge
	case ferrors.IsInvalid(err):
		return http.StatusBadRequest
	case ferrors.Is(err, ferrors.ErrCodeNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeRaw writes data with an X-Cache header telling whether it came from
// the cache.
func writeRaw(w http.ResponseWriter, contentType string, data []byte, cached bool) {
	w.Header().Set("Content-Type", contentType)
	if cached {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorResponse{Error: msg, Code: code, RequestID: w.Header().Get(RequestIDHeader)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

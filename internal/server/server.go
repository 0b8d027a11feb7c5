// Package server exposes score loading and rendering over HTTP.
//
// Routes:
//
//	POST /scores         upload a score, get its model as JSON
//	POST /scores/render  upload a score, get its text rendering
//	GET  /healthz        liveness and version
//
// A score is sent either as the multipart form field "file" or as the raw
// request body. For raw bodies the ?name= query parameter supplies a file
// name used in errors and warnings.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/simonhull/musicxml"
	"github.com/simonhull/musicxml/internal/jsonexport"
	"github.com/simonhull/musicxml/internal/render"
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

const defaultMaxUpload = 32 << 20

// Config configures a Server.
type Config struct {
	Logger *zap.Logger

	// Options are applied to every uploaded score.
	Options []musicxml.Option

	// MaxUpload bounds the request body in bytes. Zero means 32 MiB.
	MaxUpload int64

	// AllowedOrigins lists CORS origins; empty allows any origin.
	AllowedOrigins []string
}

// Server handles score requests.
type Server struct {
	log       *zap.Logger
	opts      []musicxml.Option
	maxUpload int64
	handler   http.Handler
}

// New builds a Server and its routes.
func New(cfg Config) *Server {
	s := &Server{
		log:       cfg.Logger,
		opts:      cfg.Options,
		maxUpload: cfg.MaxUpload,
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.maxUpload <= 0 {
		s.maxUpload = defaultMaxUpload
	}

	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/scores", s.handleScore).Methods(http.MethodPost)
	router.HandleFunc("/scores/render", s.handleRender).Methods(http.MethodPost)
	router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
	})
	s.handler = c.Handler(s.requestID(s.logRequests(router)))
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

// scoreResponse is the body of POST /scores.
type scoreResponse struct {
	Name     string               `json:"name"`
	Format   string               `json:"format"`
	RootFile string               `json:"root_file,omitempty"`
	Score    jsonexport.Score     `json:"score"`
	Warnings []jsonexport.Warning `json:"warnings,omitempty"`
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	file, ok := s.load(w, r)
	if !ok {
		return
	}

	score := jsonexport.FromScore(file.Score)
	score.Warnings = nil

	resp := scoreResponse{
		Name:     file.Path,
		Format:   file.Format.String(),
		RootFile: file.RootFile,
		Score:    score,
	}
	for _, warn := range file.Warnings {
		resp.Warnings = append(resp.Warnings, jsonexport.Warning(warn))
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var opts []render.Option
	if v := r.URL.Query().Get("width"); v != "" {
		width, err := strconv.Atoi(v)
		if err != nil || width <= 0 {
			writeError(w, http.StatusBadRequest, "width must be a positive integer")
			return
		}
		opts = append(opts, render.WithWidth(width))
	}

	file, ok := s.load(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, render.New(opts...).Score(file.Score)+"\n")
}

// healthResponse is the body of GET /healthz.
type healthResponse struct {
	Status string `json:"status"`
	musicxml.VersionInfo
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", VersionInfo: musicxml.GetVersionInfo()})
}

// load reads the uploaded score and opens it. On failure it writes the
// error response and reports false.
func (s *Server) load(w http.ResponseWriter, r *http.Request) (*musicxml.File, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)

	name, data, err := readUpload(r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("upload exceeds %d bytes", s.maxUpload))
			return nil, false
		}
		s.log.Info("bad upload",
			zap.String("request_id", RequestID(r.Context())),
			zap.Error(err))
		writeError(w, http.StatusBadRequest, uploadDetail(err))
		return nil, false
	}

	file, err := musicxml.OpenReader(bytes.NewReader(data), int64(len(data)), name, s.opts...)
	if err != nil {
		s.log.Info("open upload failed",
			zap.String("name", name),
			zap.String("request_id", RequestID(r.Context())),
			zap.Error(err))
		status, detail := describe(err)
		writeError(w, status, detail)
		return nil, false
	}
	return file, true
}

// readUpload returns the uploaded file name and content.
func readUpload(r *http.Request) (string, []byte, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		f, header, err := r.FormFile("file")
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				return "", nil, err
			}
			return "", nil, fmt.Errorf("%w: %w", errMissingFile, err)
		}
		defer f.Close()

		data, err := io.ReadAll(f)
		if err != nil {
			return "", nil, fmt.Errorf("read upload: %w", err)
		}
		return header.Filename, data, nil
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		return "", nil, err
	}
	if len(data) == 0 {
		return "", nil, errEmptyBody
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		name = "upload"
	}
	return name, data, nil
}

var (
	errEmptyBody   = errors.New("empty request body")
	errMissingFile = errors.New(`missing form field "file"`)
)

// uploadDetail is the message shown for a request that carried no score.
func uploadDetail(err error) string {
	switch {
	case errors.Is(err, errEmptyBody):
		return errEmptyBody.Error()
	case errors.Is(err, errMissingFile):
		return errMissingFile.Error()
	default:
		return "could not read request body"
	}
}

// describe maps load errors to an HTTP status and a fixed message. The
// underlying error is logged, never sent.
func describe(err error) (int, string) {
	var (
		unsupported *musicxml.UnsupportedFormatError
		malformed   *musicxml.MalformedDocumentError
		archive     *musicxml.ArchiveError
	)
	switch {
	case errors.As(err, &unsupported):
		return http.StatusUnsupportedMediaType, "unsupported file format"
	case errors.As(err, &malformed):
		return http.StatusBadRequest, "score markup is malformed"
	case errors.As(err, &archive):
		return http.StatusBadRequest, "archive contains no readable score"
	case errors.Is(err, musicxml.ErrStrictParsing):
		return http.StatusBadRequest, "score has warnings and strict parsing is on"
	default:
		return http.StatusBadRequest, "score could not be loaded"
	}
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

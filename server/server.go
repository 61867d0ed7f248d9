package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	rangeparser "github.com/always-cache/range-parser"
	"github.com/always-cache/range-parser/blob"
	partialcontent "github.com/always-cache/range-parser/pkg/partial-content"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const defaultMaxBlobSize = 32 << 20

type Config struct {
	// Storage for blobs.
	Store blob.Store
	// How range requests for blobs are answered.
	Ranges partialcontent.Config
	// Largest accepted PUT body. Defaults to 32 MiB.
	MaxBlobSize int64
	// Logger to use. A console logger is used if nil.
	Logger *zerolog.Logger
}

type Server struct {
	store       blob.Store
	ranges      partialcontent.Config
	maxBlobSize int64
	log         zerolog.Logger
	router      chi.Router
}

// New creates the HTTP handler serving blobs from the configured store.
func New(config Config) *Server {
	// use console logger if not specified in config
	var logger zerolog.Logger
	if config.Logger == nil {
		logger = zerolog.New(zerolog.NewConsoleWriter())
	} else {
		logger = *config.Logger
	}

	s := &Server{
		store:       config.Store,
		ranges:      config.Ranges,
		maxBlobSize: config.MaxBlobSize,
		log:         logger,
	}
	if s.maxBlobSize <= 0 {
		s.maxBlobSize = defaultMaxBlobSize
	}
	if s.ranges.Logger == nil {
		s.ranges.Logger = &s.log
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Get("/ranges", s.parseRanges)
	r.Get("/blobs", s.listBlobs)
	r.Get("/blobs/*", s.getBlob)
	r.Head("/blobs/*", s.getBlob)
	r.Put("/blobs/*", s.putBlob)
	r.Delete("/blobs/*", s.deleteBlob)
	s.router = r

	return s
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) getBlob(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "*")
	b, err := s.store.Open(key)
	if errors.Is(err, blob.ErrNotFound) {
		http.NotFound(w, r)
		return
	} else if err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("Could not open blob")
		http.Error(w, "Could not read blob", http.StatusInternalServerError)
		return
	}
	partialcontent.Serve(w, r, partialcontent.Content{
		Reader:       b,
		Size:         b.Size,
		Type:         b.ContentType,
		ETag:         b.EntityTag(),
		LastModified: b.ModifiedAt,
	}, s.ranges)
}

func (s *Server) putBlob(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "*")
	if key == "" {
		http.Error(w, "Missing blob key", http.StatusBadRequest)
		return
	}
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBlobSize))
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("Could not read request body")
		http.Error(w, "Could not read request body", http.StatusRequestEntityTooLarge)
		return
	}
	info, err := s.store.Put(key, r.Header.Get("Content-Type"), data)
	if err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("Could not store blob")
		http.Error(w, "Could not store blob", http.StatusInternalServerError)
		return
	}
	w.Header().Set("ETag", info.EntityTag().String())
	s.writeJSON(w, http.StatusCreated, info)
}

func (s *Server) deleteBlob(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "*")
	err := s.store.Delete(key)
	if errors.Is(err, blob.ErrNotFound) {
		http.NotFound(w, r)
		return
	} else if err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("Could not delete blob")
		http.Error(w, "Could not delete blob", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listBlobs(w http.ResponseWriter, r *http.Request) {
	keys := make([]string, 0)
	err := s.store.Keys(r.URL.Query().Get("prefix"), func(key string) {
		keys = append(keys, key)
	})
	if err != nil {
		s.log.Error().Err(err).Msg("Could not list blobs")
		http.Error(w, "Could not list blobs", http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, http.StatusOK, keys)
}

type parseError struct {
	Error string           `json:"error"`
	Code  rangeparser.Code `json:"code"`
}

// parseRanges reports how a Range header parses for a resource of ?size= units.
func (s *Server) parseRanges(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	size, err := strconv.ParseInt(query.Get("size"), 10, 64)
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, parseError{
			Error: "size must be an integer",
			Code:  rangeparser.InvalidArgument,
		})
		return
	}
	combine, _ := strconv.ParseBool(query.Get("combine"))

	set, err := rangeparser.ParseWithOptions(size, rangeValue(r), rangeparser.Options{
		Combine:        combine,
		SentinelErrors: true,
		Logger:         &s.log,
	})
	if err != nil {
		status := http.StatusBadRequest
		if rangeparser.CodeOf(err) == rangeparser.Unsatisfiable {
			status = http.StatusRequestedRangeNotSatisfiable
		}
		s.writeJSON(w, status, parseError{Error: err.Error(), Code: rangeparser.CodeOf(err)})
		return
	}
	s.writeJSON(w, http.StatusOK, set)
}

// rangeValue returns the Range header, or the range query parameter if there is no header.
func rangeValue(r *http.Request) string {
	if raw := r.Header.Get("Range"); strings.TrimSpace(raw) != "" {
		return raw
	}
	return r.URL.Query().Get("range")
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error().Err(err).Msg("Could not write JSON response")
	}
}

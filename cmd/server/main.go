package main

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/saranrapjs/ixbrlparse/pkg/config"
	"github.com/saranrapjs/ixbrlparse/pkg/db"
	"github.com/saranrapjs/ixbrlparse/pkg/facts"
	"github.com/saranrapjs/ixbrlparse/pkg/ixbrl"
	"github.com/saranrapjs/ixbrlparse/pkg/logging"
	"github.com/saranrapjs/ixbrlparse/pkg/transform"
)

//go:embed index.html
var indexHTML string

var templateFuncs = template.FuncMap{
	"count": func(n any) string {
		switch v := n.(type) {
		case int:
			return humanize.Comma(int64(v))
		case []string:
			return humanize.Comma(int64(len(v)))
		default:
			return fmt.Sprintf("%v", v)
		}
	},
	"bytes": func(n int) string { return humanize.Bytes(uint64(n)) },
	"ago":   humanize.Time,
}

var indexTemplate = template.Must(template.New("index").Funcs(templateFuncs).Parse(indexHTML))

// maxBody bounds the size of an uploaded filing.
const maxBody = 64 << 20

type Server struct {
	db       *db.DB
	registry *transform.Registry
	opts     []ixbrl.Option
	cache    *lru.Cache[string, *ixbrl.Document]
	log      *zap.Logger
}

func NewServer(database *db.DB, cfg *config.Config, log *zap.Logger) (*Server, error) {
	registry, err := cfg.Registry(transform.RegistryOpts{Logger: log})
	if err != nil {
		return nil, err
	}
	opts, err := cfg.ParseOptions(registry)
	if err != nil {
		return nil, err
	}
	size := cfg.Server.CacheSize
	if size <= 0 {
		size = 1
	}
	cache, err := lru.New[string, *ixbrl.Document](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache: %w", err)
	}
	return &Server{
		db:       database,
		registry: registry,
		opts:     append(opts, ixbrl.WithLogger(log)),
		cache:    cache,
		log:      log,
	}, nil
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /parse", s.handleParse)
	mux.HandleFunc("GET /documents", s.handleDocuments)
	mux.HandleFunc("GET /documents/{id}", s.handleDocument)
	mux.HandleFunc("DELETE /documents/{id}", s.handleDeleteDocument)
	mux.HandleFunc("GET /documents/{id}/table", s.handleTable)
	mux.HandleFunc("GET /documents/{id}/source", s.handleSource)
	mux.HandleFunc("GET /search", s.handleSearch)
	mux.HandleFunc("GET /formats", s.handleFormats)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /{$}", s.handleIndex)
	return s.logRequests(mux)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	size   int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	n, err := r.ResponseWriter.Write(b)
	r.size += n
	return n, err
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.String("size", humanize.Bytes(uint64(rec.size))),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "Failed to encode JSON", http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// parse returns the document for src, parsing it only when the same bytes
// have not been seen recently.
func (s *Server) parse(src []byte) (*ixbrl.Document, string, error) {
	hash := db.Hash(src)
	if doc, ok := s.cache.Get(hash); ok {
		return doc, hash, nil
	}
	doc, err := ixbrl.Parse(bytes.NewReader(src), s.opts...)
	if err != nil {
		return nil, hash, err
	}
	s.cache.Add(hash, doc)
	return doc, hash, nil
}

// handleParse handles POST /parse. The body is the filing. ?fields=
// returns the table form, ?store=true keeps the document.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	src, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBody))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, err)
		return
	}
	if len(src) == 0 {
		writeError(w, http.StatusBadRequest, errors.New("request body is empty"))
		return
	}

	var fields ixbrl.Fields
	if f := r.URL.Query().Get("fields"); f != "" {
		if fields, err = ixbrl.ParseFields(f); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}

	doc, hash, err := s.parse(src)
	if err != nil {
		s.log.Warn("parse failed", zap.String("hash", hash), zap.Error(err))
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	w.Header().Set("X-Content-Hash", hash)

	if store, _ := strconv.ParseBool(r.URL.Query().Get("store")); store {
		source := r.URL.Query().Get("source")
		if source == "" {
			source = "upload:" + hash
		}
		rec, err := s.db.StoreDocument(source, src, doc, facts.FromDocument(doc).CompanyName)
		if err != nil {
			s.log.Error("failed to store document", zap.String("hash", hash), zap.Error(err))
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		w.Header().Set("X-Document-Id", rec.ID)
	}

	if fields != "" {
		writeJSON(w, http.StatusOK, doc.ToTable(fields))
		return
	}
	writeJSON(w, http.StatusOK, doc.ToJSON())
}

// handleDocuments handles GET /documents
func (s *Server) handleDocuments(w http.ResponseWriter, r *http.Request) {
	records, err := s.db.ListDocuments()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if records == nil {
		records = []*db.Record{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) lookupError(w http.ResponseWriter, err error) {
	if errors.Is(err, db.ErrNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeError(w, http.StatusInternalServerError, err)
}

// handleDocument handles GET /documents/{id}
func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	data, err := s.db.GetJSON(r.PathValue("id"))
	if err != nil {
		s.lookupError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := s.db.GetDocument(id); err != nil {
		s.lookupError(w, err)
		return
	}
	if err := s.db.DeleteDocument(id); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleTable handles GET /documents/{id}/table
func (s *Server) handleTable(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := s.db.GetDocument(id); err != nil {
		s.lookupError(w, err)
		return
	}
	rows, err := s.db.GetRows(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if rows == nil {
		rows = []ixbrl.Row{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"columns": ixbrl.Columns(rows),
		"rows":    rows,
	})
}

func (s *Server) handleSource(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	rec, err := s.db.GetDocument(id)
	if err != nil {
		s.lookupError(w, err)
		return
	}
	src, err := s.db.GetSource(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if rec.FileType == string(ixbrl.FileTypeIXBRL) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
	} else {
		w.Header().Set("Content-Type", "text/xml; charset=utf-8")
	}
	w.Write(src)
}

// handleSearch handles GET /search?q=
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeError(w, http.StatusBadRequest, errors.New("q parameter is required"))
		return
	}
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 50
	}
	results, err := s.db.SearchConcepts(q, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if results == nil {
		results = []db.SearchResult{}
	}
	writeJSON(w, http.StatusOK, results)
}

type formatItem struct {
	Name     string `json:"name"`
	Provider string `json:"provider"`
}

// handleFormats handles GET /formats
func (s *Server) handleFormats(w http.ResponseWriter, r *http.Request) {
	items := lo.Map(s.registry.Names(), func(name string, _ int) formatItem {
		owner, _ := s.registry.Owner(name)
		return formatItem{Name: name, Provider: owner}
	})
	w.Header().Set("Cache-Control", "public, max-age=3600")
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// handleIndex serves the list of stored documents
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	records, err := s.db.ListDocuments()
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to list documents: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err = indexTemplate.Execute(w, map[string]any{
		"Documents": records,
		"Formats":   s.registry.Names(),
	})
	if err != nil {
		s.log.Error("failed to execute template", zap.Error(err))
	}
}

func main() {
	cfg, err := config.Load(os.Getenv("IXBRLPARSE_CONFIG"))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	database, err := db.New(cfg.Database)
	if err != nil {
		log.Fatal("failed to initialize database", zap.Error(err))
	}
	defer database.Close()

	server, err := NewServer(database, cfg, log)
	if err != nil {
		log.Fatal("failed to create server", zap.Error(err))
	}

	log.Info("starting server", zap.String("addr", cfg.Server.Addr))
	if err := http.ListenAndServe(cfg.Server.Addr, server.Routes()); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

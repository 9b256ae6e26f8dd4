package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/auditkit/question-analyzer/internal/domain/questions"
	"github.com/auditkit/question-analyzer/internal/middleware"
)

// Analyzer is the application service surface the router depends on.
type Analyzer interface {
	AnalyzeText(ctx context.Context, text string) (*questions.AnalysisResult, error)
	Archive(ctx context.Context, localPath, key string) string
	Record(ctx context.Context, filename, fileURL string, result *questions.AnalysisResult)
	ListAnalyses(ctx context.Context, page, pageSize int) ([]*questions.Analysis, error)
}

// TextExtractor turns an uploaded document into plain text.
type TextExtractor interface {
	ExtractFile(path string) (string, error)
}

// Options carries router tunables out of the config layer.
type Options struct {
	StaticDir      string
	MaxUploadBytes int64
	RateLimiter    *middleware.RateLimiter
	Health         http.HandlerFunc
	AuthKeys       map[string]string
}

type Router struct {
	svc       Analyzer
	extractor TextExtractor
	opts      Options
}

func NewRouter(svc Analyzer, extractor TextExtractor, opts Options) http.Handler {
	r := &Router{svc: svc, extractor: extractor, opts: opts}
	mux := chi.NewRouter()

	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
	}))
	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.MetricsMiddleware)
	mux.Use(middleware.APIKeyAuth(opts.AuthKeys))

	health := opts.Health
	if health == nil {
		health = func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("ok"))
		}
	}
	mux.Get("/health", health)
	mux.Get("/metrics", middleware.MetricsHandler)

	upload := r.wrap(r.handleUpload)
	if opts.RateLimiter != nil {
		limited := middleware.RateLimitMiddleware(opts.RateLimiter)(upload)
		mux.Post("/upload", limited.ServeHTTP)
	} else {
		mux.Post("/upload", upload)
	}
	mux.Get("/analyses", r.wrap(r.handleListAnalyses))

	if opts.StaticDir != "" {
		mux.Get("/", r.handleIndex)
		fs := http.StripPrefix("/static/", http.FileServer(http.Dir(opts.StaticDir)))
		mux.Get("/static/*", fs.ServeHTTP)
	}

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// httpError carries an explicit status through the wrap translation.
type httpError struct {
	code int
	msg  string
}

func (e *httpError) Error() string { return e.msg }

func badRequest(msg string) error {
	return &httpError{code: http.StatusBadRequest, msg: msg}
}

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}
		var he *httpError
		switch {
		case errors.As(err, &he):
			http.Error(w, he.msg, he.code)
		case errors.Is(err, questions.ErrNoText):
			http.Error(w, "Could not extract text from PDF", http.StatusBadRequest)
		case errors.Is(err, questions.ErrNoQuestions):
			http.Error(w, "No questions found in PDF. Please ensure the document contains audit questions.", http.StatusBadRequest)
		case errors.Is(err, middleware.ErrNotPDF):
			http.Error(w, "File must be a PDF", http.StatusBadRequest)
		default:
			http.Error(w, "analysis failed: "+err.Error(), http.StatusInternalServerError)
		}
	}
}

// POST /upload
// Multipart upload of one PDF in the "file" field. Returns the aggregated
// analysis for the document.
func (r *Router) handleUpload(w http.ResponseWriter, req *http.Request) error {
	if r.opts.MaxUploadBytes > 0 {
		req.Body = http.MaxBytesReader(w, req.Body, r.opts.MaxUploadBytes)
	}

	file, header, err := req.FormFile("file")
	if err != nil {
		return badRequest("file field is required")
	}
	defer file.Close()

	if err := middleware.ValidatePDFFilename(header.Filename); err != nil {
		return err
	}
	if err := middleware.ValidateFileSize(header.Size, r.opts.MaxUploadBytes); err != nil {
		return badRequest(err.Error())
	}

	// Scoped temp file for the PDF parser; removed on every exit path so
	// repeated uploads cannot leak disk space.
	tmp, err := os.CreateTemp("", "upload-*.pdf")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	text, err := r.extractor.ExtractFile(tmpPath)
	if err != nil {
		// Whole-document extraction failure is handled as empty text,
		// which AnalyzeText reports as a user-actionable condition.
		text = ""
	}

	result, err := r.svc.AnalyzeText(req.Context(), text)
	if err != nil {
		return err
	}

	key := filepath.Join("uploads", middleware.SanitizeArtifactKey(header.Filename))
	fileURL := r.svc.Archive(req.Context(), tmpPath, key)
	r.svc.Record(req.Context(), header.Filename, fileURL, result)

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(result)
}

// GET /analyses?page=&page_size=
func (r *Router) handleListAnalyses(w http.ResponseWriter, req *http.Request) error {
	page, _ := strconv.Atoi(req.URL.Query().Get("page"))
	size, _ := strconv.Atoi(req.URL.Query().Get("page_size"))

	list, err := r.svc.ListAnalyses(req.Context(), page, size)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(list)
}

// GET / serves the upload frontend
func (r *Router) handleIndex(w http.ResponseWriter, req *http.Request) {
	http.ServeFile(w, req, filepath.Join(r.opts.StaticDir, "index.html"))
}

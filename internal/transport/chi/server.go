// Package chi exposes the match engine over HTTP using the chi router.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	chirouter "github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/loupe-search/loupe/internal/domain"
	"github.com/loupe-search/loupe/internal/domain/match"
	"github.com/loupe-search/loupe/internal/logger"
	"github.com/loupe-search/loupe/internal/metrics"
	"github.com/loupe-search/loupe/internal/version"
)

// Engine is the transport's view of the match service.
type Engine interface {
	Match(ctx context.Context, q *match.Query, page *match.Page) match.Result
	CatalogSize() int
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Options configures the HTTP server wiring.
type Options struct {
	APIKeys      []string
	RateLimitRPM int      // per client IP, 0 disables
	CORSOrigins  []string // empty disables CORS headers
	CacheSize    int      // match response LRU entries, 0 disables
}

// Server handles the loupe HTTP API.
type Server struct {
	engine        Engine
	logger        *zap.Logger
	opts          Options
	cache         *lru.Cache[string, match.Result]
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server around the match engine.
func NewServer(engine Engine, logger *zap.Logger, opts Options) *Server {
	s := &Server{
		engine: engine,
		logger: logger,
		opts:   opts,
	}
	if opts.CacheSize > 0 {
		cache, err := lru.New[string, match.Result](opts.CacheSize)
		if err == nil {
			s.cache = cache
		} else {
			logger.Warn("match cache disabled", zap.Error(err))
		}
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrEmptyQuery, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrCatalogNotLoaded, http.StatusServiceUnavailable, codeCatalogUnavailable),
		sentinelHandler(domain.ErrRateLimited, http.StatusTooManyRequests, codeRateLimited),
	}
	return s
}

// Router builds the chi router with the full middleware chain.
func (s *Server) Router() http.Handler {
	r := chirouter.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(s.requestLogger())
	r.Use(metrics.Middleware())

	if len(s.opts.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.opts.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Authorization", "Content-Type"},
			MaxAge:         300,
		}))
	}
	if s.opts.RateLimitRPM > 0 {
		r.Use(httprate.Limit(
			s.opts.RateLimitRPM, time.Minute,
			httprate.WithKeyFuncs(httprate.KeyByIP),
			httprate.WithLimitHandler(func(w http.ResponseWriter, _ *http.Request) {
				writeError(w, http.StatusTooManyRequests, codeRateLimited, "rate limit exceeded")
			}),
		))
	}
	r.Use(BearerAuthMiddleware(s.opts.APIKeys))

	r.Get("/health", s.handleHealth)
	r.Get("/version", s.handleVersion)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	r.Route("/api", func(api chirouter.Router) {
		api.Post("/match", s.handleMatchPost)
		api.Get("/match", s.handleMatchGet)
	})

	return r
}

// requestLogger stores a request-scoped logger in the context so deeper
// layers can annotate their events with the request id, and emits one
// canonical log line per request once the handler returns.
func (s *Server) requestLogger() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqLog := s.logger.With(zap.String("request_id", chimw.GetReqID(r.Context())))

			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(logger.ContextWithLogger(r.Context(), reqLog)))

			reqLog.Info("request completed",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}

// handleMatchPost handles POST /api/match.
func (s *Server) handleMatchPost(w http.ResponseWriter, r *http.Request) {
	var req matchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}
	s.serveMatch(w, r, req)
}

// handleMatchGet handles GET /api/match with query parameters.
func (s *Server) handleMatchGet(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()
	req := matchRequest{
		Name:     qs.Get("name"),
		Website:  qs.Get("website"),
		Phone:    qs.Get("phone"),
		Facebook: qs.Get("facebook"),
		Sort:     qs.Get("sort"),
		Dir:      qs.Get("dir"),
		Contains: qs.Get("contains"),
	}

	var err error
	if req.Page, err = intParam(qs.Get("page")); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "page: "+err.Error())
		return
	}
	if req.PerPage, err = intParam(qs.Get("per_page")); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "per_page: "+err.Error())
		return
	}
	if req.MinScore, err = floatParam(qs.Get("min_score")); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "min_score: "+err.Error())
		return
	}

	s.serveMatch(w, r, req)
}

func (s *Server) serveMatch(w http.ResponseWriter, r *http.Request, req matchRequest) {
	q, err := match.New(req.Name, req.Website, req.Phone, req.Facebook)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	page, err := match.NewPage(req.Page, req.PerPage, match.Sort(req.Sort), match.Dir(req.Dir), req.MinScore, req.Contains)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	key := cacheKey(&q, &page)
	if s.cache != nil {
		if cached, ok := s.cache.Get(key); ok {
			metrics.MatchCacheTotal.WithLabelValues("hit").Inc()
			writeJSON(w, http.StatusOK, cached)
			return
		}
		metrics.MatchCacheTotal.WithLabelValues("miss").Inc()
	}

	result := s.engine.Match(r.Context(), &q, &page)
	if s.cache != nil {
		s.cache.Add(key, result)
	}

	writeJSON(w, http.StatusOK, result)
}

// handleHealth handles GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:         "ok",
		CatalogRecords: s.engine.CatalogSize(),
	})
}

// handleVersion handles GET /version.
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, versionResponse{
		Version:   version.Version,
		Commit:    version.Commit,
		BuildDate: version.Date,
	})
}

// cacheKey builds a deterministic key from the canonical request fields.
func cacheKey(q *match.Query, p *match.Page) string {
	var b strings.Builder
	for _, f := range []string{q.Name(), q.Website(), q.Phone(), q.Facebook(), string(p.Sort()), string(p.Dir()), p.Contains()} {
		b.WriteString(f)
		b.WriteByte('\x00')
	}
	fmt.Fprintf(&b, "%d\x00%d\x00%g", p.Number(), p.PerPage(), p.MinScore())
	return b.String()
}

func intParam(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.New("must be an integer")
	}
	return v, nil
}

func floatParam(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.New("must be a number")
	}
	return v, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code errorCode, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrEmptyQuery,
		domain.ErrCatalogNotLoaded,
		domain.ErrNamesUnavailable,
		domain.ErrRateLimited,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code errorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}

package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"wordgrid/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	Words(ctx context.Context, req types.WordRequest) (types.WordResponse, error)
	Refresh(ctx context.Context, req types.WordRequest) (types.WordResponse, error)
	GenerateCache(ctx context.Context, req types.WordRequest) (types.CacheGenerateResponse, error)
	Cache(ctx context.Context, sessionID string) (types.CacheResponse, error)
	ClearUsed(ctx context.Context, sessionID string) error
	ResetBranch(ctx context.Context, req types.ResetBranchRequest) (types.BranchResponse, error)
	CreateSession(ctx context.Context) (types.SessionResponse, error)
	DeleteSession(ctx context.Context, sessionID string) error
	Health() types.HealthResponse
	Status() types.StatusResponse
	Ready() bool
}

func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	if corsEnabled {
		r.Use(corsHandler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/words", wordsHandler(svc.Words, "words"))
		r.Post("/refresh", wordsHandler(svc.Refresh, "refresh"))

		r.Post("/generate-cache", func(w http.ResponseWriter, r *http.Request) {
			req := types.WordRequest{IsSentenceStart: true}
			if !decodeJSON(w, r, &req, false) {
				return
			}
			serve(w, r, "generate_cache", func(ctx context.Context) (any, []string, error) {
				res, err := svc.GenerateCache(ctx, req)
				return res, res.CachedWords, err
			})
		})

		r.Get("/cache", func(w http.ResponseWriter, r *http.Request) {
			id := r.URL.Query().Get("session_id")
			serve(w, r, "cache", func(ctx context.Context) (any, []string, error) {
				res, err := svc.Cache(ctx, id)
				return res, res.CachedWords, err
			})
		})

		r.Post("/clear-used", func(w http.ResponseWriter, r *http.Request) {
			var req types.SessionRequest
			if !decodeJSON(w, r, &req, true) {
				return
			}
			serve(w, r, "clear_used", func(ctx context.Context) (any, []string, error) {
				if err := svc.ClearUsed(ctx, req.SessionID); err != nil {
					return nil, nil, err
				}
				return types.ClearResponse{SessionID: sessionOrDefault(req.SessionID), Status: "cleared"}, nil, nil
			})
		})

		r.Post("/reset-branch", func(w http.ResponseWriter, r *http.Request) {
			req := types.ResetBranchRequest{WordRequest: types.WordRequest{IsSentenceStart: true}}
			if !decodeJSON(w, r, &req, false) {
				return
			}
			if strings.TrimSpace(req.FirstWord) == "" {
				writeJSONError(w, http.StatusBadRequest, "first_word is required")
				return
			}
			serve(w, r, "reset_branch", func(ctx context.Context) (any, []string, error) {
				res, err := svc.ResetBranch(ctx, req)
				return res, res.Words, err
			})
		})

		r.Post("/sessions", func(w http.ResponseWriter, r *http.Request) {
			serve(w, r, "create_session", func(ctx context.Context) (any, []string, error) {
				res, err := svc.CreateSession(ctx)
				return res, nil, err
			})
		})

		r.Delete("/sessions/{id}", func(w http.ResponseWriter, r *http.Request) {
			id := chi.URLParam(r, "id")
			serve(w, r, "delete_session", func(ctx context.Context) (any, []string, error) {
				if err := svc.DeleteSession(ctx, id); err != nil {
					return nil, nil, err
				}
				return types.ClearResponse{SessionID: id, Status: "deleted"}, nil, nil
			})
		})

		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, svc.Health())
		})
	})

	r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Status())
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("loading"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	return r
}

func corsHandler() func(http.Handler) http.Handler {
	origins := corsAllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	methods := corsAllowedMethods
	if len(methods) == 0 {
		methods = []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions}
	}
	headers := corsAllowedHeaders
	if len(headers) == 0 {
		headers = []string{"Accept", "Content-Type", "X-Log-Level", "X-Request-Id"}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   methods,
		AllowedHeaders:   headers,
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: !(len(origins) == 1 && origins[0] == "*"),
		MaxAge:           300,
	})
}

func wordsHandler(op func(context.Context, types.WordRequest) (types.WordResponse, error), name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// An omitted is_sentence_start means a new sentence.
		req := types.WordRequest{IsSentenceStart: true}
		if !decodeJSON(w, r, &req, false) {
			return
		}
		serve(w, r, name, func(ctx context.Context) (any, []string, error) {
			res, err := op(ctx, req)
			return res, res.Words, err
		})
	}
}

// decodeJSON enforces the JSON content type and body limit and decodes the
// body into dst. With allowEmpty, a missing body leaves dst untouched. It
// writes the error response and returns false on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any, allowEmpty bool) bool {
	if allowEmpty && r.ContentLength == 0 {
		return true
	}
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return false
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if allowEmpty && errors.Is(err, io.EOF) {
			return true
		}
		// If exceeded size, MaxBytesReader may cause an error; still return 400 to avoid size leak details
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

// serve runs op under the joined request context, maps its error and writes
// the JSON result.
func serve(w http.ResponseWriter, r *http.Request, op string, fn func(ctx context.Context) (any, []string, error)) {
	start := time.Now()
	lvl := requestLogLevel(r)
	ctx, cancel := requestContext(r)
	defer cancel()

	res, words, err := fn(ctx)
	if err != nil {
		// If the client went away there is nobody to answer.
		if r.Context().Err() != nil {
			return
		}
		status := statusFor(err)
		if status == http.StatusTooManyRequests {
			IncrementBackpressure(op)
		}
		writeJSONError(w, status, err.Error())
		logEnd(r, lvl, op, status, start, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, res)
	logEnd(r, lvl, op, http.StatusOK, start, nil, words)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zlog.Error().Err(err).Msg("encode response")
	}
}

func sessionOrDefault(id string) string {
	if id == "" {
		return "default"
	}
	return id
}

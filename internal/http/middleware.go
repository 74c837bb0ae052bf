package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/auth"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/metrics"
	"github.com/sirupsen/logrus"
)

const headerRequestID = "X-Request-ID"

type ctxKey int

const (
	requestIDKey ctxKey = iota
	principalKey
)

// TokenVerifier turns a bearer token into the authenticated principal.
type TokenVerifier interface {
	Verify(token string) (domain.Principal, error)
}

func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}

		w.Header().Set(headerRequestID, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// observe logs every request and records it by route pattern, not raw path,
// to keep label cardinality bounded.
func observe(log logrus.FieldLogger, m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			elapsed := time.Since(start)
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			m.ObserveRequest(route, r.Method, status, elapsed)

			log.WithFields(logrus.Fields{
				"request_id":  requestIDFrom(r.Context()),
				"method":      r.Method,
				"route":       route,
				"path":        r.URL.Path,
				"status":      status,
				"bytes":       ww.BytesWritten(),
				"duration_ms": elapsed.Milliseconds(),
			}).Info("request served")
		})
	}
}

func recoverer(log logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				log.WithFields(logrus.Fields{
					"request_id": requestIDFrom(r.Context()),
					"panic":      rec,
				}).Error("handler panicked")

				respondMessage(w, http.StatusInternalServerError, "internal error")
			}()

			next.ServeHTTP(w, r)
		})
	}
}

func authenticate(tokens TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				respondMessage(w, http.StatusUnauthorized, auth.ErrTokenMissing.Error())
				return
			}

			principal, err := tokens.Verify(token)
			if err != nil {
				message := err.Error()
				if errors.Is(err, auth.ErrTokenInvalid) {
					message = auth.ErrTokenInvalid.Error()
				}
				respondMessage(w, http.StatusUnauthorized, message)
				return
			}

			ctx := context.WithValue(r.Context(), principalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	return token, token != ""
}

// requestLog tags entries with the request id and, behind authenticate, the user.
func requestLog(log logrus.FieldLogger, r *http.Request) logrus.FieldLogger {
	entry := log.WithField("request_id", requestIDFrom(r.Context()))
	if principal, ok := PrincipalFrom(r.Context()); ok {
		entry = entry.WithField("user_id", principal.UserID)
	}
	return entry
}

// PrincipalFrom returns the user authenticated for this request, if any.
func PrincipalFrom(ctx context.Context) (domain.Principal, bool) {
	principal, ok := ctx.Value(principalKey).(domain.Principal)
	return principal, ok
}

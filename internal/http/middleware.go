package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/logging"
	"go.uber.org/zap"
)

// HeaderUserEmail carries the caller identity. It is trusted as is.
const HeaderUserEmail = "User-Email"

type identityKey struct{}

func identityFrom(ctx context.Context) domain.Identity {
	if identity, ok := ctx.Value(identityKey{}).(domain.Identity); ok {
		return identity
	}
	return domain.Identity{Status: domain.IdentityAnonymous}
}

// identify resolves the identity header for every request. Public routes ignore the result.
func (h *Handler) identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := h.accounts.Resolve(r.Context(), r.Header.Get(HeaderUserEmail))
		if err != nil {
			h.respondDomainError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), identityKey{}, identity)
		if identity.Status == domain.IdentityAuthenticated {
			logger := logging.FromContext(ctx, h.log).With(zap.Int64("user_id", identity.User.ID))
			ctx = logging.WithContext(ctx, logger)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch identityFrom(r.Context()).Status {
		case domain.IdentityAuthenticated:
			next.ServeHTTP(w, r)
		case domain.IdentityInvalid:
			respondError(w, http.StatusUnauthorized, "unauthenticated", "unknown user")
		default:
			respondError(w, http.StatusUnauthorized, "unauthenticated", "authentication required")
		}
	})
}

func (h *Handler) requireAdmin(next http.Handler) http.Handler {
	return h.requireUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !identityFrom(r.Context()).User.IsAdmin() {
			respondError(w, http.StatusForbidden, "forbidden", "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	}))
}

// logRequests attaches a request-scoped logger and writes one access line per request.
func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		logger := h.log.With(zap.String("request_id", middleware.GetReqID(r.Context())))
		ctx := logging.WithContext(r.Context(), logger)

		next.ServeHTTP(ww, r.WithContext(ctx))

		logger.Info("http_request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("latency", time.Since(start)),
		)
	})
}

func (h *Handler) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.metrics == nil {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		h.metrics.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		h.metrics.HTTPDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

package api

import (
	"context"
	"linkbio/internal/auth"
	"linkbio/internal/logger"
	"linkbio/internal/metrics"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const accountContextKey = contextKey("account")

func (s *Server) verifyToken(tokenString string) (*auth.AppClaims, error) {
	var opts []jwt.ParserOption
	if s.config.JWT.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.config.JWT.Issuer))
	}
	return auth.VerifyJWT(tokenString, s.config.JWT.Secret, opts...)
}

func bearerToken(r *http.Request) (string, bool) {
	headerParts := strings.Split(r.Header.Get("Authorization"), " ")
	if len(headerParts) != 2 || headerParts[0] != "Bearer" || headerParts[1] == "" {
		return "", false
	}
	return headerParts[1], true
}

func (s *Server) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			http.Error(w, "Authorization header required", http.StatusUnauthorized)
			return
		}

		tokenString, ok := bearerToken(r)
		if !ok {
			http.Error(w, "Invalid Authorization header format", http.StatusUnauthorized)
			return
		}

		claims, err := s.verifyToken(tokenString)
		if err != nil {
			http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), accountContextKey, claims)
		ctx = logger.WithContext(ctx, logger.FromContext(ctx).With(slog.String("account_id", claims.AccountID())))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuthMiddleware attaches the caller's claims when a valid token is
// present and otherwise lets the request through anonymously.
func (s *Server) OptionalAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if tokenString, ok := bearerToken(r); ok {
			if claims, err := s.verifyToken(tokenString); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), accountContextKey, claims))
			}
		}
		next.ServeHTTP(w, r)
	})
}

func GetAccountFromContext(ctx context.Context) *auth.AppClaims {
	if claims, ok := ctx.Value(accountContextKey).(*auth.AppClaims); ok {
		return claims
	}
	return nil
}

// accountID returns the caller's account, or "" for anonymous requests.
func accountID(ctx context.Context) string {
	if claims := GetAccountFromContext(ctx); claims != nil {
		return claims.AccountID()
	}
	return ""
}

// RequestLogger scopes the context logger to the request ID.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		l := logger.L.With(slog.String("request_id", middleware.GetReqID(r.Context())))
		next.ServeHTTP(w, r.WithContext(logger.WithContext(r.Context(), l)))
	})
}

func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
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

		metrics.HTTPRequests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		metrics.HTTPDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}

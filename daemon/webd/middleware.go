package webd

import (
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	ghandlers "github.com/gorilla/handlers"
)

// tokenAuthenticationMiddleware checks for a valid token in the Authorization header
// or the api_token query param when CATPACE_TOKEN is set.
// If no token is set, it allows all requests.
func tokenAuthenticationMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		validToken := os.Getenv("CATPACE_TOKEN")
		if validToken == "" {
			next.ServeHTTP(w, r)
			return
		}
		token := r.Header.Get("Authorization")
		if token == "" {
			token = r.URL.Query().Get("api_token")
		}
		if token != validToken {
			slog.Warn("Invalid token", "method", r.Method, "url", r.URL.Path,
				"remote-addr", r.RemoteAddr, "user-agent", r.UserAgent())
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func permissiveCorsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Add("Access-Control-Allow-Headers", "Origin, X-Requested-With, Content-Type, Accept, Authorization")
		next.ServeHTTP(w, r)
	})
}

func contentTypeMiddlewareFunc(contentType string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", contentType)
			next.ServeHTTP(w, r)
		})
	}
}

func (s *WebDaemon) bodyLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.Config.MaxBodyBytes > 0 {
			r.Body = http.MaxBytesReader(w, r.Body, s.Config.MaxBodyBytes)
		}
		next.ServeHTTP(w, r)
	})
}

// writeLog logs one request per line through slog.
func writeLog(_ io.Writer, params ghandlers.LogFormatterParams) {
	slog.Info("HTTP",
		"method", params.Request.Method,
		"uri", params.URL.RequestURI(),
		"status", params.StatusCode,
		"size", params.Size,
		"remote", params.Request.RemoteAddr,
		"elapsed", time.Since(params.TimeStamp).Round(time.Microsecond))
}

func loggingMiddleware(next http.Handler) http.Handler {
	return ghandlers.CustomLoggingHandler(io.Discard, next, writeLog)
}

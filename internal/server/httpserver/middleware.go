package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/orio/internal/logging"
	"github.com/dmitrijs2005/orio/internal/server/session"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

type ctxKeyRequestID struct{}

// RequestID returns the id the logging middleware assigned to the request.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKeyRequestID{}).(string)
	return id
}

type logHandler struct {
	log  logging.Logger
	next http.Handler
}

type responseRecorder struct {
	b      int
	status int
	w      http.ResponseWriter
}

func (r *responseRecorder) Header() http.Header { return r.w.Header() }

func (r *responseRecorder) Write(p []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.w.Write(p)
	r.b += n
	return n, err
}

func (r *responseRecorder) WriteHeader(statusCode int) {
	if r.status == 0 {
		r.status = statusCode
	}
	r.w.WriteHeader(statusCode)
}

func (lh *logHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	ctx := context.WithValue(r.Context(), ctxKeyRequestID{}, requestID)
	w.Header().Set(requestIDHeader, requestID)

	start := time.Now()
	rr := &responseRecorder{w: w}
	log := lh.log.With(
		"http.req.path", r.URL.Path,
		"http.req.method", r.Method,
		"http.req.id", requestID,
	)
	log.Debug(ctx, "request started")
	defer func() {
		status := rr.status
		if status == 0 {
			status = http.StatusOK
		}
		log.Info(ctx, "request complete",
			"http.resp.took_ms", time.Since(start).Milliseconds(),
			"http.resp.status", status,
			"http.resp.bytes", rr.b)
	}()

	lh.next.ServeHTTP(rr, r.WithContext(ctx))
}

// loadSession decodes the session cookie into the request context.
func (s *Server) loadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := s.sessions.Load(r)
		next.ServeHTTP(w, r.WithContext(session.WithSession(r.Context(), sess)))
	})
}

// loginRequired sends anonymous visitors to the login page.
func (s *Server) loginRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !session.FromContext(r.Context()).Authenticated() {
			http.Redirect(w, r, "/inicio", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// guestRequired sends logged-in users to the menu.
func (s *Server) guestRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if session.FromContext(r.Context()).Authenticated() {
			http.Redirect(w, r, "/menu", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

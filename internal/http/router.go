package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"scholarfind/internal/http/handlers"
	"scholarfind/internal/http/metrics"
	httpmw "scholarfind/internal/http/middleware"
)

type RouterDependencies struct {
	AuthHandler        *handlers.AuthHandler
	ScholarshipHandler *handlers.ScholarshipHandler
	ApplicationHandler *handlers.ApplicationHandler
	AuthMiddleware     *httpmw.AuthMiddleware
	Metrics            *metrics.Collector
	Logger             zerolog.Logger
	RequestTimeout     time.Duration
}

type Router struct {
	deps    RouterDependencies
	metrics http.Handler
}

const maxBodyBytes = 1 << 20

func NewRouter(deps RouterDependencies) http.Handler {
	r := &Router{deps: deps}
	if deps.Metrics != nil {
		r.metrics = deps.Metrics.Handler()
	}
	return r
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	handler := httpmw.Chain(r.baseHandler(),
		httpmw.RequestID,
		httpmw.Logging(r.deps.Logger),
		httpmw.CORS,
		httpmw.BodyLimit(maxBodyBytes),
		httpmw.Recover,
		httpmw.Metrics(r.deps.Metrics),
		httpmw.Timeout(r.deps.RequestTimeout),
	)
	handler.ServeHTTP(w, req)
}

func (r *Router) baseHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		path := req.URL.Path

		switch {
		case req.Method == http.MethodGet && path == "/health":
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		case req.Method == http.MethodGet && path == "/metrics":
			if r.metrics != nil {
				r.metrics.ServeHTTP(w, req)
				return
			}
		case req.Method == http.MethodPost && path == "/auth/register":
			r.deps.AuthHandler.Register(w, req)
			return
		case req.Method == http.MethodPost && path == "/auth/login":
			r.deps.AuthHandler.Login(w, req)
			return
		case req.Method == http.MethodGet && path == "/scholarships":
			r.deps.ScholarshipHandler.List(w, req)
			return
		case req.Method == http.MethodGet && strings.HasPrefix(path, "/scholarships/") && path != "/scholarships/user/created":
			r.deps.ScholarshipHandler.Get(w, req)
			return
		}

		if strings.HasPrefix(path, "/auth/me") || strings.HasPrefix(path, "/scholarships") || strings.HasPrefix(path, "/applications") {
			protected := r.deps.AuthMiddleware.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				r.handleProtected(w, req)
			}))
			protected.ServeHTTP(w, req)
			return
		}

		http.NotFound(w, req)
	})
}

func (r *Router) handleProtected(w http.ResponseWriter, req *http.Request) {
	path := req.URL.Path

	switch {
	case req.Method == http.MethodGet && path == "/auth/me":
		r.deps.AuthHandler.Me(w, req)
		return
	case req.Method == http.MethodPost && path == "/scholarships":
		r.deps.ScholarshipHandler.Create(w, req)
		return
	case req.Method == http.MethodGet && path == "/scholarships/user/created":
		r.deps.ScholarshipHandler.ListOwned(w, req)
		return
	case req.Method == http.MethodPut && strings.HasPrefix(path, "/scholarships/"):
		r.deps.ScholarshipHandler.Update(w, req)
		return
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/scholarships/"):
		r.deps.ScholarshipHandler.Delete(w, req)
		return
	case req.Method == http.MethodGet && path == "/applications/my":
		r.deps.ApplicationHandler.ListMine(w, req)
		return
	case req.Method == http.MethodGet && path == "/applications/received":
		r.deps.ApplicationHandler.ListReceived(w, req)
		return
	case req.Method == http.MethodPost && strings.HasPrefix(path, "/applications/"):
		r.deps.ApplicationHandler.Submit(w, req)
		return
	case req.Method == http.MethodPut && strings.HasPrefix(path, "/applications/") && strings.HasSuffix(path, "/status"):
		r.deps.ApplicationHandler.UpdateStatus(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/applications/"):
		r.deps.ApplicationHandler.Get(w, req)
		return
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/applications/"):
		r.deps.ApplicationHandler.Withdraw(w, req)
		return
	}

	http.NotFound(w, req)
}

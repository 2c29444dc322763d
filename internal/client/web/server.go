package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrijs2005/lostfound/internal/client/guard"
	"github.com/dmitrijs2005/lostfound/internal/client/services"
	"github.com/dmitrijs2005/lostfound/internal/logging"
)

// Deps are the collaborators of a Server.
type Deps struct {
	Auth     services.AuthService
	Items    services.ItemService
	Reports  services.ReportService
	CloseOut services.CloseOutService
	Tokens   guard.TokenChecker
	Log      logging.Logger

	Placeholder string
}

type Server struct {
	auth     services.AuthService
	items    services.ItemService
	reports  services.ReportService
	closeOut services.CloseOutService
	tokens   guard.TokenChecker
	log      logging.Logger

	placeholder string
	pages       pages
	flash       flash
}

func New(d Deps) (*Server, error) {
	p, err := parsePages()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Server{
		auth:        d.Auth,
		items:       d.Items,
		reports:     d.Reports,
		closeOut:    d.CloseOut,
		tokens:      d.Tokens,
		log:         d.Log,
		placeholder: d.Placeholder,
		pages:       p,
	}, nil
}

// OnUnauthorized is the API client's 401 hook. Handlers redirect to the
// login page themselves; the hook leaves a notice for it.
func (s *Server) OnUnauthorized(ctx context.Context) {
	s.flash.set(services.Notice{Level: services.LevelWarning, Title: "Sesi berakhir", Message: "Silakan login kembali."})
}

// Routes returns the HTTP handler of the frontend.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/", s.handleHome)
	r.Get("/items/{id}", s.handleDetail)
	r.Post("/items/{id}/found", s.handleConfirmFound)
	r.Post("/logout", s.handleLogout)

	r.Group(func(r chi.Router) {
		r.Use(guarded(guard.RequireAnonymous(s.tokens)))
		r.Get("/login", s.handleLogin)
		r.Post("/login", s.handleLoginPost)
		r.Get("/register", s.handleRegister)
		r.Post("/register", s.handleRegisterPost)
	})

	r.Group(func(r chi.Router) {
		r.Use(guarded(guard.RequireAuth(s.tokens)))
		r.Get("/report", s.handleReport)
		r.Post("/report", s.handleReportPost)
		r.Get("/{id}/confirmation", s.handleConfirmation)
		r.Post("/{id}/confirmation", s.handleConfirmationPost)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.renderStatus(w, r, http.StatusNotFound, "error", page{Title: "Tidak ditemukan", Data: "Halaman tidak ditemukan."})
	})
	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Info(r.Context(), "http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info(ctx, "web frontend listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.log.Info(ctx, "web frontend stopped")
	return nil
}

// flash holds one notice until the next rendered page.
type flash struct {
	mu     sync.Mutex
	notice services.Notice
}

func (f *flash) set(n services.Notice) {
	if n.IsZero() {
		return
	}
	f.mu.Lock()
	f.notice = n
	f.mu.Unlock()
}

func (f *flash) take() services.Notice {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := f.notice
	f.notice = services.Notice{}
	return n
}

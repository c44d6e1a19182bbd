package www

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog/v2"
	"github.com/opattison/figureimg/internal/figure"
	"github.com/opattison/figureimg/internal/markdown"
	"github.com/opattison/figureimg/internal/pages"
	"github.com/opattison/figureimg/internal/tags"
	"github.com/opattison/figureimg/internal/www/config"
	"github.com/opattison/figureimg/internal/www/view"
)

type Server struct {
	cfg   config.Config
	pages *pages.Service
	view  *view.Service
}

// New loads every page in content and prepares the views.
func New(cfg config.Config, content fs.FS) (*Server, error) {
	registry := tags.NewRegistry()
	if err := figure.Register(registry, figure.WithBaseURLKey(cfg.FigureBaseURLKey)); err != nil {
		return nil, fmt.Errorf("error registering tags: %w", err)
	}

	pagesSvc := pages.New(content,
		markdown.WithTags(registry),
		markdown.WithSite(cfg.Site),
		markdown.WithBaseURLKey(cfg.FigureBaseURLKey),
	)
	if err := pagesSvc.Start(); err != nil {
		return nil, fmt.Errorf("error starting pages service: %w", err)
	}

	viewSvc, err := view.New()
	if err != nil {
		return nil, fmt.Errorf("error creating view service: %w", err)
	}

	slog.Info("loaded pages",
		slog.Int("count", len(pagesSvc.List())),
		slog.Any("tags", registry.Names()),
	)

	return &Server{
		cfg:   cfg,
		pages: pagesSvc,
		view:  viewSvc,
	}, nil
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/meta/healthcheck", s.healthcheck)

	r.Group(func(r chi.Router) {
		r.Use(httplog.RequestLogger(httplog.NewLogger("www")))
		r.Get("/", s.listPages)
		r.Get("/{slug}", s.showPage)
	})

	return r
}

func (s *Server) Start() error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", s.cfg.Port),
		Handler:           s.Handler(),
		ReadTimeout:       1 * time.Second,
		ReadHeaderTimeout: 500 * time.Millisecond,
		WriteTimeout:      5 * time.Second,
	}

	slog.Info("listening on", slog.String("port", s.cfg.Port))

	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("error starting server: %w", err)
	}

	return nil
}

func (s *Server) listPages(w http.ResponseWriter, _ *http.Request) {
	if err := s.view.RenderHTML(w, "index", s.pages.List(), view.WithTitle("Pages")); err != nil {
		returnError(w, err, "error rendering page")

		return
	}
}

func (s *Server) showPage(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	page, err := s.pages.Get(slug)
	if err != nil {
		if errors.As(err, &pages.PageNotFoundError{}) {
			returnCodeError(w, http.StatusNotFound, fmt.Sprintf("page not found: %s", slug))

			return
		}

		returnError(w, err, "error getting page")

		return
	}

	if err := s.view.RenderHTML(w, "page", page,
		view.WithTitle(page.Title),
		view.WithDescription(page.Description),
	); err != nil {
		returnError(w, err, "error rendering page")

		return
	}
}

func (*Server) healthcheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

type apiError struct {
	Code    int    `json:"code"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

func returnCodeError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	_ = json.NewEncoder(w).Encode(apiError{ //nolint:errchkjson
		Code:    code,
		Reason:  http.StatusText(code),
		Message: message,
	})
}

func returnError(w http.ResponseWriter, err error, message string) {
	returnCodeError(w, http.StatusInternalServerError, fmt.Errorf("%s: %w", message, err).Error())
}

package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wellywell/orderdesk/internal/auth"
	"github.com/wellywell/orderdesk/internal/config"
	"github.com/wellywell/orderdesk/internal/handlers"
)

const (
	compressLevel = 5
)

type Middleware interface {
	Handle(h http.Handler) http.Handler
}

type Router struct {
	address string
	router  *chi.Mux
}

func NewRouter(conf *config.ServerConfig, h *handlers.HandlerSet, middlewares ...Middleware) *Router {

	r := chi.NewRouter()

	for _, m := range middlewares {
		r.Use(m.Handle)
	}
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(compressLevel))

	r.Handle("/metrics", promhttp.Handler())
	r.Post("/api/user/login", h.HandleLogin)

	authMiddleware := &auth.AuthenticateMiddleware{Secret: []byte(conf.Secret)}

	r.Group(func(r chi.Router) {

		r.Use(authMiddleware.Handle)

		r.Route("/api/orders", func(r chi.Router) {
			r.Get("/", h.HandleGetOrders)
			r.Post("/", h.HandleCreateOrder)
			r.Post("/load", h.HandleLoadMonth)
			r.Get("/export.xlsx", h.HandleExport)
			r.Get("/summary", h.HandleSummary)
			r.Post("/fulfill", h.HandleFulfill)
			r.Put("/{id}", h.HandleEditOrder)
			r.Get("/{id}/form", h.HandleGetEditForm)
			r.Get("/{id}/duplicate", h.HandleDuplicate)
			r.Post("/{id}/check", h.HandleToggleCheck)
		})

		r.Get("/api/filters/{column}", h.HandleFilterValues)
		r.Get("/api/columns", h.HandleGetColumns)
		r.Put("/api/columns", h.HandlePutColumns)
		r.Post("/api/sort/{column}", h.HandleToggleSort)

		r.Get("/api/users/assignable", h.HandleGetAssignable)
		r.Get("/api/catalog", h.HandleGetCatalog)
		r.Post("/api/units", h.HandleAddUnit)
		r.Post("/api/months", h.HandleCreateMonth)
		r.Get("/api/notices", h.HandleGetNotices)
	})

	return &Router{router: r, address: conf.RunAddress}
}

func (r *Router) Handler() http.Handler {
	return r.router
}

func (r *Router) ListenAndServe() error {
	err := http.ListenAndServe(r.address, r.router)
	return err
}

package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/nikolayk812/storefront/internal/auth"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/metrics"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/currency"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type UserService interface {
	Register(ctx context.Context, name, email, password string) (int32, error)
	Login(ctx context.Context, email, password string) (auth.Session, error)
}

type CartService interface {
	Add(ctx context.Context, item domain.LineItem) error
	View() []domain.LineItem
}

type CheckoutService interface {
	Checkout(ctx context.Context) (domain.SaleResult, error)
}

type Deps struct {
	Log     logrus.FieldLogger
	Metrics *metrics.Metrics
	Tokens  TokenVerifier

	Products   port.ProductRepository
	Categories port.CategoryRepository
	Users      UserService
	Cart       CartService
	Checkout   CheckoutService
	DB         Pinger

	RequestTimeout  time.Duration
	DefaultCurrency currency.Unit
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(observe(d.Log, d.Metrics))
	r.Use(recoverer(d.Log))
	if d.RequestTimeout > 0 {
		r.Use(middleware.Timeout(d.RequestTimeout))
	}

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		respondMessage(w, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		respondMessage(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Get("/health", healthHandler(d.DB))

	products := &productHandler{repo: d.Products, log: d.Log, defaultCurrency: d.DefaultCurrency}
	categories := &categoryHandler{repo: d.Categories, log: d.Log}
	users := &userHandler{users: d.Users, log: d.Log}
	sales := &saleHandler{cart: d.Cart, checkout: d.Checkout, log: d.Log}

	requireAuth := authenticate(d.Tokens)

	r.Route("/products", func(r chi.Router) {
		r.Get("/", products.list)
		r.Get("/{id}", products.get)

		r.With(requireAuth).Post("/", products.create)
		r.With(requireAuth).Put("/{id}", products.update)
		r.With(requireAuth).Delete("/{id}", products.delete)
	})

	r.Route("/categories", func(r chi.Router) {
		r.Get("/", categories.list)
		r.Get("/{id}", categories.get)

		r.With(requireAuth).Post("/", categories.create)
		r.With(requireAuth).Put("/{id}", categories.update)
		r.With(requireAuth).Delete("/{id}", categories.delete)
	})

	r.Post("/users/register", users.register)
	r.Post("/users/login", users.login)

	r.Group(func(r chi.Router) {
		r.Use(requireAuth)

		r.Post("/cart/add", sales.addToCart)
		r.Get("/cart", sales.viewCart)
		r.Post("/sale", sales.sale)
	})

	return r
}

func healthHandler(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			if err := db.Ping(r.Context()); err != nil {
				respondMessage(w, http.StatusServiceUnavailable, "database unavailable")
				return
			}
		}

		respondMessage(w, http.StatusOK, "ok")
	}
}

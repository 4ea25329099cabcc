package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/moneta-dev/moneta/internal/auth"
	"github.com/moneta-dev/moneta/internal/http/account"
	"github.com/moneta-dev/moneta/internal/http/advice"
	"github.com/moneta-dev/moneta/internal/http/bill"
	"github.com/moneta-dev/moneta/internal/http/budget"
	"github.com/moneta-dev/moneta/internal/http/categorize"
	"github.com/moneta-dev/moneta/internal/http/category"
	"github.com/moneta-dev/moneta/internal/http/export"
	"github.com/moneta-dev/moneta/internal/http/importcsv"
	"github.com/moneta-dev/moneta/internal/http/transaction"
)

func New(
	jwtSecret []byte,
	accountsV1 *account.Handler,
	categoriesV1 *category.Handler,
	transactionsV1 *transaction.Handler,
	importV1 *importcsv.Handler,
	billsV1 *bill.Handler,
	budgetsV1 *budget.Handler,
	categorizeV1 *categorize.Handler,
	adviceV1 *advice.Handler,
	exportV1 *export.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(auth.Middleware(jwtSecret))

		r.Route("/accounts", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			accountsV1.Routes(r)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			categoriesV1.Routes(r)
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			transactionsV1.Routes(r)
		})

		// Statement upload is multipart, so it lives outside the
		// json-only transactions group.
		r.Route("/transactions/import", importV1.Routes)

		r.Route("/bills", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			billsV1.Routes(r)
		})

		r.Route("/budgets", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			budgetsV1.Routes(r)
		})

		r.Route("/categorize", func(r chi.Router) {
			categorizeV1.Routes(r)
		})

		adviceV1.Routes(r)

		r.Route("/export", func(r chi.Router) {
			exportV1.Routes(r)
		})
	})

	return router
}

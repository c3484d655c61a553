package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/bidquo/rfq-marketplace/internal/auth"
	"github.com/bidquo/rfq-marketplace/internal/bid"
	"github.com/bidquo/rfq-marketplace/internal/category"
	"github.com/bidquo/rfq-marketplace/internal/company"
	"github.com/bidquo/rfq-marketplace/internal/delegation"
	"github.com/bidquo/rfq-marketplace/internal/product"
	"github.com/bidquo/rfq-marketplace/internal/rfq"
	"github.com/bidquo/rfq-marketplace/internal/transport/middleware"
	"github.com/bidquo/rfq-marketplace/internal/transport/swagger"
	"github.com/bidquo/rfq-marketplace/internal/user"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/jmoiron/sqlx"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Auth       *auth.Handler
	User       *user.Handler
	Category   *category.Handler
	Company    *company.Handler
	Product    *product.Handler
	RFQ        *rfq.Handler
	Bid        *bid.Handler
	Delegation *delegation.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, sqlxDB *sqlx.DB, h Handlers, checker middleware.PermissionChecker, roles *auth.RoleAuthorization, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)
	analyticsHandler := NewAnalyticsHandler(sqlxDB, logger)

	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	// OpenAPI spec and Swagger UI live outside the API prefix
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", h.Auth.Login)
			sr.Post("/refresh", h.Auth.RefreshToken)
			sr.Post("/logout", h.Auth.Logout)
		})

		// Everything below requires an authenticated user
		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			pr.Get("/users/me", h.User.GetCurrentUser)
			pr.Get("/users/search", h.User.SearchUsers)

			pr.Route("/companies", func(cr chi.Router) {
				cr.Get("/", h.Company.ListCompanies)
				cr.Get("/{id}", h.Company.GetCompany)
				cr.Get("/{id}/products", h.Product.ListCompanyProducts)

				cr.Group(func(ar chi.Router) {
					ar.Use(roles.RequireAdmin())
					ar.Post("/", h.Company.CreateCompany)
				})
			})

			pr.Route("/products", func(pdr chi.Router) {
				pdr.Get("/{id}", h.Product.GetProduct)

				pdr.Group(func(sr chi.Router) {
					sr.Use(roles.RequireSupplier())
					sr.Post("/", h.Product.CreateProduct)
				})
			})

			pr.Route("/rfq-categories", func(cr chi.Router) {
				cr.Get("/", h.Category.GetCategories)

				cr.Group(func(ar chi.Router) {
					ar.Use(roles.RequireAdmin())
					ar.Post("/", h.Category.CreateCategory)
					ar.Delete("/{id}", h.Category.DeactivateCategory)
				})
			})

			pr.Route("/rfqs", func(rr chi.Router) {
				rr.Get("/", h.RFQ.ListOpenRFQs)
				rr.Get("/mine", h.RFQ.ListMyRFQs)
				rr.Get("/{id}", h.RFQ.GetRFQ)
				rr.Put("/{id}", h.RFQ.UpdateRFQ)
				rr.Post("/{id}/close", h.RFQ.CloseRFQ)
				rr.Get("/{id}/bids", h.Bid.ListBidsForRFQ)

				rr.Group(func(br chi.Router) {
					br.Use(roles.RequireBuyer())
					br.Post("/", h.RFQ.CreateRFQ)
				})
			})

			pr.Route("/bids", func(br chi.Router) {
				br.Get("/mine", h.Bid.ListMyBids)

				br.Group(func(sr chi.Router) {
					sr.Use(roles.RequireSupplier())
					sr.Post("/", h.Bid.SubmitBid)
				})
			})

			pr.Route("/delegations", func(dr chi.Router) {
				dr.Get("/from-me", h.Delegation.ListFromMe)
				dr.Get("/to-me", h.Delegation.ListToMe)
				dr.Get("/my-permissions", h.Delegation.GetMyPermissions)
				dr.Get("/resource-types", h.Delegation.GetResourceTypes)
				dr.Get("/permission-kinds", h.Delegation.GetPermissionKinds)
				dr.Get("/check-permission/{resourceType}/{permission}", h.Delegation.CheckPermission)
				dr.Post("/", h.Delegation.CreateDelegation)
				dr.Put("/{id}", h.Delegation.UpdateDelegation)
				dr.Delete("/{id}", h.Delegation.DeleteDelegation)
			})

			pr.Group(func(ar chi.Router) {
				ar.Use(middleware.RequirePermission(checker, logger, "analytics", "export", ""))
				ar.Get("/analytics/export", analyticsHandler.ExportSnapshot)
			})
		})
	})
}

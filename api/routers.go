package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/panaderiadelsol/pos-api/internal/models"
	"github.com/panaderiadelsol/pos-api/internal/utils"
)

func (app *application) routes() http.Handler {
	mux := chi.NewRouter()

	// --- Global middlewares ---
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	mux.Use(app.Logger)

	// --- Health check ---
	mux.Get("/", func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]any{
			"ok":      true,
			"msg":     models.APPName + " API running",
			"version": models.APPVersion,
		}
		utils.WriteJSON(w, http.StatusOK, resp)
	})

	// --- Public Routes ---
	mux.Post("/api/auth/register", app.Handlers.Auth.Register)
	mux.Post("/api/auth/login", app.Handlers.Auth.Login)

	// --- Protected Routes ---
	protected := chi.NewRouter()
	protected.Use(app.RequireAuth)

	// -------------------- User Routes (admin only) --------------------
	protected.Route("/api/users", func(r chi.Router) {
		r.Use(app.RequireRole(models.ROLE_ADMIN))
		r.Get("/", app.Handlers.User.GetUsersHandler)
		r.Post("/", app.Handlers.User.AddUser)
		r.Put("/{id}", app.Handlers.User.UpdateUser)
		r.Delete("/{id}", app.Handlers.User.DeleteUser)
	})

	// -------------------- Product Routes --------------------
	protected.Route("/api/products", func(r chi.Router) {
		r.With(app.RequireRole(models.ROLE_ADMIN, models.ROLE_PRODUCTION, models.ROLE_SELLER)).
			Get("/", app.Handlers.Product.GetProductsHandler)
		r.With(app.RequireRole(models.ROLE_ADMIN, models.ROLE_PRODUCTION, models.ROLE_SELLER)).
			Get("/{id}", app.Handlers.Product.GetProductByID)

		r.With(app.RequireRole(models.ROLE_ADMIN)).Post("/", app.Handlers.Product.AddProduct)
		r.With(app.RequireRole(models.ROLE_ADMIN)).Put("/{id}", app.Handlers.Product.UpdateProduct)
		r.With(app.RequireRole(models.ROLE_ADMIN)).Delete("/{id}", app.Handlers.Product.DeactivateProduct)

		r.With(app.RequireRole(models.ROLE_ADMIN, models.ROLE_PRODUCTION)).
			Put("/{id}/stock", app.Handlers.Product.AddStock)
	})

	// -------------------- Customer Routes --------------------
	protected.Route("/api/customers", func(r chi.Router) {
		r.Use(app.RequireRole(models.ROLE_ADMIN, models.ROLE_SELLER))
		r.Get("/", app.Handlers.Customer.GetCustomersHandler)
		r.Get("/{id}", app.Handlers.Customer.GetCustomerByID)
		r.Post("/", app.Handlers.Customer.AddCustomer)
		r.Put("/{id}", app.Handlers.Customer.UpdateCustomer)
		r.Delete("/{id}", app.Handlers.Customer.DeleteCustomer)
	})

	// -------------------- Sale Routes --------------------
	protected.Route("/api/sales", func(r chi.Router) {
		r.With(app.RequireRole(models.ROLE_ADMIN, models.ROLE_SELLER)).
			Post("/", app.Handlers.Sale.AddSale)
		r.Get("/", app.Handlers.Sale.GetSalesHandler)
		r.Get("/{id}", app.Handlers.Sale.GetSaleByID)
	})

	// -------------------- Finance Routes --------------------
	protected.Route("/api/finance", func(r chi.Router) {
		r.With(app.RequireRole(models.ROLE_ADMIN)).Post("/", app.Handlers.Finance.AddMovement)
		r.Get("/", app.Handlers.Finance.GetMovementsHandler)
	})

	// -------------------- Inventory Routes --------------------
	protected.Route("/api/inventory", func(r chi.Router) {
		r.Use(app.RequireRole(models.ROLE_ADMIN, models.ROLE_PRODUCTION))
		r.Get("/movements", app.Handlers.Inventory.GetMovementsHandler)
	})

	// -------------------- Cashbox & Report Routes --------------------
	protected.Route("/api/cashbox", func(r chi.Router) {
		r.Get("/summary", app.Handlers.Report.GetCashboxSummary)
	})
	protected.Route("/api/reports", func(r chi.Router) {
		r.Get("/summary", app.Handlers.Report.GetSummaryReport)
	})

	// -------------------- Audit Routes (admin only) --------------------
	protected.Route("/api/audit", func(r chi.Router) {
		r.Use(app.RequireRole(models.ROLE_ADMIN))
		r.Get("/", app.Handlers.Audit.GetLogsHandler)
	})

	// Mount protected routes
	mux.Mount("/", protected)

	return mux
}

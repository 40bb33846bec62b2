package api

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/panaderiadelsol/pos-api/api/handlers"
	"github.com/panaderiadelsol/pos-api/internal/config"
	"github.com/panaderiadelsol/pos-api/internal/dbrepo"
)

// Handlers groups one handler instance per module.
type Handlers struct {
	Auth      *handlers.AuthHandler
	User      *handlers.UserHandler
	Product   *handlers.ProductHandler
	Customer  *handlers.CustomerHandler
	Sale      *handlers.SaleHandler
	Finance   *handlers.FinanceHandler
	Inventory *handlers.InventoryHandler
	Report    *handlers.ReportHandler
	Audit     *handlers.AuditHandler
}

type application struct {
	config   config.Config
	infoLog  *log.Logger
	errorLog *log.Logger
	Handlers Handlers
}

// NewApplication wires repositories and handlers around an already-open
// connection pool. The pool's lifecycle belongs to the caller.
func NewApplication(cfg config.Config, db *pgxpool.Pool, infoLog, errorLog *log.Logger) *application {
	userRepo := dbrepo.NewUserRepo(db)
	productRepo := dbrepo.NewProductRepo(db)
	customerRepo := dbrepo.NewCustomerRepo(db)
	saleRepo := dbrepo.NewSaleRepo(db)
	financeRepo := dbrepo.NewFinanceRepo(db)
	inventoryRepo := dbrepo.NewInventoryRepo(db)
	reportRepo := dbrepo.NewReportRepo(db)
	auditRepo := dbrepo.NewAuditRepo(db)

	return &application{
		config:   cfg,
		infoLog:  infoLog,
		errorLog: errorLog,
		Handlers: Handlers{
			Auth:      handlers.NewAuthHandler(userRepo, auditRepo, cfg.JWT, infoLog, errorLog),
			User:      handlers.NewUserHandler(userRepo, infoLog, errorLog),
			Product:   handlers.NewProductHandler(productRepo, auditRepo, infoLog, errorLog),
			Customer:  handlers.NewCustomerHandler(customerRepo, infoLog, errorLog),
			Sale:      handlers.NewSaleHandler(saleRepo, auditRepo, infoLog, errorLog),
			Finance:   handlers.NewFinanceHandler(financeRepo, auditRepo, infoLog, errorLog),
			Inventory: handlers.NewInventoryHandler(inventoryRepo, infoLog, errorLog),
			Report:    handlers.NewReportHandler(financeRepo, reportRepo, infoLog, errorLog),
			Audit:     handlers.NewAuditHandler(auditRepo, infoLog, errorLog),
		},
	}
}

// Serve starts the HTTP server and blocks until it exits.
func (app *application) Serve() error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", app.config.Port),
		Handler:           app.routes(),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       time.Minute,
	}

	app.infoLog.Printf("Starting %s server on port %d", app.config.Env, app.config.Port)
	return srv.ListenAndServe()
}

package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bidquo/rfq-marketplace/internal"
	"github.com/bidquo/rfq-marketplace/internal/auth"
	authpg "github.com/bidquo/rfq-marketplace/internal/auth/postgres"
	"github.com/bidquo/rfq-marketplace/internal/bid"
	bidpg "github.com/bidquo/rfq-marketplace/internal/bid/postgres"
	"github.com/bidquo/rfq-marketplace/internal/category"
	categorypg "github.com/bidquo/rfq-marketplace/internal/category/postgres"
	"github.com/bidquo/rfq-marketplace/internal/company"
	companypg "github.com/bidquo/rfq-marketplace/internal/company/postgres"
	"github.com/bidquo/rfq-marketplace/internal/core/events"
	"github.com/bidquo/rfq-marketplace/internal/delegation"
	delegationpg "github.com/bidquo/rfq-marketplace/internal/delegation/postgres"
	"github.com/bidquo/rfq-marketplace/internal/product"
	productpg "github.com/bidquo/rfq-marketplace/internal/product/postgres"
	"github.com/bidquo/rfq-marketplace/internal/rfq"
	rfqpg "github.com/bidquo/rfq-marketplace/internal/rfq/postgres"
	"github.com/bidquo/rfq-marketplace/internal/transport"
	"github.com/bidquo/rfq-marketplace/internal/transport/rest"
	"github.com/bidquo/rfq-marketplace/internal/user"
	userpg "github.com/bidquo/rfq-marketplace/internal/user/postgres"
	"github.com/bidquo/rfq-marketplace/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Observability.Logging.Format, config.Observability.Logging.Level)
	lg := logger.LoggerWrapper()

	sqlxDB, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// gorm rides on the same pgx connection pool
	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlxDB.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	eventBus := events.NewEventBus(lg)
	events.RegisterAuditLogger(eventBus, lg)

	tokenGen := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(authpg.NewRepository(gormDB), tokenGen, config.Security.BCryptCost)
	authHandler := auth.NewHandler(authService)
	roles := auth.NewRoleAuthorization(lg)

	userService := user.NewService(userpg.NewUserRepository(gormDB))
	userHandler := user.NewHandler(userService)

	companyService := company.NewService(companypg.NewCompanyRepository(gormDB), lg)
	companyHandler := company.NewHandler(companyService)

	categoryService := category.NewService(categorypg.NewCategoryRepository(gormDB), lg)
	categoryHandler := category.NewHandler(transport.NewBaseHandler(lg), categoryService)

	productService := product.NewService(productpg.NewProductRepository(gormDB), lg)
	productHandler := product.NewHandler(productService)

	catalog := delegation.NewCatalog()
	delegationService := delegation.NewService(
		delegationpg.NewDelegationRepository(gormDB),
		delegationpg.NewUserDirectory(gormDB),
		catalog,
		eventBus,
		lg,
	)
	if config.Delegation.CheckCacheTTL > 0 {
		delegationService = delegationService.WithCheckCache(
			config.Delegation.CheckCacheSize, config.Delegation.CheckCacheTTL)
	}
	delegationHandler := delegation.NewHandler(delegationService, catalog)

	rfqService := rfq.NewService(rfqpg.NewRFQRepository(gormDB), delegationService, lg).
		WithCategoryCatalog(categoryService)
	rfqHandler := rfq.NewHandler(rfqService)

	bidService := bid.NewService(bidpg.NewBidRepository(gormDB), rfqService, delegationService, lg)
	bidHandler := bid.NewHandler(bidService)

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, sqlxDB.DB, sqlxDB, rest.Handlers{
		Auth:       authHandler,
		User:       userHandler,
		Category:   categoryHandler,
		Company:    companyHandler,
		Product:    productHandler,
		RFQ:        rfqHandler,
		Bid:        bidHandler,
		Delegation: delegationHandler,
	}, delegationService, roles, lg)

	return &Dependencies{
		Config: config,
		Logger: lg,
		DB:     sqlxDB,
		Router: router,
	}, nil
}

// initDB opens the pgx connection pool shared by gorm and the raw handlers.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}

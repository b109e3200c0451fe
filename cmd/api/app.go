package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	_ "github.com/hugohenrick/loja-colchoes/docs"
	"github.com/hugohenrick/loja-colchoes/internal/adapter/api/controller"
	"github.com/hugohenrick/loja-colchoes/internal/adapter/api/route"
	"github.com/hugohenrick/loja-colchoes/internal/adapter/repository"
	"github.com/hugohenrick/loja-colchoes/internal/config"
	"github.com/hugohenrick/loja-colchoes/internal/infrastructure/database"
	"github.com/hugohenrick/loja-colchoes/internal/service"
	"github.com/hugohenrick/loja-colchoes/pkg/auth"
	"github.com/hugohenrick/loja-colchoes/pkg/logger"
	"github.com/hugohenrick/loja-colchoes/pkg/metrics"
	"github.com/hugohenrick/loja-colchoes/pkg/middleware"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const shutdownTimeout = 10 * time.Second

// App representa a aplicação e suas dependências
type App struct {
	cfg     *config.Config
	logger  logger.Logger
	db      *database.PostgresDB
	metrics *metrics.Metrics
	router  *gin.Engine
}

// NewApp cria uma nova instância do aplicativo
func NewApp(ctx context.Context, cfg *config.Config, log logger.Logger) (*App, error) {
	// Aplicar as migrações pendentes antes de abrir o pool
	if err := database.RunMigrations(cfg.Database.MigrationURL()); err != nil {
		return nil, err
	}

	// Configurar banco de dados
	db, err := database.NewPostgresDB(ctx, cfg.Database, log)
	if err != nil {
		return nil, err
	}

	jwtService, err := auth.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.Expiration)
	if err != nil {
		db.Close()
		return nil, err
	}

	m := metrics.New(cfg.Metrics.Prefix)

	// Repositórios fora de transação, usados pelos cadastros
	repos := repository.NewRepositories(db.Pool())
	userRepo := repository.NewUserRepository(db.Pool())

	// Serviços transacionais
	uow := repository.NewUnitOfWork(db)
	orderService := service.NewOrderService(uow, log, m)
	paymentService := service.NewPaymentService(uow, log, m)

	app := &App{
		cfg:     cfg,
		logger:  log,
		db:      db,
		metrics: m,
		router:  newRouter(cfg, log, m),
	}

	app.router.GET("/health", controller.NewHealthController(db).Health)
	app.router.GET("/metrics", gin.WrapH(m.Handler()))
	if !cfg.Server.IsProduction() {
		app.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	route.Setup(app.router, cfg.Server.BasePath, route.Controllers{
		Auth:     controller.NewAuthController(userRepo, jwtService, m, log),
		Customer: controller.NewCustomerController(repos.Customers, log),
		Stock:    controller.NewStockController(repos.Stock, log),
		Order:    controller.NewOrderController(orderService, log),
		Payment:  controller.NewPaymentController(paymentService, log),
	}, jwtService)

	return app, nil
}

// newRouter cria o router com os middlewares globais
func newRouter(cfg *config.Config, log logger.Logger, m *metrics.Metrics) *gin.Engine {
	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID(log))
	router.Use(middleware.RequestLogger(log))
	router.Use(m.Middleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	return router
}

// Run inicia o servidor HTTP e o encerra de forma ordenada quando ctx é cancelado
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + a.cfg.Server.Port,
		Handler:           a.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("servidor iniciado", "port", a.cfg.Server.Port, "env", a.cfg.Server.Env)
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

	a.logger.Info("encerrando servidor")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

// GetRouter retorna o router da aplicação
func (a *App) GetRouter() *gin.Engine {
	return a.router
}

// Close libera os recursos da aplicação
func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
}

package router

import (
	"time"

	"github.com/Martin-1982/gestion-panol-eset-sub000/internal/config"
	"github.com/Martin-1982/gestion-panol-eset-sub000/internal/handler"
	"github.com/Martin-1982/gestion-panol-eset-sub000/internal/infra"
	"github.com/Martin-1982/gestion-panol-eset-sub000/internal/middleware"
	"github.com/Martin-1982/gestion-panol-eset-sub000/internal/repository"
	"github.com/Martin-1982/gestion-panol-eset-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	mailer := infra.NewMailer(cfg)
	storage := infra.NewStorage(cfg.UploadsPath)
	cache := service.NewStockCache(rdb)

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	proveedorRepo := repository.NewProveedorRepository(db)
	entradaRepo := repository.NewEntradaRepository(db)
	salidaRepo := repository.NewSalidaRepository(db)
	mailLogRepo := repository.NewMailLogRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, mailLogRepo, mailer, cfg)
	productoSvc := service.NewProductoService(productoRepo)
	proveedorSvc := service.NewProveedorService(proveedorRepo)
	entradaSvc := service.NewEntradaService(entradaRepo, productoRepo, cache)
	salidaSvc := service.NewSalidaService(salidaRepo, cache)
	informeSvc := service.NewInformeService(productoRepo, mailLogRepo, mailer, storage, cache)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	proveedoresH := handler.NewProveedoresHandler(proveedorSvc)
	entradasH := handler.NewEntradasHandler(entradaSvc)
	salidasH := handler.NewSalidasHandler(salidaSvc)
	informesH := handler.NewInformesHandler(informeSvc)
	filesH := handler.NewFilesHandler(storage)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, mailer))
	r.Static("/uploads", storage.Root())

	// Auth (public)
	auth := r.Group("/api/auth")
	{
		auth.POST("/register", authH.Register)
		auth.POST("/login", middleware.AuthRateLimiter(), authH.Login)
		auth.POST("/resend", middleware.AuthRateLimiter(), authH.Resend)
		auth.GET("/verify/:token", authH.VerifyEmail)
		auth.POST("/password-reset-request", middleware.AuthRateLimiter(), authH.RequestPasswordReset)
		auth.POST("/reset/:token", authH.ResetPassword)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	api := r.Group("/api", jwtMW)

	// Roles: consulta reads, panolero also records movements,
	// administrador also manages the catalog and mail.
	lectura := middleware.RequireRole("consulta", "panolero", "administrador")
	movimientos := middleware.RequireRole("panolero", "administrador")
	admin := middleware.RequireRole("administrador")
	{
		// Catálogo
		api.GET("/productos", lectura, productosH.Listar)
		prods := api.Group("/productos", admin)
		{
			prods.POST("", productosH.Crear)
			prods.PUT("/:id", productosH.Actualizar)
			prods.DELETE("/:id", productosH.Eliminar)
		}

		api.GET("/proveedores", lectura, proveedoresH.Listar)
		prov := api.Group("/proveedores", admin)
		{
			prov.POST("", proveedoresH.Crear)
			prov.PUT("/:id", proveedoresH.Actualizar)
			prov.DELETE("/:id", proveedoresH.Eliminar)
		}

		// Movimientos
		api.GET("/entradas", lectura, entradasH.Listar)
		api.POST("/entradas", movimientos, entradasH.Registrar)

		api.GET("/salidas", lectura, salidasH.Listar)
		api.POST("/salidas", movimientos, salidasH.Registrar)
		api.POST("/salidas/bulk", movimientos, salidasH.RegistrarBulk)
		api.GET("/salidas/areas", lectura, salidasH.ListarAreas)
		api.GET("/salidas/stock-areas", lectura, salidasH.ListarStockAreas)
		api.PUT("/salidas/stock-areas/:id/baja", movimientos, salidasH.BajaStockArea)

		// Informes
		informes := api.Group("/informes")
		{
			informes.GET("/stock", lectura, informesH.Stock)
			informes.GET("/stock/excel", lectura, informesH.StockExcel)
			informes.GET("/entradas", lectura, entradasH.Listar)
			informes.GET("/salidas", lectura, salidasH.Listar)
			informes.POST("/remito", movimientos, informesH.Remito)
			informes.POST("/enviar", movimientos, informesH.Enviar)
			informes.GET("/mail_logs", admin, informesH.MailLogs)
		}

		// Archivos
		files := api.Group("/files", movimientos)
		{
			files.POST("/upload", filesH.Upload)
			files.GET("/list", filesH.List)
		}
	}

	return r
}

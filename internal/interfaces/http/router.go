package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/retail-pos/internal/application/auth"
	"github.com/tu-usuario/retail-pos/internal/application/inventory"
	"github.com/tu-usuario/retail-pos/internal/application/pos"
	"github.com/tu-usuario/retail-pos/internal/application/usecase"
	"github.com/tu-usuario/retail-pos/internal/domain/access"
	"github.com/tu-usuario/retail-pos/pkg/cache"
	"github.com/tu-usuario/retail-pos/pkg/ratelimit"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	UserAdminUC *usecase.UserAdminUseCase
	ProductUC   *usecase.ProductUseCase
	CatalogUC   *usecase.CatalogUseCase
	CustomerUC  *usecase.CustomerUseCase
	StockUC     *inventory.StockUseCase
	CheckoutUC  *pos.CheckoutUseCase
	DashboardUC *usecase.DashboardUseCase

	JWTSecret  string
	CacheStore cache.Store
	CacheTTL   time.Duration
	Limiter    *ratelimit.Limiter
}

// Router registra las rutas de la API.
//
// Política de acceso por grupo:
//   - /auth: público (con rate limit, protege login y registro de fuerza bruta)
//   - /users: solo ADMIN
//   - catálogo y clientes: lectura para cualquier APPROVED, escritura ADMIN/MANAGER
//   - /stock: ADMIN/MANAGER
//   - /sales: cualquier APPROVED (el cajero STAFF cobra en caja)
//   - /dashboard: ADMIN/MANAGER
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público, con rate limit por IP)
	authGroup := api.Group("/auth", RateLimitMiddleware(deps.Limiter))
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Get("/verify", authHandler.Verify)
	authGroup.Post("/resend", authHandler.ResendVerification)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (Bearer + rate limit por usuario)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), RateLimitMiddleware(deps.Limiter))

	adminOnly := RequireRoles(access.RoleAdmin)
	managers := RequireRoles(access.RoleAdmin, access.RoleManager)
	anyApproved := RequireAccess(access.Policy{})

	// Users (solo ADMIN)
	users := protected.Group("/users", adminOnly)
	userHandler := NewUserHandler(deps.UserAdminUC)
	users.Get("/", userHandler.List)
	users.Post("/:id/approve", userHandler.Approve)
	users.Post("/:id/reject", userHandler.Reject)
	users.Post("/:id/suspend", userHandler.Suspend)
	users.Post("/:id/reinstate", userHandler.Reinstate)
	users.Put("/:id/active", userHandler.SetActive)

	// Products: lectura cacheada para todos, escritura ADMIN/MANAGER
	productCache := CacheMiddleware(deps.CacheStore, deps.CacheTTL, "GET:/api/products*")
	products := protected.Group("/products", anyApproved, productCache)
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", managers, productHandler.Create)
	products.Put("/:id", managers, productHandler.Update)
	products.Post("/:id/image", managers, productHandler.UploadImage)
	products.Delete("/:id", managers, productHandler.Delete)

	// Catálogo (categorías y marcas)
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	categoryCache := CacheMiddleware(deps.CacheStore, deps.CacheTTL, "GET:/api/categories*")
	categories := protected.Group("/categories", anyApproved, categoryCache)
	categories.Get("/", catalogHandler.ListCategories)
	categories.Get("/:id", catalogHandler.GetCategory)
	categories.Post("/", managers, catalogHandler.CreateCategory)
	categories.Delete("/:id", managers, catalogHandler.DeleteCategory)

	brandCache := CacheMiddleware(deps.CacheStore, deps.CacheTTL, "GET:/api/brands*")
	brands := protected.Group("/brands", anyApproved, brandCache)
	brands.Get("/", catalogHandler.ListBrands)
	brands.Get("/:id", catalogHandler.GetBrand)
	brands.Post("/", managers, catalogHandler.CreateBrand)
	brands.Delete("/:id", managers, catalogHandler.DeleteBrand)

	// Customers (cualquier APPROVED: el cajero da de alta clientes en caja)
	customers := protected.Group("/customers", anyApproved)
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", managers, customerHandler.Delete)

	// Stock (ADMIN/MANAGER; la venta descuenta stock por su propio camino)
	stock := protected.Group("/stock", managers)
	stockHandler := NewStockHandler(deps.StockUC)
	stock.Post("/movements", stockHandler.RegisterMovement)
	stock.Get("/products/:id/movements", stockHandler.ListByProduct)

	// Sales (cualquier APPROVED). Sin cache de lectura (el ticket es PDF);
	// el checkout invalida el cache de productos porque cambia stocks.
	invalidateProducts := CacheMiddleware(deps.CacheStore, deps.CacheTTL, "GET:/api/products*")
	sales := protected.Group("/sales", anyApproved)
	saleHandler := NewSaleHandler(deps.CheckoutUC)
	sales.Post("/checkout", invalidateProducts, saleHandler.Checkout)
	sales.Get("/", saleHandler.List)
	sales.Get("/:id", saleHandler.GetByID)
	sales.Get("/:id/receipt", saleHandler.Receipt)

	// Dashboard (ADMIN/MANAGER)
	dashboard := protected.Group("/dashboard", managers)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/", dashboardHandler.Summary)
}

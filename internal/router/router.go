package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/monocle-dev/catalog/internal/auth"
	"github.com/monocle-dev/catalog/internal/catalog"
	"github.com/monocle-dev/catalog/internal/handlers"
	"github.com/monocle-dev/catalog/internal/middleware"
	"github.com/monocle-dev/catalog/internal/repository"
	"github.com/monocle-dev/catalog/internal/session"
	"github.com/monocle-dev/catalog/internal/validation"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Deps struct {
	DB             *gorm.DB
	Issuer         *auth.Issuer
	Revoker        auth.Revoker
	Sessions       session.Store
	Cookie         handlers.CookieConfig
	AllowedOrigins []string
	Location       *time.Location
	Jobs           handlers.JobReporter
	Logger         *zap.Logger
}

func NewRouter(deps Deps) *gin.Engine {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.UseJSONFieldNames(v)
	}

	if deps.Location == nil {
		deps.Location = time.Local
	}

	if len(deps.AllowedOrigins) == 0 {
		deps.AllowedOrigins = []string{"http://localhost:3000"}
	}

	usersRepo := repository.NewUsersRepository(deps.DB)
	productsRepo := repository.NewProductsRepository(deps.DB)
	categoriesRepo := repository.NewCategoriesRepository(deps.DB)

	products := catalog.NewProductService(productsRepo, categoriesRepo, deps.Logger)
	categories := catalog.NewCategoryService(categoriesRepo, deps.Logger)
	dashboard := catalog.NewDashboard(productsRepo, categoriesRepo, usersRepo)

	authenticator := middleware.NewAuthenticator(deps.Issuer, usersRepo, deps.Revoker, deps.Logger)

	authHandler := handlers.NewAuthHandler(usersRepo, deps.Issuer, deps.Revoker, deps.Cookie, deps.Logger)
	productsHandler := handlers.NewProductsHandler(products, deps.Logger)
	productPages := handlers.NewProductPages(products, categories, deps.Sessions, deps.Logger)
	categoryPages := handlers.NewCategoryPages(categories, deps.Sessions, deps.Logger)
	dashboardHandler := handlers.NewDashboardHandler(dashboard, deps.Logger)
	exportHandler := handlers.NewExportHandler(products, categories, deps.Location, deps.Logger)
	healthHandler := handlers.NewHealthHandler(deps.Jobs)

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(deps.Logger))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     deps.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", healthHandler.Check)
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)

		protected := api.Group("", authenticator.RequireToken())
		{
			protected.POST("/logout", authHandler.Logout)
			protected.GET("/user", authHandler.Me)

			protected.GET("/products", productsHandler.Index)
			protected.GET("/products/:id", productsHandler.Show)

			admin := protected.Group("", middleware.RequireAdmin())
			{
				admin.POST("/products", productsHandler.Store)
				admin.PUT("/products/:id", productsHandler.Update)
				admin.DELETE("/products/:id", productsHandler.Destroy)
			}
		}
	}

	r.GET("/login", authHandler.LoginPage)
	r.POST("/login", authHandler.WebLogin)

	web := r.Group("", authenticator.RequireSession())
	{
		web.POST("/logout", authHandler.WebLogout)
		web.GET("/dashboard", dashboardHandler.Show)
		web.GET("/products", productPages.Show)
		web.POST("/products", productPages.Act)

		admin := web.Group("", middleware.RequireAdmin())
		{
			admin.GET("/categories", categoryPages.Show)
			admin.POST("/categories", categoryPages.Act)
			admin.GET("/export/products/:format", exportHandler.Products)
			admin.GET("/export/categories/:format", exportHandler.Categories)
		}
	}

	return r
}

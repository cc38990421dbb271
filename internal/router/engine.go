package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/GhaniKale/skincare-marketplace/internal/session"
	"github.com/GhaniKale/skincare-marketplace/pkg/config"
)

// NewEngine builds the gin engine with middleware and every route mounted
// under /api.
func NewEngine(cfg config.Config, h *Handler) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(h.log))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", session.HeaderName, AdminKeyHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(RequestTimeout(cfg.RequestTimeout))

	InitializeRoutes(router, h, cfg)
	return router
}

func InitializeRoutes(router *gin.Engine, h *Handler, cfg config.Config) {
	api := router.Group("/api")
	{
		api.GET("/health", h.HealthCheck)

		shop := api.Group("")
		shop.Use(session.Middleware(cfg.IsProduction()))
		{
			shop.GET("/session", h.GetSession)

			shop.GET("/categories", h.GetCategories)
			shop.GET("/products", h.GetProducts)
			shop.GET("/products/:id", h.GetProduct)

			cart := shop.Group("/cart")
			{
				cart.GET("", h.GetCart)
				cart.DELETE("", h.ClearCart)
				cart.POST("/items", h.AddToCart)
				cart.PUT("/items/:id", h.UpdateCartItem)
				cart.DELETE("/items/:id", h.RemoveFromCart)
			}

			shop.POST("/checkout", h.Checkout)
			shop.GET("/orders/:orderNumber", h.GetOrderByNumber)
		}

		admin := api.Group("/admin")
		admin.Use(AdminKey(cfg.AdminAPIKeyHash))
		{
			admin.GET("/orders/export", h.ExportOrders)
			admin.GET("/orders/live", h.LiveOrders)

			analytics := admin.Group("/analytics")
			{
				analytics.GET("/sales", h.GetSalesAnalytics)
				analytics.GET("/ai/sales-report", h.GenerateAISalesReport)
			}
		}
	}
}

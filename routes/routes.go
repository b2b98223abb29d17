package routes

import (
	"net/http"
	"os"
	"strings"

	"laundrylink-backend/config"
	"laundrylink-backend/controllers"
	"laundrylink-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	origins := []string{"http://localhost:5173", "http://localhost:3000"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		origins = strings.Split(env, ",")
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.RequestLogger())

	r.Static("/uploads", controllers.UploadDir())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "name": "Laundry Marketplace API"})
	})

	auth := r.Group("/auth")
	{
		auth.POST("/register-owner", controllers.RegisterOwner)
		auth.POST("/register-customer", controllers.RegisterCustomer)
		auth.POST("/login", controllers.Login)
		auth.GET("/me", utils.AuthMiddleware(utils.RoleOwner, utils.RoleCustomer), controllers.Me)
	}

	laundries := r.Group("/laundries")
	{
		laundries.GET("", controllers.ListLaundries)
		laundries.GET("/:id", controllers.GetLaundry)

		me := laundries.Group("/me", utils.AuthMiddleware(utils.RoleOwner))
		{
			me.PUT("", controllers.UpdateMyLaundry)
			me.POST("/foto", controllers.UploadLaundryPhoto)
			me.DELETE("", controllers.DeleteMyLaundry)
		}
	}

	orders := r.Group("/orders")
	{
		orders.POST("", utils.AuthMiddleware(utils.RoleCustomer), controllers.CreateOrder)
		orders.GET("/me", utils.AuthMiddleware(utils.RoleCustomer), controllers.GetMyOrders)
		orders.GET("/incoming", utils.AuthMiddleware(utils.RoleOwner), controllers.GetIncomingOrders)
		orders.PATCH("/:id/status", utils.AuthMiddleware(utils.RoleOwner), controllers.UpdateOrderStatus)
		orders.POST("/:id/rating", utils.AuthMiddleware(utils.RoleCustomer), controllers.RateOrder)
	}

	billing := r.Group("/billing", utils.AuthMiddleware(utils.RoleOwner))
	{
		billing.GET("/me", controllers.GetBilling)
		billing.POST("/plan", controllers.ChangePlan)
		billing.POST("/topup", controllers.CreateTopup)
		billing.POST("/topup/:id/confirm", controllers.ConfirmTopup)
	}

	return r
}

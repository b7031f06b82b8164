package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/resteasy/config"
	"github.com/yeremiapane/resteasy/controllers"
	"github.com/yeremiapane/resteasy/database"
	"github.com/yeremiapane/resteasy/middlewares"
	"github.com/yeremiapane/resteasy/services"
	"github.com/yeremiapane/resteasy/utils"
)

// SetupRouter wires every endpoint of the query-parameter API.
func SetupRouter(store *database.Store, cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.NewRateLimiter(cfg.RateLimitPerSecond, time.Second).RateLimit())

	// Inisialisasi controller
	accounts := services.NewAccountService(store)
	userCtrl := controllers.NewUserController(accounts)
	adminCtrl := controllers.NewAdminController(accounts)
	menuCtrl := controllers.NewMenuController(services.NewCatalogService(store))
	orderCtrl := controllers.NewOrderController(services.NewOrderService(store))

	r.GET("/ping", func(c *gin.Context) {
		utils.RespondValue(c, http.StatusOK, "OK")
	})

	// Credential endpoints get a stricter, per-IP limit.
	login := r.Group("/")
	login.Use(middlewares.NewLoginLimiter(cfg.LoginRatePerMinute).Handler())
	{
		login.GET("/login-user", userCtrl.Login)
		login.GET("/login-admin", adminCtrl.Login)
	}

	// USERS
	r.GET("/get-uid", userCtrl.GetUID)
	r.GET("/user-exists", userCtrl.UserExists)
	r.GET("/add-user", userCtrl.AddUser)
	r.GET("/del-user", userCtrl.DelUser)
	r.GET("/user-data", userCtrl.UserData)

	// ADMINS
	r.GET("/add-admin", adminCtrl.AddAdmin)
	r.GET("/del-admin", adminCtrl.DelAdmin)

	// VENDORS, ITEMS, DISHES
	r.GET("/list-vendors", menuCtrl.ListVendors)
	r.GET("/list-vendors-by-name", menuCtrl.ListVendorsByName)
	r.GET("/get-vid", menuCtrl.GetVID)
	r.GET("/add-vendor", menuCtrl.AddVendor)
	r.GET("/add-item", menuCtrl.AddItem)
	r.GET("/add-dish", menuCtrl.AddDish)
	r.GET("/get-did", menuCtrl.GetDID)
	r.GET("/list-dishes-by-vendor", menuCtrl.ListDishesByVendor)
	r.GET("/list-dishes-by-name", menuCtrl.ListDishesByName)

	// ORDERS
	r.GET("/add-order", orderCtrl.AddOrder)
	r.GET("/add-order-dish", orderCtrl.AddOrderDish)
	r.GET("/place-order", orderCtrl.PlaceOrder)
	r.GET("/cancel-order-dish", orderCtrl.CancelOrderDish)
	r.GET("/del-order", orderCtrl.DelOrder)
	r.GET("/list-order-by-uid", orderCtrl.ListByUser)
	r.GET("/list-order-by-vid", orderCtrl.ListByVendor)

	return r
}

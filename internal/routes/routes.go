package routes

import (
	"github.com/gin-gonic/gin"

	"lumio_back_end/internal/handlers/admin"
	"lumio_back_end/internal/handlers/product"
	"lumio_back_end/internal/handlers/user"
	"lumio_back_end/internal/middleware"
)

func RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")

	// --- Authentification ---
	auth := api.Group("/auth")
	{
		auth.POST("/register", user.Register)
		auth.POST("/login", middleware.LoginRateLimit(), user.Login)
		auth.POST("/logout", middleware.AuthRequired(), user.Logout)
		auth.GET("/me", middleware.AuthRequired(), user.Me)
	}

	// --- Catalogue public ---
	api.GET("/products", product.GetProducts)
	api.GET("/products/search", product.SearchProducts)
	api.GET("/products/ws", product.ProductsWebSocket)

	// --- Routes authentifiées ---
	authed := api.Group("", middleware.AuthRequired())
	{
		// Profil
		authed.GET("/profile", user.GetProfile)
		authed.POST("/profile/avatar", user.UploadAvatar)

		// Panier
		authed.GET("/cart", user.GetCart)
		authed.POST("/cart/add", user.AddToCart)
		authed.PUT("/cart/:productId", user.UpdateCartQuantity)
		authed.DELETE("/cart/:productId", user.RemoveFromCart)
		authed.DELETE("/cart", user.ClearCart)

		// Checkout & commandes
		authed.POST("/checkout", user.Checkout)
		authed.GET("/orders", user.GetMyOrders)
		authed.GET("/orders/:id", user.GetOrderByID)

		// Notifications
		authed.GET("/notifications", user.GetNotifications)
		authed.POST("/notifications/read", user.MarkNotificationsRead)
		authed.GET("/notifications/ws", user.NotificationsWebSocket)
	}

	// --- Administration ---
	adm := api.Group("/admin", middleware.AuthRequired(), middleware.RequireAdmin)
	{
		// Catalogue
		adm.GET("/products", product.GetAllProducts)
		adm.POST("/products", product.CreateProduct)
		adm.PUT("/products/:id", product.UpdateProduct)
		adm.DELETE("/products/:id", product.DeleteProduct)
		adm.PATCH("/products/:id/active", product.ToggleProductActive)
		adm.POST("/products/image", product.UploadProductImage)

		// Commandes
		adm.GET("/orders", admin.GetAllOrders)
		adm.PUT("/orders/:id/status", admin.UpdateOrderStatus)
		adm.GET("/orders/export", admin.ExportOrdersCSV)
		adm.GET("/orders/stats", admin.GetOrderStats)

		// Utilisateurs
		adm.GET("/users", admin.GetUsers)
		adm.PUT("/users/:id/role", admin.ChangeUserRole)
		adm.PATCH("/users/:id/active", admin.ToggleUserActive)
		adm.GET("/users/:id/activity", admin.GetUserActivity)
		adm.POST("/notifications", admin.SendBulkNotification)

		// Audit
		adm.GET("/login-attempts", admin.GetLoginAttempts)
	}
}

package routes

import (
	"time"

	"motogear-backend/controllers"
	"motogear-backend/middleware"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Controllers groups everything RegisterRoutes wires up.
type Controllers struct {
	Auth     *controllers.AuthController
	Category *controllers.CategoryController
	Product  *controllers.ProductController
	Inquiry  *controllers.InquiryController
	Upload   *controllers.UploadController
}

// RegisterRoutes mounts the API surface. Storefront reads are public, the
// inquiry endpoints require a login, and every write behind /admin requires
// the ADMIN role.
func RegisterRoutes(router *gin.Engine, ctrls Controllers, jwtSecret []byte) {
	api := router.Group("/api")

	auth := api.Group("/auth")
	{
		// Credential endpoints are brute-force targets; one bucket per IP.
		credentialLimit := middleware.RateLimit(rate.Every(time.Minute/20), 10)
		auth.POST("/register", credentialLimit, ctrls.Auth.Register)
		auth.POST("/login", credentialLimit, ctrls.Auth.Login)
		auth.GET("/me", middleware.RequireAuth(jwtSecret), ctrls.Auth.Me)
	}

	api.GET("/categories", ctrls.Category.GetCategories)
	api.GET("/products", ctrls.Product.GetProducts)
	api.GET("/products/:id", ctrls.Product.GetProductByID)

	inquiries := api.Group("/inquiries", middleware.RequireAuth(jwtSecret))
	{
		inquiries.POST("", ctrls.Inquiry.CreateInquiry)
		inquiries.GET("", ctrls.Inquiry.GetMyInquiries)
	}

	admin := api.Group("/admin", middleware.RequireAuth(jwtSecret), middleware.AdminOnly())
	{
		admin.POST("/categories", ctrls.Category.CreateCategory)
		admin.PUT("/categories/:id", ctrls.Category.UpdateCategory)
		admin.DELETE("/categories/:id", ctrls.Category.DeleteCategory)

		admin.POST("/products", ctrls.Product.CreateProduct)
		admin.PUT("/products/:id", ctrls.Product.UpdateProduct)
		admin.DELETE("/products/:id", ctrls.Product.DeleteProduct)

		admin.POST("/uploads", ctrls.Upload.Upload)
	}
}

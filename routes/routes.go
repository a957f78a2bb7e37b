package routes

import (
	"net/http"

	"blushbelle-api/controllers"
	"blushbelle-api/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Controllers bundles every resource controller for route registration.
type Controllers struct {
	Auth        *controllers.AuthController
	User        *controllers.UserController
	Address     *controllers.AddressController
	Wishlist    *controllers.WishlistController
	Product     *controllers.ProductController
	Category    *controllers.CategoryController
	SubCategory *controllers.SubCategoryController
	Cart        *controllers.CartController
	Order       *controllers.OrderController
	Coupon      *controllers.CouponController
	Shipping    *controllers.ShippingController
	Blog        *controllers.BlogController
	Review      *controllers.ReviewController
	FAQ         *controllers.FAQController
	Benefit     *controllers.BenefitController
	Video       *controllers.VideoController
	Contact     *controllers.ContactController
	NewsLetter  *controllers.NewsLetterController
}

// RegisterRoutes sets up all the routes for the application
func RegisterRoutes(router *mux.Router, c Controllers) {
	router.Use(middleware.MetricsMiddleware)
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()

	// Auth
	api.HandleFunc("/auth/register", c.Auth.Register).Methods("POST")
	api.HandleFunc("/auth/login", c.Auth.Login).Methods("POST")
	api.HandleFunc("/auth/logout", c.Auth.Logout).Methods("POST")
	api.HandleFunc("/auth/otp", c.Auth.RequestOTP).Methods("POST")
	api.HandleFunc("/auth/otp/verify", c.Auth.VerifyOTP).Methods("POST")
	api.HandleFunc("/auth/password/forgot", c.Auth.ForgotPassword).Methods("POST")
	api.HandleFunc("/auth/password/reset", c.Auth.ResetPassword).Methods("POST")
	api.HandleFunc("/auth/oauth", c.Auth.OAuthSignIn).Methods("POST")

	// Storefront catalog
	api.HandleFunc("/products", c.Product.GetProducts).Methods("GET")
	api.HandleFunc("/products/{id}", c.Product.GetProductByID).Methods("GET")
	api.HandleFunc("/products/{id}/related", c.Product.GetRelatedProducts).Methods("GET")
	api.HandleFunc("/products/{id}/reviews", c.Review.GetReviewsByProduct).Methods("GET")
	api.HandleFunc("/products/{id}/benefits", c.Benefit.GetBenefitsByProduct).Methods("GET")
	api.HandleFunc("/categories", c.Category.GetCategories).Methods("GET")
	api.HandleFunc("/categories/{id}", c.Category.GetCategoryByID).Methods("GET")
	api.HandleFunc("/subcategories", c.SubCategory.GetSubCategories).Methods("GET")

	// Storefront content
	api.HandleFunc("/blogs", c.Blog.GetBlogs).Methods("GET")
	api.HandleFunc("/blogs/{id}", c.Blog.GetBlogByID).Methods("GET")
	api.HandleFunc("/faqs", c.FAQ.GetFAQs).Methods("GET")
	api.HandleFunc("/videos", c.Video.GetVideos).Methods("GET")
	api.HandleFunc("/reviews", c.Review.CreateReview).Methods("POST")

	// Forms
	api.HandleFunc("/contact", c.Contact.CreateContact).Methods("POST")
	api.HandleFunc("/newsletter", c.NewsLetter.Subscribe).Methods("POST")

	// Coupons and shipping quotes
	api.HandleFunc("/coupons/apply", c.Coupon.ApplyCoupon).Methods("POST")
	api.HandleFunc("/shipping", c.Shipping.GetShippingPrices).Methods("GET")

	// Checkout: order history authenticates from the cookie itself; the
	// pending-order cookie is unauthenticated convenience state.
	api.HandleFunc("/orders/history", c.Order.GetOrderHistory).Methods("GET")
	api.HandleFunc("/orders/pending", c.Order.SetPendingOrder).Methods("POST")
	api.HandleFunc("/orders/pending", c.Order.GetPendingOrder).Methods("GET")

	// Authenticated storefront routes
	user := api.PathPrefix("").Subrouter()
	user.Use(middleware.AuthMiddleware)
	user.HandleFunc("/profile", c.User.GetProfile).Methods("GET")
	user.HandleFunc("/cart", c.Cart.GetCart).Methods("GET")
	user.HandleFunc("/cart", c.Cart.AddToCart).Methods("POST")
	user.HandleFunc("/cart/{productId}", c.Cart.RemoveFromCart).Methods("DELETE")
	user.HandleFunc("/wishlist", c.Wishlist.GetWishlist).Methods("GET")
	user.HandleFunc("/wishlist", c.Wishlist.AddToWishlist).Methods("POST")
	user.HandleFunc("/wishlist/{productId}", c.Wishlist.RemoveFromWishlist).Methods("DELETE")
	user.HandleFunc("/addresses", c.Address.GetAddresses).Methods("GET")
	user.HandleFunc("/addresses", c.Address.CreateAddress).Methods("POST")
	user.HandleFunc("/addresses/{id}", c.Address.DeleteAddress).Methods("DELETE")
	user.HandleFunc("/orders", c.Order.CreateOrder).Methods("POST")

	// Admin back office
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AuthMiddleware)
	admin.Use(middleware.AdminMiddleware)

	admin.HandleFunc("/products", c.Product.CreateProduct).Methods("POST")
	admin.HandleFunc("/products/{id}", c.Product.UpdateProduct).Methods("PATCH")
	admin.HandleFunc("/products/{id}", c.Product.DeleteProduct).Methods("DELETE")

	admin.HandleFunc("/categories", c.Category.CreateCategory).Methods("POST")
	admin.HandleFunc("/categories/{id}", c.Category.UpdateCategory).Methods("PATCH")
	admin.HandleFunc("/categories/{id}", c.Category.DeleteCategory).Methods("DELETE")

	admin.HandleFunc("/subcategories", c.SubCategory.CreateSubCategory).Methods("POST")
	admin.HandleFunc("/subcategories/{id}", c.SubCategory.UpdateSubCategory).Methods("PATCH")
	admin.HandleFunc("/subcategories/{id}", c.SubCategory.DeleteSubCategory).Methods("DELETE")

	admin.HandleFunc("/orders", c.Order.GetOrders).Methods("GET")
	admin.HandleFunc("/orders/{id}", c.Order.GetOrderByID).Methods("GET")
	admin.HandleFunc("/orders/{id}", c.Order.UpdateOrderStatus).Methods("PATCH")
	admin.HandleFunc("/orders/{id}", c.Order.DeleteOrder).Methods("DELETE")

	admin.HandleFunc("/users", c.User.GetUsers).Methods("GET")
	admin.HandleFunc("/users/{id}", c.User.GetUserByID).Methods("GET")
	admin.HandleFunc("/users/{id}/status", c.User.UpdateUserStatus).Methods("PATCH")
	admin.HandleFunc("/users/{id}", c.User.DeleteUser).Methods("DELETE")

	admin.HandleFunc("/coupons", c.Coupon.GetCoupons).Methods("GET")
	admin.HandleFunc("/coupons", c.Coupon.CreateCoupon).Methods("POST")
	admin.HandleFunc("/coupons/{id}", c.Coupon.UpdateCoupon).Methods("PATCH")
	admin.HandleFunc("/coupons/{id}", c.Coupon.DeleteCoupon).Methods("DELETE")

	admin.HandleFunc("/shipping", c.Shipping.CreateShippingPrice).Methods("POST")
	admin.HandleFunc("/shipping/{id}", c.Shipping.GetShippingPriceByID).Methods("GET")
	admin.HandleFunc("/shipping/{id}", c.Shipping.UpdateShippingPrice).Methods("PATCH")
	admin.HandleFunc("/shipping/{id}", c.Shipping.DeleteShippingPrice).Methods("DELETE")

	admin.HandleFunc("/blogs", c.Blog.CreateBlog).Methods("POST")
	admin.HandleFunc("/blogs/{id}", c.Blog.UpdateBlog).Methods("PATCH")
	admin.HandleFunc("/blogs/{id}", c.Blog.DeleteBlog).Methods("DELETE")

	admin.HandleFunc("/reviews", c.Review.GetReviews).Methods("GET")
	admin.HandleFunc("/reviews/{id}", c.Review.DeleteReview).Methods("DELETE")

	admin.HandleFunc("/faqs", c.FAQ.CreateFAQ).Methods("POST")
	admin.HandleFunc("/faqs/{id}", c.FAQ.UpdateFAQ).Methods("PATCH")
	admin.HandleFunc("/faqs/{id}", c.FAQ.DeleteFAQ).Methods("DELETE")

	admin.HandleFunc("/benefits", c.Benefit.CreateBenefit).Methods("POST")
	admin.HandleFunc("/benefits/{id}", c.Benefit.DeleteBenefit).Methods("DELETE")

	admin.HandleFunc("/videos", c.Video.CreateVideo).Methods("POST")
	admin.HandleFunc("/videos/{id}", c.Video.DeleteVideo).Methods("DELETE")

	admin.HandleFunc("/contacts", c.Contact.GetContacts).Methods("GET")
	admin.HandleFunc("/contacts/{id}", c.Contact.DeleteContact).Methods("DELETE")

	admin.HandleFunc("/newsletter", c.NewsLetter.GetSubscribers).Methods("GET")
	admin.HandleFunc("/newsletter/{id}", c.NewsLetter.Unsubscribe).Methods("DELETE")
}

// NotFoundHandler answers unknown paths with the shared error shape.
func NotFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"msg":"Not found"}`))
	})
}

package main

import (
	"context"
	"net/http"

	"blushbelle-api/config"
	"blushbelle-api/controllers"
	"blushbelle-api/routes"
	"blushbelle-api/utils"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	if err := utils.InitLogger(cfg.Server.Env); err != nil {
		panic(err)
	}
	defer utils.SyncLogger()
	logger := utils.GetLogger()

	// Set the JWT secret key
	utils.JwtKey = []byte(cfg.JWT.Secret)

	emailService := utils.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.Sender, cfg.App.BaseURL)

	assets, err := utils.NewAssetService(cfg.Cloudinary.URL)
	if err != nil {
		logger.Fatal("failed to initialize asset service", zap.Error(err))
	}

	// Connect to MongoDB
	client, err := utils.ConnectDB(cfg.Mongo.URI)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := client.Disconnect(context.TODO()); err != nil {
			logger.Error("failed to disconnect from database", zap.Error(err))
		}
	}()

	db := client.Database(cfg.Mongo.Database)
	if err := utils.EnsureIndexes(context.Background(), db); err != nil {
		logger.Fatal("failed to ensure indexes", zap.Error(err))
	}

	secure := cfg.IsProduction()

	// Initialize controllers
	c := routes.Controllers{
		Auth:        controllers.NewAuthController(db, emailService, secure),
		User:        controllers.NewUserController(db),
		Address:     controllers.NewAddressController(db),
		Wishlist:    controllers.NewWishlistController(db),
		Product:     controllers.NewProductController(db, assets),
		Category:    controllers.NewCategoryController(db, assets),
		SubCategory: controllers.NewSubCategoryController(db, assets),
		Cart:        controllers.NewCartController(db),
		Order:       controllers.NewOrderController(db, emailService),
		Coupon:      controllers.NewCouponController(db),
		Shipping:    controllers.NewShippingController(db),
		Blog:        controllers.NewBlogController(db, assets),
		Review:      controllers.NewReviewController(db),
		FAQ:         controllers.NewFAQController(db),
		Benefit:     controllers.NewBenefitController(db, assets),
		Video:       controllers.NewVideoController(db, assets),
		Contact:     controllers.NewContactController(db, emailService),
		NewsLetter:  controllers.NewNewsLetterController(db, emailService),
	}

	// Set up the router
	router := mux.NewRouter()
	router.NotFoundHandler = routes.NotFoundHandler()
	routes.RegisterRoutes(router, c)

	logger.Info("server starting", zap.String("port", cfg.Server.Port), zap.String("env", cfg.Server.Env))
	if err := http.ListenAndServe(":"+cfg.Server.Port, router); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"registryshop.com/app/internal/http/handlers"
	"registryshop.com/app/internal/http/middleware"
	"registryshop.com/app/internal/modules/cart"
	"registryshop.com/app/internal/modules/orders"
	"registryshop.com/app/internal/modules/payments"
	"registryshop.com/app/internal/modules/rsvp"
)

type RouterConfig struct {
	FrontendURL string
}

func NewRouter(logger *slog.Logger, db *gorm.DB, cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.ErrorHandler(logger),
	)

	carts := cart.NewRepo(db)
	completion := orders.NewDefaultCompletionStrategy()

	hooks := payments.NewWebhookService(db, completion)
	hooks.SetLogger(logger)

	wh := handlers.NewWebhookHandler(logger, hooks, carts, cfg.FrontendURL)
	hooksGroup := r.Group("/hooks/asaas")
	{
		hooksGroup.POST("/charge", wh.Charge)
		hooksGroup.GET("/callback", wh.Callback)
	}

	rh := handlers.NewRSVPHandler(logger, rsvp.NewService(db))
	guests := r.Group("/guests")
	{
		guests.POST("/rsvp", rh.Create)
		guests.GET("/rsvp/:id", rh.Retrieve)
		guests.POST("/rsvp/:id", rh.Update)
	}

	return r
}

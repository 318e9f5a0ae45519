package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"anilink/internal/backend"
	"anilink/internal/config"
	"anilink/internal/domain/animal"
	"anilink/internal/domain/booking"
	"anilink/internal/domain/medcase"
	"anilink/internal/domain/notification"
	"anilink/internal/domain/order"
	"anilink/internal/domain/product"
	"anilink/internal/middleware"
	jwtsvc "anilink/internal/pkg/jwt"
	"anilink/internal/realtime"
	"anilink/internal/session"
)

type deps struct {
	upstream *backend.Client
	registry *session.Registry
	hub      *realtime.Hub
	jwt      *jwtsvc.Service
}

func newRouter(cfg *config.Config, d deps) *gin.Engine {
	origins := append([]string{cfg.AppOrigin}, cfg.CORSAllowedOrigins...)

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.CORS(origins))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": d.registry.Len()})
	})

	realtime.NewHandler(d.hub, d.jwt, append(origins, middleware.DefaultAllowedOrigins...)).RegisterRoutes(r)

	bookingHandler := booking.NewHandler(booking.NewService(d.upstream))
	orderHandler := order.NewHandler(order.NewService(d.upstream))
	animalHandler := animal.NewHandler(animal.NewService(d.upstream))
	caseHandler := medcase.NewHandler(medcase.NewService(d.upstream))
	productHandler := product.NewHandler(product.NewService(d.upstream))
	notificationHandler := notification.NewHandler(
		notification.NewService(d.upstream, notification.NewRouter(cfg.AppOrigin)),
	)
	sessionHandler := session.NewHandler(d.registry, d.upstream)

	v1 := r.Group("/api/v1")
	v1.Use(middleware.JWTAuth(d.jwt, d.upstream))
	v1.Use(session.Attach(d.registry))
	{
		bookingHandler.RegisterRoutes(v1)
		orderHandler.RegisterRoutes(v1)
		orderHandler.RegisterSellerRoutes(v1, middleware.SellerOnly())
		animalHandler.RegisterRoutes(v1)
		caseHandler.RegisterRoutes(v1)
		productHandler.RegisterSellerRoutes(v1, middleware.SellerOnly())
		productHandler.RegisterMarketplaceRoutes(v1)
		notificationHandler.RegisterRoutes(v1)
		sessionHandler.RegisterRoutes(v1)
	}

	return r
}

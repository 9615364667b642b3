package http

import (
	"time"

	"github.com/gin-gonic/gin"

	appsvc "feedback-hub/internal/app"
	"feedback-hub/internal/bootstrap"
	"feedback-hub/internal/cache"
	"feedback-hub/internal/platform/rabbitmq"
	"feedback-hub/internal/repository"
	"feedback-hub/internal/transport/http/handler"
	"feedback-hub/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	if app.Config.App.GinMode != "" {
		gin.SetMode(app.Config.App.GinMode)
	}
	handler.RegisterValidation()

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	userRepo := repository.NewUserRepository(app.DB)
	authService := appsvc.NewAuthService(
		userRepo,
		app.Config.Auth.JWTSecret,
		time.Duration(app.Config.Auth.JWTExpireMinute)*time.Minute,
	)
	authHandler := handler.NewAuthHandler(authService)

	feedbackService := appsvc.NewFeedbackService(
		repository.NewSourceRepository(app.DB),
		repository.NewEntryRepository(app.DB),
		repository.NewTagRepository(app.DB),
		listCacheFor(app),
		eventPublisherFor(app),
		app.Logger,
	)
	feedbackHandler := handler.NewFeedbackHandler(feedbackService, app.Logger)

	authJWT := middleware.AuthJWT(app.Config.Auth.JWTSecret)

	v1 := router.Group("/api/v1")
	authGroup := v1.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.GET("/me", authJWT, authHandler.Me)

	feedbackGroup := v1.Group("/feedback")
	feedbackGroup.Use(authJWT)
	feedbackGroup.POST("/sources", feedbackHandler.CreateSource)
	feedbackGroup.PATCH("/sources/:id", feedbackHandler.UpdateSource)
	feedbackGroup.GET("/sources", feedbackHandler.ListSources)
	feedbackGroup.POST("/entries", feedbackHandler.CreateEntry)
	feedbackGroup.GET("/entries", feedbackHandler.ListEntries)
	feedbackGroup.POST("/tags", feedbackHandler.AddTag)
	feedbackGroup.GET("/tags", feedbackHandler.ListTags)

	return router
}

// listCacheFor and eventPublisherFor return untyped nil when the
// dependency is disabled so the service sees a nil interface.
func listCacheFor(app *bootstrap.App) appsvc.ListCache {
	if app.Redis == nil {
		return nil
	}
	return cache.NewListCache(
		app.Redis,
		time.Duration(app.Config.Redis.ListTTLSeconds)*time.Second,
		time.Duration(app.Config.Redis.DirtyTTLSeconds)*time.Second,
	)
}

func eventPublisherFor(app *bootstrap.App) appsvc.EventPublisher {
	if app.MQConn == nil {
		return nil
	}
	return rabbitmq.NewEventPublisher(app.MQConn, app.Config.RabbitMQ.EventQueue)
}

package routes

import (
	"github.com/geekplay/platform/internal/auth"
	"github.com/geekplay/platform/internal/handlers"
	"github.com/geekplay/platform/internal/middleware"
	"github.com/go-chi/chi/v5"
)

// RegisterUserRoutes wires the user-service API. Lookup and ban endpoints
// are internal (shared-secret guarded); auth and profile endpoints are
// public or JWT guarded.
func RegisterUserRoutes(
	router chi.Router,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	tokenManager *auth.TokenManager,
	internalSecret string,
) {
	rateLimitConfig := middleware.DefaultAuthRateLimit()

	router.With(middleware.RateLimitByIP(rateLimitConfig)).Post("/auth/login", authHandler.Login)
	router.With(middleware.RateLimitByIP(rateLimitConfig)).Post("/auth/register", authHandler.Register)
	router.With(middleware.RateLimitByIP(rateLimitConfig)).Post("/auth/refresh", authHandler.Refresh)

	router.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware(tokenManager))

		r.Get("/users/me", userHandler.GetProfile)
		r.Put("/users/me", userHandler.UpdateProfile)
		r.Put("/users/me/password", userHandler.ChangePassword)
		r.Post("/users/me/image", userHandler.UploadProfileImage)
	})

	// Internal peer endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireInternalSecret(internalSecret))

		r.Get("/users/{id}", userHandler.GetUser)
		r.Get("/users/email/{email}", userHandler.GetUserByEmail)
		r.Put("/users/{id}/ban", userHandler.UpdateBanStatus)
	})
}

// RegisterContentRoutes wires the content-service API
func RegisterContentRoutes(
	router chi.Router,
	postHandler *handlers.PostHandler,
	tokenManager *auth.TokenManager,
	internalSecret string,
) {
	router.Get("/posts", postHandler.ListPosts)
	router.Get("/posts/search", postHandler.SearchPosts)
	router.Get("/posts/{id}", postHandler.GetPost)
	router.Get("/posts/category/{category}", postHandler.ListByCategory)
	router.Get("/posts/author/{authorId}", postHandler.ListByAuthor)

	router.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware(tokenManager))

		r.Post("/posts", postHandler.CreatePost)
		r.Delete("/posts/{id}", postHandler.DeleteOwnPost)
		r.Post("/posts/{id}/image", postHandler.UploadPostImage)
	})

	// Internal deletion path used by the moderation-service
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireInternalSecret(internalSecret))

		r.Delete("/internal/posts/{id}", postHandler.DeletePost)
	})
}

// RegisterInteractionRoutes wires the interaction-service API
func RegisterInteractionRoutes(
	router chi.Router,
	interactionHandler *handlers.InteractionHandler,
	tokenManager *auth.TokenManager,
	internalSecret string,
) {
	router.Get("/posts/{postId}/comments", interactionHandler.ListComments)
	router.Get("/posts/{postId}/likes", interactionHandler.ListLikes)

	router.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware(tokenManager))

		r.Post("/posts/{postId}/comments", interactionHandler.CreateComment)
		r.Post("/posts/{postId}/likes/toggle", interactionHandler.ToggleLike)
	})

	// Internal deletion path used by the moderation-service
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireInternalSecret(internalSecret))

		r.Delete("/comments/{id}", interactionHandler.DeleteComment)
	})
}

// RegisterModerationRoutes wires the moderation-service API. Actions are
// admin-only; notification reads are JWT guarded.
func RegisterModerationRoutes(
	router chi.Router,
	moderationHandler *handlers.ModerationHandler,
	tokenManager *auth.TokenManager,
) {
	rateLimitConfig := middleware.RateLimitConfig{RequestsPerMinute: 30}

	router.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware(tokenManager))

		r.With(auth.RequireAdmin, middleware.RateLimitByIP(rateLimitConfig)).
			Post("/moderation/actions", moderationHandler.ExecuteAction)

		r.Get("/moderation/notifications/{userId}", moderationHandler.ListNotifications)
		r.Delete("/moderation/notifications/{id}", moderationHandler.DeleteNotification)
	})
}

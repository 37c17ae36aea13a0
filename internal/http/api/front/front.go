package front

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nansinho/innovtec-v2/internal/ai"
	"github.com/nansinho/innovtec-v2/internal/config"
	"github.com/nansinho/innovtec-v2/internal/http/api/front/handlers"
	"github.com/nansinho/innovtec-v2/internal/models"
	"github.com/nansinho/innovtec-v2/internal/quota"
	"github.com/nansinho/innovtec-v2/internal/security"
)

// RegisterFrontRoutes registers public and authenticated intranet routes.
func RegisterFrontRoutes(r *gin.Engine, db *gorm.DB, jwtCfg config.JWTConfig, gateway *ai.Gateway, ledger *quota.Ledger) {
	if r == nil || db == nil {
		return
	}

	front := r.Group("/v0/front")

	authHandler := handlers.NewAuthHandler(db, jwtCfg)
	front.POST("/register", authHandler.Register)
	front.POST("/login", authHandler.Login)

	authed := front.Group("")
	authed.Use(userAuthMiddleware(db, jwtCfg))

	profileHandler := handlers.NewProfileHandler(db)
	authed.GET("/profile", profileHandler.Get)
	authed.PUT("/profile", profileHandler.Update)
	authed.PUT("/profile/password", profileHandler.ChangePassword)

	aiHandler := handlers.NewAIHandler(gateway)
	authed.POST("/ai/generate", aiHandler.Generate)
	authed.POST("/ai/analyze-file", aiHandler.AnalyzeFile)

	creditsHandler := handlers.NewCreditsHandler(db, ledger)
	authed.GET("/ai/credits", creditsHandler.Mine)
	authed.GET("/ai/credits/all", creditsHandler.All)

	usageHandler := handlers.NewUsageHandler(db)
	authed.GET("/ai/usage/stats", usageHandler.Stats)

	newsHandler := handlers.NewNewsHandler(db)
	authed.GET("/news", newsHandler.List)
	authed.GET("/news/:id", newsHandler.Get)
	authed.POST("/news", newsHandler.Create)

	qseHandler := handlers.NewQSEHandler(db)
	authed.GET("/qse/dangers", qseHandler.ListDangers)
	authed.POST("/qse/dangers", qseHandler.CreateDanger)
	authed.PUT("/qse/dangers/:id/status", qseHandler.UpdateDangerStatus)
	authed.GET("/qse/rex", qseHandler.ListRex)
	authed.POST("/qse/rex", qseHandler.CreateRex)

	notificationHandler := handlers.NewNotificationHandler(db)
	authed.GET("/notifications", notificationHandler.List)
	authed.GET("/notifications/unread-count", notificationHandler.UnreadCount)
	authed.POST("/notifications/:id/read", notificationHandler.MarkRead)
	authed.POST("/notifications/read-all", notificationHandler.MarkAllRead)
}

// userAuthMiddleware validates user JWTs and loads the user into context.
// The role comes from the database, not the token, so a role change applies
// to in-flight sessions.
func userAuthMiddleware(db *gorm.DB, jwtCfg config.JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == authHeader {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format"})
			return
		}
		token = strings.TrimSpace(token)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "empty token"})
			return
		}

		claims, errJWT := security.ParseToken(jwtCfg.Secret, token)
		if errJWT != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		var user models.User
		if errFind := db.WithContext(c.Request.Context()).First(&user, claims.UserID).Error; errFind != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}
		if !user.Active {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "user disabled"})
			return
		}

		c.Set("userID", user.ID)
		c.Set("userRole", user.Role)
		c.Next()
	}
}

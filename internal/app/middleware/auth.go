package middleware

import (
	"net/http"
	"strings"

	"careledger/internal/app/pkg/auth"

	"github.com/gin-gonic/gin"
)

const (
	UserIDKey        = "user_id"
	EmailKey         = "email"
	RoleKey          = "role"
	CaregiverIDKey   = "caregiver_id"
	CaregiverNameKey = "caregiver_name"
	RecipientIDKey   = "care_recipient_id"
)

// AuthService bundles the authentication collaborators.
type AuthService struct {
	JWT     *auth.JWTService
	Session *auth.SessionService
}

// FamilyAuthMiddleware authenticates a family user via Bearer JWT or a
// session cookie.
func FamilyAuthMiddleware(authSvc *AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			claims, err := authSvc.JWT.Validate(tokenString)
			if err == nil {
				c.Set(UserIDKey, claims.UserID)
				c.Set(EmailKey, claims.Email)
				c.Set(RoleKey, claims.Role)
				c.Next()
				return
			}
		}

		if authSvc.Session != nil {
			sessionID, err := c.Cookie("session_id")
			if err == nil && sessionID != "" {
				sessionData, err := authSvc.Session.Get(c.Request.Context(), sessionID)
				if err == nil && sessionData != nil {
					c.Set(UserIDKey, sessionData.UserID)
					c.Set(EmailKey, sessionData.Email)
					c.Set(RoleKey, sessionData.Role)
					_ = authSvc.Session.Extend(c.Request.Context(), sessionID)
					c.Next()
					return
				}
			}
		}

		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		c.Abort()
	}
}

// CaregiverAuthMiddleware authenticates a caregiver via the session token
// issued on PIN login (header or cookie).
func CaregiverAuthMiddleware(authSvc *AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("X-Caregiver-Token")
		if token == "" {
			token, _ = c.Cookie("caregiver_session")
		}
		if token != "" && authSvc.Session != nil {
			data, err := authSvc.Session.GetCaregiver(c.Request.Context(), token)
			if err == nil && data != nil {
				c.Set(CaregiverIDKey, data.CaregiverID)
				c.Set(CaregiverNameKey, data.Name)
				c.Set(RecipientIDKey, data.CareRecipientID)
				_ = authSvc.Session.ExtendCaregiver(c.Request.Context(), token)
				c.Next()
				return
			}
		}

		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		c.Abort()
	}
}

// GetCurrentUserID reads the family principal set by FamilyAuthMiddleware.
func GetCurrentUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return 0, false
	}
	return userID.(uint), true
}

// GetCurrentCaregiverID reads the caregiver principal set by
// CaregiverAuthMiddleware.
func GetCurrentCaregiverID(c *gin.Context) (uint, bool) {
	id, exists := c.Get(CaregiverIDKey)
	if !exists {
		return 0, false
	}
	return id.(uint), true
}

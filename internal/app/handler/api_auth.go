package handler

import (
	"net/http"

	"careledger/internal/app/ds"
	"careledger/internal/app/pkg/auth"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// POST /api/auth/register
func (h *Handler) ApiRegisterUser(ctx *gin.Context) {
	type requestBody struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
		Name     string `json:"name" binding:"required,min=1,max=100"`
		Role     string `json:"role"`
	}

	var body requestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		h.badRequest(ctx, err)
		return
	}

	if existing, err := h.Repository.GetUserByEmail(body.Email); err == nil && existing != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "user already exists"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}

	role := ds.RoleMember
	if body.Role == ds.RoleAdmin {
		role = ds.RoleAdmin
	}
	user := &ds.User{
		Email:    body.Email,
		Password: string(hashedPassword),
		Name:     body.Name,
		Role:     role,
		IsActive: true,
	}

	if err := h.Repository.CreateUser(user); err != nil {
		h.errorHandler(ctx, err)
		return
	}

	jsonResponse(ctx, gin.H{"user": user}, 1, gin.H{})
}

// POST /api/auth/login
func (h *Handler) ApiLoginUser(ctx *gin.Context) {
	type requestBody struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var body requestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		h.badRequest(ctx, err)
		return
	}

	user, err := h.Repository.GetUserByEmail(body.Email)
	if err != nil || user == nil || !user.IsActive {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(body.Password)) != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := h.Auth.JWT.Generate(user.ID, user.Email, user.Role)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}

	sessionID := uuid.New().String()
	if h.Auth.Session != nil {
		sessionData := auth.SessionData{
			UserID: user.ID,
			Email:  user.Email,
			Role:   user.Role,
		}
		if err := h.Auth.Session.Create(ctx.Request.Context(), sessionID, sessionData); err != nil {
			h.errorHandler(ctx, err)
			return
		}
		ctx.SetCookie("session_id", sessionID, 86400, "/", "", false, true)
	}

	jsonResponse(ctx, gin.H{
		"user":       user,
		"token":      token,
		"session_id": sessionID,
	}, 1, gin.H{})
}

// POST /api/auth/logout
func (h *Handler) ApiLogoutUser(ctx *gin.Context) {
	if h.Auth.Session != nil {
		if sessionID, err := ctx.Cookie("session_id"); err == nil && sessionID != "" {
			_ = h.Auth.Session.Delete(ctx.Request.Context(), sessionID)
		}
	}
	ctx.SetCookie("session_id", "", -1, "/", "", false, true)
	jsonResponse(ctx, gin.H{"logout": true}, 1, gin.H{})
}

// PUT /api/auth/profile
func (h *Handler) ApiUpdateProfile(ctx *gin.Context) {
	type requestBody struct {
		Name     string `json:"name" binding:"omitempty,min=1,max=100"`
		Password string `json:"password" binding:"omitempty,min=6"`
	}

	var body requestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		h.badRequest(ctx, err)
		return
	}

	fields := map[string]interface{}{}
	if body.Name != "" {
		fields["name"] = body.Name
	}
	if body.Password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			h.errorHandler(ctx, err)
			return
		}
		fields["password_hash"] = string(hashedPassword)
	}
	if len(fields) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "nothing to update"})
		return
	}

	userID := currentUserID(ctx)
	if err := h.Repository.UpdateUser(userID, fields); err != nil {
		h.errorHandler(ctx, err)
		return
	}
	user, err := h.Repository.GetUserByID(userID)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}
	jsonResponse(ctx, gin.H{"user": user}, 1, gin.H{})
}

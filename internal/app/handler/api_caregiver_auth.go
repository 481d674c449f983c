package handler

import (
	"net/http"

	"careledger/internal/app/pkg/auth"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// POST /api/caregiver-auth/login
func (h *Handler) ApiCaregiverLogin(ctx *gin.Context) {
	type requestBody struct {
		CaregiverID uint   `json:"caregiver_id" binding:"required"`
		PIN         string `json:"pin" binding:"required"`
	}

	var body requestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		h.badRequest(ctx, err)
		return
	}

	caregiver, err := h.Repository.GetCaregiverByID(body.CaregiverID)
	if err != nil || caregiver == nil || !caregiver.IsActive {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	if !auth.CheckPIN(caregiver.PIN, body.PIN) {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	if h.Auth.Session == nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": "session store unavailable"})
		return
	}

	token := uuid.New().String()
	data := auth.CaregiverSessionData{
		CaregiverID:     caregiver.ID,
		Name:            caregiver.Name,
		CareRecipientID: caregiver.CareRecipientID,
	}
	if err := h.Auth.Session.CreateCaregiver(ctx.Request.Context(), token, data); err != nil {
		h.errorHandler(ctx, err)
		return
	}
	ctx.SetCookie("caregiver_session", token, 43200, "/", "", false, true)

	jsonResponse(ctx, gin.H{
		"caregiver": caregiver,
		"token":     token,
	}, 1, gin.H{})
}

// POST /api/caregiver-auth/logout
func (h *Handler) ApiCaregiverLogout(ctx *gin.Context) {
	if h.Auth.Session != nil {
		token := ctx.GetHeader("X-Caregiver-Token")
		if token == "" {
			token, _ = ctx.Cookie("caregiver_session")
		}
		if token != "" {
			_ = h.Auth.Session.DeleteCaregiver(ctx.Request.Context(), token)
		}
	}
	ctx.SetCookie("caregiver_session", "", -1, "/", "", false, true)
	jsonResponse(ctx, gin.H{"logout": true}, 1, gin.H{})
}

package handler

import (
	"net/http"
	"time"

	"careledger/internal/app/ds"
	"careledger/internal/app/pkg/auth"

	"github.com/gin-gonic/gin"
)

// POST /api/caregivers
func (h *Handler) ApiCreateCaregiver(ctx *gin.Context) {
	type requestBody struct {
		Name            string `json:"name" binding:"required,min=1,max=100"`
		Phone           string `json:"phone"`
		PIN             string `json:"pin" binding:"required"`
		CareRecipientID uint   `json:"care_recipient_id" binding:"required"`
	}

	var body requestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		h.badRequest(ctx, err)
		return
	}

	ok, err := h.Service.CanManageCaregivers(currentUserID(ctx), body.CareRecipientID)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}
	if !ok {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "only the recipient's admin owner can manage caregivers"})
		return
	}

	pinHash, err := auth.HashPIN(body.PIN)
	if err != nil {
		h.badRequest(ctx, err)
		return
	}

	caregiver := &ds.Caregiver{
		Name:            body.Name,
		Phone:           body.Phone,
		PIN:             pinHash,
		CareRecipientID: body.CareRecipientID,
		IsActive:        true,
		CreatedAt:       time.Now(),
	}
	if err := h.Repository.CreateCaregiver(caregiver); err != nil {
		h.errorHandler(ctx, err)
		return
	}
	jsonResponse(ctx, caregiver, 1, gin.H{})
}

// GET /api/care-recipients/:id/caregivers
func (h *Handler) ApiListCaregivers(ctx *gin.Context) {
	recipientID, err := idParam(ctx, "id")
	if err != nil {
		h.badRequest(ctx, err)
		return
	}

	ok, err := h.Service.CanManageCaregivers(currentUserID(ctx), recipientID)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}
	if !ok {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "only the recipient's admin owner can manage caregivers"})
		return
	}

	caregivers, err := h.Repository.ListCaregiversByRecipient(recipientID)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}
	jsonResponse(ctx, caregivers, int64(len(caregivers)), gin.H{})
}

// PUT /api/caregivers/:id/deactivate
func (h *Handler) ApiDeactivateCaregiver(ctx *gin.Context) {
	caregiverID, err := idParam(ctx, "id")
	if err != nil {
		h.badRequest(ctx, err)
		return
	}

	caregiver, err := h.Repository.GetCaregiverByID(caregiverID)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "caregiver not found"})
		return
	}

	ok, err := h.Service.CanManageCaregivers(currentUserID(ctx), caregiver.CareRecipientID)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}
	if !ok {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "only the recipient's admin owner can manage caregivers"})
		return
	}

	if err := h.Repository.UpdateCaregiver(caregiverID, map[string]interface{}{"is_active": false}); err != nil {
		h.errorHandler(ctx, err)
		return
	}
	jsonResponse(ctx, gin.H{"deactivated": caregiverID}, 1, gin.H{})
}

// PUT /api/caregivers/:id/pin
func (h *Handler) ApiResetCaregiverPIN(ctx *gin.Context) {
	caregiverID, err := idParam(ctx, "id")
	if err != nil {
		h.badRequest(ctx, err)
		return
	}

	type requestBody struct {
		PIN string `json:"pin" binding:"required"`
	}
	var body requestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		h.badRequest(ctx, err)
		return
	}

	caregiver, err := h.Repository.GetCaregiverByID(caregiverID)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "caregiver not found"})
		return
	}

	ok, err := h.Service.CanManageCaregivers(currentUserID(ctx), caregiver.CareRecipientID)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}
	if !ok {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "only the recipient's admin owner can manage caregivers"})
		return
	}

	pinHash, err := auth.HashPIN(body.PIN)
	if err != nil {
		h.badRequest(ctx, err)
		return
	}
	if err := h.Repository.UpdateCaregiver(caregiverID, map[string]interface{}{"pin_hash": pinHash}); err != nil {
		h.errorHandler(ctx, err)
		return
	}
	jsonResponse(ctx, gin.H{"pin_reset": caregiverID}, 1, gin.H{})
}

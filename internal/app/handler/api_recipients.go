package handler

import (
	"net/http"
	"time"

	"careledger/internal/app/ds"

	"github.com/gin-gonic/gin"
)

// POST /api/care-recipients
func (h *Handler) ApiCreateRecipient(ctx *gin.Context) {
	type requestBody struct {
		Name        string     `json:"name" binding:"required,min=1,max=100"`
		DateOfBirth *time.Time `json:"date_of_birth"`
	}

	var body requestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		h.badRequest(ctx, err)
		return
	}

	userID := currentUserID(ctx)
	user, err := h.Repository.GetUserByID(userID)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}
	if user.Role != ds.RoleAdmin {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "only admins can create care recipients"})
		return
	}

	rec := &ds.CareRecipient{
		Name:        body.Name,
		DateOfBirth: body.DateOfBirth,
		AdminUserID: userID,
		CreatedAt:   time.Now(),
	}
	if err := h.Repository.CreateCareRecipient(rec); err != nil {
		h.errorHandler(ctx, err)
		return
	}
	jsonResponse(ctx, rec, 1, gin.H{})
}

// GET /api/care-recipients
func (h *Handler) ApiListRecipients(ctx *gin.Context) {
	recipients, err := h.Service.AccessibleCareRecipients(currentUserID(ctx))
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}
	jsonResponse(ctx, recipients, int64(len(recipients)), gin.H{})
}

// POST /api/care-recipients/:id/access
func (h *Handler) ApiGrantAccess(ctx *gin.Context) {
	recipientID, err := idParam(ctx, "id")
	if err != nil {
		h.badRequest(ctx, err)
		return
	}

	type requestBody struct {
		UserID uint `json:"user_id" binding:"required"`
	}
	var body requestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		h.badRequest(ctx, err)
		return
	}

	userID := currentUserID(ctx)
	ok, err := h.Service.CanManageCaregivers(userID, recipientID)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}
	if !ok {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "only the recipient's admin owner can grant access"})
		return
	}

	grant := &ds.CareRecipientAccess{
		CareRecipientID: recipientID,
		UserID:          body.UserID,
		GrantedBy:       userID,
		GrantedAt:       time.Now(),
	}
	if err := h.Repository.CreateAccessGrant(grant); err != nil {
		h.errorHandler(ctx, err)
		return
	}
	jsonResponse(ctx, grant, 1, gin.H{})
}

// GET /api/care-recipients/:id/access
func (h *Handler) ApiListAccessGrants(ctx *gin.Context) {
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
		ctx.JSON(http.StatusForbidden, gin.H{"error": "only the recipient's admin owner can list grants"})
		return
	}

	grants, err := h.Repository.ListAccessGrants(recipientID)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}
	jsonResponse(ctx, grants, int64(len(grants)), gin.H{"care_recipient_id": recipientID})
}

// DELETE /api/care-recipients/:id/access/:userId
func (h *Handler) ApiRevokeAccess(ctx *gin.Context) {
	recipientID, err := idParam(ctx, "id")
	if err != nil {
		h.badRequest(ctx, err)
		return
	}
	memberID, err := idParam(ctx, "userId")
	if err != nil {
		h.badRequest(ctx, err)
		return
	}

	userID := currentUserID(ctx)
	ok, err := h.Service.CanManageCaregivers(userID, recipientID)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}
	if !ok {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "only the recipient's admin owner can revoke access"})
		return
	}

	if err := h.Repository.RevokeAccess(recipientID, memberID, time.Now()); err != nil {
		h.errorHandler(ctx, err)
		return
	}
	jsonResponse(ctx, gin.H{"revoked": memberID}, 1, gin.H{"care_recipient_id": recipientID})
}

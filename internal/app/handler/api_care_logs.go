package handler

import (
	"time"

	"careledger/internal/app/carelog"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// POST /api/caregiver/care-logs
func (h *Handler) ApiCreateLog(ctx *gin.Context) {
	type requestBody struct {
		CareRecipientID uint                   `json:"care_recipient_id" binding:"required"`
		LogDate         string                 `json:"log_date"`
		Payload         *carelog.UpdatePayload `json:"payload"`
	}
	var body requestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		h.badRequest(ctx, err)
		return
	}

	logDate := time.Now().Truncate(24 * time.Hour)
	if body.LogDate != "" {
		parsed, err := time.Parse("2006-01-02", body.LogDate)
		if err != nil {
			h.badRequest(ctx, err)
			return
		}
		logDate = parsed
	}

	log, err := h.Service.CreateLog(currentCaregiverID(ctx), body.CareRecipientID, logDate, body.Payload)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}
	jsonResponse(ctx, log, 1, gin.H{})
}

// GET /api/caregiver/care-logs
func (h *Handler) ApiListOwnLogs(ctx *gin.Context) {
	logs, err := h.Service.CaregiverLogs(currentCaregiverID(ctx))
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}
	jsonResponse(ctx, logs, int64(len(logs)), gin.H{})
}

// GET /api/caregiver/care-logs/draft?care_recipient_id=&log_date=
func (h *Handler) ApiGetDraftLog(ctx *gin.Context) {
	recipientID, err := queryUint(ctx, "care_recipient_id")
	if err != nil {
		h.badRequest(ctx, err)
		return
	}
	logDate := time.Now().Truncate(24 * time.Hour)
	if raw := ctx.Query("log_date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			h.badRequest(ctx, err)
			return
		}
		logDate = parsed
	}
	log, err := h.Service.DraftForDate(currentCaregiverID(ctx), recipientID, logDate)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}
	jsonResponse(ctx, log, 1, gin.H{})
}

// GET /api/caregiver/care-logs/:id
func (h *Handler) ApiGetOwnLog(ctx *gin.Context) {
	logID, err := idParam(ctx, "id")
	if err != nil {
		h.badRequest(ctx, err)
		return
	}
	log, err := h.Service.CaregiverLog(currentCaregiverID(ctx), logID)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}
	jsonResponse(ctx, log, 1, gin.H{})
}

// PUT /api/caregiver/care-logs/:id
func (h *Handler) ApiUpdateLog(ctx *gin.Context) {
	logID, err := idParam(ctx, "id")
	if err != nil {
		h.badRequest(ctx, err)
		return
	}
	var payload carelog.UpdatePayload
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		h.badRequest(ctx, err)
		return
	}
	log, err := h.Service.UpdateLog(currentCaregiverID(ctx), logID, &payload)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}
	jsonResponse(ctx, log, 1, gin.H{"id": logID})
}

// POST /api/caregiver/care-logs/:id/sections/:section
func (h *Handler) ApiSubmitSection(ctx *gin.Context) {
	logID, err := idParam(ctx, "id")
	if err != nil {
		h.badRequest(ctx, err)
		return
	}
	section := ctx.Param("section")
	log, err := h.Service.SubmitSection(currentCaregiverID(ctx), logID, section)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}
	jsonResponse(ctx, log, 1, gin.H{"section": section})
}

// POST /api/caregiver/care-logs/:id/submit
func (h *Handler) ApiSubmitLog(ctx *gin.Context) {
	logID, err := idParam(ctx, "id")
	if err != nil {
		h.badRequest(ctx, err)
		return
	}
	log, err := h.Service.SubmitLog(currentCaregiverID(ctx), logID)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}
	jsonResponse(ctx, log, 1, gin.H{"id": logID})
}

// POST /api/caregiver/care-logs/:id/photos
func (h *Handler) ApiAttachPhoto(ctx *gin.Context) {
	logID, err := idParam(ctx, "id")
	if err != nil {
		h.badRequest(ctx, err)
		return
	}
	fileHeader, err := ctx.FormFile("photo")
	if err != nil {
		h.badRequest(ctx, err)
		return
	}

	// reject before uploading so a forbidden or finalized log cannot strand
	// an orphan object
	if _, err := h.Service.CaregiverLog(currentCaregiverID(ctx), logID); err != nil {
		h.errorHandler(ctx, err)
		return
	}

	key, publicURL, err := h.MinIO.UploadPhoto(ctx.Request.Context(), fileHeader, "care-log")
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}

	log, err := h.Service.AttachPhoto(currentCaregiverID(ctx), logID, publicURL)
	if err != nil {
		// the log moved under us between the precheck and the attach
		if delErr := h.MinIO.DeletePhoto(ctx.Request.Context(), key); delErr != nil {
			logrus.WithError(delErr).WithField("key", key).Warn("failed to remove orphan photo object")
		}
		h.errorHandler(ctx, err)
		return
	}
	jsonResponse(ctx, log, 1, gin.H{"photo_url": publicURL})
}

// DELETE /api/caregiver/care-logs/:id/photos
func (h *Handler) ApiRemovePhoto(ctx *gin.Context) {
	logID, err := idParam(ctx, "id")
	if err != nil {
		h.badRequest(ctx, err)
		return
	}
	type requestBody struct {
		PhotoURL string `json:"photo_url" binding:"required"`
	}
	var body requestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		h.badRequest(ctx, err)
		return
	}

	log, err := h.Service.RemovePhoto(currentCaregiverID(ctx), logID, body.PhotoURL)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}

	// the log row is authoritative; object removal is best effort
	if key := h.MinIO.KeyFromURL(body.PhotoURL); key != "" {
		if err := h.MinIO.DeletePhoto(ctx.Request.Context(), key); err != nil {
			logrus.WithError(err).WithField("key", key).Warn("failed to remove photo object")
		}
	}
	jsonResponse(ctx, log, 1, gin.H{"photo_url": body.PhotoURL})
}

// POST /api/care-logs/:id/invalidate
func (h *Handler) ApiInvalidateLog(ctx *gin.Context) {
	logID, err := idParam(ctx, "id")
	if err != nil {
		h.badRequest(ctx, err)
		return
	}
	type requestBody struct {
		Reason string `json:"reason" binding:"required"`
	}
	var body requestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		h.badRequest(ctx, err)
		return
	}
	log, err := h.Service.InvalidateLog(currentUserID(ctx), logID, body.Reason)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}
	jsonResponse(ctx, log, 1, gin.H{"id": logID})
}

// GET /api/care-recipients/:id/care-logs
func (h *Handler) ApiListLogsForRecipient(ctx *gin.Context) {
	recipientID, err := idParam(ctx, "id")
	if err != nil {
		h.badRequest(ctx, err)
		return
	}
	logs, err := h.Service.LogsForRecipient(currentUserID(ctx), recipientID)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}
	jsonResponse(ctx, logs, int64(len(logs)), gin.H{"care_recipient_id": recipientID})
}

// GET /api/care-logs/:id
func (h *Handler) ApiGetFamilyLog(ctx *gin.Context) {
	logID, err := idParam(ctx, "id")
	if err != nil {
		h.badRequest(ctx, err)
		return
	}
	view, err := h.Service.FamilyLog(currentUserID(ctx), logID)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}
	jsonResponse(ctx, view, 1, gin.H{"id": logID})
}

// GET /api/care-logs/:id/history
func (h *Handler) ApiGetLogHistory(ctx *gin.Context) {
	logID, err := idParam(ctx, "id")
	if err != nil {
		h.badRequest(ctx, err)
		return
	}
	entries, err := h.Service.History(currentUserID(ctx), logID)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}
	jsonResponse(ctx, entries, int64(len(entries)), gin.H{"id": logID})
}

// POST /api/care-logs/:id/viewed
func (h *Handler) ApiMarkViewed(ctx *gin.Context) {
	logID, err := idParam(ctx, "id")
	if err != nil {
		h.badRequest(ctx, err)
		return
	}
	if err := h.Service.MarkViewed(currentUserID(ctx), logID); err != nil {
		h.errorHandler(ctx, err)
		return
	}
	jsonResponse(ctx, gin.H{"viewed": logID}, 1, gin.H{})
}

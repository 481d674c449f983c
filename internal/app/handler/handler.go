package handler

import (
	"net/http"

	"careledger/internal/app/carelog"
	"careledger/internal/app/config"
	"careledger/internal/app/middleware"
	"careledger/internal/app/pkg/storage"
	"careledger/internal/app/repository"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	Repository *repository.Repository
	Service    *carelog.Service
	Config     *config.Config
	Auth       *middleware.AuthService
	MinIO      *storage.MinIO
}

func NewHandler(r *repository.Repository, svc *carelog.Service, cfg *config.Config, authSvc *middleware.AuthService, m *storage.MinIO) *Handler {
	return &Handler{
		Repository: r,
		Service:    svc,
		Config:     cfg,
		Auth:       authSvc,
		MinIO:      m,
	}
}

// RegisterHandler wires all routes.
func (h *Handler) RegisterHandler(router *gin.Engine) {
	router.GET("/health", h.Health)

	api := router.Group("/api")

	api.POST("/auth/register", h.ApiRegisterUser)
	api.POST("/auth/login", h.ApiLoginUser)
	api.POST("/auth/logout", h.ApiLogoutUser)
	api.PUT("/auth/profile", middleware.FamilyAuthMiddleware(h.Auth), h.ApiUpdateProfile)
	api.POST("/caregiver-auth/login", h.ApiCaregiverLogin)
	api.POST("/caregiver-auth/logout", h.ApiCaregiverLogout)

	family := api.Group("/", middleware.FamilyAuthMiddleware(h.Auth))
	family.POST("/care-recipients", h.ApiCreateRecipient)
	family.GET("/care-recipients", h.ApiListRecipients)
	family.POST("/care-recipients/:id/access", h.ApiGrantAccess)
	family.GET("/care-recipients/:id/access", h.ApiListAccessGrants)
	family.DELETE("/care-recipients/:id/access/:userId", h.ApiRevokeAccess)
	family.GET("/care-recipients/:id/care-logs", h.ApiListLogsForRecipient)
	family.POST("/caregivers", h.ApiCreateCaregiver)
	family.GET("/care-recipients/:id/caregivers", h.ApiListCaregivers)
	family.PUT("/caregivers/:id/deactivate", h.ApiDeactivateCaregiver)
	family.PUT("/caregivers/:id/pin", h.ApiResetCaregiverPIN)
	family.GET("/care-logs/:id", h.ApiGetFamilyLog)
	family.GET("/care-logs/:id/history", h.ApiGetLogHistory)
	family.POST("/care-logs/:id/viewed", h.ApiMarkViewed)
	family.POST("/care-logs/:id/invalidate", h.ApiInvalidateLog)

	caregiver := api.Group("/caregiver", middleware.CaregiverAuthMiddleware(h.Auth))
	caregiver.POST("/care-logs", h.ApiCreateLog)
	caregiver.GET("/care-logs", h.ApiListOwnLogs)
	caregiver.GET("/care-logs/draft", h.ApiGetDraftLog)
	caregiver.GET("/care-logs/:id", h.ApiGetOwnLog)
	caregiver.PUT("/care-logs/:id", h.ApiUpdateLog)
	caregiver.POST("/care-logs/:id/sections/:section", h.ApiSubmitSection)
	caregiver.POST("/care-logs/:id/submit", h.ApiSubmitLog)
	caregiver.POST("/care-logs/:id/photos", h.ApiAttachPhoto)
	caregiver.DELETE("/care-logs/:id/photos", h.ApiRemovePhoto)
}

func (h *Handler) Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// errorHandler maps engine error kinds to HTTP statuses. Internal detail is
// logged, never sent to the client.
func (h *Handler) errorHandler(ctx *gin.Context, err error) {
	kind := carelog.KindOf(err)

	status := http.StatusInternalServerError
	switch kind {
	case carelog.KindUnauthorized:
		status = http.StatusUnauthorized
	case carelog.KindForbidden:
		status = http.StatusForbidden
	case carelog.KindInvalidState:
		status = http.StatusConflict
	case carelog.KindValidation:
		status = http.StatusBadRequest
	case carelog.KindNotFound:
		status = http.StatusNotFound
	}

	if kind == carelog.KindInternal {
		logrus.WithError(err).Error("internal error")
		ctx.JSON(status, gin.H{"status": "error", "description": "internal error"})
		return
	}

	body := gin.H{"status": "error", "description": err.Error()}
	var engineErr *carelog.Error
	if ok := asEngineError(err, &engineErr); ok && len(engineErr.Fields) > 0 {
		body["fields"] = engineErr.Fields
	}
	ctx.JSON(status, body)
}

func (h *Handler) badRequest(ctx *gin.Context, err error) {
	logrus.Error(err.Error())
	ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "description": err.Error()})
}

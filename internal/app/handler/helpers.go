package handler

import (
	"errors"
	"net/http"
	"strconv"

	"careledger/internal/app/carelog"
	"careledger/internal/app/middleware"

	"github.com/gin-gonic/gin"
)

func jsonResponse(ctx *gin.Context, data interface{}, count int64, meta gin.H) {
	ctx.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"data":   data,
		"count":  count,
		"meta":   meta,
	})
}

func asEngineError(err error, target **carelog.Error) bool {
	return errors.As(err, target)
}

func currentUserID(ctx *gin.Context) uint {
	id, _ := middleware.GetCurrentUserID(ctx)
	return id
}

func currentCaregiverID(ctx *gin.Context) uint {
	id, _ := middleware.GetCurrentCaregiverID(ctx)
	return id
}

func idParam(ctx *gin.Context, name string) (uint, error) {
	id64, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id64), nil
}

func queryUint(ctx *gin.Context, name string) (uint, error) {
	id64, err := strconv.ParseUint(ctx.Query(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id64), nil
}

package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"retail_orders_v1_202608/internal/service"
)

// ==================== 统一响应 ====================

// ok 成功响应
func ok(ctx *gin.Context, message string, data interface{}) {
	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": message,
		"data":    data,
	})
}

// created 创建成功响应
func created(ctx *gin.Context, message string, data interface{}) {
	ctx.JSON(http.StatusCreated, gin.H{
		"code":    0,
		"message": message,
		"data":    data,
	})
}

// fail 按错误分类映射 HTTP 状态码
func fail(ctx *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrAuthRequired):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrPermissionDenied):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrFeedFetch):
		status = http.StatusBadGateway
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrUserDisabled):
		status = http.StatusUnauthorized
	}

	ctx.JSON(status, gin.H{
		"code":    status,
		"message": err.Error(),
	})
}

// badRequest 参数绑定失败
func badRequest(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, gin.H{
		"code":    400,
		"message": "参数错误: " + err.Error(),
	})
}

package handler

import (
	"net/http"

	"github.com/Ajinkya-07/Freelance-Website/internal/errs"
	"github.com/gin-gonic/gin"
)

// Response 统一响应包装
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// SuccessResponse 成功响应
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse 错误响应
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Error:   message,
	})
}

// FailFromError 按错误类别映射 HTTP 状态码后返回错误响应
func FailFromError(c *gin.Context, err error) {
	switch errs.KindOf(err) {
	case errs.KindNotFound:
		ErrorResponse(c, http.StatusNotFound, err.Error())
	case errs.KindForbidden:
		ErrorResponse(c, http.StatusForbidden, err.Error())
	case errs.KindValidation:
		ErrorResponse(c, http.StatusBadRequest, err.Error())
	case errs.KindConflict:
		ErrorResponse(c, http.StatusConflict, err.Error())
	default:
		ErrorResponse(c, http.StatusInternalServerError, "服务器内部错误")
	}
}

// currentUserID 获取鉴权中间件写入的当前用户ID
func currentUserID(c *gin.Context) uint {
	return c.GetUint("userID")
}

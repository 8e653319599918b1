package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"parkirku/services"
)

// APIResponse 定義統一的 API 回應結構
type APIResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// SuccessResponse 返回成功的回應
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, APIResponse{
		Status:  true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse 返回失敗的回應
func ErrorResponse(c *gin.Context, statusCode int, message string, err string) {
	c.JSON(statusCode, APIResponse{
		Status:  false,
		Message: message,
		Error:   err,
	})
}

// ServiceError maps the engine's failure signals onto HTTP statuses:
// validation → 400, conflict → 409, not found → 404, anything else → 500.
func ServiceError(c *gin.Context, message string, err error) {
	statusCode := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrValidation):
		statusCode = http.StatusBadRequest
	case errors.Is(err, services.ErrConflict):
		statusCode = http.StatusConflict
	case errors.Is(err, services.ErrNotFound):
		statusCode = http.StatusNotFound
	}
	ErrorResponse(c, statusCode, message, err.Error())
}

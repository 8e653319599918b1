package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// VerifyUserRequest 帳號查驗請求
type VerifyUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// VerifyUser 查驗帳號密碼並回傳不含密碼的使用者資料；
// token 與 session 一概不在引擎範圍內
func (h *Handler) VerifyUser(c *gin.Context) {
	var req VerifyUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	user, err := h.Users.Verify(req.Username, req.Password)
	if err != nil {
		ServiceError(c, "Failed to verify user", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "User verified", user.ToResponse())
}

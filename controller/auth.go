package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-tycoon/dto"
	"go-tycoon/utils"
)

// IssueToken godoc
// @Summary 签发访问令牌和刷新令牌
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.TokenRequest true "用户 ID"
// @Success 200 {object} dto.TokenResponse
// @Router /auth/token [post]
func IssueToken(c *gin.Context) {
	var req dto.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少必要字段"})
		return
	}
	issue(c, req.UserID)
}

// RefreshToken godoc
// @Summary 用刷新令牌换一对新令牌
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.RefreshRequest true "刷新令牌"
// @Success 200 {object} dto.TokenResponse
// @Router /auth/refresh [post]
func RefreshToken(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少必要字段"})
		return
	}
	claims, err := utils.ParseRefreshToken(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "刷新令牌无效或已过期"})
		return
	}
	issue(c, claims.UserID)
}

func issue(c *gin.Context, userID string) {
	access, err := utils.GenerateAccessToken(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	refresh, err := utils.GenerateRefreshToken(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	success(c, "签发成功", dto.TokenResponse{AccessToken: access, RefreshToken: refresh})
}

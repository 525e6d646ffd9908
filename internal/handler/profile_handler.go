package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linkfolio/internal/db"
	"github.com/linkfolio/internal/service"
	"github.com/linkfolio/internal/view"
)

type onboardRequest struct {
	Username string `json:"username"`
}

type profileRequest struct {
	DisplayName     *string `json:"displayName"`
	Bio             *string `json:"bio"`
	AvatarURL       *string `json:"avatarUrl"`
	BackgroundColor *string `json:"backgroundColor"`
	TextColor       *string `json:"textColor"`
}

// OnboardProfile 为当前登录用户创建页面资料
func (a *API) OnboardProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "请先登录")
		return
	}

	var payload onboardRequest
	if !bindJSON(c, &payload, "请填写用户名") {
		return
	}

	profile, err := a.profiles.Onboard(userID, payload.Username)
	if err != nil {
		handleProfileError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "页面已创建",
		"profile": profilePayload(*profile),
	})
}

// GetMyProfile 返回当前登录用户的页面资料
func (a *API) GetMyProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "请先登录")
		return
	}

	profile, err := a.profiles.GetByUserID(userID)
	if err != nil {
		handleProfileError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profilePayload(*profile)})
}

// UpdateMyProfile 部分更新页面资料
func (a *API) UpdateMyProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "请先登录")
		return
	}

	var payload profileRequest
	if !bindJSON(c, &payload, "资料格式不正确") {
		return
	}

	profile, err := a.profiles.Update(userID, service.ProfileInput{
		DisplayName:     payload.DisplayName,
		Bio:             payload.Bio,
		AvatarURL:       payload.AvatarURL,
		BackgroundColor: payload.BackgroundColor,
		TextColor:       payload.TextColor,
	})
	if err != nil {
		handleProfileError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "资料已更新",
		"profile": profilePayload(*profile),
	})
}

// ListPlatforms 返回图标链接可选的平台目录
func (a *API) ListPlatforms(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"platforms": view.PlatformOptions(),
		"icons":     view.PlatformSVGMap(),
	})
}

// requireProfile 解析当前会话归属的 Profile，失败时已写好响应
func (a *API) requireProfile(c *gin.Context) (*db.Profile, bool) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "请先登录")
		return nil, false
	}

	profile, err := a.profiles.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			respondError(c, http.StatusNotFound, "请先创建你的页面")
			return nil, false
		}
		respondError(c, http.StatusInternalServerError, "获取页面资料失败")
		return nil, false
	}

	return profile, true
}

func profilePayload(profile db.Profile) gin.H {
	return gin.H{
		"id":              profile.ID,
		"username":        profile.Username,
		"displayName":     profile.DisplayName,
		"bio":             profile.Bio,
		"avatarUrl":       profile.AvatarURL,
		"backgroundColor": profile.BackgroundColor,
		"textColor":       profile.TextColor,
	}
}

func handleProfileError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProfileNotFound):
		respondError(c, http.StatusNotFound, "请先创建你的页面")
	case errors.Is(err, service.ErrProfileInvalidInput):
		respondError(c, http.StatusBadRequest, userFacingMessage(err, "请检查资料格式"))
	case errors.Is(err, service.ErrUsernameTaken):
		respondError(c, http.StatusConflict, "该用户名已被占用")
	case errors.Is(err, service.ErrUsernameImmutable):
		respondError(c, http.StatusConflict, "用户名创建后不可修改")
	default:
		respondError(c, http.StatusInternalServerError, "操作失败")
	}
}

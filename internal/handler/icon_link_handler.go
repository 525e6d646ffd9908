package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linkfolio/internal/db"
	"github.com/linkfolio/internal/service"
)

type iconLinkRequest struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

type reorderRequest struct {
	TargetID uint `json:"targetId"`
}

// ListIconLinks 返回编辑器用的图标链接列表（含未启用）
func (a *API) ListIconLinks(c *gin.Context) {
	profile, ok := a.requireProfile(c)
	if !ok {
		return
	}

	links, err := a.iconLinks.List(profile.ID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取图标链接失败")
		return
	}

	items := make([]gin.H, 0, len(links))
	for _, link := range links {
		items = append(items, iconLinkPayload(link))
	}

	c.JSON(http.StatusOK, gin.H{"iconLinks": items})
}

// CreateIconLink 新增图标链接
func (a *API) CreateIconLink(c *gin.Context) {
	profile, ok := a.requireProfile(c)
	if !ok {
		return
	}

	var payload iconLinkRequest
	if !bindJSON(c, &payload, "请选择平台并填写链接") {
		return
	}

	link, err := a.iconLinks.Add(profile.ID, payload.Platform, payload.URL)
	if err != nil {
		handleLinkError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "已添加图标链接",
		"iconLink": iconLinkPayload(*link),
	})
}

// UpdateIconLink 更新图标链接的跳转地址
func (a *API) UpdateIconLink(c *gin.Context) {
	profile, ok := a.requireProfile(c)
	if !ok {
		return
	}

	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的链接ID")
		return
	}

	var payload iconLinkRequest
	if !bindJSON(c, &payload, "请填写链接地址") {
		return
	}

	link, err := a.iconLinks.UpdateURL(profile.ID, id, payload.URL)
	if err != nil {
		handleLinkError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "图标链接已更新",
		"iconLink": iconLinkPayload(*link),
	})
}

// DeleteIconLink 删除图标链接；目标已不存在时按已完成处理
func (a *API) DeleteIconLink(c *gin.Context) {
	profile, ok := a.requireProfile(c)
	if !ok {
		return
	}

	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的链接ID")
		return
	}

	if err := a.iconLinks.Delete(profile.ID, id); err != nil && !errors.Is(err, service.ErrLinkNotFound) {
		handleLinkError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "图标链接已删除"})
}

// ToggleIconLink 切换图标链接的启用状态
func (a *API) ToggleIconLink(c *gin.Context) {
	profile, ok := a.requireProfile(c)
	if !ok {
		return
	}

	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的链接ID")
		return
	}

	link, err := a.iconLinks.ToggleActive(profile.ID, id)
	if err != nil {
		handleLinkError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "状态已更新",
		"iconLink": iconLinkPayload(*link),
	})
}

// ReorderIconLinks 对拖拽结果执行两两交换；路径参数为被拖拽项
func (a *API) ReorderIconLinks(c *gin.Context) {
	profile, ok := a.requireProfile(c)
	if !ok {
		return
	}

	draggedID, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的链接ID")
		return
	}

	var payload reorderRequest
	if !bindJSON(c, &payload, "排序数据格式不正确") {
		return
	}

	if err := a.iconLinks.Reorder(profile.ID, draggedID, payload.TargetID); err != nil {
		respondError(c, http.StatusInternalServerError, "更新排序失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "排序已更新"})
}

func iconLinkPayload(link db.IconLink) gin.H {
	return gin.H{
		"id":         link.ID,
		"platform":   link.Platform,
		"url":        link.URL,
		"orderIndex": link.OrderIndex,
		"isActive":   link.IsActive,
	}
}

func handleLinkError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrLinkNotFound):
		respondError(c, http.StatusNotFound, "链接不存在")
	case errors.Is(err, service.ErrDuplicatePlatform):
		respondError(c, http.StatusConflict, "该平台已添加，请直接编辑已有链接")
	case errors.Is(err, service.ErrInvalidURL), errors.Is(err, service.ErrLinkInvalidInput):
		respondError(c, http.StatusBadRequest, userFacingMessage(err, "请检查链接信息"))
	default:
		respondError(c, http.StatusInternalServerError, "操作失败")
	}
}

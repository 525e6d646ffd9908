package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linkfolio/internal/db"
	"github.com/linkfolio/internal/service"
)

type customLinkRequest struct {
	Title    string  `json:"title"`
	Subtitle string  `json:"subtitle"`
	URL      string  `json:"url"`
	ImageURL *string `json:"imageUrl"`
}

// ListCustomLinks 返回编辑器用的自定义链接列表（含未启用）
func (a *API) ListCustomLinks(c *gin.Context) {
	profile, ok := a.requireProfile(c)
	if !ok {
		return
	}

	links, err := a.customLinks.List(profile.ID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取链接失败")
		return
	}

	items := make([]gin.H, 0, len(links))
	for _, link := range links {
		items = append(items, customLinkPayload(link))
	}

	c.JSON(http.StatusOK, gin.H{"customLinks": items})
}

// CreateCustomLink 新增自定义链接
func (a *API) CreateCustomLink(c *gin.Context) {
	profile, ok := a.requireProfile(c)
	if !ok {
		return
	}

	var payload customLinkRequest
	if !bindJSON(c, &payload, "请填写标题和链接") {
		return
	}

	link, err := a.customLinks.Add(profile.ID, payload.toInput())
	if err != nil {
		handleLinkError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "已添加链接",
		"customLink": customLinkPayload(*link),
	})
}

// UpdateCustomLink 更新自定义链接的编辑字段
func (a *API) UpdateCustomLink(c *gin.Context) {
	profile, ok := a.requireProfile(c)
	if !ok {
		return
	}

	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的链接ID")
		return
	}

	var payload customLinkRequest
	if !bindJSON(c, &payload, "请填写标题和链接") {
		return
	}

	link, err := a.customLinks.Update(profile.ID, id, payload.toInput())
	if err != nil {
		handleLinkError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "链接已更新",
		"customLink": customLinkPayload(*link),
	})
}

// DeleteCustomLink 删除自定义链接；目标已不存在时按已完成处理
func (a *API) DeleteCustomLink(c *gin.Context) {
	profile, ok := a.requireProfile(c)
	if !ok {
		return
	}

	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的链接ID")
		return
	}

	if err := a.customLinks.Delete(profile.ID, id); err != nil && !errors.Is(err, service.ErrLinkNotFound) {
		handleLinkError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "链接已删除"})
}

// ToggleCustomLink 切换自定义链接的启用状态
func (a *API) ToggleCustomLink(c *gin.Context) {
	profile, ok := a.requireProfile(c)
	if !ok {
		return
	}

	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的链接ID")
		return
	}

	link, err := a.customLinks.ToggleActive(profile.ID, id)
	if err != nil {
		handleLinkError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "状态已更新",
		"customLink": customLinkPayload(*link),
	})
}

// ReorderCustomLinks 对拖拽结果执行两两交换；路径参数为被拖拽项
func (a *API) ReorderCustomLinks(c *gin.Context) {
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

	if err := a.customLinks.Reorder(profile.ID, draggedID, payload.TargetID); err != nil {
		respondError(c, http.StatusInternalServerError, "更新排序失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "排序已更新"})
}

func (r customLinkRequest) toInput() service.CustomLinkInput {
	return service.CustomLinkInput{
		Title:    r.Title,
		Subtitle: r.Subtitle,
		URL:      r.URL,
		ImageURL: r.ImageURL,
	}
}

func customLinkPayload(link db.CustomLink) gin.H {
	return gin.H{
		"id":         link.ID,
		"title":      link.Title,
		"subtitle":   link.Subtitle,
		"url":        link.URL,
		"imageUrl":   link.ImageURL,
		"clickCount": link.ClickCount,
		"orderIndex": link.OrderIndex,
		"isActive":   link.IsActive,
	}
}

package handler

import (
	"bytes"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linkfolio/internal/service"
	"github.com/linkfolio/internal/view"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	sanitizer = bluemonday.UGCPolicy()
)

// ShowPublicProfile 返回匿名访客可见的页面聚合视图
func (a *API) ShowPublicProfile(c *gin.Context) {
	username := c.Param("username")

	profile, err := a.public.Resolve(username)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			respondError(c, http.StatusNotFound, "页面不存在")
			return
		}
		respondError(c, http.StatusInternalServerError, "获取页面失败")
		return
	}

	icons := make([]gin.H, 0, len(profile.IconLinks))
	for _, link := range profile.IconLinks {
		icons = append(icons, gin.H{
			"platform": link.Platform,
			"url":      link.URL,
			"icon":     view.PlatformSVG(link.Platform),
		})
	}

	links := make([]gin.H, 0, len(profile.CustomLinks))
	for _, link := range profile.CustomLinks {
		links = append(links, gin.H{
			"id":       link.ID,
			"title":    link.Title,
			"subtitle": link.Subtitle,
			"url":      link.URL,
			"imageUrl": link.ImageURL,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"profile": gin.H{
			"username":        profile.Username,
			"displayName":     profile.DisplayName,
			"bio":             profile.Bio,
			"bioHtml":         renderBioHTML(profile.Bio),
			"avatarUrl":       profile.AvatarURL,
			"backgroundColor": profile.BackgroundColor,
			"textColor":       profile.TextColor,
		},
		"iconLinks":   icons,
		"customLinks": links,
	})
}

// RecordLinkClick 记录一次自定义链接点击。
// 记账对访客透明：无论成败都立即返回 204，失败只记日志。
func (a *API) RecordLinkClick(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		c.Status(http.StatusNoContent)
		return
	}

	if err := a.customLinks.RecordClick(id); err != nil {
		log.Printf("record click for link %d: %v", id, err)
	}

	c.Status(http.StatusNoContent)
}

// renderBioHTML 将简介渲染为净化后的 HTML 片段
func renderBioHTML(bio string) string {
	if bio == "" {
		return ""
	}

	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(bio), &buf); err != nil {
		log.Printf("render bio markdown: %v", err)
		return ""
	}

	return sanitizer.Sanitize(buf.String())
}

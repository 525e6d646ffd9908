package main

import (
	"fmt"
	"log"

	"github.com/linkfolio/internal/config"
	"github.com/linkfolio/internal/db"
	"github.com/linkfolio/internal/service"
)

// 本地开发用的演示数据生成器
func main() {
	cfg := config.Load()
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatal("数据库初始化失败:", err)
	}

	user, err := db.EnsureUser("demo@linkfolio.dev", "demo12345")
	if err != nil {
		log.Fatal("创建演示账号失败:", err)
	}

	profiles := service.NewProfileService(db.DB)
	profile, err := profiles.Onboard(user.ID, "demo")
	if err != nil {
		log.Fatal("创建演示页面失败:", err)
	}

	if _, err := profiles.Update(user.ID, service.ProfileInput{
		DisplayName:     ptr("Demo 主页"),
		Bio:             ptr("我的所有链接都在这里"),
		BackgroundColor: ptr("f5f5f5"),
	}); err != nil {
		log.Fatal("更新演示资料失败:", err)
	}

	iconLinks := service.NewIconLinkService(db.DB)
	icons := map[string]string{
		"github":  "https://github.com/linkfolio",
		"email":   "mailto:hello@linkfolio.dev",
		"website": "https://linkfolio.dev",
	}
	for platform, url := range icons {
		if _, err := iconLinks.Add(profile.ID, platform, url); err != nil {
			log.Printf("跳过图标链接 %s: %v", platform, err)
		}
	}

	customLinks := service.NewCustomLinkService(db.DB)
	demoLinks := []service.CustomLinkInput{
		{Title: "博客", Subtitle: "不定期更新", URL: "https://blog.linkfolio.dev"},
		{Title: "播客", URL: "https://podcast.linkfolio.dev"},
		{Title: "联系电话", URL: "tel:+8613800000000"},
	}
	for _, input := range demoLinks {
		if _, err := customLinks.Add(profile.ID, input); err != nil {
			log.Printf("跳过自定义链接 %s: %v", input.Title, err)
		}
	}

	fmt.Printf("演示数据就绪: http://localhost:%s/api/profiles/%s\n", cfg.Port, profile.Username)
}

func ptr(v string) *string {
	return &v
}

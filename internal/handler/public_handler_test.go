package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/linkfolio/internal/db"
)

func seedPublicFixture(t *testing.T) *db.Profile {
	t.Helper()
	profile := db.Profile{UserID: 1, Username: "alice", Bio: "**你好** <script>alert(1)</script>"}
	if err := db.DB.Create(&profile).Error; err != nil {
		t.Fatalf("failed to seed profile: %v", err)
	}

	links := []db.CustomLink{
		{ProfileID: profile.ID, Title: "Blog", URL: "https://blog.alice.dev", OrderIndex: 0, IsActive: true},
		{ProfileID: profile.ID, Title: "Shop", URL: "https://shop.alice.dev", OrderIndex: 1, IsActive: false},
	}
	for i := range links {
		if err := db.DB.Create(&links[i]).Error; err != nil {
			t.Fatalf("failed to seed link: %v", err)
		}
	}
	return &profile
}

func TestShowPublicProfile(t *testing.T) {
	api, cleanup := setupTestDB(t)
	defer cleanup()

	seedPublicFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/api/profiles/alice", nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{gin.Param{Key: "username", Value: "alice"}}

	api.ShowPublicProfile(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var body struct {
		Profile struct {
			DisplayName     string `json:"displayName"`
			BioHTML         string `json:"bioHtml"`
			BackgroundColor string `json:"backgroundColor"`
			TextColor       string `json:"textColor"`
		} `json:"profile"`
		CustomLinks []struct {
			Title string `json:"title"`
		} `json:"customLinks"`
		IconLinks []any `json:"iconLinks"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(body.CustomLinks) != 1 || body.CustomLinks[0].Title != "Blog" {
		t.Fatalf("expected only the active Blog link, got %#v", body.CustomLinks)
	}
	if body.IconLinks == nil {
		t.Fatal("iconLinks must serialize as an empty array")
	}
	if body.Profile.DisplayName != "alice" {
		t.Fatalf("expected display name fallback, got %q", body.Profile.DisplayName)
	}
	if body.Profile.BackgroundColor != "#ffffff" || body.Profile.TextColor != "#000000" {
		t.Fatalf("expected normalized default colors, got %q/%q", body.Profile.BackgroundColor, body.Profile.TextColor)
	}
	if !strings.Contains(body.Profile.BioHTML, "<strong>") {
		t.Fatalf("expected rendered markdown in bioHtml, got %q", body.Profile.BioHTML)
	}
	if strings.Contains(body.Profile.BioHTML, "<script") {
		t.Fatalf("bioHtml must be sanitized, got %q", body.Profile.BioHTML)
	}
}

func TestShowPublicProfileNotFound(t *testing.T) {
	api, cleanup := setupTestDB(t)
	defer cleanup()

	req := httptest.NewRequest(http.MethodGet, "/api/profiles/nobody", nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{gin.Param{Key: "username", Value: "nobody"}}

	api.ShowPublicProfile(c)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}
}

// clickTestEngine 通过完整引擎派发请求，204 状态需要经 ServeHTTP 写出
func clickTestEngine(api *API) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/links/:id/click", api.RecordLinkClick)
	return r
}

func TestRecordLinkClick(t *testing.T) {
	api, cleanup := setupTestDB(t)
	defer cleanup()

	profile := seedPublicFixture(t)

	var link db.CustomLink
	if err := db.DB.Where("profile_id = ? AND title = ?", profile.ID, "Blog").First(&link).Error; err != nil {
		t.Fatalf("failed to load seeded link: %v", err)
	}

	r := clickTestEngine(api)
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/links/"+strconv.Itoa(int(link.ID))+"/click", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNoContent {
			t.Fatalf("expected status 204, got %d", w.Code)
		}
	}

	var reloaded db.CustomLink
	if err := db.DB.First(&reloaded, link.ID).Error; err != nil {
		t.Fatalf("failed to reload link: %v", err)
	}
	if reloaded.ClickCount != 2 {
		t.Fatalf("expected 2 clicks, got %d", reloaded.ClickCount)
	}
}

func TestRecordLinkClickSwallowsFailures(t *testing.T) {
	api, cleanup := setupTestDB(t)
	defer cleanup()

	r := clickTestEngine(api)

	// 未知链接与非法ID都不应影响访客
	for _, raw := range []string{"9999", "abc"} {
		req := httptest.NewRequest(http.MethodPost, "/api/links/"+raw+"/click", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNoContent {
			t.Fatalf("expected status 204 for %q, got %d", raw, w.Code)
		}
	}
}

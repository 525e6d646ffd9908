package router

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/linkfolio/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupRouterTest(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := gdb.AutoMigrate(&db.User{}, &db.Profile{}, &db.IconLink{}, &db.CustomLink{}); err != nil {
		t.Fatalf("failed to migrate models: %v", err)
	}
	db.DB = gdb

	t.Cleanup(func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	return SetupRouter("test-secret", t.TempDir(), "/static/uploads")
}

func TestPingRoute(t *testing.T) {
	r := setupRouterTest(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if w.Body.String() != `{"message":"pong"}` {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestEditorRoutesRequireLogin(t *testing.T) {
	r := setupRouterTest(t)

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/profile"},
		{http.MethodPost, "/api/icon-links"},
		{http.MethodPost, "/api/links/1/reorder"},
		{http.MethodPost, "/api/upload/avatar"},
	}
	for _, route := range routes {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(route.method, route.path, nil)
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected status 401, got %d", route.method, route.path, w.Code)
		}
	}
}

func TestSessionCookieWorksOverPlainHTTP(t *testing.T) {
	r := setupRouterTest(t)

	w := httptest.NewRecorder()
	payload := `{"email":"cookie@linkfolio.dev","password":"cookie-secret"}`
	req, _ := http.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("register expected 201, got %d, body=%s", w.Code, w.Body.String())
	}

	cookies := w.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("register response carries no session cookie")
	}
	session := cookies[0]
	if session.Secure {
		t.Fatal("session cookie must not be Secure-only, plain HTTP clients would drop it")
	}
	if session.SameSite == http.SameSiteNoneMode {
		t.Fatal("session cookie must not use SameSite=None")
	}

	// 回放 Cookie：会话有效但尚未创建页面，应得到 404 而不是 401
	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/api/profile", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("authenticated request expected 404 before onboarding, got %d", w.Code)
	}
}

func TestPublicRoutesSkipLogin(t *testing.T) {
	r := setupRouterTest(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/profiles/ghost", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 for unknown profile, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodPost, "/api/links/1/click", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected status 204 for click, got %d", w.Code)
	}
}

func TestStaticUploadRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	db.DB = gdb
	t.Cleanup(func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	uploadDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(uploadDir, "avatar.png"), []byte("png-bytes"), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	r := SetupRouter("test-secret", uploadDir, "/static/uploads")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/static/uploads/avatar.png", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "png-bytes" {
		t.Fatalf("unexpected file body: %s", w.Body.String())
	}
}

package service

import (
	"errors"
	"testing"

	"github.com/linkfolio/internal/db"
)

func seedPublicProfile(t *testing.T) *db.Profile {
	t.Helper()
	profile := db.Profile{UserID: 1, Username: "alice", DisplayName: "Alice", Bio: "hi"}
	if err := db.DB.Create(&profile).Error; err != nil {
		t.Fatalf("failed to seed profile: %v", err)
	}
	return &profile
}

func TestPublicProfileResolveFiltersInactive(t *testing.T) {
	cleanup := setupServiceTestDB(t)
	defer cleanup()

	profile := seedPublicProfile(t)
	links := []db.CustomLink{
		{ProfileID: profile.ID, Title: "Blog", URL: "https://blog.alice.dev", OrderIndex: 0, IsActive: true},
		{ProfileID: profile.ID, Title: "Shop", URL: "https://shop.alice.dev", OrderIndex: 1, IsActive: false},
	}
	for i := range links {
		if err := db.DB.Create(&links[i]).Error; err != nil {
			t.Fatalf("failed to seed link: %v", err)
		}
	}
	icons := []db.IconLink{
		{ProfileID: profile.ID, Platform: "github", URL: "https://github.com/alice", OrderIndex: 0, IsActive: false},
		{ProfileID: profile.ID, Platform: "twitter", URL: "https://twitter.com/alice", OrderIndex: 1, IsActive: true},
	}
	for i := range icons {
		if err := db.DB.Create(&icons[i]).Error; err != nil {
			t.Fatalf("failed to seed icon link: %v", err)
		}
	}

	svc := NewPublicProfileService(db.DB)
	view, err := svc.Resolve("alice")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	if len(view.CustomLinks) != 1 || view.CustomLinks[0].Title != "Blog" {
		t.Fatalf("expected only the active Blog link, got %#v", view.CustomLinks)
	}
	if len(view.IconLinks) != 1 || view.IconLinks[0].Platform != "twitter" {
		t.Fatalf("expected only the active twitter icon, got %#v", view.IconLinks)
	}
}

func TestPublicProfileResolveSortsByOrder(t *testing.T) {
	cleanup := setupServiceTestDB(t)
	defer cleanup()

	profile := seedPublicProfile(t)
	links := []db.CustomLink{
		{ProfileID: profile.ID, Title: "Third", URL: "https://c.example.com", OrderIndex: 7, IsActive: true},
		{ProfileID: profile.ID, Title: "First", URL: "https://a.example.com", OrderIndex: 0, IsActive: true},
		{ProfileID: profile.ID, Title: "Second", URL: "https://b.example.com", OrderIndex: 3, IsActive: true},
	}
	for i := range links {
		if err := db.DB.Create(&links[i]).Error; err != nil {
			t.Fatalf("failed to seed link: %v", err)
		}
	}

	svc := NewPublicProfileService(db.DB)
	view, err := svc.Resolve("alice")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	titles := []string{view.CustomLinks[0].Title, view.CustomLinks[1].Title, view.CustomLinks[2].Title}
	if titles[0] != "First" || titles[1] != "Second" || titles[2] != "Third" {
		t.Fatalf("unexpected order: %v", titles)
	}
}

func TestPublicProfileResolveNormalizesColors(t *testing.T) {
	cleanup := setupServiceTestDB(t)
	defer cleanup()

	profile := db.Profile{UserID: 1, Username: "alice", BackgroundColor: "1e90ff", TextColor: ""}
	if err := db.DB.Create(&profile).Error; err != nil {
		t.Fatalf("failed to seed profile: %v", err)
	}

	svc := NewPublicProfileService(db.DB)
	view, err := svc.Resolve("alice")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	if view.BackgroundColor != "#1e90ff" {
		t.Fatalf("expected # prefix, got %q", view.BackgroundColor)
	}
	if view.TextColor != "#000000" {
		t.Fatalf("expected default text color, got %q", view.TextColor)
	}
	if view.DisplayName != "alice" {
		t.Fatalf("expected display name fallback to username, got %q", view.DisplayName)
	}
	if view.IconLinks == nil || view.CustomLinks == nil {
		t.Fatal("empty collections must be non-nil for rendering")
	}
}

func TestPublicProfileResolveNotFound(t *testing.T) {
	cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewPublicProfileService(db.DB)
	if _, err := svc.Resolve("nobody"); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
	if _, err := svc.Resolve("  "); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound for blank username, got %v", err)
	}

	// 精确匹配，不做大小写归一
	profile := db.Profile{UserID: 1, Username: "alice"}
	if err := db.DB.Create(&profile).Error; err != nil {
		t.Fatalf("failed to seed profile: %v", err)
	}
	if _, err := svc.Resolve("Alice"); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected exact-match lookup, got %v", err)
	}
}

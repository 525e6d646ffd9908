package handler

import (
	"github.com/linkfolio/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db          *gorm.DB
	profiles    *service.ProfileService
	iconLinks   *service.IconLinkService
	customLinks *service.CustomLinkService
	public      *service.PublicProfileService
	uploadDir   string
	uploadURL   string
}

// NewAPI constructs a handler set with shared services.
func NewAPI(db *gorm.DB, uploadDir, uploadURL string) *API {
	return &API{
		db:          db,
		profiles:    service.NewProfileService(db),
		iconLinks:   service.NewIconLinkService(db),
		customLinks: service.NewCustomLinkService(db),
		public:      service.NewPublicProfileService(db),
		uploadDir:   uploadDir,
		uploadURL:   uploadURL,
	}
}

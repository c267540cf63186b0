package model

import (
	"strings"
	"time"
)

// GalleryCategoryAll is the pseudo-category that disables category filtering.
const GalleryCategoryAll = "all"

// DefaultGalleryCategory is assigned to uploads that do not pick a category.
const DefaultGalleryCategory = "Portfolio"

// GalleryCategories lists the categories offered when uploading an image.
func GalleryCategories() []string {
	return []string{"Portfolio", "Wedding", "Portrait", "Event", "Commercial", "Nature", "Travel"}
}

// GalleryImage is a portfolio image shown on the public portfolio page.
type GalleryImage struct {
	ID        string    `json:"id"         db:"id"`
	URL       string    `json:"url"        db:"url"`
	Title     string    `json:"title"      db:"title"`
	Category  string    `json:"category"   db:"category"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ResourceID implements Resource.
func (g *GalleryImage) ResourceID() string { return g.ID }

// CreateGalleryImageRequest carries the fields of an uploaded image.
type CreateGalleryImageRequest struct {
	URL      string `json:"url"`
	Title    string `json:"title"`
	Category string `json:"category,omitempty"`
}

// Normalize trims text fields and applies the default category.
func (r *CreateGalleryImageRequest) Normalize() {
	r.URL = strings.TrimSpace(r.URL)
	r.Title = strings.TrimSpace(r.Title)
	r.Category = strings.TrimSpace(r.Category)
	if r.Category == "" {
		r.Category = DefaultGalleryCategory
	}
}

// UpdateGalleryImageRequest carries a partial update of an image.
type UpdateGalleryImageRequest struct {
	URL      *string `json:"url,omitempty"`
	Title    *string `json:"title,omitempty"`
	Category *string `json:"category,omitempty"`
}

// HasUpdates reports whether any field is set.
func (r *UpdateGalleryImageRequest) HasUpdates() bool {
	return r.URL != nil || r.Title != nil || r.Category != nil
}

// Apply copies the set fields onto g.
func (r *UpdateGalleryImageRequest) Apply(g *GalleryImage) {
	if r.URL != nil {
		g.URL = strings.TrimSpace(*r.URL)
	}
	if r.Title != nil {
		g.Title = strings.TrimSpace(*r.Title)
	}
	if r.Category != nil {
		g.Category = strings.TrimSpace(*r.Category)
	}
}

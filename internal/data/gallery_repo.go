package data

import (
	"context"
	"database/sql"
	"strings"

	"github.com/shutterdesk/studio/internal/core"
	"github.com/shutterdesk/studio/internal/data/database"
	"github.com/shutterdesk/studio/internal/data/pgxutil"
	"github.com/shutterdesk/studio/internal/domain/model"
)

var galleryTable = database.Table{
	Name:    "gallery_images",
	IDCol:   "id",
	Columns: []string{"id", "url", "title", "category", "created_at", "updated_at"},
	Casts:   map[string]string{"id": "text"},
}

// GalleryImageRepo provides database operations for portfolio images.
type GalleryImageRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

var _ core.GalleryImageRepository = (*GalleryImageRepo)(nil)

// NewGalleryImageRepo creates a new GalleryImageRepo.
func NewGalleryImageRepo(db *sql.DB) *GalleryImageRepo {
	return &GalleryImageRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// List returns every gallery image, newest upload first.
func (r *GalleryImageRepo) List(ctx context.Context) ([]*model.GalleryImage, error) {
	out, err := pgxutil.CollectAll[model.GalleryImage](ctx, r.DB, galleryTable.SelectAll("created_at desc"))
	if err != nil {
		return nil, mapReadErr(err, ErrGalleryImageNotFound, "failed to list gallery images")
	}
	return out, nil
}

// GetByID retrieves a gallery image by ID.
func (r *GalleryImageRepo) GetByID(ctx context.Context, id string) (*model.GalleryImage, error) {
	img, err := pgxutil.CollectOne[model.GalleryImage](ctx, r.DB, galleryTable.SelectByID(), id)
	if err != nil {
		return nil, mapReadErr(err, ErrGalleryImageNotFound, "failed to get gallery image")
	}
	return img, nil
}

// Create inserts a new gallery image.
func (r *GalleryImageRepo) Create(ctx context.Context, req *model.CreateGalleryImageRequest) (*model.GalleryImage, error) {
	if req == nil {
		return nil, ErrNilRequest
	}
	req.Normalize()

	now := r.timeProvider.Now().UTC()
	q := galleryTable.Insert("url", "title", "category", "created_at", "updated_at")
	img, err := pgxutil.CollectOne[model.GalleryImage](ctx, r.DB, q, req.URL, req.Title, req.Category, now, now)
	if err != nil {
		return nil, mapReadErr(err, ErrGalleryImageNotFound, "failed to create gallery image")
	}
	return img, nil
}

// Update applies a partial update. An empty request returns the current row.
func (r *GalleryImageRepo) Update(
	ctx context.Context,
	id string,
	req *model.UpdateGalleryImageRequest,
) (*model.GalleryImage, error) {
	if req == nil || !req.HasUpdates() {
		return r.GetByID(ctx, id)
	}

	set := &database.SetClause{}
	if req.URL != nil {
		set.Set("url", strings.TrimSpace(*req.URL))
	}
	if req.Title != nil {
		set.Set("title", strings.TrimSpace(*req.Title))
	}
	if req.Category != nil {
		set.Set("category", strings.TrimSpace(*req.Category))
	}

	q, args := galleryTable.Update(set, id)
	img, err := pgxutil.CollectOne[model.GalleryImage](ctx, r.DB, q, args...)
	if err != nil {
		return nil, mapReadErr(err, ErrGalleryImageNotFound, "failed to update gallery image")
	}
	return img, nil
}

// Delete deletes a gallery image by ID.
func (r *GalleryImageRepo) Delete(ctx context.Context, id string) (bool, error) {
	n, err := pgxutil.Exec(ctx, r.DB, galleryTable.Delete(), id)
	if err != nil {
		return false, mapReadErr(err, ErrGalleryImageNotFound, "failed to delete gallery image")
	}
	return n > 0, nil
}

package service

import (
	"context"

	"github.com/shutterdesk/studio/internal/domain/model"
	"github.com/shutterdesk/studio/internal/projection"
	"github.com/shutterdesk/studio/internal/validation"
)

var galleryCodec = codec[*model.GalleryImage, *model.CreateGalleryImageRequest, *model.UpdateGalleryImageRequest]{
	schema:       validation.GalleryImageSchema,
	decodeCreate: validation.DecodeGalleryImage,
	decodeUpdate: validation.DecodeGalleryImageUpdate,
	draft:        validation.GalleryImageDraft,
}

// GalleryService manages portfolio images.
type GalleryService struct {
	*resource[*model.GalleryImage, *model.CreateGalleryImageRequest, *model.UpdateGalleryImageRequest]
}

// Categories returns "all" followed by the categories present in the gallery.
func (s *GalleryService) Categories(ctx context.Context) ([]string, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return projection.GalleryCategories(snap.Data), nil
}

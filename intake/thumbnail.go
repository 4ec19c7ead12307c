package intake

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"mcp-feedback-collector/models"
)

// Preview returns a downsized copy of the attachment fitted inside the
// configured thumbnail box (100x80 by default), preserving aspect
// ratio. The preview is derived for display only; the attachment's
// full-resolution bytes stay untouched and authoritative.
func (a *Adapter) Preview(att models.ImageAttachment) (image.Image, error) {
	if img, ok := a.previews.Get(att.ID); ok {
		return img, nil
	}

	src, _, err := image.Decode(bytes.NewReader(att.Data))
	if err != nil {
		return nil, fmt.Errorf("decode preview source: %w", err)
	}

	thumb := imaging.Fit(src, a.cfg.ThumbnailWidth, a.cfg.ThumbnailHeight, imaging.Lanczos)
	a.previews.Set(att.ID, thumb)
	return thumb, nil
}

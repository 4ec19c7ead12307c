// Package intake normalizes images obtained from file selection or
// clipboard paste into the uniform in-memory representation consumed
// by the feedback dialog and returned to the tool caller.
package intake

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"
	"time"

	// Register decoders for the full supported format set. PNG, JPEG
	// and GIF come from the standard library; BMP and WebP from x/image.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/rs/zerolog"

	"mcp-feedback-collector/logger"
	"mcp-feedback-collector/models"
)

// Adapter owns the attachment set of one dialog invocation. It is not
// shared across invocations; each dialog constructs its own.
type Adapter struct {
	cfg  *models.Config
	log  zerolog.Logger
	clip Clipboard

	mu          sync.Mutex
	attachments []models.ImageAttachment
	previews    *previewCache
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithClipboard replaces the system clipboard, used by tests.
func WithClipboard(c Clipboard) Option {
	return func(a *Adapter) { a.clip = c }
}

// New creates an adapter with an empty attachment set.
func New(cfg *models.Config, opts ...Option) *Adapter {
	a := &Adapter{
		cfg:      cfg,
		log:      logger.Get().With().Str("component", "intake").Logger(),
		clip:     SystemClipboard(),
		previews: newPreviewCache(5*time.Minute, 2*cfg.MaxImages),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AddFromFile reads an image file, validates its format against the
// supported set, and appends it to the attachment list. A failure
// leaves the existing list unchanged.
func (a *Adapter) AddFromFile(path string) (models.ImageAttachment, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.ImageAttachment{}, fmt.Errorf("%w: %s", models.ErrFileNotFound, path)
		}
		return models.ImageAttachment{}, fmt.Errorf("cannot access %s: %w", path, err)
	}

	format, ok := models.FormatFromExtension(filepath.Ext(path))
	if !ok {
		return models.ImageAttachment{}, fmt.Errorf("%w: %q", models.ErrUnsupportedFormat, filepath.Ext(path))
	}

	if info.Size() > a.cfg.MaxImageSize {
		return models.ImageAttachment{}, fmt.Errorf("%w: %d bytes (limit %d)",
			models.ErrImageTooLarge, info.Size(), a.cfg.MaxImageSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return models.ImageAttachment{}, fmt.Errorf("cannot read %s: %w", path, err)
	}

	dims, name, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return models.ImageAttachment{}, fmt.Errorf("%w: %s is not a decodable image", models.ErrUnsupportedFormat, filepath.Base(path))
	}

	decoded, ok := models.FormatFromDecodeName(name)
	if !ok {
		return models.ImageAttachment{}, fmt.Errorf("%w: %q", models.ErrUnsupportedFormat, name)
	}
	if !decoded.SameFamily(format) {
		// Content wins over a misleading extension.
		format = decoded
	}

	att := models.ImageAttachment{
		ID:        models.NewAttachmentID(),
		Data:      data,
		Format:    format,
		Width:     dims.Width,
		Height:    dims.Height,
		SizeBytes: info.Size(),
		Source:    "file: " + filepath.Base(path),
		AddedAt:   time.Now(),
	}

	a.mu.Lock()
	a.attachments = append(a.attachments, att)
	a.mu.Unlock()

	a.log.Info().
		Str("source", att.Source).
		Str("format", string(att.Format)).
		Int("width", att.Width).
		Int("height", att.Height).
		Int64("size_bytes", att.SizeBytes).
		Msg("image attached")
	return att, nil
}

// AddFromClipboard reads image bytes from the clipboard (always PNG at
// that boundary) and appends them to the attachment list.
func (a *Adapter) AddFromClipboard() (models.ImageAttachment, error) {
	data, err := a.clip.ReadImage()
	if err != nil {
		return models.ImageAttachment{}, err
	}

	dims, name, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return models.ImageAttachment{}, models.ErrUnsupportedClipboard
	}
	format, ok := models.FormatFromDecodeName(name)
	if !ok {
		return models.ImageAttachment{}, models.ErrUnsupportedClipboard
	}

	att := models.ImageAttachment{
		ID:        models.NewAttachmentID(),
		Data:      data,
		Format:    format,
		Width:     dims.Width,
		Height:    dims.Height,
		SizeBytes: int64(len(data)),
		Source:    "clipboard",
		AddedAt:   time.Now(),
	}

	a.mu.Lock()
	a.attachments = append(a.attachments, att)
	a.mu.Unlock()

	a.log.Info().
		Str("format", string(att.Format)).
		Int64("size_bytes", att.SizeBytes).
		Msg("image pasted from clipboard")
	return att, nil
}

// Remove deletes the attachment with the given id, preserving the
// order of the remaining attachments. It reports whether anything was
// removed.
func (a *Adapter) Remove(id string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	for i, att := range a.attachments {
		if att.ID == id {
			a.attachments = append(a.attachments[:i], a.attachments[i+1:]...)
			a.previews.Delete(id)
			return true
		}
	}
	return false
}

// Clear drops every attachment. Entered dialog text is unaffected by
// design; the adapter never sees it.
func (a *Adapter) Clear() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.attachments = nil
	a.previews.Clear()
}

// Attachments returns a copy of the attachment list in insertion order.
func (a *Adapter) Attachments() []models.ImageAttachment {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]models.ImageAttachment, len(a.attachments))
	copy(out, a.attachments)
	return out
}

// Count returns the number of attachments.
func (a *Adapter) Count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.attachments)
}

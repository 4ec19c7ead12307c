package intake

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"mcp-feedback-collector/models"
	"mcp-feedback-collector/utils"
)

// ImageInfo is the result of a read-only metadata lookup on an image
// file. It carries no pixel data.
type ImageInfo struct {
	Path      string
	Format    models.ImageFormat
	Width     int
	Height    int
	SizeBytes int64
}

// Inspect reads image metadata from a file without opening a dialog or
// touching any adapter state. Only the header is decoded; the pixel
// data is never loaded.
func Inspect(path string) (ImageInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ImageInfo{}, fmt.Errorf("%w: %s", models.ErrFileNotFound, path)
		}
		return ImageInfo{}, fmt.Errorf("cannot access %s: %w", path, err)
	}

	format, ok := models.FormatFromExtension(filepath.Ext(path))
	if !ok {
		return ImageInfo{}, fmt.Errorf("%w: %q", models.ErrUnsupportedFormat, filepath.Ext(path))
	}

	f, err := os.Open(path)
	if err != nil {
		return ImageInfo{}, fmt.Errorf("cannot open %s: %w", path, err)
	}
	defer f.Close()

	dims, name, err := image.DecodeConfig(f)
	if err != nil {
		return ImageInfo{}, fmt.Errorf("%w: %s is not a decodable image", models.ErrUnsupportedFormat, filepath.Base(path))
	}

	decoded, ok := models.FormatFromDecodeName(name)
	if !ok {
		return ImageInfo{}, fmt.Errorf("%w: %q", models.ErrUnsupportedFormat, name)
	}
	if !decoded.SameFamily(format) {
		format = decoded
	}

	return ImageInfo{
		Path:      path,
		Format:    format,
		Width:     dims.Width,
		Height:    dims.Height,
		SizeBytes: info.Size(),
	}, nil
}

// String renders the info as the line-per-field listing returned by
// the get_image_info tool.
func (i ImageInfo) String() string {
	var s strings.Builder
	fmt.Fprintf(&s, "Name: %s\n", filepath.Base(i.Path))
	fmt.Fprintf(&s, "Format: %s\n", i.Format)
	fmt.Fprintf(&s, "Dimensions: %d x %d\n", i.Width, i.Height)
	fmt.Fprintf(&s, "Size: %s (%d bytes)", utils.FormatBytes(i.SizeBytes), i.SizeBytes)
	return s.String()
}

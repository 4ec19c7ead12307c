package intake

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mcp-feedback-collector/models"
)

func TestInspect(t *testing.T) {
	dir := t.TempDir()
	path := writeImage(t, dir, "screenshot.png", "png", 64, 48)

	info, err := Inspect(path)
	require.NoError(t, err)

	assert.Equal(t, path, info.Path)
	assert.Equal(t, models.FormatPNG, info.Format)
	assert.Equal(t, 64, info.Width)
	assert.Equal(t, 48, info.Height)
	assert.Positive(t, info.SizeBytes)
}

func TestInspectWebP(t *testing.T) {
	info, err := Inspect(filepath.Join("testdata", "sample.webp"))
	require.NoError(t, err)

	assert.Equal(t, models.FormatWebP, info.Format)
	assert.Equal(t, 10, info.Width)
	assert.Equal(t, 6, info.Height)
	assert.Positive(t, info.SizeBytes)
}

func TestInspectNotFound(t *testing.T) {
	_, err := Inspect(filepath.Join(t.TempDir(), "missing.png"))
	assert.ErrorIs(t, err, models.ErrFileNotFound)
}

func TestInspectUnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0o644))

	_, err := Inspect(path)
	assert.ErrorIs(t, err, models.ErrUnsupportedFormat)
}

func TestInspectCorruptFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.gif")
	require.NoError(t, os.WriteFile(path, []byte("GIF89a but not really"), 0o644))

	_, err := Inspect(path)
	assert.ErrorIs(t, err, models.ErrUnsupportedFormat)
}

func TestInspectContentWinsOverExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "actually-png.bmp")
	require.NoError(t, os.WriteFile(path, encodeImage(t, "png", 12, 12), 0o644))

	info, err := Inspect(path)
	require.NoError(t, err)
	assert.Equal(t, models.FormatPNG, info.Format)
}

func TestImageInfoString(t *testing.T) {
	info := ImageInfo{
		Path:      "/tmp/shot.png",
		Format:    models.FormatPNG,
		Width:     640,
		Height:    480,
		SizeBytes: 2048,
	}

	s := info.String()
	assert.Contains(t, s, "Name: shot.png")
	assert.Contains(t, s, "Format: PNG")
	assert.Contains(t, s, "Dimensions: 640 x 480")
	assert.Contains(t, s, fmt.Sprintf("Size: 2.0 KB (%d bytes)", 2048))
}

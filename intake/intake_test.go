package intake

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mcp-feedback-collector/models"
)

func testConfig() *models.Config {
	cfg := models.DefaultConfig
	return &cfg
}

func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	return img
}

func encodeImage(t *testing.T, format string, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	img := testImage(w, h)

	var err error
	switch format {
	case "png":
		err = png.Encode(&buf, img)
	case "jpeg":
		err = jpeg.Encode(&buf, img, nil)
	case "gif":
		err = gif.Encode(&buf, img, nil)
	case "bmp":
		err = bmp.Encode(&buf, img)
	default:
		t.Fatalf("no encoder for %s", format)
	}
	require.NoError(t, err)
	return buf.Bytes()
}

func writeImage(t *testing.T, dir, name, format string, w, h int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, encodeImage(t, format, w, h), 0o644))
	return path
}

type fakeClipboard struct {
	data []byte
	err  error
}

func (f *fakeClipboard) ReadImage() ([]byte, error) {
	return f.data, f.err
}

func TestAddFromFilePNG(t *testing.T) {
	dir := t.TempDir()
	path := writeImage(t, dir, "shot.png", "png", 40, 30)

	a := New(testConfig())
	att, err := a.AddFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, models.FormatPNG, att.Format)
	assert.Equal(t, 40, att.Width)
	assert.Equal(t, 30, att.Height)
	assert.Equal(t, "file: shot.png", att.Source)
	assert.NotEmpty(t, att.ID)
	assert.Positive(t, att.SizeBytes)
	assert.Equal(t, 1, a.Count())
}

func TestAddFromFileAllFormats(t *testing.T) {
	dir := t.TempDir()
	files := map[string]struct {
		encoder string
		format  models.ImageFormat
	}{
		"a.png":  {"png", models.FormatPNG},
		"b.jpg":  {"jpeg", models.FormatJPG},
		"c.jpeg": {"jpeg", models.FormatJPEG},
		"d.gif":  {"gif", models.FormatGIF},
		"e.bmp":  {"bmp", models.FormatBMP},
	}

	a := New(testConfig())
	for name, tc := range files {
		path := writeImage(t, dir, name, tc.encoder, 8, 8)
		att, err := a.AddFromFile(path)
		require.NoError(t, err, name)
		assert.Equal(t, tc.format, att.Format, name)
	}
	assert.Equal(t, len(files), a.Count())
}

func TestAddFromFileWebP(t *testing.T) {
	// x/image has no WebP encoder, so a checked-in fixture stands in
	// for the encoder-backed formats above.
	a := New(testConfig())
	att, err := a.AddFromFile(filepath.Join("testdata", "sample.webp"))
	require.NoError(t, err)

	assert.Equal(t, models.FormatWebP, att.Format)
	assert.Equal(t, 10, att.Width)
	assert.Equal(t, 6, att.Height)
}

func TestAddFromFileNotFound(t *testing.T) {
	a := New(testConfig())
	_, err := a.AddFromFile(filepath.Join(t.TempDir(), "missing.png"))
	assert.ErrorIs(t, err, models.ErrFileNotFound)
	assert.Equal(t, 0, a.Count())
}

func TestAddFromFileUnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0o644))

	a := New(testConfig())
	_, err := a.AddFromFile(path)
	assert.ErrorIs(t, err, models.ErrUnsupportedFormat)
}

func TestAddFromFileCorruptData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.png")
	require.NoError(t, os.WriteFile(path, []byte("definitely not a png"), 0o644))

	a := New(testConfig())
	_, err := a.AddFromFile(path)
	assert.ErrorIs(t, err, models.ErrUnsupportedFormat)
	assert.Equal(t, 0, a.Count())
}

func TestAddFromFileTooLarge(t *testing.T) {
	dir := t.TempDir()
	path := writeImage(t, dir, "big.png", "png", 100, 100)

	cfg := testConfig()
	cfg.MaxImageSize = 16

	a := New(cfg)
	_, err := a.AddFromFile(path)
	assert.ErrorIs(t, err, models.ErrImageTooLarge)
}

func TestAddFromFileContentWinsOverExtension(t *testing.T) {
	// PNG bytes behind a .gif name: the decoded format is authoritative.
	dir := t.TempDir()
	path := filepath.Join(dir, "mislabeled.gif")
	require.NoError(t, os.WriteFile(path, encodeImage(t, "png", 10, 10), 0o644))

	a := New(testConfig())
	att, err := a.AddFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, models.FormatPNG, att.Format)
}

func TestAddFromFileKeepsJPGSpelling(t *testing.T) {
	// JPEG data under a .jpg name keeps the JPG spelling rather than
	// being renamed to JPEG.
	dir := t.TempDir()
	path := writeImage(t, dir, "photo.jpg", "jpeg", 10, 10)

	a := New(testConfig())
	att, err := a.AddFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, models.FormatJPG, att.Format)
}

func TestAddFromClipboard(t *testing.T) {
	clip := &fakeClipboard{data: encodeImage(t, "png", 20, 10)}

	a := New(testConfig(), WithClipboard(clip))
	att, err := a.AddFromClipboard()
	require.NoError(t, err)

	assert.Equal(t, models.FormatPNG, att.Format)
	assert.Equal(t, 20, att.Width)
	assert.Equal(t, 10, att.Height)
	assert.Equal(t, "clipboard", att.Source)
	assert.Equal(t, 1, a.Count())
}

func TestAddFromClipboardEmpty(t *testing.T) {
	clip := &fakeClipboard{err: models.ErrEmptyClipboard}

	a := New(testConfig(), WithClipboard(clip))
	_, err := a.AddFromClipboard()
	assert.ErrorIs(t, err, models.ErrEmptyClipboard)
}

func TestAddFromClipboardGarbage(t *testing.T) {
	clip := &fakeClipboard{data: []byte("plain text, not pixels")}

	a := New(testConfig(), WithClipboard(clip))
	_, err := a.AddFromClipboard()
	assert.ErrorIs(t, err, models.ErrUnsupportedClipboard)
	assert.Equal(t, 0, a.Count())
}

func TestRemovePreservesOrder(t *testing.T) {
	dir := t.TempDir()
	a := New(testConfig())

	first, err := a.AddFromFile(writeImage(t, dir, "first.png", "png", 4, 4))
	require.NoError(t, err)
	second, err := a.AddFromFile(writeImage(t, dir, "second.png", "png", 4, 4))
	require.NoError(t, err)
	third, err := a.AddFromFile(writeImage(t, dir, "third.png", "png", 4, 4))
	require.NoError(t, err)

	assert.True(t, a.Remove(second.ID))

	remaining := a.Attachments()
	require.Len(t, remaining, 2)
	assert.Equal(t, first.ID, remaining[0].ID)
	assert.Equal(t, third.ID, remaining[1].ID)

	assert.False(t, a.Remove("no-such-id"))
}

func TestClear(t *testing.T) {
	dir := t.TempDir()
	a := New(testConfig())

	_, err := a.AddFromFile(writeImage(t, dir, "one.png", "png", 4, 4))
	require.NoError(t, err)
	_, err = a.AddFromFile(writeImage(t, dir, "two.png", "png", 4, 4))
	require.NoError(t, err)

	a.Clear()
	assert.Equal(t, 0, a.Count())
	assert.Empty(t, a.Attachments())
}

func TestAttachmentsReturnsCopy(t *testing.T) {
	dir := t.TempDir()
	a := New(testConfig())

	_, err := a.AddFromFile(writeImage(t, dir, "img.png", "png", 4, 4))
	require.NoError(t, err)

	atts := a.Attachments()
	atts[0].ID = "mutated"
	assert.NotEqual(t, "mutated", a.Attachments()[0].ID)
}

func TestPreviewFitsThumbnailBox(t *testing.T) {
	dir := t.TempDir()
	a := New(testConfig())

	att, err := a.AddFromFile(writeImage(t, dir, "wide.png", "png", 400, 100))
	require.NoError(t, err)

	thumb, err := a.Preview(att)
	require.NoError(t, err)

	bounds := thumb.Bounds()
	assert.LessOrEqual(t, bounds.Dx(), 100)
	assert.LessOrEqual(t, bounds.Dy(), 80)
	// Aspect ratio preserved: a 4:1 image is width-bound
	assert.Equal(t, 100, bounds.Dx())
	assert.Equal(t, 25, bounds.Dy())

	// Second lookup is served from cache
	cached, err := a.Preview(att)
	require.NoError(t, err)
	assert.Equal(t, thumb, cached)
}

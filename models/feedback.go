package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Outcome is the terminal classification of a dialog invocation.
type Outcome int

const (
	OutcomeSubmitted Outcome = iota
	OutcomeCancelled
	OutcomeTimedOut
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSubmitted:
		return "submitted"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeTimedOut:
		return "timed_out"
	}
	return "unknown"
}

// ImageFormat identifies one of the fixed set of formats accepted at
// intake. Anything outside this set is rejected, never converted.
type ImageFormat string

const (
	FormatPNG  ImageFormat = "PNG"
	FormatJPG  ImageFormat = "JPG"
	FormatJPEG ImageFormat = "JPEG"
	FormatGIF  ImageFormat = "GIF"
	FormatBMP  ImageFormat = "BMP"
	FormatWebP ImageFormat = "WebP"
)

// ValidImageFormats is the set of formats accepted at the tool boundary.
var ValidImageFormats = map[ImageFormat]bool{
	FormatPNG:  true,
	FormatJPG:  true,
	FormatJPEG: true,
	FormatGIF:  true,
	FormatBMP:  true,
	FormatWebP: true,
}

// formatByExtension maps lowercase file extensions to their format.
var formatByExtension = map[string]ImageFormat{
	".png":  FormatPNG,
	".jpg":  FormatJPG,
	".jpeg": FormatJPEG,
	".gif":  FormatGIF,
	".bmp":  FormatBMP,
	".webp": FormatWebP,
}

// formatByDecodeName maps the format names reported by
// image.DecodeConfig to their format.
var formatByDecodeName = map[string]ImageFormat{
	"png":  FormatPNG,
	"jpeg": FormatJPEG,
	"gif":  FormatGIF,
	"bmp":  FormatBMP,
	"webp": FormatWebP,
}

// FormatFromExtension resolves a file extension (with or without the
// leading dot) to an image format.
func FormatFromExtension(ext string) (ImageFormat, bool) {
	ext = strings.ToLower(ext)
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	f, ok := formatByExtension[ext]
	return f, ok
}

// FormatFromDecodeName resolves the format name returned by the image
// decoder registry to an image format.
func FormatFromDecodeName(name string) (ImageFormat, bool) {
	f, ok := formatByDecodeName[strings.ToLower(name)]
	return f, ok
}

// SameFamily reports whether two formats decode identically. JPG and
// JPEG are extension spellings of the same codec.
func (f ImageFormat) SameFamily(other ImageFormat) bool {
	if f == other {
		return true
	}
	jpeg := func(x ImageFormat) bool { return x == FormatJPG || x == FormatJPEG }
	return jpeg(f) && jpeg(other)
}

// MIMEType returns the MIME type reported for this format at the
// protocol boundary.
func (f ImageFormat) MIMEType() string {
	switch f {
	case FormatPNG:
		return "image/png"
	case FormatJPG, FormatJPEG:
		return "image/jpeg"
	case FormatGIF:
		return "image/gif"
	case FormatBMP:
		return "image/bmp"
	case FormatWebP:
		return "image/webp"
	}
	return "application/octet-stream"
}

// ImageAttachment is one user-supplied image associated with a pending
// feedback result. The full-resolution bytes are what is returned to
// the caller; previews are derived separately and never authoritative.
type ImageAttachment struct {
	ID        string
	Data      []byte
	Format    ImageFormat
	Width     int
	Height    int
	SizeBytes int64
	Source    string
	AddedAt   time.Time
}

// NewAttachmentID returns a fresh identifier for an attachment.
func NewAttachmentID() string {
	return uuid.NewString()
}

// FeedbackRequest carries the caller-supplied report displayed
// read-only in the dialog.
type FeedbackRequest struct {
	WorkSummary string
}

// FeedbackResult is the outcome of one dialog invocation. When the
// outcome is not OutcomeSubmitted, Text is empty and Images is nil.
type FeedbackResult struct {
	Text        string
	Images      []ImageAttachment
	SubmittedAt time.Time
	Outcome     Outcome
}

// SubmittedResult builds a successful result stamped with the current time.
func SubmittedResult(text string, images []ImageAttachment) FeedbackResult {
	return FeedbackResult{
		Text:        text,
		Images:      images,
		SubmittedAt: time.Now(),
		Outcome:     OutcomeSubmitted,
	}
}

// CancelledResult builds the terminal result for a user cancel. Any
// entered text or attached images are discarded.
func CancelledResult() FeedbackResult {
	return FeedbackResult{Outcome: OutcomeCancelled}
}

// TimedOutResult builds the terminal result for a dialog that expired
// without submit or cancel. Uncommitted input is discarded.
func TimedOutResult() FeedbackResult {
	return FeedbackResult{Outcome: OutcomeTimedOut}
}

func (r FeedbackResult) HasText() bool {
	return strings.TrimSpace(r.Text) != ""
}

func (r FeedbackResult) HasImages() bool {
	return len(r.Images) > 0
}

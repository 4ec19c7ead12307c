package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatFromExtension(t *testing.T) {
	tests := []struct {
		ext    string
		format ImageFormat
		ok     bool
	}{
		{".png", FormatPNG, true},
		{"png", FormatPNG, true},
		{".PNG", FormatPNG, true},
		{".jpg", FormatJPG, true},
		{".jpeg", FormatJPEG, true},
		{".gif", FormatGIF, true},
		{".bmp", FormatBMP, true},
		{".webp", FormatWebP, true},
		{".tiff", "", false},
		{".svg", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		format, ok := FormatFromExtension(tt.ext)
		assert.Equal(t, tt.ok, ok, "extension %q", tt.ext)
		if tt.ok {
			assert.Equal(t, tt.format, format, "extension %q", tt.ext)
		}
	}
}

func TestFormatFromDecodeName(t *testing.T) {
	format, ok := FormatFromDecodeName("jpeg")
	require.True(t, ok)
	assert.Equal(t, FormatJPEG, format)

	_, ok = FormatFromDecodeName("tiff")
	assert.False(t, ok)
}

func TestSameFamily(t *testing.T) {
	assert.True(t, FormatJPG.SameFamily(FormatJPEG))
	assert.True(t, FormatJPEG.SameFamily(FormatJPG))
	assert.True(t, FormatPNG.SameFamily(FormatPNG))
	assert.False(t, FormatPNG.SameFamily(FormatGIF))
	assert.False(t, FormatJPG.SameFamily(FormatPNG))
}

func TestMIMEType(t *testing.T) {
	assert.Equal(t, "image/png", FormatPNG.MIMEType())
	assert.Equal(t, "image/jpeg", FormatJPG.MIMEType())
	assert.Equal(t, "image/jpeg", FormatJPEG.MIMEType())
	assert.Equal(t, "image/webp", FormatWebP.MIMEType())
	assert.Equal(t, "application/octet-stream", ImageFormat("TIFF").MIMEType())
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "submitted", OutcomeSubmitted.String())
	assert.Equal(t, "cancelled", OutcomeCancelled.String())
	assert.Equal(t, "timed_out", OutcomeTimedOut.String())
	assert.Equal(t, "unknown", Outcome(99).String())
}

func TestSubmittedResult(t *testing.T) {
	images := []ImageAttachment{{ID: NewAttachmentID(), Format: FormatPNG}}
	result := SubmittedResult("looks good", images)

	assert.Equal(t, OutcomeSubmitted, result.Outcome)
	assert.Equal(t, "looks good", result.Text)
	assert.Len(t, result.Images, 1)
	assert.False(t, result.SubmittedAt.IsZero())
	assert.True(t, result.HasText())
	assert.True(t, result.HasImages())
}

func TestCancelledResultDiscardsInput(t *testing.T) {
	result := CancelledResult()

	assert.Equal(t, OutcomeCancelled, result.Outcome)
	assert.Empty(t, result.Text)
	assert.Nil(t, result.Images)
	assert.True(t, result.SubmittedAt.IsZero())
}

func TestTimedOutResultDiscardsInput(t *testing.T) {
	result := TimedOutResult()

	assert.Equal(t, OutcomeTimedOut, result.Outcome)
	assert.Empty(t, result.Text)
	assert.Nil(t, result.Images)
}

func TestHasTextIgnoresWhitespace(t *testing.T) {
	result := FeedbackResult{Text: "   \n\t  "}
	assert.False(t, result.HasText())
}

func TestNewAttachmentIDUnique(t *testing.T) {
	a := NewAttachmentID()
	b := NewAttachmentID()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}

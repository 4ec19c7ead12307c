package models

import "errors"

// Intake and dialog errors. All are scoped to a single dialog
// invocation; none are fatal to the hosting process.
var (
	// ErrEmptySubmission is returned when a submit is attempted with
	// no text and no images. Recoverable: the dialog stays open.
	ErrEmptySubmission = errors.New("at least one of text feedback or an image is required")

	// ErrUnsupportedFormat is returned for files outside the supported
	// format set.
	ErrUnsupportedFormat = errors.New("unsupported image format")

	// ErrFileNotFound is returned when the image path does not exist.
	ErrFileNotFound = errors.New("image file not found")

	// ErrImageTooLarge is returned when the file exceeds the configured
	// size limit.
	ErrImageTooLarge = errors.New("image file exceeds size limit")

	// ErrEmptyClipboard is returned when the clipboard holds no image data.
	ErrEmptyClipboard = errors.New("clipboard contains no image data")

	// ErrUnsupportedClipboard is returned when the clipboard holds data
	// that is not a decodable image.
	ErrUnsupportedClipboard = errors.New("clipboard content is not a supported image")

	// ErrClipboardUnavailable is returned when the system clipboard
	// cannot be accessed at all.
	ErrClipboardUnavailable = errors.New("clipboard is unavailable")

	// ErrDialogBusy is returned when a dialog invocation arrives while
	// another dialog is open. Concurrent invocations are rejected, not
	// queued.
	ErrDialogBusy = errors.New("another feedback dialog is already open")

	// ErrNoImageSelected is returned by pick_image when the user
	// cancels without choosing an image.
	ErrNoImageSelected = errors.New("no image selected")
)

// ConfigError reports an invalid configuration field.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}

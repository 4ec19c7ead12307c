package intake

import (
	"fmt"
	"sync"

	"golang.design/x/clipboard"

	"mcp-feedback-collector/models"
)

// Clipboard abstracts system clipboard access so the dialog can be
// tested with fakes and without a display.
type Clipboard interface {
	// ReadImage returns encoded image bytes from the clipboard, or
	// ErrEmptyClipboard / ErrClipboardUnavailable.
	ReadImage() ([]byte, error)
}

type systemClipboard struct {
	once sync.Once
	err  error
}

// SystemClipboard returns the real clipboard. Initialization is
// deferred to first use so constructing an Adapter never touches the
// display server.
func SystemClipboard() Clipboard {
	return &systemClipboard{}
}

func (s *systemClipboard) ReadImage() ([]byte, error) {
	s.once.Do(func() { s.err = clipboard.Init() })
	if s.err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrClipboardUnavailable, s.err)
	}

	// The clipboard package hands back PNG bytes for image content.
	data := clipboard.Read(clipboard.FmtImage)
	if len(data) == 0 {
		return nil, models.ErrEmptyClipboard
	}
	return data, nil
}

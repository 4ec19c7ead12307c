package dialog

import (
	"os"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textarea"

	"mcp-feedback-collector/intake"
	"mcp-feedback-collector/models"
)

// AppState represents the current state of the dialog.
type AppState int

const (
	// StateCompose is the open feedback form: report, text field,
	// attachment strip. Initial state in feedback mode.
	StateCompose AppState = iota
	// StateFilePick browses the filesystem for an image to attach.
	StateFilePick
	// StateSourceMenu chooses between file and clipboard sources.
	// Initial state in picker mode.
	StateSourceMenu
	// StateClosed is terminal: the result has been recorded and the
	// program is quitting.
	StateClosed
)

// Mode selects which tool the dialog is serving.
type Mode int

const (
	ModeFeedback Mode = iota
	ModePicker
)

type focusArea int

const (
	focusText focusArea = iota
	focusAttachments
)

// Model is the dialog state machine. All mutation happens in Update;
// View is a pure render of the current state, so the whole contract is
// testable without a terminal.
type Model struct {
	state AppState
	mode  Mode
	cfg   *models.Config

	request models.FeedbackRequest
	adapter *intake.Adapter

	width  int
	height int

	textarea   textarea.Model
	filepicker filepicker.Model
	countdown  progress.Model

	focus   focusArea
	cursor  int
	choices []string

	// Timeout enforcement. The deadline is fixed at construction and
	// never extended by user activity.
	deadline  time.Time
	total     time.Duration
	remaining time.Duration

	validationMsg string
	intakeMsg     string

	result models.FeedbackResult
	picked *models.ImageAttachment
	done   bool
}

// supportedExtensions drives the file picker filter. Order matters only
// for display.
var supportedExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".webp"}

// NewFeedbackModel creates the collect_feedback dialog.
func NewFeedbackModel(cfg *models.Config, req models.FeedbackRequest, adapter *intake.Adapter, timeout time.Duration) Model {
	m := newModel(cfg, adapter, timeout)
	m.mode = ModeFeedback
	m.state = StateCompose
	m.request = req

	ta := textarea.New()
	ta.Placeholder = "Enter your feedback, suggestions or questions here (optional)..."
	ta.ShowLineNumbers = false
	ta.CharLimit = cfg.MaxTextLength
	ta.SetHeight(6)
	ta.Focus()
	m.textarea = ta

	return m
}

// NewPickerModel creates the pick_image dialog.
func NewPickerModel(cfg *models.Config, adapter *intake.Adapter, timeout time.Duration) Model {
	m := newModel(cfg, adapter, timeout)
	m.mode = ModePicker
	m.state = StateSourceMenu
	m.choices = []string{"Choose an image file", "Paste from clipboard", "Cancel"}
	return m
}

func newModel(cfg *models.Config, adapter *intake.Adapter, timeout time.Duration) Model {
	fp := filepicker.New()
	fp.AllowedTypes = supportedExtensions
	if home, err := os.UserHomeDir(); err == nil {
		fp.CurrentDirectory = home
	}

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 40

	return Model{
		cfg:        cfg,
		adapter:    adapter,
		filepicker: fp,
		countdown:  prog,
		deadline:   time.Now().Add(timeout),
		total:      timeout,
		remaining:  timeout,
	}
}

// Result returns the terminal result of a feedback dialog. Zero until
// the dialog closes.
func (m Model) Result() models.FeedbackResult {
	return m.result
}

// Picked returns the selected image of a picker dialog, if any.
func (m Model) Picked() (models.ImageAttachment, bool) {
	if m.picked == nil {
		return models.ImageAttachment{}, false
	}
	return *m.picked, true
}

// Done reports whether the dialog reached a terminal state.
func (m Model) Done() bool {
	return m.done
}

package dialog

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"mcp-feedback-collector/intake"
	"mcp-feedback-collector/models"
)

// TickMsg drives the countdown. One arrives per second until the
// dialog closes.
type TickMsg time.Time

// AttachmentAddedMsg reports the outcome of an asynchronous attach
// operation (file read or clipboard paste).
type AttachmentAddedMsg struct {
	Attachment models.ImageAttachment
	Err        error
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func attachFileCmd(adapter *intake.Adapter, path string) tea.Cmd {
	return func() tea.Msg {
		att, err := adapter.AddFromFile(path)
		return AttachmentAddedMsg{Attachment: att, Err: err}
	}
}

func pasteClipboardCmd(adapter *intake.Adapter) tea.Cmd {
	return func() tea.Msg {
		att, err := adapter.AddFromClipboard()
		return AttachmentAddedMsg{Attachment: att, Err: err}
	}
}

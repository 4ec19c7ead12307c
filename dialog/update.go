package dialog

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"mcp-feedback-collector/models"
)

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd()}
	if m.mode == ModeFeedback {
		cmds = append(cmds, textarea.Blink)
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textarea.SetWidth(min(msg.Width-8, 76))
		m.filepicker.Height = max(msg.Height-10, 5)
		return m, nil

	case TickMsg:
		return m.handleTick()

	case AttachmentAddedMsg:
		return m.handleAttachmentAdded(msg)
	}

	switch m.state {
	case StateCompose:
		return m.updateCompose(msg)
	case StateFilePick:
		return m.updateFilePick(msg)
	case StateSourceMenu:
		return m.updateSourceMenu(msg)
	}
	return m, nil
}

// handleTick advances the countdown and enforces the deadline. The
// deadline is absolute; typing or attaching does not extend it.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.done {
		return m, nil
	}

	m.remaining = time.Until(m.deadline)
	if m.remaining <= 0 {
		m.remaining = 0
		return m.close(models.TimedOutResult())
	}
	return m, tickCmd()
}

func (m Model) handleAttachmentAdded(msg AttachmentAddedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.intakeMsg = msg.Err.Error()
		if m.mode == ModePicker {
			m.state = StateSourceMenu
		}
		return m, nil
	}

	if m.mode == ModePicker {
		att := msg.Attachment
		m.picked = &att
		return m.close(models.FeedbackResult{Outcome: models.OutcomeSubmitted})
	}

	m.intakeMsg = fmt.Sprintf("Attached %s (%dx%d, %s)",
		msg.Attachment.Source, msg.Attachment.Width, msg.Attachment.Height, msg.Attachment.Format)
	m.validationMsg = ""
	m.state = StateCompose
	return m, nil
}

func (m Model) updateCompose(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		return m, cmd
	}

	switch keyMsg.String() {
	case "ctrl+c", "esc":
		return m.cancel()

	case "ctrl+s":
		return m.submit()

	case "ctrl+o":
		m.state = StateFilePick
		return m, m.filepicker.Init()

	case "ctrl+v":
		m.intakeMsg = "Reading clipboard..."
		return m, pasteClipboardCmd(m.adapter)

	case "ctrl+x":
		m.adapter.Clear()
		m.cursor = 0
		m.intakeMsg = "All attachments removed"
		return m, nil

	case "tab":
		if m.focus == focusText {
			m.focus = focusAttachments
			m.textarea.Blur()
		} else {
			m.focus = focusText
			m.textarea.Focus()
		}
		return m, nil
	}

	if m.focus == focusAttachments {
		return m.updateAttachmentFocus(keyMsg)
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

func (m Model) updateAttachmentFocus(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := m.adapter.Count()
	switch msg.String() {
	case "left", "h":
		if m.cursor > 0 {
			m.cursor--
		}
	case "right", "l":
		if m.cursor < count-1 {
			m.cursor++
		}
	case "delete", "backspace", "d":
		atts := m.adapter.Attachments()
		if m.cursor < len(atts) {
			m.adapter.Remove(atts[m.cursor].ID)
			if m.cursor >= m.adapter.Count() && m.cursor > 0 {
				m.cursor--
			}
			m.intakeMsg = "Attachment removed"
		}
	}
	return m, nil
}

// updateFilePick forwards every message to the embedded file picker;
// it relies on internal messages (directory reads) beyond key events.
func (m Model) updateFilePick(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "ctrl+c":
			return m.cancel()
		case "esc":
			if m.mode == ModePicker {
				m.state = StateSourceMenu
			} else {
				m.state = StateCompose
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.filepicker, cmd = m.filepicker.Update(msg)

	if ok, path := m.filepicker.DidSelectFile(msg); ok {
		m.intakeMsg = "Loading " + path + "..."
		return m, tea.Batch(cmd, attachFileCmd(m.adapter, path))
	}
	if ok, path := m.filepicker.DidSelectDisabledFile(msg); ok {
		m.intakeMsg = fmt.Sprintf("%s is not a supported image type", path)
		return m, cmd
	}
	return m, cmd
}

func (m Model) updateSourceMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "ctrl+c", "esc", "q":
		return m.cancel()
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.choices)-1 {
			m.cursor++
		}
	case "enter", " ":
		switch m.cursor {
		case 0:
			m.state = StateFilePick
			return m, m.filepicker.Init()
		case 1:
			m.intakeMsg = "Reading clipboard..."
			return m, pasteClipboardCmd(m.adapter)
		case 2:
			return m.cancel()
		}
	}
	return m, nil
}

// submit validates the composed feedback and closes the dialog on
// success. An empty submission keeps the dialog open with a message
// rather than closing it.
func (m Model) submit() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.textarea.Value())
	images := m.adapter.Attachments()

	if text == "" && len(images) == 0 {
		m.validationMsg = models.ErrEmptySubmission.Error()
		return m, nil
	}
	if utf8.RuneCountInString(text) > m.cfg.MaxTextLength {
		m.validationMsg = fmt.Sprintf("Feedback text exceeds the %d character limit", m.cfg.MaxTextLength)
		return m, nil
	}
	if len(images) > m.cfg.MaxImages {
		m.validationMsg = fmt.Sprintf("At most %d images can be attached", m.cfg.MaxImages)
		return m, nil
	}

	return m.close(models.SubmittedResult(text, images))
}

// cancel discards all entered input and closes the dialog.
func (m Model) cancel() (tea.Model, tea.Cmd) {
	m.picked = nil
	return m.close(models.CancelledResult())
}

func (m Model) close(result models.FeedbackResult) (tea.Model, tea.Cmd) {
	if result.Outcome != models.OutcomeSubmitted {
		m.adapter.Clear()
	}
	m.result = result
	m.done = true
	m.state = StateClosed
	return m, tea.Quit
}

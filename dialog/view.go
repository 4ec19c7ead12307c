package dialog

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"mcp-feedback-collector/utils"
)

// View implements tea.Model
func (m Model) View() string {
	switch m.state {
	case StateCompose:
		return m.viewCompose()
	case StateFilePick:
		return m.viewFilePick()
	case StateSourceMenu:
		return m.viewSourceMenu()
	case StateClosed:
		return ""
	}
	return ""
}

func (m Model) viewCompose() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("Work Report & Feedback") + "\n")
	s.WriteString(subtitleStyle.Render("Review the report below, then share your feedback") + "\n")

	if m.request.WorkSummary != "" {
		s.WriteString(sectionLabelStyle.Render("AI Work Report") + "\n")
		s.WriteString(summaryStyle.Render(utils.Truncate(m.request.WorkSummary, 2000)) + "\n\n")
	}

	s.WriteString(sectionLabelStyle.Render("Your Feedback") + "\n")
	s.WriteString(m.textarea.View() + "\n\n")

	s.WriteString(m.renderAttachments())
	s.WriteString(m.renderCountdown() + "\n")

	if m.validationMsg != "" {
		s.WriteString(errorStyle.Render(m.validationMsg) + "\n")
	}
	if m.intakeMsg != "" {
		s.WriteString(successStyle.Render(m.intakeMsg) + "\n")
	}

	s.WriteString("\n")
	s.WriteString(helpStyle.Render("Ctrl+S submit • Ctrl+O attach file • Ctrl+V paste image • Tab switch focus • Esc cancel"))

	return boxStyle.Render(s.String())
}

// renderAttachments draws the attachment strip: one bordered card per
// image with its preview art and metadata, laid out horizontally.
func (m Model) renderAttachments() string {
	atts := m.adapter.Attachments()

	var s strings.Builder
	label := fmt.Sprintf("Attached Images (%d/%d)", len(atts), m.cfg.MaxImages)
	s.WriteString(sectionLabelStyle.Render(label) + "\n")

	if len(atts) == 0 {
		s.WriteString(attachmentInfoStyle.Render("No images attached") + "\n\n")
		return s.String()
	}

	cards := make([]string, 0, len(atts))
	for i, att := range atts {
		var card strings.Builder

		if thumb, err := m.adapter.Preview(att); err == nil {
			card.WriteString(renderPreview(thumb) + "\n")
		}
		card.WriteString(attachmentInfoStyle.Render(utils.Truncate(att.Source, 24)) + "\n")
		card.WriteString(attachmentInfoStyle.Render(fmt.Sprintf("%dx%d %s", att.Width, att.Height, att.Format)) + "\n")
		card.WriteString(attachmentInfoStyle.Render(utils.FormatBytes(att.SizeBytes)))

		style := attachmentStyle
		if m.focus == focusAttachments && m.cursor == i {
			style = attachmentSelectedStyle
		}
		cards = append(cards, style.Render(card.String()))
	}
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Bottom, cards...) + "\n")

	if m.focus == focusAttachments {
		s.WriteString(helpStyle.Render("←/→ select • Delete remove • Ctrl+X remove all") + "\n")
	}
	s.WriteString("\n")
	return s.String()
}

func (m Model) renderCountdown() string {
	frac := 0.0
	if m.total > 0 {
		frac = float64(m.remaining) / float64(m.total)
	}

	mins := int(m.remaining.Round(time.Second).Minutes())
	secs := int(m.remaining.Round(time.Second).Seconds()) % 60
	clock := fmt.Sprintf("%02d:%02d", mins, secs)

	style := countdownStyle
	if m.remaining <= 30*time.Second {
		style = countdownUrgentStyle
	}
	return m.countdown.ViewAs(frac) + " " + style.Render(clock+" remaining")
}

func (m Model) viewFilePick() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("Select an Image") + "\n")
	s.WriteString(subtitleStyle.Render("Supported formats: PNG, JPG, JPEG, GIF, BMP, WebP") + "\n")
	s.WriteString(m.filepicker.View() + "\n")

	if m.intakeMsg != "" {
		s.WriteString(warningStyle.Render(m.intakeMsg) + "\n")
	}

	s.WriteString(m.renderCountdown() + "\n\n")
	s.WriteString(helpStyle.Render("Enter select • ↑/↓ navigate • Esc back"))

	return boxStyle.Render(s.String())
}

func (m Model) viewSourceMenu() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("Pick an Image") + "\n")
	s.WriteString(subtitleStyle.Render("Choose where the image comes from") + "\n")

	for i, choice := range m.choices {
		cursor := " "
		if m.cursor == i {
			cursor = ">"
			choice = selectedStyle.Render(choice)
		} else {
			choice = choiceStyle.Render(choice)
		}
		s.WriteString(cursor + " " + choice + "\n")
	}
	s.WriteString("\n")

	if m.intakeMsg != "" {
		s.WriteString(warningStyle.Render(m.intakeMsg) + "\n")
	}

	s.WriteString(m.renderCountdown() + "\n\n")
	s.WriteString(helpStyle.Render("Use ↑/↓ to navigate, Enter to select, Esc to cancel"))

	return boxStyle.Render(s.String())
}

// Package dialog implements the interactive feedback and image picker
// dialogs as an explicit state machine rendered in the terminal. A
// Controller invocation blocks until the user submits, cancels, or the
// deadline passes.
package dialog

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"mcp-feedback-collector/intake"
	"mcp-feedback-collector/logger"
	"mcp-feedback-collector/models"
)

// programRunner abstracts running a bubbletea program to completion.
// Tests substitute a fake that drives the model directly.
type programRunner func(tea.Model, ...tea.ProgramOption) (tea.Model, error)

// Controller serializes dialog access: at most one dialog is on screen
// at a time, and a second request is rejected rather than queued.
type Controller struct {
	cfg  *models.Config
	log  zerolog.Logger
	clip intake.Clipboard

	busy atomic.Bool
	run  programRunner
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithClipboardSource replaces the system clipboard used by new
// dialogs, used by tests.
func WithClipboardSource(c intake.Clipboard) ControllerOption {
	return func(ctl *Controller) { ctl.clip = c }
}

// WithRunner replaces the terminal program runner, used by tests.
func WithRunner(run programRunner) ControllerOption {
	return func(ctl *Controller) { ctl.run = run }
}

// NewController creates a dialog controller.
func NewController(cfg *models.Config, opts ...ControllerOption) *Controller {
	ctl := &Controller{
		cfg:  cfg,
		log:  logger.Get().With().Str("component", "dialog").Logger(),
		clip: intake.SystemClipboard(),
		run: func(m tea.Model, opts ...tea.ProgramOption) (tea.Model, error) {
			return tea.NewProgram(m, opts...).Run()
		},
	}
	for _, opt := range opts {
		opt(ctl)
	}
	return ctl
}

// Collect opens the feedback dialog and blocks until it closes. A
// non-positive timeout falls back to the configured default.
func (c *Controller) Collect(ctx context.Context, req models.FeedbackRequest, timeout time.Duration) (models.FeedbackResult, error) {
	if !c.busy.CompareAndSwap(false, true) {
		return models.FeedbackResult{}, models.ErrDialogBusy
	}
	defer c.busy.Store(false)

	if timeout <= 0 {
		timeout = c.cfg.DialogTimeout
	}

	c.log.Info().
		Dur("timeout", timeout).
		Int("summary_len", len(req.WorkSummary)).
		Msg("opening feedback dialog")

	adapter := intake.New(c.cfg, intake.WithClipboard(c.clip))
	model := NewFeedbackModel(c.cfg, req, adapter, timeout)

	final, err := c.run(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if err != nil {
		return models.FeedbackResult{}, fmt.Errorf("feedback dialog failed: %w", err)
	}

	m, ok := final.(Model)
	if !ok {
		return models.FeedbackResult{}, fmt.Errorf("unexpected final model type %T", final)
	}

	result := m.Result()
	c.log.Info().
		Str("outcome", result.Outcome.String()).
		Int("text_len", len(result.Text)).
		Int("images", len(result.Images)).
		Msg("feedback dialog closed")
	return result, nil
}

// PickImage opens the image picker dialog and blocks until the user
// selects an image, cancels, or the default timeout passes.
func (c *Controller) PickImage(ctx context.Context) (models.ImageAttachment, error) {
	if !c.busy.CompareAndSwap(false, true) {
		return models.ImageAttachment{}, models.ErrDialogBusy
	}
	defer c.busy.Store(false)

	c.log.Info().Msg("opening image picker dialog")

	adapter := intake.New(c.cfg, intake.WithClipboard(c.clip))
	model := NewPickerModel(c.cfg, adapter, c.cfg.DialogTimeout)

	final, err := c.run(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if err != nil {
		return models.ImageAttachment{}, fmt.Errorf("image picker dialog failed: %w", err)
	}

	m, ok := final.(Model)
	if !ok {
		return models.ImageAttachment{}, fmt.Errorf("unexpected final model type %T", final)
	}

	att, ok := m.Picked()
	if !ok {
		return models.ImageAttachment{}, models.ErrNoImageSelected
	}

	c.log.Info().
		Str("format", string(att.Format)).
		Int64("size_bytes", att.SizeBytes).
		Msg("image picked")
	return att, nil
}

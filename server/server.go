// Package server exposes the feedback dialogs as MCP tools over stdio.
// Stdout carries the protocol stream; all logging goes to stderr.
package server

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"mcp-feedback-collector/intake"
	"mcp-feedback-collector/logger"
	"mcp-feedback-collector/models"
)

const (
	serverName    = "mcp-feedback-collector"
	serverVersion = "1.0.0"
)

// FeedbackPrompter is the dialog surface the server drives. The
// concrete implementation blocks inside each call until the user
// responds or the deadline passes.
type FeedbackPrompter interface {
	Collect(ctx context.Context, req models.FeedbackRequest, timeout time.Duration) (models.FeedbackResult, error)
	PickImage(ctx context.Context) (models.ImageAttachment, error)
}

// Server wires the three feedback tools into an MCP stdio server.
type Server struct {
	cfg      *models.Config
	log      zerolog.Logger
	prompter FeedbackPrompter
	mcp      *mcpserver.MCPServer
}

// New creates the server and registers its tools.
func New(cfg *models.Config, prompter FeedbackPrompter) *Server {
	s := &Server{
		cfg:      cfg,
		log:      logger.Get().With().Str("component", "server").Logger(),
		prompter: prompter,
	}

	s.mcp = mcpserver.NewMCPServer(
		serverName,
		serverVersion,
		mcpserver.WithToolCapabilities(false),
		mcpserver.WithRecovery(),
	)

	s.mcp.AddTool(mcp.NewTool("collect_feedback",
		mcp.WithDescription("Open a dialog showing the AI work report and collect text and image feedback from the user."),
		mcp.WithString("work_summary",
			mcp.Description("Report of the work the AI has just completed, shown read-only in the dialog."),
		),
		mcp.WithNumber("timeout_seconds",
			mcp.Description(fmt.Sprintf("Seconds to wait for the user before giving up (default %d).", cfg.TimeoutSeconds)),
		),
	), s.handleCollectFeedback)

	s.mcp.AddTool(mcp.NewTool("pick_image",
		mcp.WithDescription("Open a dialog for the user to select a single image from a file or the clipboard."),
	), s.handlePickImage)

	s.mcp.AddTool(mcp.NewTool("get_image_info",
		mcp.WithDescription("Return format, dimensions and file size for an image on disk without opening a dialog."),
		mcp.WithString("image_path",
			mcp.Required(),
			mcp.Description("Path to the image file to inspect."),
		),
	), s.handleGetImageInfo)

	return s
}

// ServeStdio blocks serving the MCP protocol on stdin/stdout.
func (s *Server) ServeStdio() error {
	s.log.Info().
		Str("version", serverVersion).
		Int("timeout_seconds", s.cfg.TimeoutSeconds).
		Msg("serving MCP over stdio")
	return mcpserver.ServeStdio(s.mcp)
}

func (s *Server) handleCollectFeedback(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	summary := req.GetString("work_summary", "")
	seconds := req.GetInt("timeout_seconds", s.cfg.TimeoutSeconds)
	if seconds < 1 {
		return mcp.NewToolResultError("timeout_seconds must be at least 1"), nil
	}
	timeout := time.Duration(seconds) * time.Second

	s.log.Info().
		Int("timeout_seconds", seconds).
		Int("summary_len", len(summary)).
		Msg("collect_feedback called")

	result, err := s.prompter.Collect(ctx, models.FeedbackRequest{WorkSummary: summary}, timeout)
	if err != nil {
		if errors.Is(err, models.ErrDialogBusy) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return nil, err
	}

	switch result.Outcome {
	case models.OutcomeCancelled:
		return mcp.NewToolResultError("user cancelled feedback submission"), nil
	case models.OutcomeTimedOut:
		return mcp.NewToolResultError(fmt.Sprintf("feedback dialog timed out after %d seconds", seconds)), nil
	}

	return feedbackToolResult(result), nil
}

// feedbackToolResult flattens a submitted result into MCP content: one
// text block followed by one image block per attachment, full
// resolution, base64 encoded.
func feedbackToolResult(result models.FeedbackResult) *mcp.CallToolResult {
	content := make([]mcp.Content, 0, 1+len(result.Images))

	var text string
	if result.HasText() {
		text = "User feedback: " + result.Text
	} else {
		text = fmt.Sprintf("User submitted %d image(s) without text feedback", len(result.Images))
	}
	text += "\nSubmitted at: " + result.SubmittedAt.Format(time.RFC3339)
	content = append(content, mcp.TextContent{Type: "text", Text: text})

	for _, img := range result.Images {
		content = append(content, mcp.ImageContent{
			Type:     "image",
			Data:     base64.StdEncoding.EncodeToString(img.Data),
			MIMEType: img.Format.MIMEType(),
		})
	}
	return &mcp.CallToolResult{Content: content}
}

func (s *Server) handlePickImage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.log.Info().Msg("pick_image called")

	att, err := s.prompter.PickImage(ctx)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrDialogBusy),
			errors.Is(err, models.ErrNoImageSelected):
			return mcp.NewToolResultError(err.Error()), nil
		}
		return nil, err
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{
				Type: "text",
				Text: fmt.Sprintf("Selected image: %s (%dx%d, %s)",
					att.Source, att.Width, att.Height, att.Format),
			},
			mcp.ImageContent{
				Type:     "image",
				Data:     base64.StdEncoding.EncodeToString(att.Data),
				MIMEType: att.Format.MIMEType(),
			},
		},
	}, nil
}

func (s *Server) handleGetImageInfo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("image_path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.log.Info().Str("path", path).Msg("get_image_info called")

	info, err := intake.Inspect(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(info.String()), nil
}

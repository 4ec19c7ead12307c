package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"mcp-feedback-collector/dialog"
	"mcp-feedback-collector/logger"
	"mcp-feedback-collector/models"
	"mcp-feedback-collector/server"
)

func main() {
	var (
		demo     = flag.Bool("demo", false, "Open the feedback dialog once without an MCP client, for trying it out")
		timeout  = flag.Int("t", 0, "Dialog timeout in seconds (overrides configuration)")
		logLevel = flag.String("log-level", "", "Log level: debug, info, warn, error (overrides configuration)")
		help     = flag.Bool("h", false, "Show help")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "MCP Feedback Collector - Interactive feedback dialogs for AI assistants\n\n")
		fmt.Fprintf(os.Stderr, "Runs an MCP server over stdio exposing collect_feedback, pick_image and\n")
		fmt.Fprintf(os.Stderr, "get_image_info tools. Each feedback call opens a terminal dialog where a\n")
		fmt.Fprintf(os.Stderr, "human can type text and attach images from files or the clipboard.\n\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [flags]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if *help {
		flag.Usage()
		return
	}

	cfg, err := models.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	if *timeout > 0 {
		cfg.TimeoutSeconds = *timeout
		cfg.DialogTimeout = time.Duration(*timeout) * time.Second
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	logger.Init(cfg.LogLevel)

	controller := dialog.NewController(cfg)

	if *demo {
		runDemo(cfg, controller)
		return
	}

	srv := server.New(cfg, controller)
	if err := srv.ServeStdio(); err != nil {
		logger.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}

// runDemo opens the dialog directly and prints the outcome, bypassing
// the MCP transport.
func runDemo(cfg *models.Config, controller *dialog.Controller) {
	req := models.FeedbackRequest{
		WorkSummary: "Demo mode: this panel shows the AI work report.\n" +
			"Type feedback below, attach images with Ctrl+O or Ctrl+V,\n" +
			"then submit with Ctrl+S.",
	}

	result, err := controller.Collect(context.Background(), req, cfg.DialogTimeout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dialog error: %v\n", err)
		os.Exit(1)
	}

	switch result.Outcome {
	case models.OutcomeSubmitted:
		fmt.Printf("Submitted at %s\n", result.SubmittedAt.Format(time.RFC3339))
		if result.HasText() {
			fmt.Printf("Text: %s\n", result.Text)
		}
		for _, img := range result.Images {
			fmt.Printf("Image: %s %dx%d (%d bytes)\n", img.Format, img.Width, img.Height, img.SizeBytes)
		}
	case models.OutcomeCancelled:
		fmt.Println("Cancelled")
	case models.OutcomeTimedOut:
		fmt.Println("Timed out")
	}
}

package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/linuxfab/compress-picture-to70/internal/filter"
	"github.com/linuxfab/compress-picture-to70/internal/processor"
	"github.com/linuxfab/compress-picture-to70/internal/tui"
)

// resolveDirectory takes the positional argument or falls back to an
// interactive prompt.
func resolveDirectory(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}

	fmt.Fprint(os.Stdout, "Target directory: ")
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("no directory given")
	}
	dir := strings.TrimSpace(line)
	if dir == "" {
		return "", fmt.Errorf("no directory given")
	}
	return dir, nil
}

// parseSizeFlag converts an optional human-readable size flag ("500KB",
// "1.5M") to bytes. Empty means unset.
func parseSizeFlag(name, value string) (int64, error) {
	if value == "" {
		return 0, nil
	}
	n, err := filter.ParseSize(value)
	if err != nil {
		return 0, fmt.Errorf("--%s: %w", name, err)
	}
	return n, nil
}

// runJob drives discovery, the worker pool, and the progress UI, and returns
// every result of the run (pipeline outcomes plus discovery-tagged skips).
// An interrupt stops dispatch and the partial results are still returned.
func runJob(title string, cfg processor.JobConfig, transform processor.Transform) ([]processor.FileResult, error) {
	paths, tagged, err := processor.Discover(cfg)
	if err != nil {
		return nil, err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	updates := make(chan processor.ProgressUpdate, 64)
	model := tui.NewModel(title, updates)
	program := tea.NewProgram(model)

	uiDone := make(chan struct{})
	go func() {
		defer close(uiDone)
		_, _ = program.Run()
		// Without a usable terminal Run returns immediately; keep consuming
		// progress so the pipeline never blocks on a full buffer.
		drainProgress(updates)
	}()

	results := processor.RunPipeline(ctx, paths, transform, cfg.Workers, updates)

	close(updates)
	<-uiDone

	if ctx.Err() != nil {
		fmt.Fprintln(os.Stdout, "Interrupted; summary covers completed files only.")
	}

	return append(results, tagged...), nil
}

// drainProgress discards updates until the channel closes.
func drainProgress(updates <-chan processor.ProgressUpdate) {
	for range updates {
	}
}

// printRunReport renders the summary table and lists failed files.
func printRunReport(results []processor.FileResult, successLabel string) {
	summary := processor.Summarize(results)

	failTone := tui.ToneNeutral
	if summary.Failed > 0 {
		failTone = tui.ToneWarn
	}
	rows := []tui.SummaryRow{
		{Label: "Files discovered", Value: strconv.Itoa(summary.Discovered())},
		{Label: successLabel, Value: strconv.Itoa(summary.Success), Tone: tui.ToneGood},
		{Label: "Skipped (exists)", Value: strconv.Itoa(summary.SkippedExists)},
		{Label: "Skipped (would grow)", Value: strconv.Itoa(summary.SkippedGrew)},
		{Label: "Skipped (filtered)", Value: strconv.Itoa(summary.SkippedFiltered)},
		{Label: "Failed", Value: strconv.Itoa(summary.Failed), Tone: failTone},
	}
	if summary.TotalOriginal > 0 {
		rows = append(rows,
			tui.SummaryRow{Label: "Original size", Value: processor.FormatSize(summary.TotalOriginal)},
			tui.SummaryRow{Label: "Output size", Value: processor.FormatSize(summary.TotalOutput)},
			tui.SummaryRow{Label: "Saved", Value: fmt.Sprintf("%s (%.1f%%)",
				processor.FormatSize(summary.BytesSaved()), summary.PercentSaved()), Tone: tui.ToneGood},
		)
	}
	fmt.Fprintln(os.Stdout, tui.RenderSummary(rows))

	for _, res := range results {
		if res.Outcome != processor.OutcomeFailed {
			continue
		}
		fmt.Fprintf(os.Stdout, "%s %s: %s\n",
			failBulletStyle.Render("x"),
			failPathStyle.Render(res.Path),
			failMsgStyle.Render(res.Message),
		)
	}
}

var (
	failBulletStyle = lipgloss.NewStyle().Foreground(tui.ColorWarn)
	failPathStyle   = lipgloss.NewStyle().Bold(true).Foreground(tui.ColorAccent)
	failMsgStyle    = lipgloss.NewStyle().Foreground(tui.ColorDim)
)

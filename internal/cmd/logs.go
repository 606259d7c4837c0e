package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/lumina-ai/lumina-console/internal/domain"
)

const timestampLayout = "2006-01-02 15:04:05"

// LogsCmd inspects request logs
type LogsCmd struct {
	List LogsListCmd `cmd:"list" help:"List a page of request logs" default:"1"`
	Show LogsShowCmd `cmd:"show" help:"Show a single request log"`
}

// LogsListCmd lists one page of request logs
type LogsListCmd struct {
	Format string `help:"Output format (table or json)" default:"table" enum:"table,json" short:"f"`
	Page   int    `help:"Page number" default:"1" short:"p"`
	Size   int    `help:"Records per page" default:"10" short:"s"`
}

// Run executes the list command
func (l *LogsListCmd) Run(cli *CLI) error {
	container, err := cli.Services()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), cli.Timeout)
	defer cancel()

	page, err := container.LogService.Page(ctx, l.Page, l.Size)
	if err != nil {
		return err
	}

	switch l.Format {
	case "json":
		return writeJSON(cli.out(), newLogPageJSON(page))
	default:
		return renderLogTable(cli.out(), page)
	}
}

// renderLogTable displays a page in table format
func renderLogTable(out io.Writer, page domain.LogPage) error {
	if len(page.Records) == 0 {
		fmt.Fprintln(out, "No request logs found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tSTATUS\tREQUEST MODEL\tACTUAL MODEL\tPROVIDER\tTOKENS\tCOST\tLATENCY\tRETRIES")
	for _, r := range page.Records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%d\t%s\t%s\t%d\n",
			r.ID,
			r.RequestTime.Local().Format(timestampLayout),
			r.Status,
			r.RequestModel,
			r.ActualModel,
			r.ProviderName,
			r.Tokens(),
			formatCost(r.Cost),
			formatMillis(r.FirstTokenMs),
			r.RetryCount)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	pages := domain.TotalPages(page.Total, page.Size)
	fmt.Fprintf(out, "\n%s (page %d of %d)\n",
		domain.PageSummary(page.Current, page.Size, page.Total), page.Current, max(pages, 1))
	return nil
}

// LogsShowCmd shows a single request log
type LogsShowCmd struct {
	Format string `help:"Output format (table or json)" default:"table" enum:"table,json" short:"f"`
	ID     string `arg:"" help:"Request log id"`
}

// Run executes the show command
func (s *LogsShowCmd) Run(cli *CLI) error {
	container, err := cli.Services()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), cli.Timeout)
	defer cancel()

	detail, err := container.LogService.Detail(ctx, s.ID)
	if err != nil {
		return err
	}

	if s.Format == "json" {
		return writeJSON(cli.out(), newLogDetailJSON(detail))
	}
	printDetail(cli.out(), detail)
	return nil
}

func printDetail(out io.Writer, d domain.LogDetail) {
	fmt.Fprintf(out, "ID: %s\n", d.ID)
	fmt.Fprintf(out, "Request ID: %s\n", d.RequestID)
	fmt.Fprintf(out, "Status: %s\n", d.Status)
	if d.ErrorMessage != "" {
		fmt.Fprintf(out, "Error: %s\n", d.ErrorMessage)
	}
	fmt.Fprintf(out, "Created: %s\n", d.Created().Local().Format(timestampLayout))
	fmt.Fprintf(out, "Request Type: %s\n", d.RequestType)
	fmt.Fprintf(out, "Stream: %t\n", d.IsStream)
	fmt.Fprintf(out, "Request Model: %s\n", d.RequestModel)
	fmt.Fprintf(out, "Actual Model: %s\n", d.ActualModel)
	fmt.Fprintf(out, "Provider: %s (%d)\n", d.ProviderName, d.ProviderID)
	fmt.Fprintf(out, "Tokens: %d in / %d out / %d total\n", d.InputTokens, d.OutputTokens, d.Tokens())
	fmt.Fprintf(out, "Cost: %s\n", formatCost(d.Cost))
	fmt.Fprintf(out, "First Token: %s\n", formatMillis(d.FirstTokenMs))
	fmt.Fprintf(out, "Total Time: %s\n", formatMillis(d.TotalTimeMs))
	fmt.Fprintf(out, "Retries: %d\n", d.RetryCount)

	if d.RequestContent != "" {
		fmt.Fprintf(out, "\nRequest:\n%s\n", d.RequestContent)
	}
	if d.ResponseContent != "" {
		fmt.Fprintf(out, "\nResponse:\n%s\n", d.ResponseContent)
	}
}

func formatCost(cost float64) string {
	return "$" + strconv.FormatFloat(cost, 'f', 6, 64)
}

func formatMillis(ms int64) string {
	if ms <= 0 {
		return "-"
	}
	return (time.Duration(ms) * time.Millisecond).String()
}

// logRecordJSON represents a request log in JSON format
type logRecordJSON struct {
	ActualModel  string  `json:"actual_model"`
	Cost         float64 `json:"cost"`
	FirstTokenMs int64   `json:"first_token_ms"`
	ID           string  `json:"id"`
	InputTokens  int64   `json:"input_tokens"`
	OutputTokens int64   `json:"output_tokens"`
	ProviderName string  `json:"provider_name"`
	RequestModel string  `json:"request_model"`
	RequestTime  string  `json:"request_time"`
	RetryCount   int     `json:"retry_count"`
	Status       string  `json:"status"`
}

type logPageJSON struct {
	Current int             `json:"current"`
	Pages   int             `json:"pages"`
	Records []logRecordJSON `json:"records"`
	Size    int             `json:"size"`
	Total   int             `json:"total"`
}

func newLogPageJSON(page domain.LogPage) logPageJSON {
	records := make([]logRecordJSON, 0, len(page.Records))
	for _, r := range page.Records {
		records = append(records, logRecordJSON{
			ActualModel:  r.ActualModel,
			Cost:         r.Cost,
			FirstTokenMs: r.FirstTokenMs,
			ID:           r.ID,
			InputTokens:  r.InputTokens,
			OutputTokens: r.OutputTokens,
			ProviderName: r.ProviderName,
			RequestModel: r.RequestModel,
			RequestTime:  r.RequestTime.Format(time.RFC3339),
			RetryCount:   r.RetryCount,
			Status:       r.Status,
		})
	}
	return logPageJSON{
		Current: page.Current,
		Pages:   domain.TotalPages(page.Total, page.Size),
		Records: records,
		Size:    page.Size,
		Total:   page.Total,
	}
}

type logDetailJSON struct {
	logRecordJSON
	CreatedAt       string `json:"created_at"`
	ErrorMessage    string `json:"error_message,omitempty"`
	IsStream        bool   `json:"is_stream"`
	ProviderID      int64  `json:"provider_id"`
	RequestContent  string `json:"request_content,omitempty"`
	RequestID       string `json:"request_id"`
	RequestType     string `json:"request_type"`
	ResponseContent string `json:"response_content,omitempty"`
	TotalTimeMs     int64  `json:"total_time_ms"`
}

func newLogDetailJSON(d domain.LogDetail) logDetailJSON {
	return logDetailJSON{
		logRecordJSON: logRecordJSON{
			ActualModel:  d.ActualModel,
			Cost:         d.Cost,
			FirstTokenMs: d.FirstTokenMs,
			ID:           d.ID,
			InputTokens:  d.InputTokens,
			OutputTokens: d.OutputTokens,
			ProviderName: d.ProviderName,
			RequestModel: d.RequestModel,
			RequestTime:  d.RequestTime.Format(time.RFC3339),
			RetryCount:   d.RetryCount,
			Status:       d.Status,
		},
		CreatedAt:       d.Created().Format(time.RFC3339),
		ErrorMessage:    d.ErrorMessage,
		IsStream:        d.IsStream,
		ProviderID:      d.ProviderID,
		RequestContent:  d.RequestContent,
		RequestID:       d.RequestID,
		RequestType:     d.RequestType,
		ResponseContent: d.ResponseContent,
		TotalTimeMs:     d.TotalTimeMs,
	}
}

func writeJSON(out io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Fprintln(out, string(data))
	return nil
}

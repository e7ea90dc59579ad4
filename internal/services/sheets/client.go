package sheets

import (
	"context"
	"fmt"
	"log"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/nestwatch/nestwatch-api/internal/models"
	"github.com/nestwatch/nestwatch-api/internal/session"
	"github.com/nestwatch/nestwatch-api/pkg/config"
)

// Client talks to the shared Google Sheets documents: the annotations sheet
// that committed records are appended to, and the assignments sheet that
// tracks which cameras each reviewer is working through.
type Client struct {
	svc *sheets.Service

	annotationsSpreadsheetID string
	annotationsRange         string
	assignmentsSpreadsheetID string
	assignmentsRange         string
	timeout                  time.Duration
}

// NewClient creates a sheets client using service account credentials
func NewClient(ctx context.Context, cfg config.SheetsConfig, opts ...option.ClientOption) (*Client, error) {
	clientOpts := []option.ClientOption{
		option.WithScopes(sheets.SpreadsheetsScope),
	}
	if cfg.CredentialsFile != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	clientOpts = append(clientOpts, opts...)

	svc, err := sheets.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("creating sheets service: %w", err)
	}

	return &Client{
		svc:                      svc,
		annotationsSpreadsheetID: cfg.AnnotationsSpreadsheetID,
		annotationsRange:         cfg.AnnotationsRange,
		assignmentsSpreadsheetID: cfg.AssignmentsSpreadsheetID,
		assignmentsRange:         cfg.AssignmentsRange,
		timeout:                  cfg.Timeout,
	}, nil
}

// AppendRows appends the given annotation rows to the annotations sheet in a
// single batch and returns how many rows the sheet reports were written.
// Implements session.Store.
func (c *Client) AppendRows(ctx context.Context, rows []session.Row) (int, error) {
	if c.annotationsSpreadsheetID == "" {
		return 0, fmt.Errorf("no annotations spreadsheet configured")
	}

	values := make([][]interface{}, 0, len(rows))
	for _, row := range rows {
		values = append(values, rowValues(row))
	}

	ctx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.svc.Spreadsheets.Values.
		Append(c.annotationsSpreadsheetID, c.annotationsRange, &sheets.ValueRange{Values: values}).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return 0, fmt.Errorf("appending annotation rows: %w", err)
	}

	appended := 0
	if resp.Updates != nil {
		appended = int(resp.Updates.UpdatedRows)
	}
	log.Printf("[INFO] Appended %d annotation row(s) to sheet %s", appended, c.annotationsSpreadsheetID)
	return appended, nil
}

// FetchAssignments reads the assignments sheet. Implements assignments.Source.
func (c *Client) FetchAssignments(ctx context.Context) ([]models.Assignment, error) {
	if c.assignmentsSpreadsheetID == "" {
		return nil, fmt.Errorf("no assignments spreadsheet configured")
	}

	ctx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.svc.Spreadsheets.Values.
		Get(c.assignmentsSpreadsheetID, c.assignmentsRange).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("reading assignments sheet: %w", err)
	}

	return assignmentsFromValues(resp.Values), nil
}

// callContext applies the configured per-call timeout
func (c *Client) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout > 0 {
		return context.WithTimeout(ctx, c.timeout)
	}
	return context.WithCancel(ctx)
}

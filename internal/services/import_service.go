// internal/services/import_service.go
package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/almoxdev/estoque-backend/internal/interchange"
	"github.com/almoxdev/estoque-backend/internal/store"
)

// ImportService loads spreadsheet and backup payloads into the database.
// Collections are written in isolation from each other so a bad sheet never
// blocks the rest of the file.
type ImportService struct {
	store store.DataStore
}

type CollectionResult struct {
	Collection interchange.Collection `json:"collection"`
	Label      string                 `json:"label"`
	Rows       int                    `json:"rows"`
	Error      string                 `json:"error,omitempty"`
}

type ImportReport struct {
	Results  []CollectionResult       `json:"results"`
	Issues   []interchange.SheetIssue `json:"issues,omitempty"`
	Imported int                      `json:"imported"`
	Failed   int                      `json:"failed"`
}

func NewImportService(store store.DataStore) *ImportService {
	return &ImportService{store: store}
}

// ImportWorkbook parses an xlsx upload and inserts the rows of every
// recognized sheet. Unrecognized or empty sheets are reported, not fatal.
func (s *ImportService) ImportWorkbook(ctx context.Context, fileBytes []byte) (*ImportReport, error) {
	data, err := interchange.ParseWorkbook(bytes.NewReader(fileBytes))
	if err != nil {
		return nil, err
	}

	report := &ImportReport{Issues: data.Issues}
	for _, table := range data.Tables {
		result := CollectionResult{
			Collection: table.Collection,
			Label:      interchange.Label(table.Collection),
			Rows:       len(table.Rows),
		}

		if err := s.store.BulkInsert(ctx, table.Collection, table.Rows); err != nil {
			logrus.WithError(err).WithField("collection", table.Collection).Error("Failed to import sheet")
			result.Error = err.Error()
			result.Rows = 0
			report.Failed++
		} else {
			report.Imported += result.Rows
		}

		report.Results = append(report.Results, result)
	}

	return report, nil
}

// ImportBackup restores the selected collections of a JSON backup envelope.
// Collections are written in dependency order so references resolve, each
// collection in its own transaction. Existing rows with matching ids are
// overwritten.
func (s *ImportService) ImportBackup(ctx context.Context, raw []byte, selection []interchange.Collection) (*ImportReport, error) {
	if len(selection) == 0 {
		return nil, interchange.ErrNoSelection
	}

	selected := make(map[interchange.Collection]bool, len(selection))
	for _, c := range selection {
		if !interchange.Valid(c) {
			return nil, &interchange.FormatError{Msg: fmt.Sprintf("unknown collection: %s", c)}
		}
		selected[c] = true
	}

	envelope, err := interchange.ParseEnvelope(raw)
	if err != nil {
		return nil, err
	}

	report := &ImportReport{}
	for _, collection := range interchange.RestoreOrder {
		if !selected[collection] {
			continue
		}
		rows, err := envelope.Rows(collection)
		if err != nil {
			report.Results = append(report.Results, CollectionResult{
				Collection: collection,
				Label:      interchange.Label(collection),
				Error:      err.Error(),
			})
			report.Failed++
			continue
		}
		if len(rows) == 0 {
			continue
		}

		result := CollectionResult{
			Collection: collection,
			Label:      interchange.Label(collection),
			Rows:       len(rows),
		}

		if err := s.store.BulkUpsert(ctx, collection, rows); err != nil {
			logrus.WithError(err).WithField("collection", collection).Error("Failed to restore collection")
			result.Error = err.Error()
			result.Rows = 0
			report.Failed++
		} else {
			report.Imported += result.Rows
		}

		report.Results = append(report.Results, result)
	}

	return report, nil
}

// HasFailures reports whether any collection failed to load.
func (r *ImportReport) HasFailures() bool {
	return r.Failed > 0 || len(r.Issues) > 0
}

// Summary lists the per-collection row counts of a successful run, useful
// for logs.
func (r *ImportReport) Summary() string {
	summary := ""
	for i, result := range r.Results {
		if i > 0 {
			summary += ", "
		}
		summary += fmt.Sprintf("%s=%d", result.Collection, result.Rows)
	}
	return summary
}

// Failures lists every failed collection with its error text, plus the
// skipped sheets and why. Feeds the warning notification of a partial run.
func (r *ImportReport) Failures() string {
	var parts []string
	for _, result := range r.Results {
		if result.Error != "" {
			parts = append(parts, fmt.Sprintf("%s: %s", result.Label, result.Error))
		}
	}
	for _, issue := range r.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Sheet, issue.Reason))
	}
	return strings.Join(parts, "; ")
}

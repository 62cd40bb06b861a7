// internal/services/export_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/almoxdev/estoque-backend/internal/interchange"
	"github.com/almoxdev/estoque-backend/internal/store"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypePDF  = "application/pdf"
	contentTypeJSON = "application/json"
)

// ExportService produces downloadable artifacts from the current database
// contents.
type ExportService struct {
	store      store.DataStore
	orgService *OrganizationService
}

// Artifact is a generated file ready to be served.
type Artifact struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"-"`
}

func NewExportService(store store.DataStore, orgService *OrganizationService) *ExportService {
	return &ExportService{
		store:      store,
		orgService: orgService,
	}
}

// ExportWorkbook builds an xlsx workbook with one sheet per selected
// collection.
func (s *ExportService) ExportWorkbook(ctx context.Context, selection []interchange.Collection) (*Artifact, error) {
	tables, err := s.readSelection(ctx, selection)
	if err != nil {
		return nil, err
	}

	f, err := interchange.BuildWorkbook(tables)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}

	return &Artifact{
		Filename:    fmt.Sprintf("exportacao-%s.xlsx", time.Now().Format("2006-01-02-1504")),
		ContentType: contentTypeXLSX,
		Data:        buf.Bytes(),
	}, nil
}

// ExportPDF builds a paginated PDF report with the organization letterhead.
func (s *ExportService) ExportPDF(ctx context.Context, selection []interchange.Collection) (*Artifact, error) {
	tables, err := s.readSelection(ctx, selection)
	if err != nil {
		return nil, err
	}

	header := s.documentHeader()

	data, err := interchange.BuildPDF(tables, header)
	if err != nil {
		return nil, err
	}

	return &Artifact{
		Filename:    fmt.Sprintf("exportacao-%s.pdf", time.Now().Format("2006-01-02-1504")),
		ContentType: contentTypePDF,
		Data:        data,
	}, nil
}

// ExportBackup serializes every collection into a versioned JSON envelope.
func (s *ExportService) ExportBackup(ctx context.Context) (*Artifact, error) {
	tables, err := s.readSelection(ctx, interchange.All)
	if err != nil {
		return nil, err
	}

	collections := make(map[interchange.Collection][]interchange.Record, len(tables))
	for _, t := range tables {
		collections[t.Collection] = t.Rows
	}

	envelope, err := interchange.BuildEnvelope(collections)
	if err != nil {
		return nil, err
	}

	data, err := envelope.Encode()
	if err != nil {
		return nil, err
	}

	return &Artifact{
		Filename:    fmt.Sprintf("backup-estoque-%s.json", time.Now().Format("2006-01-02")),
		ContentType: contentTypeJSON,
		Data:        data,
	}, nil
}

// ExportTemplate builds a single-sheet workbook pre-filled with example rows
// for the given collection.
func (s *ExportService) ExportTemplate(collection interchange.Collection) (*Artifact, error) {
	if !interchange.Valid(collection) {
		return nil, &interchange.FormatError{Msg: fmt.Sprintf("unknown collection: %s", collection)}
	}

	f, err := interchange.BuildTemplate(collection)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize template: %w", err)
	}

	return &Artifact{
		Filename:    fmt.Sprintf("modelo-%s-%s.xlsx", collection, time.Now().Format("2006-01-02")),
		ContentType: contentTypeXLSX,
		Data:        buf.Bytes(),
	}, nil
}

// readSelection loads the selected collections concurrently and returns them
// in registry display order regardless of the order requested.
func (s *ExportService) readSelection(ctx context.Context, selection []interchange.Collection) ([]interchange.Table, error) {
	if len(selection) == 0 {
		return nil, interchange.ErrNoSelection
	}

	selected := make(map[interchange.Collection]bool, len(selection))
	for _, collection := range selection {
		if !interchange.Valid(collection) {
			return nil, &interchange.FormatError{Msg: fmt.Sprintf("unknown collection: %s", collection)}
		}
		selected[collection] = true
	}

	ordered := make([]interchange.Collection, 0, len(selected))
	for _, collection := range interchange.All {
		if selected[collection] {
			ordered = append(ordered, collection)
		}
	}

	tables := make([]interchange.Table, len(ordered))
	g, ctx := errgroup.WithContext(ctx)
	for i, collection := range ordered {
		i, collection := i, collection
		g.Go(func() error {
			rows, err := s.store.ReadAll(ctx, collection)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", collection, err)
			}
			tables[i] = interchange.Table{Collection: collection, Rows: rows}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return tables, nil
}

func (s *ExportService) documentHeader() interchange.DocumentHeader {
	header := interchange.DocumentHeader{GeneratedAt: time.Now()}
	if s.orgService == nil {
		return header
	}

	settings, err := s.orgService.GetSettings()
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			logrus.WithError(err).Warn("Failed to load organization settings for PDF header")
		}
		return header
	}

	header.CompanyName = settings.CompanyName
	header.CNPJ = settings.CNPJ
	header.Responsaveis = []string(settings.Responsaveis)

	if settings.LogoURL != "" {
		header.Logo = fetchLogo(settings.LogoURL)
	}

	return header
}

// fetchLogo downloads the organization logo. A missing logo never blocks the
// export.
func fetchLogo(url string) []byte {
	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		logrus.WithError(err).Warn("Failed to fetch organization logo")
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil
	}

	return data
}

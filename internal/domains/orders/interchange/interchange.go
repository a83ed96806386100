// Package interchange moves order collections in and out of files: CSV and
// XLSX downloads, CSV uploads, and the optional export archive.
package interchange

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Apurer/dentallab-tracker/internal/domains/orders/adapters/csvcodec"
	"github.com/Apurer/dentallab-tracker/internal/domains/orders/adapters/xlsx"
	"github.com/Apurer/dentallab-tracker/internal/domains/orders/domain"
	"github.com/Apurer/dentallab-tracker/internal/domains/orders/ports"
	"github.com/Apurer/dentallab-tracker/internal/platform/id"
)

// Format names an export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported export format")
	ErrMalformedCSV      = errors.New("malformed csv")
)

// ParseFormat accepts csv (the default) or xlsx.
func ParseFormat(raw string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(raw))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, raw)
	}
}

// File is a rendered export.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// ImportReport summarises a CSV import.
type ImportReport struct {
	Imported       int
	Skipped        []csvcodec.SkippedRow
	IgnoredColumns []string
}

// Service renders and ingests files on top of the order store.
type Service struct {
	orders  ports.Service
	archive ports.Archive
	ids     id.Generator
	now     func() time.Time
}

// Option customises a Service.
type Option func(*Service)

// WithArchive enables the export archive.
func WithArchive(archive ports.Archive) Option {
	return func(s *Service) { s.archive = archive }
}

// WithIDGenerator sets the generator for imported rows lacking an id.
func WithIDGenerator(gen id.Generator) Option {
	return func(s *Service) {
		if gen != nil {
			s.ids = gen
		}
	}
}

// WithClock overrides the time source used for file names.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New wires the interchange service.
func New(orders ports.Service, opts ...Option) *Service {
	s := &Service{orders: orders, ids: id.New(), now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// ArchiveEnabled reports whether an archive is configured.
func (s *Service) ArchiveEnabled() bool { return s.archive != nil }

// Export renders the whole collection in the requested format.
func (s *Service) Export(ctx context.Context, format Format) (File, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return File{}, err
	}
	today := s.now().UTC()
	var buf bytes.Buffer
	switch format {
	case FormatCSV:
		if err := csvcodec.EncodeTo(&buf, orders); err != nil {
			return File{}, err
		}
		return File{Name: csvcodec.Filename(today), ContentType: csvcodec.ContentType, Data: buf.Bytes()}, nil
	case FormatXLSX:
		if err := xlsx.Write(&buf, orders); err != nil {
			return File{}, err
		}
		return File{Name: xlsx.Filename(today), ContentType: xlsx.ContentType, Data: buf.Bytes()}, nil
	default:
		return File{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// ImportCSV decodes r completely before touching the store, so a malformed
// file never changes the collection. Rows with an unknown status are
// skipped; an empty status becomes Received.
func (s *Service) ImportCSV(ctx context.Context, r io.Reader) (ImportReport, error) {
	decoded, err := csvcodec.Decode(r, s.ids)
	if err != nil {
		return ImportReport{}, fmt.Errorf("%w: %w", ErrMalformedCSV, err)
	}
	report := ImportReport{Skipped: decoded.Skipped, IgnoredColumns: decoded.IgnoredColumns}
	accepted := make([]domain.Order, 0, len(decoded.Orders))
	for i, o := range decoded.Orders {
		if err := o.UpdateStatus(o.Status); err != nil {
			report.Skipped = append(report.Skipped, csvcodec.SkippedRow{
				Line:   decoded.Lines[i],
				Reason: fmt.Sprintf("unknown status %q", string(o.Status)),
			})
			continue
		}
		accepted = append(accepted, o)
	}
	n, err := s.orders.Import(ctx, accepted)
	if err != nil {
		return ImportReport{}, err
	}
	report.Imported = n
	return report, nil
}

// ArchiveExport stores an export in the archive. Keys are the file name
// below a UTC timestamp folder.
func (s *Service) ArchiveExport(ctx context.Context, format Format) (ports.ArchiveObject, error) {
	if s.archive == nil {
		return ports.ArchiveObject{}, ports.ErrArchiveNotEnabled
	}
	file, err := s.Export(ctx, format)
	if err != nil {
		return ports.ArchiveObject{}, err
	}
	key := s.now().UTC().Format("20060102T150405Z") + "/" + file.Name
	return s.archive.Put(ctx, key, bytes.NewReader(file.Data), file.ContentType)
}

// ImportArchived imports a CSV previously stored in the archive.
func (s *Service) ImportArchived(ctx context.Context, key string) (ImportReport, error) {
	if s.archive == nil {
		return ImportReport{}, ports.ErrArchiveNotEnabled
	}
	rc, err := s.archive.Get(ctx, key)
	if err != nil {
		return ImportReport{}, err
	}
	defer rc.Close()
	return s.ImportCSV(ctx, rc)
}

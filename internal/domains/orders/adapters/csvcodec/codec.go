// Package csvcodec converts order collections to and from the CSV
// interchange format.
package csvcodec

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Apurer/dentallab-tracker/internal/domains/orders/domain"
	"github.com/Apurer/dentallab-tracker/internal/platform/id"
)

// ContentType is the media type of exported files.
const ContentType = "text/csv;charset=utf-8"

var (
	ErrEmptyInput    = errors.New("csv input is empty")
	ErrInvalidHeader = errors.New("csv header is invalid")
)

// Columns lists the header in export order.
var Columns = []string{"id", "clinic", "contact", "type", "receivedDate", "dueDate", "status", "notes"}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// SkippedRow reports a data row that could not be decoded.
type SkippedRow struct {
	Line   int
	Reason string
}

// Result is the outcome of Decode.
type Result struct {
	Orders         []domain.Order
	IgnoredColumns []string
	Skipped        []SkippedRow

	// Lines[i] is the input line Orders[i] started on.
	Lines []int
}

// Filename returns the export file name for the given day.
func Filename(t time.Time) string {
	return "dentallab_orders_" + t.Format("2006-01-02") + ".csv"
}

// Encode renders orders with every field quoted. Rows are separated by a
// bare newline and the output has no trailing newline.
func Encode(orders []domain.Order) string {
	var b strings.Builder
	_ = EncodeTo(&b, orders)
	return b.String()
}

// EncodeTo writes the Encode rendering to w.
func EncodeTo(w io.Writer, orders []domain.Order) error {
	if _, err := io.WriteString(w, strings.Join(Columns, ",")); err != nil {
		return err
	}
	for _, o := range orders {
		row := make([]string, 0, len(Columns))
		for _, v := range values(o) {
			row = append(row, quote(v))
		}
		if _, err := io.WriteString(w, "\n"+strings.Join(row, ",")); err != nil {
			return err
		}
	}
	return nil
}

func values(o domain.Order) []string {
	return []string{o.ID, o.Clinic, o.Contact, o.Type, o.ReceivedDate, o.DueDate, string(o.Status), o.Notes}
}

func quote(v string) string {
	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}

// Decode parses CSV text into orders. Header names are matched without
// regard to case or order; rows lacking an id receive one from ids. Status
// values are passed through verbatim.
func Decode(r io.Reader, ids id.Generator) (Result, error) {
	if ids == nil {
		ids = id.New()
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return Result{}, fmt.Errorf("read csv: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	if len(bytes.TrimSpace(data)) == 0 {
		return Result{}, ErrEmptyInput
	}

	reader := newReader(data)
	header, err := reader.Read()
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrInvalidHeader, err)
	}
	layout, ignored, err := mapHeader(header)
	if err != nil {
		return Result{}, err
	}

	result := Result{Orders: []domain.Order{}, IgnoredColumns: ignored}
	// base is the number of input lines before the current reader's input.
	base, rest := 0, data
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if !errors.As(err, &perr) {
				return Result{}, fmt.Errorf("read csv: %w", err)
			}
			result.Skipped = append(result.Skipped, SkippedRow{Line: base + perr.StartLine, Reason: perr.Err.Error()})
			if errors.Is(perr.Err, csv.ErrQuote) && reader.InputOffset() >= int64(len(rest)) {
				// An unterminated quote consumed the remaining input. Resume on
				// the line after the row it opened in.
				base += perr.StartLine
				rest = data[lineOffset(data, base):]
				reader = newReader(rest)
			}
			continue
		}
		line, _ := reader.FieldPos(0)
		line += base
		if blank(record) {
			result.Skipped = append(result.Skipped, SkippedRow{Line: line, Reason: "row has no values"})
			continue
		}
		order := layout.order(record)
		if order.ID == "" {
			order.ID = ids.Next()
		}
		result.Orders = append(result.Orders, order)
		result.Lines = append(result.Lines, line)
	}
	return result, nil
}

func newReader(data []byte) *csv.Reader {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	return reader
}

// lineOffset returns the byte offset just past the first n newlines of data,
// or len(data) when it has fewer.
func lineOffset(data []byte, n int) int {
	off := 0
	for i := 0; i < n; i++ {
		next := bytes.IndexByte(data[off:], '\n')
		if next < 0 {
			return len(data)
		}
		off += next + 1
	}
	return off
}

// columnLayout maps header positions to order fields; -1 marks an ignored
// column.
type columnLayout []int

const (
	colID = iota
	colClinic
	colContact
	colType
	colReceivedDate
	colDueDate
	colStatus
	colNotes
)

func mapHeader(header []string) (columnLayout, []string, error) {
	known := make(map[string]int, len(Columns))
	for i, name := range Columns {
		known[strings.ToLower(name)] = i
	}
	layout := make(columnLayout, len(header))
	var ignored []string
	recognized, nonEmpty := 0, 0
	for i, raw := range header {
		name := strings.ToLower(strings.TrimSpace(raw))
		if name != "" {
			nonEmpty++
		}
		field, ok := known[name]
		if !ok {
			layout[i] = -1
			if name != "" {
				ignored = append(ignored, strings.TrimSpace(raw))
			}
			continue
		}
		layout[i] = field
		recognized++
	}
	if nonEmpty == 0 {
		return nil, nil, fmt.Errorf("%w: no column names", ErrInvalidHeader)
	}
	if recognized == 0 {
		return nil, nil, fmt.Errorf("%w: no known columns in %q", ErrInvalidHeader, strings.Join(header, ","))
	}
	return layout, ignored, nil
}

func (l columnLayout) order(record []string) domain.Order {
	var o domain.Order
	for i, field := range l {
		if field < 0 || i >= len(record) {
			continue
		}
		v := record[i]
		switch field {
		case colID:
			o.ID = v
		case colClinic:
			o.Clinic = v
		case colContact:
			o.Contact = v
		case colType:
			o.Type = v
		case colReceivedDate:
			o.ReceivedDate = v
		case colDueDate:
			o.DueDate = v
		case colStatus:
			o.Status = domain.Status(v)
		case colNotes:
			o.Notes = v
		}
	}
	return o
}

func blank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

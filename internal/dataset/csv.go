package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

// utf8BOM makes the CSV openable in spreadsheet tools that otherwise guess
// a legacy encoding.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// EncodingUTF8SIG selects UTF-8 with a byte-order marker on file creation.
const EncodingUTF8SIG = "utf-8-sig"

// CSVOptions configure all tabular exports: the per-class files and the
// aggregate batch export.
type CSVOptions struct {
	Delimiter        rune
	Encoding         string
	IncludeTimestamp bool
	// Localized rendering of boolean values.
	BoolTrue  string
	BoolFalse string
}

// DefaultCSVOptions match the tool's historical output: comma-separated,
// BOM-prefixed UTF-8, timestamps included, booleans as да/нет.
func DefaultCSVOptions() CSVOptions {
	return CSVOptions{
		Delimiter:        ',',
		Encoding:         EncodingUTF8SIG,
		IncludeTimestamp: true,
		BoolTrue:         "да",
		BoolFalse:        "нет",
	}
}

// Normalized fills zero-valued fields with the defaults. Consumers that
// keep options around (writer, exporter) normalize once at construction.
func (o CSVOptions) Normalized() CSVOptions {
	if o.Delimiter == 0 {
		o.Delimiter = ','
	}
	if o.Encoding == "" {
		o.Encoding = EncodingUTF8SIG
	}
	if o.BoolTrue == "" {
		o.BoolTrue = "да"
	}
	if o.BoolFalse == "" {
		o.BoolFalse = "нет"
	}
	return o
}

// FormatValue renders an attribute value for a CSV cell.
func (o CSVOptions) FormatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case bool:
		if v {
			return o.BoolTrue
		}
		return o.BoolFalse
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// AppendRow appends one row to the CSV at path, writing the header (and BOM,
// per Encoding) only when the file is created.
func (o CSVOptions) AppendRow(path string, header, row []string) error {
	opts := o.Normalized()

	_, statErr := os.Stat(path)
	created := errors.Is(statErr, os.ErrNotExist)
	if statErr != nil && !created {
		return fmt.Errorf("stat %s: %w", path, statErr)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	if created && opts.Encoding == EncodingUTF8SIG {
		if _, err := file.Write(utf8BOM); err != nil {
			return fmt.Errorf("write bom: %w", err)
		}
	}

	writer := csv.NewWriter(file)
	writer.Comma = opts.Delimiter
	if created {
		if err := writer.Write(header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	if err := writer.Write(row); err != nil {
		return fmt.Errorf("write row: %w", err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return nil
}

// WriteAll writes a whole CSV file at once (used by the batch exporter).
func (o CSVOptions) WriteAll(path string, rows [][]string) error {
	opts := o.Normalized()

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	if opts.Encoding == EncodingUTF8SIG {
		if _, err := file.Write(utf8BOM); err != nil {
			return fmt.Errorf("write bom: %w", err)
		}
	}

	writer := csv.NewWriter(file)
	writer.Comma = opts.Delimiter
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// CountRows counts data rows (header excluded) of a CSV file, tolerating a
// leading BOM. A missing file counts as zero.
func (o CSVOptions) CountRows(path string) (int, error) {
	opts := o.Normalized()

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(newBOMReader(file))
	reader.Comma = opts.Delimiter
	reader.FieldsPerRecord = -1

	count := -1 // header
	for {
		if _, err := reader.Read(); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return 0, fmt.Errorf("read %s: %w", path, err)
		}
		count++
	}
	if count < 0 {
		count = 0
	}
	return count, nil
}

type bomReader struct {
	r       io.Reader
	pending []byte
	checked bool
}

func newBOMReader(r io.Reader) io.Reader {
	return &bomReader{r: r}
}

func (b *bomReader) Read(p []byte) (int, error) {
	if !b.checked {
		b.checked = true
		head := make([]byte, len(utf8BOM))
		n, err := io.ReadFull(b.r, head)
		if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
			return 0, err
		}
		if string(head[:n]) != string(utf8BOM) {
			b.pending = head[:n]
		}
	}
	if len(b.pending) > 0 {
		n := copy(p, b.pending)
		b.pending = b.pending[n:]
		return n, nil
	}
	return b.r.Read(p)
}

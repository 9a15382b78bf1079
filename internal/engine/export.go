package engine

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"io"
	"strconv"

	"github.com/vmihailenco/msgpack/v5"
)

// ErrFormatUnavailable is returned by export formats whose codec is not
// wired in this build (Parquet, Feather) — see DESIGN.md for why.
var ErrFormatUnavailable = errors.New("engine: export format unavailable in this build")

// ExportFunc writes state's header+rows to w in some format.
type ExportFunc func(w io.Writer, header []string, rows [][]string) error

// ExportDelimited writes header+rows as a delimiter-separated file; comma
// for CSV, tab for TSV.
func ExportDelimited(w io.Writer, header []string, rows [][]string, delim rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = delim
	if len(header) > 0 {
		if err := cw.Write(header); err != nil {
			return err
		}
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func ExportCSV(w io.Writer, header []string, rows [][]string) error {
	return ExportDelimited(w, header, rows, ',')
}

func ExportTSV(w io.Writer, header []string, rows [][]string) error {
	return ExportDelimited(w, header, rows, '\t')
}

// recordsOf converts header+rows into a slice of column->value maps, the
// shape used by the JSON and MessagePack exporters.
func recordsOf(header []string, rows [][]string) []map[string]string {
	records := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		rec := make(map[string]string, len(row))
		for c, cell := range row {
			key := ""
			if c < len(header) {
				key = header[c]
			}
			if key == "" {
				key = columnFallbackName(c)
			}
			rec[key] = cell
		}
		records = append(records, rec)
	}
	return records
}

func columnFallbackName(c int) string {
	return "col" + strconv.Itoa(c+1)
}

// ExportJSON writes header+rows as a JSON array of objects keyed by
// header name.
func ExportJSON(w io.Writer, header []string, rows [][]string) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(recordsOf(header, rows))
}

// ExportMsgpack writes header+rows as a MessagePack array of maps, using
// github.com/vmihailenco/msgpack/v5 — a real ecosystem library not
// present in the retrieved pack, named per the out-of-pack-deps rule.
func ExportMsgpack(w io.Writer, header []string, rows [][]string) error {
	return msgpack.NewEncoder(w).Encode(recordsOf(header, rows))
}

// ExportParquet is a documented scope trim: a real implementation needs a
// columnar/Arrow SDK (github.com/apache/arrow/go or
// github.com/xitongsys/parquet-go) far outside the pack's dependency
// surface. See DESIGN.md.
func ExportParquet(w io.Writer, header []string, rows [][]string) error {
	return ErrFormatUnavailable
}

// ExportFeather is the Arrow-IPC sibling of ExportParquet and trimmed for
// the same reason.
func ExportFeather(w io.Writer, header []string, rows [][]string) error {
	return ErrFormatUnavailable
}

// ExportBytes runs fn against an in-memory buffer and returns its bytes,
// for callers that want the export in memory rather than in a file.
func ExportBytes(fn ExportFunc, header []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	if err := fn(&buf, header, rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

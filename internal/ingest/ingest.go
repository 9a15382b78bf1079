// Package ingest loads tabular data from a file or stdin into the
// ([][]string, []string) row/header shape internal/engine.State is built
// from. Grounded on spec.md §6.2: csv/tsv/json are implemented on the
// stdlib codecs the teacher already favours for I/O (its format package
// sticks to stdlib throughout); xlsx/ods/pickle are named, documented
// gaps rather than silently unsupported.
package ingest

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"io"
	"os"
)

// Filetype identifies the on-disk format Load should parse source as.
type Filetype string

const (
	FiletypeAuto   Filetype = ""
	FiletypeCSV    Filetype = "csv"
	FiletypeTSV    Filetype = "tsv"
	FiletypeJSON   Filetype = "json"
	FiletypeXLSX   Filetype = "xlsx"
	FiletypeODS    Filetype = "ods"
	FiletypePickle Filetype = "pkl"
)

// ErrUnsupportedFiletype is returned for filetypes named by spec.md §6.2
// as out of scope (xlsx, ods, pickle) rather than silently producing
// empty data.
var ErrUnsupportedFiletype = errors.New("ingest: unsupported filetype")

// Load reads source (a file path, or "-" for stdin) and parses it as
// filetype using delimiter for the csv/tsv case (0 selects the
// filetype's default: comma for csv, tab for tsv). FiletypeAuto infers
// the format from source's extension, defaulting to csv.
func Load(source string, delimiter rune, filetype Filetype) (rows [][]string, header []string, err error) {
	r, err := open(source)
	if err != nil {
		return nil, nil, err
	}
	defer r.Close()

	if filetype == FiletypeAuto {
		filetype = inferFiletype(source)
	}

	switch filetype {
	case FiletypeCSV:
		if delimiter == 0 {
			delimiter = ','
		}
		return loadDelimited(r, delimiter)
	case FiletypeTSV:
		if delimiter == 0 {
			delimiter = '\t'
		}
		return loadDelimited(r, delimiter)
	case FiletypeJSON:
		return loadJSON(r)
	case FiletypeXLSX, FiletypeODS, FiletypePickle:
		return nil, nil, ErrUnsupportedFiletype
	default:
		return nil, nil, ErrUnsupportedFiletype
	}
}

// LoadReader is Load's variant for callers that already have an
// io.Reader (spec.md §6.1's --stdin/--stdin2 flags), so main.go need not
// create a temp file to read os.Stdin through Load.
func LoadReader(r io.Reader, delimiter rune, filetype Filetype) (rows [][]string, header []string, err error) {
	switch filetype {
	case FiletypeTSV:
		if delimiter == 0 {
			delimiter = '\t'
		}
		return loadDelimited(r, delimiter)
	case FiletypeJSON:
		return loadJSON(r)
	case FiletypeXLSX, FiletypeODS, FiletypePickle:
		return nil, nil, ErrUnsupportedFiletype
	default:
		if delimiter == 0 {
			delimiter = ','
		}
		return loadDelimited(r, delimiter)
	}
}

func open(source string) (io.ReadCloser, error) {
	if source == "-" || source == "" {
		return io.NopCloser(bufio.NewReader(os.Stdin)), nil
	}
	return os.Open(source)
}

func inferFiletype(source string) Filetype {
	switch ext(source) {
	case ".tsv":
		return FiletypeTSV
	case ".json":
		return FiletypeJSON
	case ".xlsx":
		return FiletypeXLSX
	case ".ods":
		return FiletypeODS
	case ".pickle", ".pkl":
		return FiletypePickle
	default:
		return FiletypeCSV
	}
}

func ext(source string) string {
	for i := len(source) - 1; i >= 0 && source[i] != '/'; i-- {
		if source[i] == '.' {
			return source[i:]
		}
	}
	return ""
}

func loadDelimited(r io.Reader, delimiter rune) (rows [][]string, header []string, err error) {
	cr := csv.NewReader(r)
	cr.Comma = delimiter
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, nil
	}
	return records[1:], records[0], nil
}

// loadJSON parses a JSON array of flat objects (the shape ExportJSON
// produces) into rows/header, with header built from the union of keys
// across all objects in first-seen order.
func loadJSON(r io.Reader) (rows [][]string, header []string, err error) {
	var records []map[string]interface{}
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, nil, err
	}

	seen := make(map[string]bool)
	for _, rec := range records {
		for k := range rec {
			if !seen[k] {
				seen[k] = true
				header = append(header, k)
			}
		}
	}

	for _, rec := range records {
		row := make([]string, len(header))
		for i, k := range header {
			if v, ok := rec[k]; ok {
				row[i] = jsonCellString(v)
			}
		}
		rows = append(rows, row)
	}
	return rows, header, nil
}

func jsonCellString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case nil:
		return ""
	default:
		b, _ := json.Marshal(t)
		return string(b)
	}
}

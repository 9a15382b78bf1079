package engine

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// SortIndexedView sorts view in place by the values of column col, using
// one of the eight SortMode strategies, stably (equal keys retain prior
// order) and reversed when reverse is true. col == -1 or SortOriginal
// leaves the view in original_index order.
//
// Whitespace-only and empty cells are "missing" and always sort to the end
// regardless of direction, per spec.md §4.3.
func SortIndexedView(view IndexedView, col int, mode SortMode, reverse bool) {
	if mode == SortOriginal || col < 0 {
		sort.SliceStable(view, func(i, j int) bool {
			return view[i].OriginalIndex < view[j].OriginalIndex
		})
		return
	}

	less := sortLess(view, col, mode)

	sort.SliceStable(view, func(i, j int) bool {
		iMissing := isMissing(cellAt(view, i, col))
		jMissing := isMissing(cellAt(view, j, col))
		if iMissing || jMissing {
			if iMissing && jMissing {
				return false
			}
			// Missing always sorts to the end, regardless of direction.
			return !iMissing
		}
		if reverse {
			return less(j, i)
		}
		return less(i, j)
	})
}

func cellAt(view IndexedView, i, col int) string {
	row := view[i].Row
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

func isMissing(s string) bool {
	return strings.TrimSpace(s) == ""
}

// sortLess returns a less(i, j) comparator over view for column col under
// mode, ignoring the missing-to-end rule (handled by the caller).
func sortLess(view IndexedView, col int, mode SortMode) func(i, j int) bool {
	switch mode {
	case SortLexical:
		return func(i, j int) bool {
			return strings.ToLower(cellAt(view, i, col)) < strings.ToLower(cellAt(view, j, col))
		}
	case SortLexicalCase:
		return func(i, j int) bool {
			return cellAt(view, i, col) < cellAt(view, j, col)
		}
	case SortAlnum:
		return func(i, j int) bool {
			return lessAlnum(cellAt(view, i, col), cellAt(view, j, col), false)
		}
	case SortAlnumCase:
		return func(i, j int) bool {
			return lessAlnum(cellAt(view, i, col), cellAt(view, j, col), true)
		}
	case SortTemporal:
		return func(i, j int) bool {
			return parseTemporal(cellAt(view, i, col)).Before(parseTemporal(cellAt(view, j, col)))
		}
	case SortNumeric:
		return func(i, j int) bool {
			return ParseNumerical(cellAt(view, i, col)) < ParseNumerical(cellAt(view, j, col))
		}
	case SortSize:
		return func(i, j int) bool {
			return ParseSize(cellAt(view, i, col)) < ParseSize(cellAt(view, j, col))
		}
	default:
		return func(i, j int) bool {
			return strings.ToLower(cellAt(view, i, col)) < strings.ToLower(cellAt(view, j, col))
		}
	}
}

var alnumRunRe = regexp.MustCompile(`\d+|\D+`)

// lessAlnum compares a and b by splitting each into runs of digits versus
// non-digits, comparing digit runs as integers and non-digit runs
// case-insensitively unless caseSensitive, run by run.
func lessAlnum(a, b string, caseSensitive bool) bool {
	ra := alnumRunRe.FindAllString(a, -1)
	rb := alnumRunRe.FindAllString(b, -1)
	n := len(ra)
	if len(rb) < n {
		n = len(rb)
	}
	for i := 0; i < n; i++ {
		x, xIsNum := runAsInt(ra[i])
		y, yIsNum := runAsInt(rb[i])
		if xIsNum && yIsNum {
			if x != y {
				return x < y
			}
			continue
		}
		sx, sy := ra[i], rb[i]
		if !caseSensitive {
			sx, sy = strings.ToLower(sx), strings.ToLower(sy)
		}
		if sx != sy {
			return sx < sy
		}
	}
	return len(ra) < len(rb)
}

func runAsInt(run string) (int64, bool) {
	n, err := strconv.ParseInt(run, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParseNumerical returns the first match of [0-9]+(\.[0-9]+)? in s as a
// float64, or +Inf when no number is present, per spec.md §4.3/§8.
func ParseNumerical(s string) float64 {
	loc := numericRe.FindString(s)
	if loc == "" {
		return math.Inf(1)
	}
	v, err := strconv.ParseFloat(loc, 64)
	if err != nil {
		return math.Inf(1)
	}
	return v
}

var numericRe = regexp.MustCompile(`[0-9]+(\.[0-9]+)?`)

var sizeRe = regexp.MustCompile(`(?i)([0-9]+(?:\.[0-9]+)?)\s?(B|KB|K|MB|M|GB|G|TB|T|PB|P|EB|E|ZB|Z|YB|Y)`)

var sizeUnitMultiplier = map[string]float64{
	"B":  1,
	"K":  1 << 10, "KB": 1 << 10,
	"M": 1 << 20, "MB": 1 << 20,
	"G": 1 << 30, "GB": 1 << 30,
	"T": 1 << 40, "TB": 1 << 40,
	"P": 1 << 50, "PB": 1 << 50,
	"E": 1 << 60, "EB": 1 << 60,
	"Z": 1 << 60 * 1024, "ZB": 1 << 60 * 1024,
	"Y": 1 << 60 * 1024 * 1024, "YB": 1 << 60 * 1024 * 1024,
}

// ParseSize returns the byte value of the first `<num>[ ]?<unit>` match in
// s, using base-1024 units (B/K(B)/M(B)/G(B)/T(B)/P(B)/E(B)/Z(B)/Y(B)), or
// +Inf when no match is found, per spec.md §4.3/§8.
func ParseSize(s string) float64 {
	m := sizeRe.FindStringSubmatch(s)
	if m == nil {
		return math.Inf(1)
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return math.Inf(1)
	}
	mult, ok := sizeUnitMultiplier[strings.ToUpper(m[2])]
	if !ok {
		return math.Inf(1)
	}
	return n * mult
}

// sentinelTime is the fixed sentinel datetime(1900,1,1,0,0) used for
// unparseable temporal cells, per spec.md §4.3.
var sentinelTime = time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)

var temporalLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"02/01/2006",
	"01/02/06",
	"02/01/06",
	"Mon Jan 2 2006 15:04:05",
	"Mon Jan 2 2006",
	"Monday Jan 2 2006",
	"Jan 2 2006",
	"15:04:05",
	"15:04",
}

// parseTemporal applies the date/time heuristic of spec.md §4.3: it tries
// each known layout in order (ISO, slash forms, abbreviated/full
// weekday+day+month+year+time, time-only) and falls back to the fixed
// sentinel date when none match.
func parseTemporal(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return sentinelTime
	}
	for _, layout := range temporalLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			// Layouts lacking a year (time-only) parse into year 0; anchor
			// them to the sentinel date so they still compare sensibly.
			if t.Year() == 0 {
				t = time.Date(sentinelTime.Year(), sentinelTime.Month(), sentinelTime.Day(),
					t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
			}
			return t
		}
	}
	return sentinelTime
}

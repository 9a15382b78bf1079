package engine

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Knetic/govaluate"
)

// FormulaPrefix marks a literal cell edit as a formula: the remainder of
// the text is evaluated as an expression and the string form of the
// result is stored, per spec.md §9's formula-escape design note.
const FormulaPrefix = "`"

// FunctionNames lists the names registered with the evaluator, exposed so
// internal/input's FormulaSource can offer them as completions without
// internal/input importing this package.
var FunctionNames = []string{"abs", "min", "max", "round", "len", "upper", "lower"}

var evalFunctions = map[string]govaluate.ExpressionFunction{
	"abs": func(args ...interface{}) (interface{}, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("abs() takes exactly one argument")
		}
		v, err := asFloat(args[0])
		if err != nil {
			return nil, err
		}
		return math.Abs(v), nil
	},
	"min": func(args ...interface{}) (interface{}, error) {
		return reduceFloats(args, math.Min)
	},
	"max": func(args ...interface{}) (interface{}, error) {
		return reduceFloats(args, math.Max)
	},
	"round": func(args ...interface{}) (interface{}, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("round() takes exactly one argument")
		}
		v, err := asFloat(args[0])
		if err != nil {
			return nil, err
		}
		return math.Round(v), nil
	},
	"len": func(args ...interface{}) (interface{}, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("len() takes exactly one argument")
		}
		s, ok := args[0].(string)
		if !ok {
			return nil, fmt.Errorf("len() requires a string argument")
		}
		return float64(len(s)), nil
	},
	"upper": func(args ...interface{}) (interface{}, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("upper() takes exactly one argument")
		}
		s, ok := args[0].(string)
		if !ok {
			return nil, fmt.Errorf("upper() requires a string argument")
		}
		return strings.ToUpper(s), nil
	},
	"lower": func(args ...interface{}) (interface{}, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("lower() takes exactly one argument")
		}
		s, ok := args[0].(string)
		if !ok {
			return nil, fmt.Errorf("lower() requires a string argument")
		}
		return strings.ToLower(s), nil
	},
}

func asFloat(v interface{}) (float64, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case string:
		return strconv.ParseFloat(t, 64)
	default:
		return 0, fmt.Errorf("expected a number, got %T", v)
	}
}

func reduceFloats(args []interface{}, f func(a, b float64) float64) (interface{}, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("requires at least one argument")
	}
	acc, err := asFloat(args[0])
	if err != nil {
		return nil, err
	}
	for _, a := range args[1:] {
		v, err := asFloat(a)
		if err != nil {
			return nil, err
		}
		acc = f(acc, v)
	}
	return acc, nil
}

// EvalFormula evaluates expr (the text following FormulaPrefix) against
// row/header as named parameters (the row's own column values by header
// name, plus positional col0, col1, ...) and returns the string form of
// the result, sandboxed to arithmetic, comparisons, and the registered
// function set — no I/O or side effects are reachable from an expression.
//
// Grounded on the conradoqg-logsense evaluator (govaluate.NewEvaluable
// Expression + a map[string]any parameter set built from row fields).
func EvalFormula(expr string, header []string, row []string) (string, error) {
	compiled, err := govaluate.NewEvaluableExpressionWithFunctions(expr, evalFunctions)
	if err != nil {
		return "", err
	}

	params := make(map[string]interface{}, len(row)*2)
	for i, cell := range row {
		params["col"+strconv.Itoa(i)] = cellParam(cell)
		if i < len(header) && header[i] != "" {
			params[header[i]] = cellParam(cell)
		}
	}

	result, err := compiled.Evaluate(params)
	if err != nil {
		return "", err
	}
	return formatResult(result), nil
}

func cellParam(cell string) interface{} {
	if f, err := strconv.ParseFloat(cell, 64); err == nil {
		return f
	}
	return cell
}

func formatResult(v interface{}) string {
	switch t := v.(type) {
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprint(v)
	}
}

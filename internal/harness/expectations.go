package harness

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/anbanpillay/ASRI-PyROPS/internal/results"
)

// ExpectationError describes a failed check.
type ExpectationError struct {
	Check Check
}

// Error implements the error interface.
func (e *ExpectationError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "expectation failed: %s", e.Check.Type)
	if e.Check.Field != "" {
		fmt.Fprintf(&buf, " %s", e.Check.Field)
	}
	fmt.Fprintf(&buf, ": expected %s, actual %s", e.Check.Expected, e.Check.Actual)
	return buf.String()
}

// Documents is what expectations are evaluated against: the configuration
// and results records decoded as generic JSON.
type Documents struct {
	Configuration map[string]any
	Results       map[string]any
	Record        results.Record
}

// Evaluate checks every expectation and returns one Check per entry.
func Evaluate(docs Documents, expectations []Expectation) []Check {
	checks := make([]Check, 0, len(expectations))
	for _, e := range expectations {
		checks = append(checks, evaluate(docs, e))
	}
	return checks
}

func evaluate(docs Documents, e Expectation) Check {
	switch e.Type {
	case ExpectConfiguration:
		return checkNumber(e, docs.Configuration)
	case ExpectResult:
		return checkNumber(e, docs.Results)
	case ExpectTermination:
		return Check{
			Type:     e.Type,
			Expected: e.Equals,
			Actual:   docs.Record.Termination,
			Pass:     e.Equals == docs.Record.Termination,
		}
	case ExpectMissing:
		want := slices.Sorted(slices.Values(e.Fields))
		got := slices.Sorted(slices.Values(docs.Record.Missing))
		return Check{
			Type:     e.Type,
			Expected: fmt.Sprintf("%v", want),
			Actual:   fmt.Sprintf("%v", got),
			Pass:     slices.Equal(want, got),
		}
	default:
		return Check{Type: e.Type, Expected: "known expectation type", Actual: e.Type}
	}
}

func checkNumber(e Expectation, doc map[string]any) Check {
	c := Check{Type: e.Type, Field: e.Field, Expected: describeExpected(e)}

	v, err := lookup(doc, e.Field)
	if err != nil {
		c.Actual = err.Error()
		return c
	}
	if v == nil {
		c.Actual = "null"
		c.Pass = e.Value == nil
		return c
	}
	n, ok := v.(float64)
	if !ok {
		c.Actual = fmt.Sprintf("non-numeric %T", v)
		return c
	}
	c.Actual = formatNumber(n)
	if e.Value == nil {
		return c
	}

	c.Delta = math.Abs(n - *e.Value)
	c.Pass = c.Delta <= allowed(e)
	return c
}

// allowed returns the absolute deviation e tolerates.
func allowed(e Expectation) float64 {
	if e.Relative {
		return e.Tolerance * math.Abs(*e.Value)
	}
	return e.Tolerance
}

func describeExpected(e Expectation) string {
	if e.Value == nil {
		return "null"
	}
	s := formatNumber(*e.Value)
	switch {
	case e.Tolerance == 0:
		return s
	case e.Relative:
		return fmt.Sprintf("%s ± %s%%", s, formatNumber(e.Tolerance*100))
	default:
		return fmt.Sprintf("%s ± %s", s, formatNumber(e.Tolerance))
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// lookup walks a dotted path through decoded JSON. Numeric segments index
// arrays, e.g. "rocket_geometry.parachutes.0.cd".
func lookup(doc map[string]any, path string) (any, error) {
	var cur any = doc
	for _, seg := range strings.Split(path, ".") {
		switch node := cur.(type) {
		case map[string]any:
			v, ok := node[seg]
			if !ok {
				return nil, fmt.Errorf("no field %q", seg)
			}
			cur = v
		case []any:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(node) {
				return nil, fmt.Errorf("no element %q", seg)
			}
			cur = node[i]
		default:
			return nil, fmt.Errorf("cannot descend into %q", seg)
		}
	}
	return cur, nil
}

// decodeDocument decodes JSON into the generic form lookup walks.
func decodeDocument(data []byte) (map[string]any, error) {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return doc, nil
}

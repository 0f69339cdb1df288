package results

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strings"
)

// Representation tags how the engine encoded a channel.
type Representation string

const (
	// PairedPoints is a sequence of (independent, dependent) pairs.
	PairedPoints Representation = "paired_points"

	// FlatArrays is two parallel sequences aligned by index.
	FlatArrays Representation = "flat_arrays"
)

// Channel is a decoded time series.
type Channel struct {
	Name           string
	Representation Representation
	X, Y           []float64
}

// Len returns the number of samples.
func (c Channel) Len() int { return len(c.X) }

// DecodeChannel decodes raw as paired points, falling back to flat arrays.
// When data fits both, as a 2×2 array does, paired points win.
func DecodeChannel(name string, raw json.RawMessage) (Channel, error) {
	if x, y, ok := decodePaired(raw); ok {
		return Channel{Name: name, Representation: PairedPoints, X: x, Y: y}, nil
	}
	if x, y, ok := decodeFlat(raw); ok {
		return Channel{Name: name, Representation: FlatArrays, X: x, Y: y}, nil
	}
	return Channel{}, &ExtractionError{
		Channel: name,
		Shape:   describeShape(raw),
		Message: "neither paired points nor flat arrays",
	}
}

func decodePaired(raw json.RawMessage) (x, y []float64, ok bool) {
	var pairs [][]float64
	if err := strictUnmarshal(raw, &pairs); err != nil {
		return nil, nil, false
	}
	x = make([]float64, len(pairs))
	y = make([]float64, len(pairs))
	for i, p := range pairs {
		if len(p) != 2 {
			return nil, nil, false
		}
		x[i], y[i] = p[0], p[1]
	}
	return x, y, true
}

type flatObject struct {
	X *[]float64 `json:"x"`
	Y *[]float64 `json:"y"`
}

func decodeFlat(raw json.RawMessage) (x, y []float64, ok bool) {
	var obj flatObject
	if err := strictUnmarshal(raw, &obj); err == nil && obj.X != nil && obj.Y != nil {
		x, y = *obj.X, *obj.Y
	} else {
		var arrays [][]float64
		if err := strictUnmarshal(raw, &arrays); err != nil || len(arrays) != 2 {
			return nil, nil, false
		}
		x, y = arrays[0], arrays[1]
	}
	if len(x) != len(y) {
		return nil, nil, false
	}
	return x, y, true
}

// strictUnmarshal rejects unknown object keys and null, which the default
// decoder would silently accept.
func strictUnmarshal(raw json.RawMessage, v any) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return fmt.Errorf("empty value")
	}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// describeShape summarizes the structure of raw for diagnostics, e.g.
// "array of 3 (array of 3 numbers, ...)" or "object with keys [t v]".
func describeShape(raw json.RawMessage) string {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return "invalid JSON"
	}
	return shapeOf(v, 2)
}

func shapeOf(v any, depth int) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		return fmt.Sprintf("object with keys [%s]", strings.Join(keys, " "))
	case []any:
		if len(t) == 0 {
			return "empty array"
		}
		if depth == 0 {
			return fmt.Sprintf("array of %d", len(t))
		}
		return fmt.Sprintf("array of %d (first %s)", len(t), shapeOf(t[0], depth-1))
	default:
		return fmt.Sprintf("%T", v)
	}
}

// finite reports whether every value is a finite number.
func finite(values []float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

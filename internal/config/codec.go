package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format selects the text encoding of a configuration record.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatForPath picks the format from a file extension. Unknown extensions
// default to YAML.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Marshal serializes c in the given format.
func Marshal(c *Configuration, format Format) ([]byte, error) {
	rec := ToRecord(c)
	var buf bytes.Buffer
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rec); err != nil {
			return nil, fmt.Errorf("encode configuration json: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(rec); err != nil {
			return nil, fmt.Errorf("encode configuration yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encode configuration yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown configuration format %q", format)
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes, schema-validates and rebuilds a configuration.
func Unmarshal(data []byte, format Format) (*Configuration, error) {
	doc := data
	if format == FormatYAML {
		var generic any
		if err := yaml.Unmarshal(data, &generic); err != nil {
			return nil, &SchemaError{Message: fmt.Sprintf("record is not valid YAML: %v", err)}
		}
		if generic == nil {
			return nil, &SchemaError{Message: "record is empty"}
		}
		var err error
		if doc, err = json.Marshal(generic); err != nil {
			return nil, &SchemaError{Message: fmt.Sprintf("record cannot be represented as JSON: %v", err)}
		}
	} else if format != FormatJSON {
		return nil, fmt.Errorf("unknown configuration format %q", format)
	}

	if err := ValidateRecordJSON(doc); err != nil {
		var se *SchemaError
		if errors.As(err, &se) && se.Path != "" {
			se.Line = sourceLine(data, strings.Split(se.Path, "."))
		}
		return nil, err
	}

	var rec Record
	if err := json.Unmarshal(doc, &rec); err != nil {
		return nil, &SchemaError{Message: fmt.Sprintf("decode record: %v", err)}
	}
	return FromRecord(rec)
}

// WriteFile writes c to path in the format implied by its extension.
func WriteFile(path string, c *Configuration) error {
	data, err := Marshal(c, FormatForPath(path))
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write configuration %s: %w", path, err)
	}
	return nil
}

// ReadFile reads a configuration from path in the format implied by its
// extension.
func ReadFile(path string) (*Configuration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read configuration %s: %w", path, err)
	}
	c, err := Unmarshal(data, FormatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("load configuration %s: %w", path, err)
	}
	return c, nil
}

// sourceLine returns the 1-based line of the deepest key or element along
// path in a YAML or JSON document, or 0 when the document does not parse.
func sourceLine(data []byte, path []string) int {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil || len(root.Content) == 0 {
		return 0
	}
	node := root.Content[0]
	line := node.Line
	for _, elem := range path {
		next, at := child(node, elem)
		if next == nil {
			break
		}
		node, line = next, at
	}
	return line
}

// child returns the value under elem and the line that names it: the key
// line for mappings, the element line for sequences.
func child(n *yaml.Node, elem string) (*yaml.Node, int) {
	switch n.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(n.Content); i += 2 {
			if n.Content[i].Value == elem {
				return n.Content[i+1], n.Content[i].Line
			}
		}
	case yaml.SequenceNode:
		if i, err := strconv.Atoi(elem); err == nil && i >= 0 && i < len(n.Content) {
			return n.Content[i], n.Content[i].Line
		}
	}
	return nil, 0
}

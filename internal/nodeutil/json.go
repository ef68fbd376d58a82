package nodeutil

import (
	"bytes"
	"encoding/json"
	"fmt"

	"go.yaml.in/yaml/v4"
)

// MarshalJSON writes a node tree as JSON with mapping keys in document order.
func MarshalJSON(node *yaml.Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := marshalNodeAsJSON(&buf, node); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalJSONIndent is like MarshalJSON but indents the output.
func MarshalJSONIndent(node *yaml.Node, prefix, indent string) ([]byte, error) {
	data, err := MarshalJSON(node)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, data, prefix, indent); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func marshalNodeAsJSON(buf *bytes.Buffer, node *yaml.Node) error {
	n := Resolve(node)
	if n == nil {
		buf.WriteString("null")
		return nil
	}

	switch n.Kind {
	case yaml.MappingNode:
		buf.WriteByte('{')
		for i := 0; i+1 < len(n.Content); i += 2 {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, n.Content[i].Value); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := marshalNodeAsJSON(buf, n.Content[i+1]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil

	case yaml.SequenceNode:
		buf.WriteByte('[')
		for i, item := range n.Content {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := marshalNodeAsJSON(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil

	case yaml.ScalarNode:
		if n.ShortTag() == "!!str" {
			return writeJSON(buf, n.Value)
		}
		var v any
		if err := n.Decode(&v); err != nil {
			return fmt.Errorf("nodeutil: decoding scalar at line %d: %w", n.Line, err)
		}
		return writeJSON(buf, v)

	default:
		return fmt.Errorf("nodeutil: unsupported node kind %v at line %d", n.Kind, n.Line)
	}
}

func writeJSON(buf *bytes.Buffer, v any) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte("\n")))
	return nil
}

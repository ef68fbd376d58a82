// Package nodeutil reads and edits yaml.Node trees while keeping the key
// order of the source document.
package nodeutil

import (
	"strconv"
	"strings"

	"go.yaml.in/yaml/v4"
)

// Resolve follows document and alias nodes to the node holding content.
func Resolve(node *yaml.Node) *yaml.Node {
	for node != nil {
		switch node.Kind {
		case yaml.DocumentNode:
			if len(node.Content) == 0 {
				return nil
			}
			node = node.Content[0]
		case yaml.AliasNode:
			node = node.Alias
		default:
			return node
		}
	}
	return nil
}

// IsMapping reports whether node resolves to a mapping.
func IsMapping(node *yaml.Node) bool {
	n := Resolve(node)
	return n != nil && n.Kind == yaml.MappingNode
}

// IsSequence reports whether node resolves to a sequence.
func IsSequence(node *yaml.Node) bool {
	n := Resolve(node)
	return n != nil && n.Kind == yaml.SequenceNode
}

// Pair is one key/value entry of a mapping.
type Pair struct {
	Key   string
	Value *yaml.Node
}

// Pairs returns the entries of a mapping in document order. Non-mappings
// yield nil.
func Pairs(node *yaml.Node) []Pair {
	n := Resolve(node)
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	pairs := make([]Pair, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		pairs = append(pairs, Pair{Key: n.Content[i].Value, Value: Resolve(n.Content[i+1])})
	}
	return pairs
}

// Items returns the elements of a sequence. Non-sequences yield nil.
func Items(node *yaml.Node) []*yaml.Node {
	n := Resolve(node)
	if n == nil || n.Kind != yaml.SequenceNode {
		return nil
	}
	items := make([]*yaml.Node, 0, len(n.Content))
	for _, item := range n.Content {
		items = append(items, Resolve(item))
	}
	return items
}

// Lookup walks a chain of mapping keys and returns the value found, or nil.
func Lookup(node *yaml.Node, keys ...string) *yaml.Node {
	n := Resolve(node)
	for _, key := range keys {
		if n == nil || n.Kind != yaml.MappingNode {
			return nil
		}
		var next *yaml.Node
		for i := 0; i+1 < len(n.Content); i += 2 {
			if n.Content[i].Value == key {
				next = Resolve(n.Content[i+1])
				break
			}
		}
		n = next
	}
	return n
}

// Has reports whether a mapping contains key.
func Has(node *yaml.Node, key string) bool {
	return Lookup(node, key) != nil
}

// String returns the scalar value at key, or "" when absent or not a scalar.
func String(node *yaml.Node, key string) string {
	v := Lookup(node, key)
	if v == nil || v.Kind != yaml.ScalarNode || v.ShortTag() == "!!null" {
		return ""
	}
	return v.Value
}

// Bool returns the boolean value at key; anything but a true scalar is false.
func Bool(node *yaml.Node, key string) bool {
	v := Lookup(node, key)
	if v == nil || v.Kind != yaml.ScalarNode {
		return false
	}
	b, err := strconv.ParseBool(strings.ToLower(v.Value))
	return err == nil && b
}

// Int returns the integer value at key and whether one was present.
func Int(node *yaml.Node, key string) (int, bool) {
	v := Lookup(node, key)
	if v == nil || v.Kind != yaml.ScalarNode {
		return 0, false
	}
	return ScalarInt(v)
}

// ScalarInt parses an integer scalar node.
func ScalarInt(v *yaml.Node) (int, bool) {
	if v == nil || v.Kind != yaml.ScalarNode || v.ShortTag() != "!!int" {
		return 0, false
	}
	i, err := strconv.Atoi(v.Value)
	if err != nil {
		return 0, false
	}
	return i, true
}

// StringNode builds a scalar string node.
func StringNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

// MappingNode builds an empty mapping node.
func MappingNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

// SequenceNode builds an empty sequence node.
func SequenceNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
}

// Set replaces the value of key in a mapping, or appends the entry when the
// key is absent. It returns false when node is not a mapping.
func Set(node *yaml.Node, key string, value *yaml.Node) bool {
	n := Resolve(node)
	if n == nil || n.Kind != yaml.MappingNode {
		return false
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			n.Content[i+1] = value
			return true
		}
	}
	n.Content = append(n.Content, StringNode(key), value)
	return true
}

// Delete removes key from a mapping and reports whether it was present.
func Delete(node *yaml.Node, key string) bool {
	n := Resolve(node)
	if n == nil || n.Kind != yaml.MappingNode {
		return false
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			n.Content = append(n.Content[:i], n.Content[i+2:]...)
			return true
		}
	}
	return false
}

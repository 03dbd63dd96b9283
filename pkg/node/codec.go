package node

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

var (
	// ErrParse is returned when stored or imported data is not valid JSON/YAML.
	ErrParse = errors.New("node: malformed document")
	// ErrSchema is returned when the data decodes but is not a folder tree.
	ErrSchema = errors.New("node: invalid document structure")
)

// wireNode fixes the key order id, type, title, items|content. Pointers keep
// an empty folder's items and an empty prompt's content in the output.
type wireNode struct {
	ID      string       `json:"id" yaml:"id"`
	Type    string       `json:"type" yaml:"type"`
	Title   string       `json:"title" yaml:"title"`
	Items   *[]*wireNode `json:"items,omitempty" yaml:"items,omitempty"`
	Content *string      `json:"content,omitempty" yaml:"content,omitempty"`
}

func toWire(n *Node) *wireNode {
	w := &wireNode{ID: n.ID, Type: string(n.Kind), Title: n.Title}
	switch n.Kind {
	case KindFolder:
		items := make([]*wireNode, 0, len(n.Items))
		for _, child := range n.Items {
			if child == nil {
				continue
			}
			items = append(items, toWire(child))
		}
		w.Items = &items
	default:
		content := n.Content
		w.Content = &content
	}
	return w
}

// Serialize encodes the tree as indented JSON. The output is deterministic and
// is both the persisted value and the export format.
func Serialize(root *Node) ([]byte, error) {
	if root == nil {
		return nil, errors.New("node: serialize nil tree")
	}
	return json.MarshalIndent(toWire(root), "", "  ")
}

// Deserialize decodes Serialize output. Ids are preserved; nodes without an
// id get a fresh one.
func Deserialize(data []byte) (*Node, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || !json.Valid(data) {
		return nil, ErrParse
	}
	var w *wireNode
	if err := json.Unmarshal(data, &w); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, fmt.Errorf("%w: %v", ErrSchema, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return fromWireRoot(w)
}

// MarshalYAML encodes the tree as YAML with the same key order as Serialize.
func MarshalYAML(root *Node) ([]byte, error) {
	if root == nil {
		return nil, errors.New("node: serialize nil tree")
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(toWire(root)); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalYAML decodes MarshalYAML output with the same checks as Deserialize.
func UnmarshalYAML(data []byte) (*Node, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrParse
	}
	var w *wireNode
	if err := yaml.Unmarshal(data, &w); err != nil {
		var typeErr *yaml.TypeError
		if errors.As(err, &typeErr) {
			return nil, fmt.Errorf("%w: %v", ErrSchema, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return fromWireRoot(w)
}

func fromWireRoot(w *wireNode) (*Node, error) {
	if w == nil || w.Type != string(KindFolder) || w.Items == nil {
		return nil, fmt.Errorf("%w: root must be a folder with items", ErrSchema)
	}
	seen := make(map[string]struct{})
	return fromWire(w, seen)
}

func fromWire(w *wireNode, seen map[string]struct{}) (*Node, error) {
	if w == nil {
		return nil, fmt.Errorf("%w: null node", ErrSchema)
	}
	kind, err := ParseKind(w.Type)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchema, err)
	}
	id := w.ID
	if id == "" {
		id = NewID()
	}
	if _, dup := seen[id]; dup {
		return nil, fmt.Errorf("%w: duplicate id %q", ErrSchema, id)
	}
	seen[id] = struct{}{}

	n := &Node{ID: id, Kind: kind, Title: w.Title}
	switch kind {
	case KindFolder:
		n.Items = []*Node{}
		if w.Items == nil {
			return n, nil
		}
		for _, cw := range *w.Items {
			child, err := fromWire(cw, seen)
			if err != nil {
				return nil, err
			}
			n.Items = append(n.Items, child)
		}
	case KindPrompt:
		if w.Items != nil {
			return nil, fmt.Errorf("%w: prompt %q has items", ErrSchema, id)
		}
		if w.Content != nil {
			n.Content = *w.Content
		}
	}
	return n, nil
}

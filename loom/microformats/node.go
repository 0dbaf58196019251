// Package microformats maps generic parsed microformats2 nodes to the
// canonical activity model and back. Parsing HTML into nodes is an
// external concern; this package only consumes and produces the node
// shape.
package microformats

import (
	"encoding/json"
	"net/url"
)

// Node is the generic parsed-microformats shape exchanged with external
// parsers and renderers: a type list, a property map of string-or-node
// values, an optional flattened value, and child nodes. Content-bearing
// properties may carry an HTML form alongside the plain value.
type Node struct {
	Type       []string           `json:"type,omitempty"`
	Properties map[string][]Value `json:"properties,omitempty"`
	Value      string             `json:"value,omitempty"`
	HTML       string             `json:"html,omitempty"`
	Children   []*Node            `json:"children,omitempty"`
}

// HasType reports whether the node carries the given microformats type.
func (n *Node) HasType(t string) bool {
	for _, nt := range n.Type {
		if nt == t {
			return true
		}
	}
	return false
}

// Empty reports whether the node carries no recognizable structure.
func (n *Node) Empty() bool {
	return n == nil || (len(n.Type) == 0 && len(n.Properties) == 0 && n.Value == "" && len(n.Children) == 0)
}

// Value is one microformats property value: either a plain string or a
// nested node. The zero value is an empty string.
type Value struct {
	Str  string
	Node *Node
}

// StringValue wraps a plain string as a property value.
func StringValue(s string) Value { return Value{Str: s} }

// NodeValue wraps a nested node as a property value.
func NodeValue(n *Node) Value { return Value{Node: n} }

// AsText returns the plain-text reading of the value: the string form,
// or a nested node's flattened value, or its name property.
func (v Value) AsText() string {
	if v.Node == nil {
		return v.Str
	}
	if v.Node.Value != "" {
		return v.Node.Value
	}
	if name, ok := firstProp(v.Node, "name"); ok {
		return name.AsText()
	}
	return ""
}

// AsURL returns the URL carried by the value. Compound nodes are
// resolved by descending into their own url property recursively until
// a string is found. Returns "" when nothing URL-shaped is present.
func (v Value) AsURL() string {
	if v.Node == nil {
		return v.Str
	}
	for _, u := range propValues(v.Node, "url") {
		if s := u.AsURL(); s != "" {
			return s
		}
	}
	return v.Node.Value
}

// AsNode returns the nested node, or a synthetic node wrapping the
// string form so callers can treat every value uniformly.
func (v Value) AsNode() *Node {
	if v.Node != nil {
		return v.Node
	}
	return &Node{Value: v.Str}
}

// MarshalJSON emits the string form for plain values and the full node
// for compound values, matching the external parser's JSON shape.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.Node != nil {
		return json.Marshal(v.Node)
	}
	return json.Marshal(v.Str)
}

func (v *Value) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		v.Str = s
		v.Node = nil
		return nil
	}
	var n Node
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	v.Str = ""
	v.Node = &n
	return nil
}

// absoluteURL reports whether s parses as a URL with a scheme and host.
func absoluteURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme != "" && u.Host != ""
}

package microformats

import (
	_ "embed"

	"gopkg.in/yaml.v3"

	"github.com/kmorelli/activityloom/loom/telemetry"
)

// The property alias table is data so that adding a platform's
// vocabulary is a config change, not a code change.
//
//go:embed aliases.yaml
var aliasesYAML []byte

var aliases map[string][]string

func init() {
	if err := yaml.Unmarshal(aliasesYAML, &aliases); err != nil {
		// the table is embedded, so this only fires on a bad edit
		telemetry.Error(err, "parsing embedded property alias table")
		aliases = map[string][]string{}
	}
}

// propertyNames returns the accepted source property names for a
// canonical field, in priority order. Unknown fields map to themselves.
func propertyNames(canonical string) []string {
	if names, ok := aliases[canonical]; ok {
		return names
	}
	return []string{canonical}
}

// propValues looks up a canonical field on a node, consulting each
// accepted property name in priority order and returning the first
// non-empty value list.
func propValues(n *Node, canonical string) []Value {
	if n == nil || n.Properties == nil {
		return nil
	}
	for _, name := range propertyNames(canonical) {
		if vals := n.Properties[name]; len(vals) > 0 {
			return vals
		}
	}
	return nil
}

// firstProp returns the first value for a canonical field.
func firstProp(n *Node, canonical string) (Value, bool) {
	vals := propValues(n, canonical)
	if len(vals) == 0 {
		return Value{}, false
	}
	return vals[0], true
}

// firstPropText returns the first value's text form, or "".
func firstPropText(n *Node, canonical string) string {
	if v, ok := firstProp(n, canonical); ok {
		return v.AsText()
	}
	return ""
}

// stringURLs extracts string URLs from a property's values, descending
// into compound nodes.
func stringURLs(vals []Value) []string {
	var urls []string
	for _, v := range vals {
		if u := v.AsURL(); u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}

// setProp assigns values to the primary property name of a canonical
// field, skipping empty value lists.
func setProp(n *Node, canonical string, vals ...Value) {
	filtered := vals[:0]
	for _, v := range vals {
		if v.Node == nil && v.Str == "" {
			continue
		}
		filtered = append(filtered, v)
	}
	if len(filtered) == 0 {
		return
	}
	if n.Properties == nil {
		n.Properties = make(map[string][]Value)
	}
	n.Properties[propertyNames(canonical)[0]] = filtered
}

// Package jsondiff structurally compares two JSON-compatible values
// and produces a labeled tree mirroring the value's shape.
package jsondiff

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/sheetdiff/sheetdiff/internal/core/diff"
)

// Node is one node of a structural diff tree. Path uses dotted-key and
// bracketed-index notation ("a.b[2].c") and is unique within one tree.
// Children is non-nil only for object- and array-typed nodes.
type Node struct {
	Kind       diff.Kind `json:"kind"`
	Path       string    `json:"path"`
	Old        any       `json:"old,omitempty"`
	New        any       `json:"new,omitempty"`
	Type       string    `json:"type"`
	Children   []*Node   `json:"children,omitempty"`
	HasChanges bool      `json:"has_changes"`
}

// Stats counts the leaf nodes of a tree by kind. Container nodes are
// excluded; only leaves count.
type Stats struct {
	Added     int `json:"added"`
	Removed   int `json:"removed"`
	Modified  int `json:"modified"`
	Unchanged int `json:"unchanged"`
}

// ParseDocument parses raw JSON into a comparable value. Callers must
// validate input with this before diffing; Compare itself never fails.
func ParseDocument(data []byte) (any, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	return v, nil
}

// Compare structurally diffs two parsed JSON values and returns the
// root of the resulting tree. Objects are compared over the sorted
// union of their keys, arrays index by index with no re-alignment, and
// a type mismatch between two present values is a modified leaf.
func Compare(oldVal, newVal any) *Node {
	return compare(oldVal, newVal, true, true, "")
}

// CollectStats counts the leaves of a tree by kind. A nil tree yields
// zero stats.
func CollectStats(root *Node) Stats {
	var stats Stats
	if root == nil {
		return stats
	}

	stack := []*Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if len(n.Children) > 0 {
			stack = append(stack, n.Children...)
			continue
		}

		switch n.Kind {
		case diff.KindAdded:
			stats.Added++
		case diff.KindRemoved:
			stats.Removed++
		case diff.KindModified:
			stats.Modified++
		case diff.KindUnchanged:
			stats.Unchanged++
		}
	}

	return stats
}

func compare(oldVal, newVal any, oldOK, newOK bool, path string) *Node {
	switch {
	case !oldOK && !newOK:
		return nil
	case !oldOK:
		return oneSided(newVal, diff.KindAdded, path)
	case !newOK:
		return oneSided(oldVal, diff.KindRemoved, path)
	}

	oldType := valueType(oldVal)
	newType := valueType(newVal)

	// Type changes are never diffed structurally.
	if oldType != newType {
		return &Node{
			Kind:       diff.KindModified,
			Path:       path,
			Old:        oldVal,
			New:        newVal,
			Type:       newType,
			HasChanges: true,
		}
	}

	switch oldType {
	case "object":
		return compareObjects(oldVal.(map[string]any), newVal.(map[string]any), path)
	case "array":
		return compareArrays(oldVal.([]any), newVal.([]any), path)
	}

	node := &Node{
		Kind: diff.KindUnchanged,
		Path: path,
		Old:  oldVal,
		New:  newVal,
		Type: oldType,
	}
	if oldVal != newVal {
		node.Kind = diff.KindModified
		node.HasChanges = true
	}
	return node
}

func compareObjects(oldObj, newObj map[string]any, path string) *Node {
	keys := make(map[string]struct{}, len(oldObj)+len(newObj))
	for k := range oldObj {
		keys[k] = struct{}{}
	}
	for k := range newObj {
		keys[k] = struct{}{}
	}

	sorted := make([]string, 0, len(keys))
	for k := range keys {
		sorted = append(sorted, k)
	}
	sort.Strings(sorted)

	node := &Node{
		Kind:     diff.KindUnchanged,
		Path:     path,
		Old:      oldObj,
		New:      newObj,
		Type:     "object",
		Children: []*Node{},
	}
	for _, k := range sorted {
		ov, ook := oldObj[k]
		nv, nok := newObj[k]
		child := compare(ov, nv, ook, nok, childPath(path, k))
		if child == nil {
			continue
		}
		node.Children = append(node.Children, child)
		if child.HasChanges {
			node.Kind = diff.KindModified
			node.HasChanges = true
		}
	}

	return node
}

func compareArrays(oldArr, newArr []any, path string) *Node {
	node := &Node{
		Kind:     diff.KindUnchanged,
		Path:     path,
		Old:      oldArr,
		New:      newArr,
		Type:     "array",
		Children: []*Node{},
	}

	// Positional comparison only; trailing extra elements on the longer
	// side become pure add/remove children.
	for i := 0; i < max(len(oldArr), len(newArr)); i++ {
		var ov, nv any
		ook := i < len(oldArr)
		nok := i < len(newArr)
		if ook {
			ov = oldArr[i]
		}
		if nok {
			nv = newArr[i]
		}
		child := compare(ov, nv, ook, nok, indexPath(path, i))
		if child == nil {
			continue
		}
		node.Children = append(node.Children, child)
		if child.HasChanges {
			node.Kind = diff.KindModified
			node.HasChanges = true
		}
	}

	return node
}

// oneSided builds a subtree for a value present on only one side,
// marking every descendant with the same kind. Traversal uses an
// explicit work stack so deeply nested documents can't blow the call
// stack.
func oneSided(v any, kind diff.Kind, path string) *Node {
	root := newOneSidedNode(v, kind, path)

	type item struct {
		value any
		node  *Node
	}
	stack := []item{{value: v, node: root}}

	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch val := it.value.(type) {
		case map[string]any:
			it.node.Children = []*Node{}
			keys := make([]string, 0, len(val))
			for k := range val {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				child := newOneSidedNode(val[k], kind, childPath(it.node.Path, k))
				it.node.Children = append(it.node.Children, child)
				stack = append(stack, item{value: val[k], node: child})
			}
		case []any:
			it.node.Children = []*Node{}
			for i, elem := range val {
				child := newOneSidedNode(elem, kind, indexPath(it.node.Path, i))
				it.node.Children = append(it.node.Children, child)
				stack = append(stack, item{value: elem, node: child})
			}
		}
	}

	return root
}

func newOneSidedNode(v any, kind diff.Kind, path string) *Node {
	node := &Node{
		Kind:       kind,
		Path:       path,
		Type:       valueType(v),
		HasChanges: true,
	}
	if kind == diff.KindAdded {
		node.New = v
	} else {
		node.Old = v
	}
	return node
}

func valueType(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64, json.Number:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func childPath(base, key string) string {
	if base == "" {
		return key
	}
	return base + "." + key
}

func indexPath(base string, i int) string {
	return fmt.Sprintf("%s[%d]", base, i)
}

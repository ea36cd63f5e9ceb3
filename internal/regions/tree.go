package regions

import (
	"bytes"
	"encoding/json"
	"strings"
)

const (
	keyRegions = "regions"
	keyName    = "name"
	keyCoerced = "0"
)

// Node is a navigation tree node: either a leaf holding a region name or an
// ordered mapping of child nodes.
type Node struct {
	leaf     string
	isLeaf   bool
	keys     []string
	children map[string]*Node
}

// Leaf returns a leaf node.
func Leaf(name string) *Node {
	return &Node{leaf: name, isLeaf: true}
}

func newBranch() *Node {
	return &Node{children: make(map[string]*Node)}
}

// IsLeaf reports whether n holds a bare name.
func (n *Node) IsLeaf() bool { return n.isLeaf }

// Value returns the leaf name, or "" for a mapping.
func (n *Node) Value() string { return n.leaf }

// Keys returns child keys in insertion order.
func (n *Node) Keys() []string {
	out := make([]string, len(n.keys))
	copy(out, n.keys)
	return out
}

// Child returns the child under key, or nil.
func (n *Node) Child(key string) *Node {
	if n == nil || n.isLeaf {
		return nil
	}
	return n.children[key]
}

// Lookup walks path from n and returns the node found there, or nil.
func (n *Node) Lookup(path ...string) *Node {
	cur := n
	for _, key := range path {
		cur = cur.Child(key)
		if cur == nil {
			return nil
		}
	}
	return cur
}

// set stores child under key. An existing key keeps its position.
func (n *Node) set(key string, child *Node) {
	if _, ok := n.children[key]; !ok {
		n.keys = append(n.keys, key)
	}
	n.children[key] = child
}

// MarshalJSON writes a leaf as a string and a mapping as an object in
// insertion order.
func (n *Node) MarshalJSON() ([]byte, error) {
	if n.isLeaf {
		return json.Marshal(n.leaf)
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range n.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := n.children[key].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// PathFor returns the insertion path of id: every dash-delimited prefix that
// is itself a catalog region, separated by "regions" keys.
//
//	IT-34-BL-01 -> [IT-34 regions IT-34-BL-01]   (when IT and IT-34-BL are not catalog ids)
func PathFor(id string, catalog *Catalog) []string {
	parts := strings.Split(id, "-")
	var path []string
	for i := range parts {
		prefix := strings.Join(parts[:i+1], "-")
		if _, ok := catalog.Name(prefix); !ok {
			continue
		}
		path = append(path, prefix)
		if i < len(parts)-1 {
			path = append(path, keyRegions)
		}
	}
	return path
}

// BuildTree builds the navigation tree for the catalog regions that appear in
// available. Regions are inserted in catalog order, and each inserted leaf
// overwrites whatever was previously stored at its path. Inserting beneath an
// existing leaf turns it into a mapping that keeps the old leaf under "0".
// Mapping nodes keyed by a catalog id then receive a "name" entry.
func BuildTree(catalog *Catalog, available []string) *Node {
	has := make(map[string]struct{}, len(available))
	for _, id := range available {
		has[id] = struct{}{}
	}

	root := newBranch()
	for _, id := range catalog.ids {
		if _, ok := has[id]; !ok {
			continue
		}
		path := PathFor(id, catalog)
		if len(path) == 0 {
			continue
		}
		root = insert(root, path, catalog.names[id])
	}

	attachNames(root, catalog)
	return root
}

func insert(n *Node, path []string, name string) *Node {
	if len(path) == 0 {
		return Leaf(name)
	}

	switch {
	case n == nil:
		n = newBranch()
	case n.isLeaf:
		coerced := newBranch()
		coerced.set(keyCoerced, n)
		n = coerced
	}

	n.set(path[0], insert(n.children[path[0]], path[1:], name))
	return n
}

func attachNames(n *Node, catalog *Catalog) {
	for _, key := range n.keys {
		child := n.children[key]
		if child.isLeaf {
			continue
		}
		if name, ok := catalog.Name(key); ok {
			child.set(keyName, Leaf(name))
		}
		if regions := child.children[keyRegions]; regions != nil && !regions.isLeaf {
			attachNames(regions, catalog)
		}
	}
}

package locale

import (
	"bytes"
	"encoding/json"
	"strings"
)

const indentUnit = "  "

// Marshal renders the table as UTF-8 JSON with 2-space indentation, keys in
// table order and non-ASCII text left unescaped. Nested tables are written
// as nested objects unless a key is also the dotted prefix of another key,
// in which case every key is written flat.
func Marshal(t *Table) ([]byte, error) {
	var b bytes.Buffer

	root := buildTree(t)
	if err := writeNode(&b, root, 0); err != nil {
		return nil, err
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}

type leaf struct {
	value string
	raw   bool
}

type node struct {
	names    []string
	leaves   map[string]leaf
	children map[string]*node
}

func newNode() *node {
	return &node{leaves: make(map[string]leaf), children: make(map[string]*node)}
}

func (n *node) add(name string) {
	if _, ok := n.leaves[name]; ok {
		return
	}
	if _, ok := n.children[name]; ok {
		return
	}
	n.names = append(n.names, name)
}

func buildTree(t *Table) *node {
	root := newNode()
	nested := t.nested && !hasPrefixCollision(t.keys)
	for _, key := range t.keys {
		value := leaf{value: t.values[key], raw: t.raw[key]}
		if nested && strings.Contains(key, ".") {
			insertNested(root, strings.Split(key, "."), value)
			continue
		}
		root.add(key)
		root.leaves[key] = value
	}
	return root
}

// hasPrefixCollision reports whether some key is also a dotted prefix of
// another key ("a" and "a.b"), which cannot be written as nested objects.
func hasPrefixCollision(keys []string) bool {
	set := make(map[string]bool, len(keys))
	for _, k := range keys {
		set[k] = true
	}
	for _, k := range keys {
		for i := strings.IndexByte(k, '.'); i >= 0; {
			if set[k[:i]] {
				return true
			}
			next := strings.IndexByte(k[i+1:], '.')
			if next < 0 {
				break
			}
			i += next + 1
		}
	}
	return false
}

// insertNested places value at path, creating intermediate objects.
func insertNested(root *node, path []string, value leaf) {
	cur := root
	for _, name := range path[:len(path)-1] {
		child, ok := cur.children[name]
		if !ok {
			child = newNode()
			cur.add(name)
			cur.children[name] = child
		}
		cur = child
	}

	last := path[len(path)-1]
	cur.add(last)
	cur.leaves[last] = value
}

func writeNode(b *bytes.Buffer, n *node, depth int) error {
	if len(n.names) == 0 {
		b.WriteString("{}")
		return nil
	}

	b.WriteString("{\n")
	pad := strings.Repeat(indentUnit, depth+1)
	for i, name := range n.names {
		b.WriteString(pad)
		if err := writeString(b, name); err != nil {
			return err
		}
		b.WriteString(": ")

		if child, ok := n.children[name]; ok {
			if err := writeNode(b, child, depth+1); err != nil {
				return err
			}
		} else if err := writeLeaf(b, n.leaves[name]); err != nil {
			return err
		}

		if i < len(n.names)-1 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}
	b.WriteString(strings.Repeat(indentUnit, depth))
	b.WriteByte('}')
	return nil
}

// writeLeaf writes a raw JSON value compacted and unquoted, and any other
// value as a JSON string.
func writeLeaf(b *bytes.Buffer, l leaf) error {
	if l.raw {
		var tmp bytes.Buffer
		if err := json.Compact(&tmp, []byte(l.value)); err == nil {
			b.Write(tmp.Bytes())
			return nil
		}
	}
	return writeString(b, l.value)
}

// writeString writes s as a JSON string without HTML escaping.
func writeString(b *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	b.Write(bytes.TrimRight(tmp.Bytes(), "\n"))
	return nil
}

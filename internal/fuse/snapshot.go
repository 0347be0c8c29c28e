package fuse

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/ostafen/growtable/pkg/table"
)

// Node is an entry of a Snapshot tree: a directory when Children is
// non-nil, a regular file otherwise.
type Node struct {
	Name     string
	Data     []byte
	Children []*Node
}

func (n *Node) IsDir() bool {
	return n.Children != nil
}

func (n *Node) Child(name string) (*Node, bool) {
	for _, c := range n.Children {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// Snapshot is an immutable copy of a table layout:
//
//	layout.txt    the table as printed by Table.Print
//	stats.txt     sizing counters
//	cells/<i>/<j> the entry at cell i, slot j, as "key,value"
type Snapshot struct {
	Root *Node
}

// TakeSnapshot copies the current layout of tb. The result does not
// reference tb and stays valid after tb changes or is destroyed.
func TakeSnapshot[K, V any](tb *table.Table[K, V], printKey func(io.Writer, K), printValue table.ValuePrinter[V]) *Snapshot {
	var layout bytes.Buffer
	tb.Print(&layout)

	stats := fmt.Sprintf("entries %d\ncapacity %d\noriginal_capacity %d\ngrowth_factor %d\nbucket_capacity %d\n",
		tb.Len(), tb.Capacity(), tb.OriginalCapacity(), tb.GrowthFactor(), tb.BucketCapacity())

	cells := make([]*Node, tb.Capacity())
	for i := range cells {
		cells[i] = &Node{Name: strconv.Itoa(i), Children: []*Node{}}
	}
	for pos, e := range tb.All() {
		var buf bytes.Buffer
		printKey(&buf, e.Key)
		buf.WriteByte(',')
		printValue(&buf, e.Value)
		buf.WriteByte('\n')

		cell := cells[pos.Cell]
		cell.Children = append(cell.Children, &Node{Name: strconv.Itoa(pos.Slot), Data: buf.Bytes()})
	}

	return &Snapshot{
		Root: &Node{
			Children: []*Node{
				{Name: "cells", Children: cells},
				{Name: "layout.txt", Data: layout.Bytes()},
				{Name: "stats.txt", Data: []byte(stats)},
			},
		},
	}
}

// Walk resolves a slash separated path relative to the root.
func (s *Snapshot) Walk(names ...string) (*Node, bool) {
	n := s.Root
	for _, name := range names {
		var ok bool
		if n, ok = n.Child(name); !ok {
			return nil, false
		}
	}
	return n, true
}

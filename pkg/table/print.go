package table

import (
	"fmt"
	"io"
	"iter"
)

// Print writes every slot in index order as "[cell]" followed by its
// entries, each rendered as "key,value" by the key strategy and the value
// printer.
func (t *Table[K, V]) Print(w io.Writer) {
	if t.usable(OpPrint) != nil {
		return
	}

	for cell, b := range t.slots {
		fmt.Fprintf(w, "[%d]", cell)
		for i := range b.elems {
			io.WriteString(w, "\t")
			t.keys.PrintKey(w, b.elems[i].key)
			io.WriteString(w, ",")
			t.printValue(w, b.elems[i].value)
			io.WriteString(w, "\t-->")
		}
		io.WriteString(w, "\t\n")
	}
}

// All enumerates the entries of the table by increasing cell, then slot.
// The table must not be mutated during the enumeration.
func (t *Table[K, V]) All() iter.Seq2[Position, Entry[K, V]] {
	return func(yield func(Position, Entry[K, V]) bool) {
		if t == nil {
			return
		}

		for cell, b := range t.slots {
			for slot, e := range b.elems {
				entry := Entry[K, V]{Key: e.key, Value: e.value}
				if !yield(Position{Cell: cell, Slot: slot}, entry) {
					return
				}
			}
		}
	}
}

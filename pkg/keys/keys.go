package keys

import (
	"fmt"
	"io"
)

// Info describes a key strategy selectable by name.
type Info struct {
	Name        string
	KeyType     string
	Description string
}

// Strategies lists the key strategies of this package.
var Strategies = []Info{
	{Name: "int", KeyType: "int", Description: "integer keys, hashed to key mod capacity"},
	{Name: "string", KeyType: "string", Description: "string keys, hashed to the sum of their bytes mod capacity"},
	{Name: "xxstring", KeyType: "string", Description: "string keys, hashed with xxHash64 mod capacity"},
}

// Lookup returns the strategy registered under name.
func Lookup(name string) (Info, error) {
	for _, info := range Strategies {
		if info.Name == name {
			return info, nil
		}
	}
	return Info{}, fmt.Errorf("unknown key strategy %q", name)
}

// PrintRef is a value printer for values stored by reference.
// A nil reference prints nothing.
func PrintRef[T any](w io.Writer, v *T) {
	if v == nil {
		return
	}
	fmt.Fprint(w, *v)
}

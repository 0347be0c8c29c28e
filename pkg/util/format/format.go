package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	_  = iota
	KB = 1 << (10 * iota)
	MB
	GB
	TB
)

var units = []struct {
	name string
	size uint64
}{
	{"TB", TB},
	{"GB", GB},
	{"MB", MB},
	{"KB", KB},
	{"B", 1},
}

// FormatBytes renders b in the largest binary unit not exceeding it,
// omitting decimals for whole values.
func FormatBytes(b uint64) string {
	for _, u := range units[:len(units)-1] {
		if b < u.size {
			continue
		}
		val := float64(b) / float64(u.size)
		if val == math.Trunc(val) {
			return fmt.Sprintf("%.0f%s", val, u.name)
		}
		return fmt.Sprintf("%.2f%s", val, u.name)
	}
	return fmt.Sprintf("%dB", b)
}

// ParseBytes is the inverse of FormatBytes. Units are case insensitive and
// the trailing B may be omitted ("64k", "1.5MB"). A bare number is a byte count.
func ParseBytes(s string) (uint64, error) {
	in := strings.ToUpper(strings.TrimSpace(s))
	if in == "" {
		return 0, fmt.Errorf("invalid size %q", s)
	}

	mult := uint64(1)
	for _, u := range units {
		if num, ok := strings.CutSuffix(in, u.name); ok {
			in, mult = num, u.size
			break
		}
		if u.size > 1 {
			if num, ok := strings.CutSuffix(in, u.name[:1]); ok {
				in, mult = num, u.size
				break
			}
		}
	}

	val, err := strconv.ParseFloat(strings.TrimSpace(in), 64)
	if err != nil || val < 0 || math.IsInf(val, 0) {
		return 0, fmt.Errorf("invalid size %q", s)
	}

	total := val * float64(mult)
	if total >= math.MaxUint64 {
		return 0, fmt.Errorf("size %q overflows", s)
	}
	return uint64(total), nil
}

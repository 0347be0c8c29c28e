//go:build linux

package rlimit

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// LimitAddressSpace caps the virtual address space of the current process
// to limit bytes, lowering both the soft and the hard limit.
func LimitAddressSpace(limit uint64) error {
	if limit == 0 {
		return fmt.Errorf("address space limit must be positive")
	}

	var cur unix.Rlimit
	if err := unix.Getrlimit(unix.RLIMIT_AS, &cur); err != nil {
		return fmt.Errorf("failed to read address space limit: %w", err)
	}
	if cur.Max != unix.RLIM_INFINITY && limit > cur.Max {
		return fmt.Errorf("address space limit %d exceeds hard limit %d", limit, cur.Max)
	}

	lim := unix.Rlimit{Cur: limit, Max: limit}
	if err := unix.Setrlimit(unix.RLIMIT_AS, &lim); err != nil {
		return fmt.Errorf("failed to set address space limit: %w", err)
	}
	return nil
}

// AddressSpace returns the current soft limit, or 0 when unlimited.
func AddressSpace() (uint64, error) {
	var cur unix.Rlimit
	if err := unix.Getrlimit(unix.RLIMIT_AS, &cur); err != nil {
		return 0, err
	}
	if cur.Cur == unix.RLIM_INFINITY {
		return 0, nil
	}
	return cur.Cur, nil
}

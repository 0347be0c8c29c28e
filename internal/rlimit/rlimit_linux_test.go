//go:build linux

package rlimit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLimitAddressSpaceRejectsZero(t *testing.T) {
	require.Error(t, LimitAddressSpace(0))
}

func TestAddressSpace(t *testing.T) {
	_, err := AddressSpace()
	require.NoError(t, err)
}

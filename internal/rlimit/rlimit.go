//go:build !linux

package rlimit

import "errors"

var errUnsupported = errors.New("address space limits are only supported on linux")

func LimitAddressSpace(uint64) error {
	return errUnsupported
}

func AddressSpace() (uint64, error) {
	return 0, errUnsupported
}

//go:build !linux

package fuse

import (
	"fmt"

	"github.com/ostafen/growtable/internal/logger"
)

func Mount(mountpoint string, snap *Snapshot, log *logger.Logger) error {
	return fmt.Errorf("FUSE mount is only supported on Linux")
}

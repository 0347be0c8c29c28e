package fuse

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"bazil.org/fuse"
	fusefs "bazil.org/fuse/fs"

	"github.com/ostafen/growtable/internal/logger"
	osutil "github.com/ostafen/growtable/pkg/util/os"
)

const maxUnmountRetries = 3

// Mount serves snap at mountpoint until the process receives SIGINT or
// SIGTERM. A missing mountpoint is created and removed on return.
func Mount(mountpoint string, snap *Snapshot, log *logger.Logger) error {
	created, err := osutil.EnsureDir(mountpoint, true)
	if err != nil {
		return fmt.Errorf("invalid mountpoint: %w", err)
	}
	if created {
		defer os.Remove(mountpoint)
	}

	c, err := fuse.Mount(mountpoint, fuse.ReadOnly(), fuse.FSName("growtable"), fuse.Subtype("growtable"))
	if err != nil {
		return err
	}
	defer c.Close()

	served := make(chan error, 1)
	go func() {
		served <- fusefs.New(c, nil).Serve(NewSnapshotFS(snap))
	}()

	log.Infof("table mounted at %s", mountpoint)
	return waitForUmount(mountpoint, served, log)
}

func waitForUmount(mountpoint string, served <-chan error, log *logger.Logger) error {
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigc)

	log.Info("waiting for termination signal...")

	attempts := 0
	for {
		select {
		case err := <-served:
			// unmounted from outside, e.g. by fusermount -u
			if err != nil {
				return fmt.Errorf("serve: %w", err)
			}
			return nil
		case sig := <-sigc:
			log.Infof("signal received: %v", sig)

			if attempts >= maxUnmountRetries {
				return fmt.Errorf("unable to unmount %s after %d attempts", mountpoint, attempts)
			}

			attempts++
			log.Infof("attempting unmount of %s (attempt %d/%d)...", mountpoint, attempts, maxUnmountRetries)
			if err := fuse.Unmount(mountpoint); err != nil {
				log.Warnf("unmount failed: %v, remaining retries: %d", err, maxUnmountRetries-attempts)
				continue
			}
			log.Info("unmounted successfully")
			return <-served
		}
	}
}

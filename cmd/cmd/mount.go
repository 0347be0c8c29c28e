package cmd

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ostafen/growtable/internal/fuse"
	"github.com/ostafen/growtable/internal/loader"
	"github.com/ostafen/growtable/pkg/keys"
	"github.com/ostafen/growtable/pkg/table"
)

func DefineMountCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mount <file>",
		Short: "Load a file into a table and mount its layout as a read-only filesystem",
		Long: `The 'mount' command loads "key value" lines like 'load' does, then exposes a snapshot
of the resulting table through FUSE: layout.txt holds the printed table, stats.txt its sizing
counters, and cells/<cell>/<slot> every stored entry. The filesystem stays mounted until
the process is interrupted.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         RunMount,
	}

	defineTableFlags(cmd, 16)
	cmd.Flags().StringP("mountpoint", "m", "", "directory where the table will be mounted. If not specified, a default will be generated.")
	return cmd
}

func RunMount(cmd *cobra.Command, args []string) error {
	opts, err := parseOptions(cmd)
	if err != nil {
		return err
	}

	s, err := newSession(opts)
	if err != nil {
		return err
	}

	mountpoint, _ := cmd.Flags().GetString("mountpoint")
	if mountpoint == "" {
		mountpoint = getMountpoint(args[0])
	}

	var snap *fuse.Snapshot
	if opts.Keys == "int" {
		snap, err = snapshotFile[int](s, args[0], keys.NewInt(s.allocator()), loader.ParseInt)
	} else {
		snap, err = snapshotFile[string](s, args[0], s.stringStrategy(), loader.ParseString)
	}
	if err != nil {
		return err
	}

	if err := s.finish(cmd.OutOrStdout()); err != nil {
		return err
	}
	return fuse.Mount(mountpoint, snap, s.log)
}

func snapshotFile[K any](s *session, path string, ks table.KeyStrategy[K], parse loader.ParseFunc[K]) (*fuse.Snapshot, error) {
	tb, err := loadFile(s, path, ks, parse, nil)
	if err != nil {
		return nil, err
	}
	defer tb.Destroy()

	return fuse.TakeSnapshot(tb, ks.PrintKey, keys.PrintRef[string]), nil
}

// getMountpoint derives a mountpoint name from an input file name by stripping the extension.
func getMountpoint(fileName string) string {
	baseName := filepath.Base(fileName)
	ext := filepath.Ext(baseName)
	baseName = strings.TrimSuffix(baseName, ext)
	if ext == "" {
		baseName += "_mnt"
	}
	return baseName
}

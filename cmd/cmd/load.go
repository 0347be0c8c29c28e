package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ostafen/growtable/internal/loader"
	"github.com/ostafen/growtable/internal/mmap"
	"github.com/ostafen/growtable/pkg/keys"
	"github.com/ostafen/growtable/pkg/pbar"
	"github.com/ostafen/growtable/pkg/table"
)

func DefineLoadCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load <file>",
		Short: "Load key/value lines from a file into a table and query it",
		Long: `The 'load' command reads a text file of "key value" lines into a table.
Blank lines and lines starting with '#' are ignored. Once loaded, keys given
with --find and --remove are looked up or removed in order, and --print dumps the final layout.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         RunLoad,
	}

	defineTableFlags(cmd, 16)
	cmd.Flags().StringSlice("find", nil, "keys to look up after loading")
	cmd.Flags().StringSlice("remove", nil, "keys to remove after loading")
	cmd.Flags().Bool("print", false, "print the table layout")
	cmd.Flags().Bool("no-progress", false, "do not render the progress bar")
	return cmd
}

type queries struct {
	find   []string
	remove []string
	print  bool
}

func RunLoad(cmd *cobra.Command, args []string) error {
	opts, err := parseOptions(cmd)
	if err != nil {
		return err
	}

	var q queries
	q.find, _ = cmd.Flags().GetStringSlice("find")
	q.remove, _ = cmd.Flags().GetStringSlice("remove")
	q.print, _ = cmd.Flags().GetBool("print")
	noProgress, _ := cmd.Flags().GetBool("no-progress")

	s, err := newSession(opts)
	if err != nil {
		return err
	}

	var progress io.Writer = os.Stderr
	if noProgress || opts.DisableLog {
		progress = nil
	}

	out := cmd.OutOrStdout()
	if opts.Keys == "int" {
		err = loadAndQuery[int](s, args[0], keys.NewInt(s.allocator()), loader.ParseInt, progress, out, q)
	} else {
		err = loadAndQuery[string](s, args[0], s.stringStrategy(), loader.ParseString, progress, out, q)
	}
	if err != nil {
		return err
	}
	return s.finish(out)
}

func loadAndQuery[K any](s *session, path string, ks table.KeyStrategy[K], parse loader.ParseFunc[K], progress, out io.Writer, q queries) error {
	tb, err := loadFile(s, path, ks, parse, progress)
	if err != nil {
		return err
	}
	defer tb.Destroy()

	for _, field := range q.find {
		key, err := parse(field)
		if err != nil {
			return fmt.Errorf("--find %q: %w", field, err)
		}

		v, pos, found, err := tb.Find(key)
		if err != nil {
			return err
		}
		if !found {
			fmt.Fprintf(out, "%s: not found\n", field)
			continue
		}
		fmt.Fprintf(out, "%s: cell %d, slot %d, value %q\n", field, pos.Cell, pos.Slot, *v)
	}

	for _, field := range q.remove {
		key, err := parse(field)
		if err != nil {
			return fmt.Errorf("--remove %q: %w", field, err)
		}

		_, found, err := tb.Remove(key)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s: removed=%t\n", field, found)
	}

	if q.print {
		tb.Print(out)
	}
	return nil
}

// loadFile maps path and loads its lines into a new table. Progress is
// rendered to progress unless it is nil.
func loadFile[K any](s *session, path string, ks table.KeyStrategy[K], parse loader.ParseFunc[K], progress io.Writer) (*table.Table[K, *string], error) {
	f, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tb, err := openTable(s, "load", ks, keys.PrintRef[string])
	if err != nil {
		return nil, err
	}

	var lopts loader.Options
	var bar *pbar.LoadState
	if progress != nil {
		bar = pbar.NewLoadState(progress, uint64(len(f.Data)))
		lopts.Progress = func(processed uint64) {
			bar.Update(processed, tb.Len(), tb.Capacity())
		}
	}

	start := time.Now()
	stats, err := loader.Load(tb, f.Data, parse, lopts)
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		tb.Destroy()
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	s.log.Infof("loaded %d lines (%d inserted, %d updated) in %s: %d entries, capacity %d, growth factor %d",
		stats.Lines, stats.Inserted, stats.Updated, time.Since(start).Round(time.Millisecond),
		tb.Len(), tb.Capacity(), tb.GrowthFactor())
	return tb, nil
}

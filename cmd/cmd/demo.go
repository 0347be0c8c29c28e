package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/ostafen/growtable/internal/demo"
	"github.com/ostafen/growtable/pkg/keys"
	"github.com/ostafen/growtable/pkg/table"
)

func DefineDemoCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Replay a fixed sequence of insertions, searches and removals",
		Long: `The 'demo' command creates a small table and replays a scripted sequence of
additions, searches and removals, printing the table layout after every mutation.
Use --memory-budget or --address-space-limit to watch allocation failures roll back.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         RunDemo,
	}

	defineTableFlags(cmd, 2)
	return cmd
}

func RunDemo(cmd *cobra.Command, args []string) error {
	opts, err := parseOptions(cmd)
	if err != nil {
		return err
	}

	s, err := newSession(opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	var res demo.Result
	if opts.Keys == "int" {
		res, err = runDemo[int](s, out, keys.NewInt(s.allocator()), demo.IntScript)
	} else {
		res, err = runDemo[string](s, out, s.stringStrategy(), demo.StringScript)
	}
	if err != nil {
		return err
	}

	s.log.Infof("demo done: %d found, %d missing, %d removed, %d failed operations",
		res.Found, res.Missing, res.Removed, res.Failures)
	return s.finish(out)
}

func runDemo[K any](s *session, w io.Writer, ks table.KeyStrategy[K], script demo.Script[K]) (demo.Result, error) {
	tb, err := openTable(s, "demo", ks, keys.PrintRef[K])
	if err != nil {
		return demo.Result{}, err
	}
	defer tb.Destroy()

	return demo.Run(w, tb, script), nil
}

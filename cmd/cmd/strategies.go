package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ostafen/growtable/pkg/keys"
)

func DefineStrategiesCommand() *cobra.Command {
	return &cobra.Command{
		Use:          "strategies",
		Short:        "List all available key strategies",
		Long:         `The 'strategies' command displays the key strategies that can be selected with --keys, together with the key type they accept and how they hash.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         RunStrategies,
	}
}

func RunStrategies(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tKEY TYPE\tDESC")

	for _, s := range keys.Strategies {
		fmt.Fprintf(w, "%s\t%s\t%s\n", s.Name, s.KeyType, s.Description)
	}
	return w.Flush()
}

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nlowry/callwright/internal/scenario"
)

func newScenariosCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scenarios",
		Short: "List the scripted test scenarios",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tPERSONA\tGOAL")
			for _, sc := range scenario.All() {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", sc.ID, sc.Name, sc.Persona, sc.Goal)
			}
			w.Flush()
		},
	}
}

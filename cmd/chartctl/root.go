package main

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "chartctl",
		Short:         "Sidereal natal chart toolkit",
		Long:          "chartctl computes sidereal natal charts offline and issues bearer tokens for the chart API.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().Bool("pretty", false, "indent JSON output")
	root.AddCommand(newComputeCmd(), newTokenCmd())
	return root
}

func writeJSON(cmd *cobra.Command, w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	if pretty, _ := cmd.Flags().GetBool("pretty"); pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

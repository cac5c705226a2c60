package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sofmeright/crossforge/src/build"
)

var tHost bool

var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "List the declared targets and their resolved triples",
	RunE: func(cmd *cobra.Command, args []string) error {
		if tHost {
			triple, err := build.CurrentHostTriple()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), triple)
			return nil
		}

		runCfg := build.FromConfig(cfg.Native, nil)
		orch := build.NewOrchestrator(runCfg, nil, verbose)

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "KEY\tTRIPLE\tOUTPUT")
		for _, t := range runCfg.Targets {
			triple, err := orch.ResolveTriple(t)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s: %v\n", t.Key, err)
				triple = "?"
			} else if t.Triple == "" {
				triple += " (host)"
			}
			name := t.OutputName
			if name == "" {
				name = "(toolchain default)"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s/%s/%s\n", t.Key, triple, runCfg.OutputRoot, t.Key, name)
		}
		return tw.Flush()
	},
}

func init() {
	targetsCmd.Flags().BoolVar(&tHost, "host", false, "print only the host target triple")
	rootCmd.AddCommand(targetsCmd)
}

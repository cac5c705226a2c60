package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sofmeright/crossforge/src/badge"
	"github.com/sofmeright/crossforge/src/build"
)

var (
	bgOutput string
	bgFont   string
)

var badgeCmd = &cobra.Command{
	Use:   "badge",
	Short: "Render a status badge from the last build manifest",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := build.ReadManifest(cfg.Native.OutputDir)
		if err != nil {
			return fmt.Errorf("reading manifest (run \"crossforge build\" first): %w", err)
		}

		path := cfg.Report.Badge
		if cmd.Flags().Changed("output") || path == "" {
			path = bgOutput
		}
		font := cfg.Report.BadgeFont
		if cmd.Flags().Changed("font") {
			font = bgFont
		}

		ok, total := m.Counts()
		if err := writeRunBadge(path, font, ok, total); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d/%d passing)\n", path, ok, total)
		return nil
	},
}

func writeRunBadge(path, font string, succeeded, total int) error {
	metrics, err := badge.LoadNamedFont(font, 11)
	if err != nil {
		return fmt.Errorf("loading badge font: %w", err)
	}
	return badge.New(metrics).WriteFile(path, badge.RunBadge(succeeded, total))
}

func init() {
	badgeCmd.Flags().StringVar(&bgOutput, "output", "build/native-badge.svg", "badge output path")
	badgeCmd.Flags().StringVar(&bgFont, "font", "go-regular", "built-in font name or .ttf/.otf path")
	rootCmd.AddCommand(badgeCmd)
}

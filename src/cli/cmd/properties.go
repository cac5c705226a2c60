package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sofmeright/crossforge/src/config"
	"github.com/sofmeright/crossforge/src/gitprops"
)

var (
	pRepo           string
	pOutput         string
	pGVersionCompat bool
	pBuildDate      bool
)

var propertiesCmd = &cobra.Command{
	Use:   "properties",
	Short: "Write git build metadata as a properties file",
	Long: `Write git_sha, commit_date, has_uncommited_changes and branch_name for
the repository to a properties file. Nothing is written when HEAD does not
resolve to a commit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := cfg.Properties
		flags := cmd.Flags()
		if flags.Changed("repo") {
			p.Repo = pRepo
		}
		if flags.Changed("output") {
			p.Path = pOutput
		}
		if flags.Changed("gversion-compat") {
			p.GVersionCompat = pGVersionCompat
		}
		if flags.Changed("build-date") {
			p.BuildDate = pBuildDate
		}

		d, err := gitprops.Write(p.Repo, p.Path, propertiesOptions(p))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%s)\n", p.Path, d.SHA)
		return nil
	},
}

func propertiesOptions(p config.PropertiesConfig) gitprops.Options {
	return gitprops.Options{
		GVersionCompat: p.GVersionCompat,
		BuildDate:      p.BuildDate,
	}
}

func init() {
	propertiesCmd.Flags().StringVar(&pRepo, "repo", ".", "git repository path")
	propertiesCmd.Flags().StringVar(&pOutput, "output", "build/git.properties", "properties file path")
	propertiesCmd.Flags().BoolVar(&pGVersionCompat, "gversion-compat", false, "emit git_date and dirty=0|1")
	propertiesCmd.Flags().BoolVar(&pBuildDate, "build-date", false, "add build_date")
	rootCmd.AddCommand(propertiesCmd)
}

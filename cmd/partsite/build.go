package main

import (
	"github.com/spf13/cobra"

	"github.com/takeparts/partsite"
)

func (c *cli) buildCmd() *cobra.Command {
	var skipCheck bool
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Export the feeds, sitemap and search index",
		Long: `build writes feed.xml, rss.xml, sitemap.xml, search-index.json and
tags.json into the output directory. Content is checked first; any error
aborts the build.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !skipCheck {
				if err := c.runCheck(cmd); err != nil {
					return err
				}
			}
			app := partsite.New(c.s.config(), partsite.ViewFuncs{})
			defer app.Close()
			written, err := app.Export(cmd.Context(), c.s.OutDir)
			if err != nil {
				return err
			}
			cmd.Printf("Exported %d files to %s\n", len(written), c.s.OutDir)
			return nil
		},
	}
	cmd.Flags().StringP("out", "o", "dist", "output directory")
	cmd.Flags().BoolVar(&skipCheck, "skip-check", false, "skip content validation")
	_ = c.v.BindPFlag("outDir", cmd.Flags().Lookup("out"))
	return cmd
}

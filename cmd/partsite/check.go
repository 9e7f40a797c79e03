package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/takeparts/partsite/content"
)

// errCheckFailed is returned when content validation finds errors. The
// problems themselves have already been printed.
var errCheckFailed = errors.New("content check failed")

func (c *cli) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate every post file",
		Long: `check parses every file under posts/ and reports missing or malformed
metadata as errors and authoring convention problems as warnings. It exits
non-zero when any error is found.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runCheck(cmd)
		},
	}
}

func (c *cli) runCheck(cmd *cobra.Command) error {
	repo := content.NewDirRepository(c.s.ContentDir, content.WithLogger(content.NewLogger()))
	rep, err := repo.Check(cmd.Context())
	if err != nil {
		return err
	}
	for _, p := range rep.Problems {
		cmd.Println(p.String())
	}
	cmd.Printf("Checked %d files: %d errors, %d warnings\n", rep.Files, rep.Errors(), rep.Warnings())
	if rep.Errors() > 0 {
		return fmt.Errorf("%w: %d errors", errCheckFailed, rep.Errors())
	}
	return nil
}

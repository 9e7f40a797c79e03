package main

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/spf13/cobra"

	"github.com/takeparts/partsite/scaffold"
)

// scaffoldData holds the template variables passed to every scaffold template.
type scaffoldData struct {
	ProjectName string
	SiteName    string
	Date        string // YYYY-MM-DD, also substituted for __DATE__ in file names
}

func (c *cli) newCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new <dir>",
		Short: "Create a new site with sample content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNew(cmd.OutOrStdout(), args[0], time.Now())
		},
	}
}

func runNew(w io.Writer, dir string, now time.Time) error {
	if _, err := os.Stat(dir); err == nil {
		return fmt.Errorf("directory %q already exists", dir)
	}

	name := filepath.Base(filepath.Clean(dir))
	data := scaffoldData{
		ProjectName: name,
		SiteName:    toTitle(name),
		Date:        now.Format("2006-01-02"),
	}

	fmt.Fprintf(w, "Creating new partsite project: %s\n\n", dir)

	root := "templates"
	err := fs.WalkDir(scaffold.Templates, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(root, filepath.FromSlash(path))
		if err != nil {
			return err
		}
		outPath := filepath.Join(dir, relPath)
		outPath = strings.TrimSuffix(outPath, ".tmpl")
		outPath = strings.ReplaceAll(outPath, "__DATE__", data.Date)

		if d.IsDir() {
			return os.MkdirAll(outPath, 0o755)
		}

		src, err := scaffold.Templates.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		tmpl, err := template.New(filepath.Base(path)).Parse(string(src))
		if err != nil {
			return fmt.Errorf("parse template %s: %w", path, err)
		}

		if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
			return err
		}
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create %s: %w", outPath, err)
		}
		defer f.Close()

		if err := tmpl.Execute(f, data); err != nil {
			return fmt.Errorf("execute template %s: %w", path, err)
		}

		fmt.Fprintf(w, "  created %s\n", outPath)
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Done! Next steps:")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  cd %s\n", dir)
	fmt.Fprintln(w, "  partsite check")
	fmt.Fprintln(w, "  partsite serve --watch")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Edit content/config.json for the company profile and add posts under content/posts/.")
	return nil
}

// toTitle converts a hyphenated or lowercase name to a title-case string.
// e.g. "my-site" -> "My Site"
func toTitle(s string) string {
	parts := strings.Split(s, "-")
	for i, p := range parts {
		if len(p) > 0 {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, " ")
}

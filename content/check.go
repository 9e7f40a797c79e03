package content

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// Severity grades a Problem.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// templateFile is the authoring template shipped with new sites; it is exempt
// from the file naming convention.
const templateFile = "blog-post-template.mdx"

const (
	titleMinLength = 5
	titleMaxLength = 100
	excerptMax     = 200
)

var (
	reStrictDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	reDatedName  = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})-(.+)\.mdx?$`)
)

// Problem is one finding of Check.
type Problem struct {
	Path     string   `json:"path"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

func (p Problem) String() string {
	return fmt.Sprintf("%s: %s: %s", p.Path, p.Severity, p.Message)
}

// Report is the outcome of checking every post file.
type Report struct {
	Files    int       `json:"files"`
	Problems []Problem `json:"problems"`
}

// Errors returns the number of error-level problems.
func (r Report) Errors() int {
	n := 0
	for _, p := range r.Problems {
		if p.Severity == SeverityError {
			n++
		}
	}
	return n
}

// Warnings returns the number of warning-level problems.
func (r Report) Warnings() int {
	return len(r.Problems) - r.Errors()
}

// Check lints every file under posts/. It is stricter than GetAllPosts:
// dates must be written as YYYY-MM-DD and authoring conventions are reported
// as warnings. Unpublished posts are checked too.
func (r *Repository) Check(ctx context.Context) (Report, error) {
	paths, err := r.listFiles(PostsDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Report{}, fmt.Errorf("content: %s directory not found", PostsDir)
		}
		return Report{}, fmt.Errorf("content: list %s: %w", PostsDir, err)
	}

	var rep Report
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return Report{}, err
		}
		rep.Files++
		rep.Problems = append(rep.Problems, r.checkFile(p)...)
	}
	sort.SliceStable(rep.Problems, func(i, j int) bool {
		return rep.Problems[i].Path < rep.Problems[j].Path
	})
	return rep, nil
}

func (r *Repository) checkFile(p string) []Problem {
	var out []Problem
	add := func(sev Severity, format string, args ...any) {
		out = append(out, Problem{Path: p, Severity: sev, Message: fmt.Sprintf(format, args...)})
	}

	src, err := fs.ReadFile(r.fsys, p)
	if err != nil {
		add(SeverityError, "read: %v", err)
		return out
	}
	rec, err := ParseRecord(p, src)
	if err != nil {
		add(SeverityError, "metadata: %v", errors.Unwrap(err))
		return out
	}
	m := rec.Meta

	title := strings.TrimSpace(m.Title)
	switch n := utf8.RuneCountInString(title); {
	case n == 0:
		add(SeverityError, "missing required field: title")
	case n < titleMinLength:
		add(SeverityWarning, "title is very short (less than %d characters)", titleMinLength)
	case n > titleMaxLength:
		add(SeverityWarning, "title is very long (over %d characters)", titleMaxLength)
	}

	date := authoredDate(src, m.Date)
	switch {
	case m.Date == nil || date == "":
		add(SeverityError, "missing required field: date")
	case !strictDate(date):
		add(SeverityError, "invalid date %q (must be YYYY-MM-DD)", date)
	}

	if utf8.RuneCountInString(m.Excerpt) > excerptMax {
		add(SeverityWarning, "excerpt is very long (over %d characters)", excerptMax)
	}
	if m.Tags != nil && len(cleanTags(m.Tags)) == 0 {
		add(SeverityWarning, "tags should list at least one tag")
	}
	if m.Published == nil {
		add(SeverityWarning, `consider adding "published" to control visibility`)
	}

	if name := path.Base(p); name != templateFile {
		if mm := reDatedName.FindStringSubmatch(name); mm == nil {
			add(SeverityWarning, "file name should follow YYYY-MM-DD-title.mdx")
		} else if date != "" && mm[1] != date {
			add(SeverityWarning, "file date %s does not match date %s", mm[1], date)
		}
	}

	if strings.TrimSpace(rec.Body) == "" {
		add(SeverityWarning, "no content after metadata")
	}
	return out
}

// strictDate reports whether s is a real calendar date in YYYY-MM-DD form.
func strictDate(s string) bool {
	if !reStrictDate.MatchString(s) {
		return false
	}
	t, err := ParseDate(s)
	return err == nil && t.Format("2006-01-02") == s
}

package content

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// formats lists the accepted metadata delimiters. YAML is the default; TOML
// is accepted for files written by Hugo-style tooling.
var formats = []*frontmatter.Format{
	frontmatter.NewFormat("---", "---", yaml.Unmarshal),
	frontmatter.NewFormat("+++", "+++", toml.Unmarshal),
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006/01/02",
}

var (
	errDateMissing = errors.New("is required")
	errDateInvalid = errors.New("must be a valid date")
)

// Metadata is the loosely typed metadata block as decoded from a file.
// Date stays untyped until validation because YAML and TOML decode it
// differently.
type Metadata struct {
	Title       string   `json:"title" yaml:"title" toml:"title"`
	Slug        string   `json:"slug" yaml:"slug" toml:"slug"`
	Date        any      `json:"date" yaml:"date" toml:"date"`
	Tags        []string `json:"tags" yaml:"tags" toml:"tags"`
	Excerpt     string   `json:"excerpt" yaml:"excerpt" toml:"excerpt"`
	Description string   `json:"description" yaml:"description" toml:"description"`
	Thumbnail   string   `json:"thumbnail" yaml:"thumbnail" toml:"thumbnail"`
	Author      string   `json:"author" yaml:"author" toml:"author"`
	Published   *bool    `json:"published" yaml:"published" toml:"published"`
}

// IsPublished reports whether the record should be visible. A missing
// published field means visible.
func (m Metadata) IsPublished() bool {
	return m.Published == nil || *m.Published
}

// Record is a parsed but not yet validated content file.
type Record struct {
	Path string
	Meta Metadata
	Body string
}

// ParseRecord splits src into its metadata block and body. It fails with a
// *ParseError when the block is missing, unterminated or not valid YAML/TOML.
func ParseRecord(path string, src []byte) (Record, error) {
	var meta Metadata
	body, err := frontmatter.MustParse(bytes.NewReader(src), &meta, formats...)
	if err != nil {
		return Record{}, &ParseError{Path: path, Err: err}
	}
	return Record{Path: path, Meta: meta, Body: string(body)}, nil
}

// ValidatePost checks the fields a post cannot do without.
func (r Record) ValidatePost() error {
	m := r.Meta
	err := validation.ValidateStruct(&m,
		validation.Field(&m.Title, validation.Required.Error("is required")),
		validation.Field(&m.Date, validation.By(func(v interface{}) error {
			_, err := ParseDate(v)
			return err
		})),
	)
	return r.validationError(err)
}

// ValidatePage checks page metadata: title is required and date, when
// present, must parse.
func (r Record) ValidatePage() error {
	m := r.Meta
	err := validation.ValidateStruct(&m,
		validation.Field(&m.Title, validation.Required.Error("is required")),
		validation.Field(&m.Date, validation.By(func(v interface{}) error {
			if v == nil {
				return nil
			}
			if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
				return nil
			}
			_, err := ParseDate(v)
			return err
		})),
	)
	return r.validationError(err)
}

func (r Record) validationError(err error) error {
	if err == nil {
		return nil
	}
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("content: validate %s: %w", r.Path, err)
	}
	fields := make(map[string]string, len(verrs))
	for k, v := range verrs {
		fields[k] = v.Error()
	}
	return &ValidationError{Path: r.Path, Fields: fields}
}

// ParseDate converts a decoded date value into a time. Strings are tried
// against a fixed set of ISO-like layouts; YAML and TOML native dates are
// accepted as-is.
func ParseDate(v any) (time.Time, error) {
	switch d := v.(type) {
	case nil:
		return time.Time{}, errDateMissing
	case string:
		s := strings.TrimSpace(d)
		if s == "" {
			return time.Time{}, errDateMissing
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, nil
			}
		}
		return time.Time{}, errDateInvalid
	case time.Time:
		if d.IsZero() {
			return time.Time{}, errDateMissing
		}
		return d, nil
	case toml.LocalDate:
		return d.AsTime(time.UTC), nil
	case toml.LocalDateTime:
		return d.AsTime(time.UTC), nil
	default:
		return time.Time{}, errDateInvalid
	}
}

// dateString renders a decoded date the way the author wrote it where
// possible, falling back to YYYY-MM-DD.
func dateString(v any, t time.Time) string {
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

// authoredDate returns the date as written in the file. YAML decodes
// unquoted timestamps to time.Time, so those are read back from the source
// node; TOML values keep their own textual form.
func authoredDate(src []byte, v any) string {
	switch d := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(d)
	case toml.LocalDate:
		return d.String()
	case toml.LocalDateTime:
		return d.String()
	case time.Time:
		var raw struct {
			Date yaml.Node `yaml:"date"`
		}
		if _, err := frontmatter.Parse(bytes.NewReader(src), &raw, formats[0]); err == nil && raw.Date.Value != "" {
			return strings.TrimSpace(raw.Date.Value)
		}
		return d.Format(time.RFC3339)
	default:
		return fmt.Sprint(d)
	}
}

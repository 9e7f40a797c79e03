package content

import (
	"fmt"
	"sort"
	"strings"
)

// ParseError reports a content file whose metadata block is missing or
// malformed.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("content: parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError reports a well-formed record whose required fields are
// missing or invalid. Listings treat it as "exclude this entry".
type ValidationError struct {
	Path   string
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return fmt.Sprintf("content: invalid %s: %s", e.Path, strings.Join(parts, "; "))
}

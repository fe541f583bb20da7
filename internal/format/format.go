// Package format turns raw question-file content into canonical questions.
//
// Each supported file format registers a parser in the lookup tables below;
// the extension decides the format exactly once, at the boundary. Parsers
// are tolerant: a malformed record yields a ParseError for that record only
// and never aborts the rest of the file. Only file-level conditions (an
// unparseable JSON document, an unknown extension) are fatal for the file.
package format

import (
	"path/filepath"
	"strings"

	"quiz-practice-service/internal/domain"
)

// Kind enumerates the supported question-file formats.
type Kind string

const (
	// KindText is the delimited plain-text format.
	KindText Kind = "text"
	// KindJSON is the structured list-of-records format.
	KindJSON Kind = "json"
)

// ParseFunc parses one file's content into canonical questions plus
// per-record errors. The returned error is reserved for file-level failures.
type ParseFunc func(content string) ([]domain.Question, []domain.ParseError, error)

var byExtension = map[string]Kind{
	".txt":  KindText,
	".json": KindJSON,
}

var parsers = map[Kind]ParseFunc{
	KindText: ParseText,
	KindJSON: ParseJSON,
}

// Detect resolves the format of a file from its extension.
func Detect(filename string) (Kind, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if kind, ok := byExtension[ext]; ok {
		return kind, nil
	}
	return "", domain.ErrUnsupportedFormat
}

// Parse runs the parser registered for kind.
func Parse(kind Kind, content string) ([]domain.Question, []domain.ParseError, error) {
	fn, ok := parsers[kind]
	if !ok {
		return nil, nil, domain.ErrUnsupportedFormat
	}
	return fn(content)
}

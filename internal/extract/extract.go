// Package extract pulls a single line of state out of an unstructured text file.
package extract

import (
	"bufio"
	"errors"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/systmms/prospectus/pkg/module"
)

// MatchAll is the pattern used when none is configured.
const MatchAll = ".*"

// PatternMatcher reports whether a line holds the wanted state.
type PatternMatcher interface {
	MatchString(line string) bool
	String() string
}

// Extractor scans files for the first line matching a pattern.
type Extractor struct {
	// Module names the owning module in returned configuration errors.
	Module string
}

// New returns an Extractor that attributes its errors to moduleName.
func New(moduleName string) *Extractor {
	return &Extractor{Module: moduleName}
}

// Compile turns pattern into a PatternMatcher. An empty pattern matches every line.
func (e *Extractor) Compile(pattern string) (PatternMatcher, error) {
	if pattern == "" {
		pattern = MatchAll
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, module.InvalidConfigurationError{
			Module: e.Module,
			Key:    "pattern",
			Value:  pattern,
			Err:    err,
		}
	}
	return re, nil
}

// Extract returns the first line of path matching pattern, without its line
// terminator. Reading stops at the first match.
func (e *Extractor) Extract(path, pattern string) (string, error) {
	if path == "" {
		return "", module.MissingConfigurationError{Module: e.Module, Key: "file"}
	}

	matcher, err := e.Compile(pattern)
	if err != nil {
		return "", err
	}

	f, err := os.Open(path)
	if err != nil {
		return "", module.FileError{Op: "open", Path: path, Err: err}
	}
	defer func() { _ = f.Close() }()

	line, found, err := FirstMatch(f, matcher)
	if err != nil {
		return "", module.FileError{Op: "read", Path: path, Err: err}
	}
	if !found {
		return "", module.NoMatchError{File: path, Pattern: matcher.String()}
	}
	return line, nil
}

// FirstMatch reads r line by line and returns the first line accepted by m.
// Lines may be arbitrarily long; only one line is held in memory at a time.
func FirstMatch(r io.Reader, m PatternMatcher) (string, bool, error) {
	br := bufio.NewReader(r)
	for {
		raw, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", false, err
		}
		// ReadString returns "" with io.EOF once the input is exhausted, which must
		// not be mistaken for an empty final line.
		if raw == "" && err != nil {
			return "", false, nil
		}

		line := chomp(raw)
		if m.MatchString(line) {
			return line, true, nil
		}
		if err != nil {
			return "", false, nil
		}
	}
}

// chomp strips one trailing line terminator: "\n", "\r\n" or "\r".
func chomp(s string) string {
	if strings.HasSuffix(s, "\n") {
		s = s[:len(s)-1]
	}
	return strings.TrimSuffix(s, "\r")
}

// Package checks compares the state loaded by modules against expected values.
package checks

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/systmms/prospectus/pkg/module"
)

// ErrorActual is the Actual value of a Result whose load failed.
const ErrorActual = "error"

// Check pairs a configured module with the state it is expected to hold.
type Check struct {
	Name     string
	Module   module.Module
	Expected string
}

// CheckSet defines a group of Checks
type CheckSet []Check

// Result defines the results of executing a Check
type Result struct {
	Name     string           `json:"name" yaml:"name"`
	Module   string           `json:"module" yaml:"module"`
	Actual   string           `json:"actual" yaml:"actual"`
	Expected string           `json:"expected,omitempty" yaml:"expected,omitempty"`
	Error    string           `json:"error,omitempty" yaml:"error,omitempty"`
	Kind     module.ErrorKind `json:"kind,omitempty" yaml:"kind,omitempty"`

	// Err is the load error behind Error, kept for callers that inspect it
	Err error `json:"-" yaml:"-"`
}

// ResultSet defines a group of Results
type ResultSet []Result

// Execute loads the module and returns its Result. Load failures are reported
// in the Result rather than returned.
func (c Check) Execute(ctx context.Context) Result {
	r := Result{
		Name:     c.Name,
		Module:   c.Module.Type(),
		Expected: c.Expected,
	}

	value, err := module.Load(ctx, c.Module)
	if err != nil {
		r.Actual = ErrorActual
		r.Error = err.Error()
		r.Err = err
		r.Kind = module.KindOf(err)
		return r
	}
	r.Actual = value
	return r
}

// Execute runs every Check in order
func (cs CheckSet) Execute(ctx context.Context) ResultSet {
	results := make(ResultSet, len(cs))
	for index, item := range cs {
		results[index] = item.Execute(ctx)
	}
	return results
}

// Failed returns true if the module load failed
func (r Result) Failed() bool {
	return r.Kind != module.KindNone
}

// Matches returns true if the load succeeded and Actual equals Expected. An
// empty Expected accepts any value.
func (r Result) Matches() bool {
	if r.Failed() {
		return false
	}
	return r.Expected == "" || r.Expected == r.Actual
}

// String returns the Result as a human-readable string
func (r Result) String() string {
	if r.Failed() {
		return fmt.Sprintf("%s: %s (%s: %s)", r.Name, r.Actual, r.Kind, r.Error)
	}
	if r.Expected == "" {
		return fmt.Sprintf("%s: %s", r.Name, r.Actual)
	}
	return fmt.Sprintf("%s: %s / %s", r.Name, r.Actual, r.Expected)
}

// Changed filters a ResultSet to only Results which do not match
func (rs ResultSet) Changed() ResultSet {
	var changed ResultSet
	for _, item := range rs {
		if !item.Matches() {
			changed = append(changed, item)
		}
	}
	return changed
}

// JSON returns the ResultSet as an indented JSON document
func (rs ResultSet) JSON() (string, error) {
	if rs == nil {
		rs = ResultSet{}
	}
	data, err := json.MarshalIndent(rs, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// YAML returns the ResultSet as a YAML document
func (rs ResultSet) YAML() (string, error) {
	if rs == nil {
		rs = ResultSet{}
	}
	data, err := yaml.Marshal(rs)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// String returns the ResultSet as human-readable lines
func (rs ResultSet) String() string {
	var b strings.Builder
	for _, item := range rs {
		b.WriteString(item.String())
		b.WriteString("\n")
	}
	return b.String()
}

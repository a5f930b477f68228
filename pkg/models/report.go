package models

import (
	"encoding/json"
	"fmt"
)

// Space is one node of a report tree: a file, function, class, or any other
// named region the upstream tool measured.
type Space struct {
	Name      string   `json:"name"`
	StartLine *uint32  `json:"start_line,omitempty"`
	EndLine   *uint32  `json:"end_line,omitempty"`
	Kind      string   `json:"kind"`
	Spaces    []Space  `json:"spaces,omitempty"`
	Metrics   *Metrics `json:"metrics,omitempty"`
}

// Report is the root space of one parsed report file.
// Only the root metrics take part in summarization; nested spaces are kept
// for the per-file detail views.
type Report struct {
	Space

	// Path is the file the report was loaded from. It is not part of the document.
	Path string `json:"-"`
}

// DecodeError reports a document that is not a well-formed report.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return "decode report: " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ParseReport decodes a report document.
// Unknown fields are ignored and missing fields stay absent.
func ParseReport(data []byte) (*Report, error) {
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, &DecodeError{Err: err}
	}
	return &r, nil
}

// HasMetrics reports whether the root space carries a metrics record.
func (r *Report) HasMetrics() bool {
	return r != nil && r.Metrics != nil
}

// CountSpaces returns the number of spaces in the tree, root included.
func (s *Space) CountSpaces() int {
	n := 1
	for i := range s.Spaces {
		n += s.Spaces[i].CountSpaces()
	}
	return n
}

// Lines returns the line span of the space, or 0 when either bound is absent.
func (s *Space) Lines() uint32 {
	if s.StartLine == nil || s.EndLine == nil || *s.EndLine < *s.StartLine {
		return 0
	}
	return *s.EndLine - *s.StartLine + 1
}

// String returns "kind name" for diagnostics.
func (s *Space) String() string {
	if s.Kind == "" {
		return s.Name
	}
	return fmt.Sprintf("%s %s", s.Kind, s.Name)
}

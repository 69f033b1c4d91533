// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ConversionStatus indicates the outcome of one converter invocation.
type ConversionStatus string

const (
	ConversionDone   ConversionStatus = "converted"
	ConversionFailed ConversionStatus = "failed"
)

// Conversion records a single attempted Markdown-to-HTML conversion.
type Conversion struct {
	// Source is the Markdown file handed to the converter.
	Source string `json:"source" yaml:"source"`

	// Dest is the HTML file the converter was asked to write.
	Dest string `json:"dest" yaml:"dest"`

	Status ConversionStatus `json:"status" yaml:"status"`

	// Error holds the converter failure, empty on success.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`

	Duration time.Duration `json:"duration" yaml:"duration"`
}

// Run records one traversal of a source tree.
type Run struct {
	// ID is assigned by the history store; zero for unrecorded runs.
	ID int64 `json:"id,omitempty" yaml:"id,omitempty"`

	StartedAt  time.Time `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time `json:"finished_at" yaml:"finished_at"`

	Source    string `json:"source" yaml:"source"`
	Dest      string `json:"dest" yaml:"dest"`
	Converter string `json:"converter" yaml:"converter"`

	Converted int `json:"converted" yaml:"converted"`
	Failed    int `json:"failed" yaml:"failed"`

	// CreatedDirs lists destination directories created during the run.
	CreatedDirs []string `json:"created_dirs,omitempty" yaml:"created_dirs,omitempty"`

	// Conversions is in traversal order.
	Conversions []Conversion `json:"conversions,omitempty" yaml:"conversions,omitempty"`

	// Error is set when the run aborted on a traversal or directory error.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Total returns the number of conversions attempted.
func (r *Run) Total() int {
	return r.Converted + r.Failed
}

// HasFailures reports whether any conversion failed.
func (r *Run) HasFailures() bool {
	return r.Failed > 0
}

// Failures returns the failed conversions in traversal order.
func (r *Run) Failures() []Conversion {
	var out []Conversion
	for _, c := range r.Conversions {
		if c.Status == ConversionFailed {
			out = append(out, c)
		}
	}
	return out
}

// Add appends c and updates the counters.
func (r *Run) Add(c Conversion) {
	r.Conversions = append(r.Conversions, c)
	switch c.Status {
	case ConversionDone:
		r.Converted++
	case ConversionFailed:
		r.Failed++
	}
}

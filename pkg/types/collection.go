// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ConversionStatus indicates the outcome of merging one image directory into a PDF.
type ConversionStatus string

const (
	ConversionDone   ConversionStatus = "converted"
	ConversionFailed ConversionStatus = "failed"
)

// FailureReason says which stage of a collection conversion failed.
type FailureReason string

const (
	ReasonNone     FailureReason = ""
	ReasonNoImages FailureReason = "no_images"
	ReasonDecode   FailureReason = "decode"
	ReasonWrite    FailureReason = "write"
	ReasonName     FailureReason = "name"
)

// Collection is one discovered image directory and where its PDF goes.
type Collection struct {
	// Dir is the directory holding the page images.
	Dir string `json:"dir" yaml:"dir"`

	// Name is the collection title derived from the path of Dir.
	Name string `json:"name" yaml:"name"`

	// OutputPath is <root>/<Name>.pdf.
	OutputPath string `json:"output" yaml:"output"`
}

// ConversionResult is the outcome of converting a single Collection.
// Callers must check Status (or OK) rather than assume success.
type ConversionResult struct {
	Collection Collection       `json:"collection" yaml:"collection"`
	Status     ConversionStatus `json:"status" yaml:"status"`
	Reason     FailureReason    `json:"reason,omitempty" yaml:"reason,omitempty"`
	Err        error            `json:"-" yaml:"-"`

	// Pages is the number of pages written; zero on failure.
	Pages int `json:"pages" yaml:"pages"`

	// Files lists the source images in page order.
	Files []string `json:"files,omitempty" yaml:"files,omitempty"`
}

// OK reports whether the collection was written.
func (r ConversionResult) OK() bool {
	return r.Status == ConversionDone
}

// ErrorText returns the failure message, or "" when there is none.
func (r ConversionResult) ErrorText() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

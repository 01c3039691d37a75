package errors

import (
	"fmt"
)

// Code identifies the category of an analytics error
type Code string

const (
	// CodeSchema indicates a required input column is missing. Fatal: the
	// run cannot proceed without it.
	CodeSchema Code = "SCHEMA_ERROR"
	// CodeDataQuality indicates rows that could not be parsed. Recovered by
	// dropping the rows and counting them.
	CodeDataQuality Code = "DATA_QUALITY"
	// CodeSegmentation indicates an RFM score combination with no segment
	// mapping. Recovered by assigning the default label.
	CodeSegmentation Code = "SEGMENTATION_ERROR"
	// CodeDivisionGuard indicates a zero-denominator ratio. Recovered by
	// excluding the affected group.
	CodeDivisionGuard Code = "DIVISION_GUARD"
)

// AnalyticsError represents a structured pipeline error
type AnalyticsError struct {
	Code    Code        `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *AnalyticsError) Error() string {
	if e.Details != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Fatal reports whether the error aborts the run. Only schema errors are
// fatal; everything else is recovered and reported as a diagnostic.
func (e *AnalyticsError) Fatal() bool {
	return e.Code == CodeSchema
}

// New creates a new AnalyticsError with the given code and message
func New(code Code, message string) *AnalyticsError {
	return &AnalyticsError{Code: code, Message: message}
}

// NewWithDetails creates a new AnalyticsError with additional details
func NewWithDetails(code Code, message string, details interface{}) *AnalyticsError {
	return &AnalyticsError{Code: code, Message: message, Details: details}
}

// Helper constructors for specific error kinds

// SchemaError reports a missing required input column
func SchemaError(column string) *AnalyticsError {
	return NewWithDetails(CodeSchema, fmt.Sprintf("required column %q not found", column), column)
}

// DataQualityError reports an unparseable row value
func DataQualityError(field string, err error) *AnalyticsError {
	return NewWithDetails(CodeDataQuality, fmt.Sprintf("unparseable %s", field), err.Error())
}

// SegmentationError reports an RFM combination with no segment mapping
func SegmentationError(scoreKey string) *AnalyticsError {
	return NewWithDetails(CodeSegmentation, fmt.Sprintf("no segment mapping for score %q", scoreKey), scoreKey)
}

// DivisionGuardError reports a zero denominator in a ratio computation
func DivisionGuardError(group string) *AnalyticsError {
	return NewWithDetails(CodeDivisionGuard, fmt.Sprintf("zero denominator for group %q", group), group)
}

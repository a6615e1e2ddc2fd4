// pkg/model/errors.go
package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies ingestion failures
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	// KindConfiguration is a missing or invalid parameter or secret
	KindConfiguration
	// KindAcquisition is a failed fetch from the selected source
	KindAcquisition
	// KindParse is malformed delimited input
	KindParse
	// KindSchema is a required column missing from the dataset
	KindSchema
	// KindTransform is any other failure while filtering, recoding or splitting
	KindTransform
	// KindPersistence is a failed write of the output files
	KindPersistence
)

// Sentinels for errors.Is
var (
	ErrConfiguration = errors.New("configuration error")
	ErrAcquisition   = errors.New("acquisition error")
	ErrParse         = errors.New("parse error")
	ErrSchema        = errors.New("schema error")
	ErrTransform     = errors.New("transform error")
	ErrPersistence   = errors.New("persistence error")
)

// String returns a string representation of the error kind
func (k ErrorKind) String() string {
	switch k {
	case KindConfiguration:
		return "ConfigurationError"
	case KindAcquisition:
		return "AcquisitionError"
	case KindParse:
		return "ParseError"
	case KindSchema:
		return "SchemaError"
	case KindTransform:
		return "TransformError"
	case KindPersistence:
		return "PersistenceError"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindConfiguration:
		return ErrConfiguration
	case KindAcquisition:
		return ErrAcquisition
	case KindParse:
		return ErrParse
	case KindSchema:
		return ErrSchema
	case KindTransform:
		return ErrTransform
	case KindPersistence:
		return ErrPersistence
	default:
		return nil
	}
}

// StageError is a classified failure raised by one pipeline stage
type StageError struct {
	Kind  ErrorKind
	Stage string // acquire, transform, partition, persist, ...
	Input string // URL, object key or path the stage was working on
	Err   error
}

// NewStageError creates a StageError wrapping err
func NewStageError(kind ErrorKind, stage string, err error) *StageError {
	return &StageError{Kind: kind, Stage: stage, Err: err}
}

// WithInput adds the offending input to the error
func (e *StageError) WithInput(input string) *StageError {
	e.Input = input
	return e
}

func (e *StageError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("[%s] %s", e.Kind, e.Stage))
	if e.Input != "" {
		sb.WriteString(fmt.Sprintf(" (%s)", e.Input))
	}
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the error's kind
func (e *StageError) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// KindOf returns the kind of the first StageError in err's chain
func KindOf(err error) ErrorKind {
	var se *StageError
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindUnknown
}

// StageOf returns the stage of the first StageError in err's chain
func StageOf(err error) string {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage
	}
	return ""
}

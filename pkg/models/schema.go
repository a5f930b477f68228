package models

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed report.schema.json
var reportSchema []byte

const reportSchemaURL = "report.schema.json"

// SchemaError reports a document that decodes as JSON but does not have the
// shape of a report.
type SchemaError struct {
	Err error
}

func (e *SchemaError) Error() string {
	return "report schema: " + e.Err.Error()
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// Validator checks documents against the embedded report schema.
// It is safe for concurrent use.
type Validator struct {
	schema *jsonschema.Schema
}

var (
	defaultValidator    *Validator
	defaultValidatorErr error
	validatorOnce       sync.Once
)

// NewValidator compiles the embedded report schema.
func NewValidator() (*Validator, error) {
	validatorOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(reportSchema))
		if err != nil {
			defaultValidatorErr = fmt.Errorf("parse report schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(reportSchemaURL, doc); err != nil {
			defaultValidatorErr = fmt.Errorf("add report schema: %w", err)
			return
		}
		sch, err := c.Compile(reportSchemaURL)
		if err != nil {
			defaultValidatorErr = fmt.Errorf("compile report schema: %w", err)
			return
		}
		defaultValidator = &Validator{schema: sch}
	})
	return defaultValidator, defaultValidatorErr
}

// Validate checks data against the schema. Malformed JSON yields a
// *DecodeError, a shape violation a *SchemaError.
func (v *Validator) Validate(data []byte) error {
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return &DecodeError{Err: err}
	}
	if err := v.schema.Validate(inst); err != nil {
		return &SchemaError{Err: err}
	}
	return nil
}

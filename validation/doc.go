// Package validation provides input validation utilities for the automl
// library. It supports struct tag validation (using go-playground/validator)
// for loaded pipeline definitions, and programmatic validation with error
// collection for ad-hoc checks.
//
// # Struct Tag Validation
//
//	type NodeDef struct {
//	    Name      string `validate:"required,identifier"`
//	    Component string `validate:"required,identifier"`
//	}
//	err := validation.Validate(def)
//
// The custom "identifier" tag accepts node and component names that are safe
// to use inside edge references.
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Required("name", name).OneOf("kind", kind, []string{"transformer", "estimator"})
//	err := v.Validate()
package validation

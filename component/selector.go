package component

import (
	"fmt"

	"github.com/kbukum/automl/frame"
)

// SelectColumns projects the input down to a fixed set of columns.
type SelectColumns struct {
	columns []string
	fitted  bool
}

// NewSelectColumns creates a SelectColumns transformer.
// Parameters: "columns" is the list of column names to keep.
func NewSelectColumns(params Parameters) (Component, error) {
	cols, err := paramStrings(params, "columns")
	if err != nil {
		return nil, invalidParams("SelectColumns", err)
	}
	if len(cols) == 0 {
		return nil, invalidParams("SelectColumns", fmt.Errorf("columns must not be empty"))
	}
	return &SelectColumns{columns: cols}, nil
}

func (c *SelectColumns) Name() string { return "SelectColumns" }

// Fit verifies the configured columns exist in the input.
func (c *SelectColumns) Fit(X frame.Frame, _ frame.Target) error {
	for _, name := range c.columns {
		if _, ok := X.Column(name); !ok {
			return fmt.Errorf("select columns: column %q not present in input", name)
		}
	}
	c.fitted = true
	return nil
}

// Transform returns only the configured columns.
func (c *SelectColumns) Transform(X frame.Frame, y frame.Target) (frame.Frame, frame.Target, error) {
	if !c.fitted {
		return frame.Frame{}, nil, notFitted("SelectColumns", "transform")
	}
	out, err := X.Select(c.columns...)
	if err != nil {
		return frame.Frame{}, nil, err
	}
	return out, y, nil
}

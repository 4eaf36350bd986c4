// Package query evaluates jq filter expressions against decoded JSON
// values, used to pre-filter input data before schema inference.
package query

import (
	"errors"
	"fmt"
	"strings"

	"github.com/itchyny/gojq"

	"github.com/erraggy/schematools/schemaerrors"
)

// DefaultMaxResults caps the number of values a filter may produce.
const DefaultMaxResults = 1000

// Engine evaluates jq expressions. The zero value is usable and
// applies DefaultMaxResults.
type Engine struct {
	// MaxResults limits how many values one evaluation may emit.
	// Zero means DefaultMaxResults; negative means unlimited.
	MaxResults int
}

// New creates an Engine with default limits.
func New() *Engine {
	return &Engine{}
}

// Apply evaluates expression against a decoded JSON value and returns
// every value the filter emits, in order. Null outputs are skipped. A
// parse, compile, or runtime failure returns a *schemaerrors.
// FilterError; a filter that emits nothing at all is also an error,
// since there would be no data left to work with.
func (e *Engine) Apply(expression string, input any) ([]any, error) {
	code, err := e.compile(expression)
	if err != nil {
		return nil, err
	}

	limit := e.MaxResults
	if limit == 0 {
		limit = DefaultMaxResults
	}

	var values []any
	iter := code.Run(input)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if runErr, isErr := v.(error); isErr {
			return nil, &schemaerrors.FilterError{
				Expression: expression,
				Message:    formatRunError(runErr),
				Cause:      runErr,
			}
		}
		if v == nil {
			continue
		}
		values = append(values, v)
		if limit > 0 && len(values) >= limit {
			break
		}
	}

	if len(values) == 0 {
		return nil, &schemaerrors.FilterError{
			Expression: expression,
			Message:    "expression produced no values",
		}
	}
	return values, nil
}

// Validate checks an expression without evaluating it.
func (e *Engine) Validate(expression string) error {
	_, err := e.compile(expression)
	return err
}

func (e *Engine) compile(expression string) (*gojq.Code, error) {
	parsed, err := gojq.Parse(expression)
	if err != nil {
		msg := "parse failed"
		var parseErr *gojq.ParseError
		if errors.As(err, &parseErr) {
			msg = fmt.Sprintf("parse failed at offset %d", parseErr.Offset)
		}
		return nil, &schemaerrors.FilterError{
			Expression: expression,
			Message:    msg,
			Cause:      err,
		}
	}
	code, err := gojq.Compile(parsed)
	if err != nil {
		return nil, &schemaerrors.FilterError{
			Expression: expression,
			Message:    "compile failed",
			Cause:      err,
		}
	}
	return code, nil
}

// formatRunError adds hints for common jq runtime errors. gojq reports
// these as plain errors, so string matching decorates the display
// message only.
func formatRunError(err error) string {
	var haltErr *gojq.HaltError
	if errors.As(err, &haltErr) {
		if haltErr.Value() == nil {
			return "query halted"
		}
		return fmt.Sprintf("query halted with: %v", haltErr.Value())
	}

	errStr := err.Error()
	var hint string
	switch {
	case strings.Contains(errStr, "cannot iterate over: null"):
		hint = " (the path may not exist in this input)"
	case strings.Contains(errStr, "cannot index") && strings.Contains(errStr, "with"):
		hint = " (field not found or wrong type)"
	case strings.Contains(errStr, "object") && strings.Contains(errStr, "cannot be iterated"):
		hint = " (expected array but got object, try removing '[]')"
	case strings.Contains(errStr, "array") && strings.Contains(errStr, "cannot be indexed"):
		hint = " (expected object but got array, try adding '[]')"
	}
	return errStr + hint
}

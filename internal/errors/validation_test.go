package errors

import (
	"reflect"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestValidationError(t *testing.T) {
	// Test NewValidationError
	err := NewValidationError("test_field", "test message", "test_value")

	if err.Field != "test_field" {
		t.Errorf("Expected field to be 'test_field', got '%s'", err.Field)
	}

	if err.Message != "test message" {
		t.Errorf("Expected message to be 'test message', got '%s'", err.Message)
	}

	if err.Value != "test_value" {
		t.Errorf("Expected value to be 'test_value', got '%v'", err.Value)
	}

	// Test Error method
	expected := "validation error on field 'test_field': test message"
	if err.Error() != expected {
		t.Errorf("Expected error message to be '%s', got '%s'", expected, err.Error())
	}
}

func TestValidationErrors(t *testing.T) {
	// Test empty ValidationErrors
	var errs ValidationErrors
	if errs.Error() != "validation failed" {
		t.Errorf("Expected 'validation failed' for empty errors, got '%s'", errs.Error())
	}

	// Test single ValidationError
	errs = append(errs, *NewValidationError("field1", "message1", nil))
	expected := "validation failed: field1 message1"
	if errs.Error() != expected {
		t.Errorf("Expected '%s' for single error, got '%s'", expected, errs.Error())
	}

	// Test multiple ValidationErrors
	errs = append(errs, *NewValidationError("field2", "message2", nil))
	expected = "validation failed: 2 field errors"
	if errs.Error() != expected {
		t.Errorf("Expected '%s' for multiple errors, got '%s'", expected, errs.Error())
	}
}

type sampleRequest struct {
	Title  string `json:"title" validate:"required,min=10"`
	Points int    `json:"points" validate:"gte=0"`
}

func TestToValidationErrors(t *testing.T) {
	validate := validator.New()

	err := validate.Struct(sampleRequest{Title: "short", Points: -1})
	errs := ToValidationErrors(err)

	if len(errs) != 2 {
		t.Fatalf("Expected 2 errors, got %d", len(errs))
	}

	if errs[0].Rule != "min" || errs[0].Message != "must be at least 10" {
		t.Errorf("Unexpected first error: %+v", errs[0])
	}

	if errs[1].Rule != "gte" || errs[1].Message != "must be greater than or equal to 0" {
		t.Errorf("Unexpected second error: %+v", errs[1])
	}

	if errs[0].Field != "Title" {
		t.Errorf("Expected field 'Title', got '%s'", errs[0].Field)
	}

	if got := ToValidationErrors(nil); len(got) != 0 {
		t.Errorf("Expected no errors for nil input, got %d", len(got))
	}
}

type sampleBatch struct {
	Items []sampleRequest `json:"items" validate:"dive"`
}

func TestToValidationErrors_UsesJSONFieldNames(t *testing.T) {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	})

	err := validate.Struct(sampleBatch{Items: []sampleRequest{{Title: "long enough title", Points: -3}}})
	errs := ToValidationErrors(err)

	if len(errs) != 1 {
		t.Fatalf("Expected 1 error, got %d", len(errs))
	}
	if errs[0].Field != "points" {
		t.Errorf("Expected json field name 'points', got '%s'", errs[0].Field)
	}
}

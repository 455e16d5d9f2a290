package models

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

// fieldLabels maps struct field names to the labels used in error messages.
var fieldLabels = map[string]string{
	"Title":       "Title",
	"Description": "Description",
	"ImageURL":    "Image URL",
}

// ValidationError lists every problem found in a request body.
type ValidationError struct {
	Errors []string `json:"errors"`
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Errors, "; ")
}

// Validate checks the required fields of a create request.
func (r CreateProjectRequest) Validate() error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	ve := &ValidationError{}
	for _, fe := range fieldErrs {
		label, ok := fieldLabels[fe.StructField()]
		if !ok {
			label = fe.StructField()
		}
		ve.Errors = append(ve.Errors, label+" is required")
	}
	return ve
}

// Validate rejects required fields that are present but empty. Whitespace is
// a value, as it is on create.
func (u UpdateProjectRequest) Validate() error {
	ve := &ValidationError{}
	check := func(name string, v *string) {
		if v != nil && *v == "" {
			ve.Errors = append(ve.Errors, fieldLabels[name]+" cannot be empty")
		}
	}
	check("Title", u.Title)
	check("Description", u.Description)
	check("ImageURL", u.ImageURL)
	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

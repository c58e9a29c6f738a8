package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// BookInput carries one full set of form field values for a save. Genres
// arrive as a list; splitting a comma-separated field is a presentation
// concern (see SplitGenres).
type BookInput struct {
	Title           string `validate:"required"`
	AuthorGivenName string
	AuthorSurname   string `validate:"required"`
	PublisherName   string
	PublisherCity   string
	Year            *int `validate:"omitempty,gte=0,lte=9999"`
	PageCount       *int `validate:"omitempty,gt=0"`
	Description     string
	Genres          []string
	NewCoverPath    string
}

// FieldError names one rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError reports input rejected before any persistence was
// attempted. It is distinct from persistence errors, which indicate a failed
// (and rolled back) transaction.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" "+f.Message)
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// IsValidationError reports whether err is an input validation failure and
// returns it when so.
func IsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// Validate checks the input and returns a *ValidationError listing every
// rejected field, or nil. Required fields are trimmed before the rules run,
// so whitespace-only input fails required the same way empty input does.
func (in BookInput) Validate() error {
	in.Title = strings.TrimSpace(in.Title)
	in.AuthorSurname = strings.TrimSpace(in.AuthorSurname)

	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate book input: %w", err)
	}

	ve := &ValidationError{}
	for _, fe := range verrs {
		ve.Fields = append(ve.Fields, FieldError{
			Field:   fe.Field(),
			Message: messageFor(fe),
		})
	}
	return ve
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gte", "lte":
		return "is out of range"
	case "gt":
		return "must be positive"
	default:
		return "is invalid"
	}
}

// SplitAuthorName splits a full author string the way the entry form
// presents it: the last whitespace-separated token is the surname, the rest
// is the given name.
func SplitAuthorName(full string) (surname, givenName string) {
	parts := strings.Fields(full)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	default:
		return parts[len(parts)-1], strings.Join(parts[:len(parts)-1], " ")
	}
}

// ParsePublisher splits a "Name, City" field into its parts. Only the first
// comma separates; the city may itself be empty.
func ParsePublisher(input string) (name, city string) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", ""
	}
	parts := strings.SplitN(input, ",", 2)
	name = strings.TrimSpace(parts[0])
	if len(parts) > 1 {
		city = strings.TrimSpace(parts[1])
	}
	return name, city
}

// SplitGenres turns a comma-separated genre field into a list, dropping
// blank entries. Case-insensitive deduplication happens at save time.
func SplitGenres(csv string) []string {
	var out []string
	for _, part := range strings.Split(csv, ",") {
		if name := strings.TrimSpace(part); name != "" {
			out = append(out, name)
		}
	}
	return out
}

package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/xeipuuv/gojsonschema"
)

// FieldError is one violation at a JSON path such as "basics.email".
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError reports model output that is not valid JSON or does not
// satisfy the profile schema. Raw carries the text that was checked.
type ValidationError struct {
	Raw    string
	Errors []FieldError
	cause  error
}

func (e *ValidationError) Error() string {
	return "profile validation failed: " + e.Detail()
}

// Detail is a single-line summary of the violations.
func (e *ValidationError) Detail() string {
	if len(e.Errors) == 0 {
		if e.cause != nil {
			return e.cause.Error()
		}
		return "invalid profile"
	}
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return e.cause
}

var (
	schemaCompileOnce sync.Once
	compiledSchema    *gojsonschema.Schema
	schemaDoc         map[string]any
	compileErr        error

	validate = newValidator()
)

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := jsonName(f)
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func loadSchema() (*gojsonschema.Schema, error) {
	schemaCompileOnce.Do(func() {
		doc := JSONSchema()
		if compileErr = json.Unmarshal(doc, &schemaDoc); compileErr != nil {
			return
		}
		compiledSchema, compileErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(doc))
	})
	return compiledSchema, compileErr
}

// Parse validates raw model output and returns the typed profile. Missing
// arrays become empty, missing optional scalars stay nil and unknown keys are
// dropped. Any violation rejects the whole document with *ValidationError.
func Parse(raw string) (Profile, error) {
	var parsed any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return Profile{}, &ValidationError{
			Raw:    raw,
			Errors: []FieldError{{Field: "(root)", Message: "invalid JSON: " + err.Error()}},
			cause:  err,
		}
	}

	schema, err := loadSchema()
	if err != nil {
		return Profile{}, fmt.Errorf("compile profile schema: %w", err)
	}
	result, err := schema.Validate(gojsonschema.NewGoLoader(parsed))
	if err != nil {
		return Profile{}, &ValidationError{Raw: raw, cause: err}
	}
	if !result.Valid() {
		verr := &ValidationError{Raw: raw, Errors: make([]FieldError, 0, len(result.Errors()))}
		for _, desc := range result.Errors() {
			field := desc.Field()
			if field == "" {
				field = "(root)"
			}
			verr.Errors = append(verr.Errors, FieldError{Field: field, Message: desc.Description()})
		}
		return Profile{}, verr
	}

	// The schema matched keys by exact case; encoding/json would not.
	known, err := json.Marshal(dropUnknown(parsed, schemaDoc))
	if err != nil {
		return Profile{}, &ValidationError{Raw: raw, cause: err}
	}
	var p Profile
	if err := json.Unmarshal(known, &p); err != nil {
		return Profile{}, &ValidationError{
			Raw:    raw,
			Errors: []FieldError{{Field: "(root)", Message: err.Error()}},
			cause:  err,
		}
	}
	p.Normalize()

	if err := validate.Struct(&p); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return Profile{}, &ValidationError{Raw: raw, cause: err}
		}
		verr := &ValidationError{Raw: raw, cause: err, Errors: make([]FieldError, 0, len(fieldErrs))}
		for _, fe := range fieldErrs {
			verr.Errors = append(verr.Errors, FieldError{Field: fieldPath(fe.Namespace()), Message: ruleMessage(fe)})
		}
		return Profile{}, verr
	}
	return p, nil
}

// dropUnknown removes object keys that are not declared, with exact case, in
// the matching schema node's properties.
func dropUnknown(v any, node map[string]any) any {
	switch val := v.(type) {
	case map[string]any:
		props, _ := node["properties"].(map[string]any)
		out := make(map[string]any, len(val))
		for k, child := range val {
			sub, ok := props[k].(map[string]any)
			if !ok {
				continue
			}
			out[k] = dropUnknown(child, sub)
		}
		return out
	case []any:
		items, _ := node["items"].(map[string]any)
		out := make([]any, len(val))
		for i, child := range val {
			out[i] = dropUnknown(child, items)
		}
		return out
	default:
		return v
	}
}

// fieldPath drops the root type name: "Profile.basics.email" -> "basics.email".
func fieldPath(ns string) string {
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	default:
		return "failed " + fe.Tag()
	}
}

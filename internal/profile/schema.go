package profile

import (
	"encoding/json"
	"reflect"
	"strings"
	"sync"
)

const schemaDraft = "http://json-schema.org/draft-07/schema#"

var (
	schemaOnce  sync.Once
	schemaBytes []byte
	outlineOnce sync.Once
	outline     string
)

// JSONSchema returns the draft-07 JSON Schema document for Profile. The
// document is derived from the struct tags, so it cannot drift from the
// types the validator decodes into.
func JSONSchema() []byte {
	schemaOnce.Do(func() {
		doc := schemaFor(reflect.TypeOf(Profile{}))
		doc["$schema"] = schemaDraft
		doc["title"] = "Profile"
		b, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			panic("profile: marshal schema: " + err.Error())
		}
		schemaBytes = b
	})
	out := make([]byte, len(schemaBytes))
	copy(out, schemaBytes)
	return out
}

// FieldOutline returns the compact field list used in extraction prompts,
// e.g. basics{firstName,lastName,...}, education[{school,...}], skills[].
func FieldOutline() string {
	outlineOnce.Do(func() {
		t := reflect.TypeOf(Profile{})
		parts := make([]string, 0, t.NumField())
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			parts = append(parts, outlineField(jsonName(f), f.Type))
		}
		outline = strings.Join(parts, ", ")
	})
	return outline
}

func outlineField(name string, t reflect.Type) string {
	switch t.Kind() {
	case reflect.Struct:
		return name + "{" + outlineStruct(t) + "}"
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Struct {
			return name + "[{" + outlineStruct(t.Elem()) + "}]"
		}
		return name + "[]"
	default:
		return name
	}
}

func outlineStruct(t reflect.Type) string {
	parts := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		parts = append(parts, outlineField(jsonName(f), f.Type))
	}
	return strings.Join(parts, ",")
}

func schemaFor(t reflect.Type) map[string]any {
	switch t.Kind() {
	case reflect.Struct:
		props := make(map[string]any, t.NumField())
		required := make([]string, 0, t.NumField())
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			name := jsonName(f)
			prop := fieldSchema(f)
			if desc := f.Tag.Get("desc"); desc != "" {
				prop["description"] = desc
			}
			props[name] = prop
			// pointers are nullable and slices default to [], anything else must be present
			if f.Type.Kind() != reflect.Ptr && f.Type.Kind() != reflect.Slice {
				required = append(required, name)
			}
		}
		doc := map[string]any{
			"type":       "object",
			"properties": props,
		}
		if len(required) > 0 {
			doc["required"] = required
		}
		return doc
	case reflect.Slice:
		return map[string]any{
			"type":    "array",
			"items":   schemaFor(t.Elem()),
			"default": []any{},
		}
	case reflect.Ptr:
		inner := schemaFor(t.Elem())
		inner["type"] = []string{inner["type"].(string), "null"}
		return inner
	default:
		return map[string]any{"type": "string"}
	}
}

func fieldSchema(f reflect.StructField) map[string]any {
	prop := schemaFor(f.Type)
	for _, rule := range strings.Split(f.Tag.Get("validate"), ",") {
		switch rule {
		case "required":
			prop["minLength"] = 1
		case "email":
			prop["format"] = "email"
		case "url":
			prop["format"] = "uri"
		}
	}
	return prop
}

func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" {
		return f.Name
	}
	return name
}

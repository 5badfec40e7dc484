package profile

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldOutline(t *testing.T) {
	want := "basics{firstName,lastName,email,phone,address,linkedin,github,website}, " +
		"education[{school,degree,start,end}], " +
		"experience[{company,title,start,end,bullets[]}], " +
		"projects[{name,description,skills[]}], " +
		"skills[]"
	assert.Equal(t, want, FieldOutline())
}

func TestJSONSchemaShape(t *testing.T) {
	var doc map[string]any
	require.NoError(t, json.Unmarshal(JSONSchema(), &doc))

	assert.Equal(t, schemaDraft, doc["$schema"])
	assert.Equal(t, "object", doc["type"])
	assert.ElementsMatch(t, []any{"basics"}, doc["required"])

	props := doc["properties"].(map[string]any)
	basics := props["basics"].(map[string]any)
	assert.ElementsMatch(t, []any{"firstName", "lastName"}, basics["required"])

	basicProps := basics["properties"].(map[string]any)
	first := basicProps["firstName"].(map[string]any)
	assert.Equal(t, "string", first["type"])
	assert.EqualValues(t, 1, first["minLength"])

	email := basicProps["email"].(map[string]any)
	assert.Equal(t, []any{"string", "null"}, email["type"])
	assert.Equal(t, "email", email["format"])
	assert.Equal(t, "uri", basicProps["website"].(map[string]any)["format"])
	assert.NotContains(t, basicProps["phone"].(map[string]any), "format")

	experience := props["experience"].(map[string]any)
	assert.Equal(t, "array", experience["type"])
	assert.Equal(t, []any{}, experience["default"])
	item := experience["items"].(map[string]any)
	assert.ElementsMatch(t, []any{"company"}, item["required"])
	bullets := item["properties"].(map[string]any)["bullets"].(map[string]any)
	assert.Equal(t, "string", bullets["items"].(map[string]any)["type"])
}

func TestJSONSchemaReturnsCopy(t *testing.T) {
	a := JSONSchema()
	a[0] = 'x'
	assert.NotEqual(t, a[0], JSONSchema()[0])
}

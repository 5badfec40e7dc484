package profile

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_MinimalRequiredFieldsGetDefaults(t *testing.T) {
	p, err := Parse(`{"basics":{"firstName":"Ada","lastName":"Lovelace"}}`)
	require.NoError(t, err)

	assert.Equal(t, "Ada", p.Basics.FirstName)
	assert.Equal(t, "Lovelace", p.Basics.LastName)
	assert.Nil(t, p.Basics.Email)
	assert.Nil(t, p.Basics.Website)
	assert.NotNil(t, p.Education)
	assert.Empty(t, p.Education)
	assert.NotNil(t, p.Experience)
	assert.NotNil(t, p.Projects)
	assert.NotNil(t, p.Skills)

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"basics": {"firstName":"Ada","lastName":"Lovelace","email":null,"phone":null,"address":null,"linkedin":null,"github":null,"website":null},
		"education": [],
		"experience": [],
		"projects": [],
		"skills": []
	}`, string(out))
}

func TestParse_NestedArraysDefaultToEmpty(t *testing.T) {
	p, err := Parse(`{
		"basics":{"firstName":"Ada","lastName":"Lovelace"},
		"education":[{"school":"Cambridge"}],
		"experience":[{"company":"Analytical Engines","title":null}],
		"projects":[{"name":"Notes"}]
	}`)
	require.NoError(t, err)

	require.Len(t, p.Education, 1)
	assert.Equal(t, "Cambridge", p.Education[0].School)
	assert.Nil(t, p.Education[0].Degree)
	require.Len(t, p.Experience, 1)
	assert.Nil(t, p.Experience[0].Title)
	assert.NotNil(t, p.Experience[0].Bullets)
	assert.Empty(t, p.Experience[0].Bullets)
	require.Len(t, p.Projects, 1)
	assert.NotNil(t, p.Projects[0].Skills)
}

func TestParse_FullProfileRoundTrip(t *testing.T) {
	raw := `{
		"basics":{"firstName":"Jane","lastName":"Doe","email":"jane@example.com","phone":"+1 555 0100","address":"Austin, TX","linkedin":"in/janedoe","github":"janedoe","website":"https://jane.dev"},
		"education":[{"school":"MIT","degree":"BSc Computer Science","start":"2012","end":"2016"}],
		"experience":[{"company":"Acme","title":"Engineer","start":"Jan 2019","end":"Present","bullets":["Shipped billing","Cut p99 by 40%"]}],
		"projects":[{"name":"resume-parser","description":"CLI tool","skills":["Go","Postgres"]}],
		"skills":["Go","Kubernetes"]
	}`
	p, err := Parse(raw)
	require.NoError(t, err)

	out, err := json.Marshal(p)
	require.NoError(t, err)
	again, err := Parse(string(out))
	require.NoError(t, err)
	assert.Equal(t, p, again)
	assert.Equal(t, "jane@example.com", *again.Basics.Email)
	assert.Equal(t, []string{"Shipped billing", "Cut p99 by 40%"}, again.Experience[0].Bullets)
}

func TestParse_UnknownKeysAreDropped(t *testing.T) {
	p, err := Parse(`{"basics":{"firstName":"A","lastName":"B","nickname":"x"},"hobbies":["chess"]}`)
	require.NoError(t, err)

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "hobbies")
	assert.NotContains(t, string(out), "nickname")
}

func TestParse_KeysMatchExactCase(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "phone in title case", raw: `{"basics":{"firstName":"Ada","lastName":"Lovelace","Phone":"555-0100"}}`},
		{name: "email in upper case with wrong type", raw: `{"basics":{"firstName":"Ada","lastName":"Lovelace","EMAIL":5}}`},
		{name: "empty first name in title case", raw: `{"basics":{"firstName":"Ada","lastName":"Lovelace","FirstName":""}}`},
		{name: "nested bullets in upper case", raw: `{"basics":{"firstName":"Ada","lastName":"Lovelace"},"experience":[{"company":"Acme","BULLETS":"x"}]}`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			p, err := Parse(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, "Ada", p.Basics.FirstName)
			assert.Nil(t, p.Basics.Phone)
			assert.Nil(t, p.Basics.Email)
			for _, e := range p.Experience {
				assert.Equal(t, []string{}, e.Bullets)
			}
		})
	}
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		field string
	}{
		{name: "not json", raw: "not json at all", field: "(root)"},
		{name: "truncated json", raw: `{"basics":{"firstName":"A"`, field: "(root)"},
		{name: "array root", raw: `[]`, field: "(root)"},
		{name: "missing basics", raw: `{}`, field: "basics"},
		{name: "missing first name", raw: `{"basics":{"lastName":"B"}}`, field: "firstName"},
		{name: "empty first name", raw: `{"basics":{"firstName":"","lastName":"B"}}`, field: "basics.firstName"},
		{name: "email not an email", raw: `{"basics":{"firstName":"A","lastName":"B","email":"not-an-email"}}`, field: "basics.email"},
		{name: "empty email", raw: `{"basics":{"firstName":"A","lastName":"B","email":""}}`, field: "basics.email"},
		{name: "website not a url", raw: `{"basics":{"firstName":"A","lastName":"B","website":"jane dot dev"}}`, field: "basics.website"},
		{name: "skills wrong type", raw: `{"basics":{"firstName":"A","lastName":"B"},"skills":"Go"}`, field: "skills"},
		{name: "skills null", raw: `{"basics":{"firstName":"A","lastName":"B"},"skills":null}`, field: "skills"},
		{name: "school missing", raw: `{"basics":{"firstName":"A","lastName":"B"},"education":[{"degree":"BSc"}]}`, field: "education.0"},
		{name: "company wrong type", raw: `{"basics":{"firstName":"A","lastName":"B"},"experience":[{"company":42}]}`, field: "experience.0.company"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.raw)
			require.Error(t, err)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "expected *ValidationError, got %T", err)
			assert.Equal(t, tt.raw, verr.Raw)
			require.NotEmpty(t, verr.Errors)
			assert.Contains(t, verr.Detail(), tt.field)
			assert.NotContains(t, verr.Detail(), "\n")
		})
	}
}

func TestParse_ValidatorRulesMatchSchema(t *testing.T) {
	email := "jane@example.com"
	site := "ftp://files.example.com/cv"
	p := Profile{Basics: Basics{FirstName: "Jane", LastName: "Doe", Email: &email, Website: &site}}
	p.Normalize()
	require.NoError(t, validate.Struct(&p))

	bad := "nope"
	p.Basics.Website = &bad
	err := validate.Struct(&p)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "website"), "validator should report json field names: %v", err)
}

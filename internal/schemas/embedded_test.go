package schemas

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readFixture(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return data
}

func TestValidateDocument_Fixtures(t *testing.T) {
	tests := []struct {
		schema    string
		fixture   string
		wantError bool
	}{
		{CandidateSchema, "../../testdata/valid/candidate.json", false},
		{CandidateListSchema, "../../testdata/valid/candidates.json", false},
		{AnalyticsSchema, "../../testdata/valid/analytics.json", false},
		{CandidateSchema, "../../testdata/invalid/missing_field.json", true},
		{CandidateSchema, "../../testdata/invalid/score_out_of_range.json", true},
		{CandidateListSchema, "../../testdata/valid/candidate.json", true},
	}
	for _, tt := range tests {
		t.Run(tt.schema+"/"+tt.fixture, func(t *testing.T) {
			err := ValidateDocument(tt.schema, readFixture(t, tt.fixture))
			if tt.wantError {
				var validationErr *ValidationError
				require.ErrorAs(t, err, &validationErr)
				assert.NotEmpty(t, validationErr.Errors)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateDocument_CandidateListItemPath(t *testing.T) {
	err := ValidateDocument(CandidateListSchema, []byte(`[{"filename": "a.pdf"}, {"analysis": {}}]`))
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.True(t, strings.HasPrefix(validationErr.Errors[0].Field, "1"), validationErr.Errors[0].Field)
}

func TestValidateDocument_UnknownSchema(t *testing.T) {
	err := ValidateDocument("nope.schema.json", []byte(`{}`))
	var loadErr *SchemaLoadError
	require.ErrorAs(t, err, &loadErr)
}

func TestValidateDocument_MalformedDocument(t *testing.T) {
	err := ValidateDocument(CandidateSchema, []byte(`{ invalid json }`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not valid JSON")
}

func TestValidateDocument_NamesSchemaInError(t *testing.T) {
	err := ValidateDocument(AnalyticsSchema, []byte(`[]`))
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, AnalyticsSchema, validationErr.Schema)
	assert.True(t, strings.HasPrefix(err.Error(), "analytics.schema.json validation failed"))
}

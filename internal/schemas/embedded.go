package schemas

import (
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	schemafiles "github.com/jonathan/resume-screener/schemas"
)

// Names of the schemas built into the binary.
const (
	CandidateSchema     = "candidate.schema.json"
	CandidateListSchema = "candidate_list.schema.json"
	AnalyticsSchema     = "analytics.schema.json"
)

// ValidateDocument validates document against one of the built-in schemas.
func ValidateDocument(schemaName string, document []byte) error {
	schema, err := schemafiles.FS.ReadFile(schemaName)
	if err != nil {
		return &SchemaLoadError{Path: schemaName, Message: "schema is not built in", Cause: err}
	}
	if !json.Valid(document) {
		return fmt.Errorf("document is not valid JSON")
	}
	return run(schemaName, gojsonschema.NewBytesLoader(schema), gojsonschema.NewBytesLoader(document))
}

// Package schemas validates screener input documents against JSON Schemas.
package schemas

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// maxParentLevels bounds how far ResolveSchemaPath climbs towards the repo root.
const maxParentLevels = 2

// ResolveSchemaPath finds relativePath from the working directory or up to two parent
// directories, so commands and tests running in subpackages see the repo schemas.
// It returns an absolute path, or "" when nothing matches.
func ResolveSchemaPath(relativePath string) string {
	candidate := relativePath
	for level := 0; level <= maxParentLevels; level++ {
		if abs, err := filepath.Abs(candidate); err == nil {
			if _, err := os.Stat(abs); err == nil {
				return abs
			}
		}
		candidate = filepath.Join("..", candidate)
	}
	return ""
}

// FieldError is one schema violation. Field is a dotted path such as "1.analysis".
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every violation found in one document.
type ValidationError struct {
	Schema string // Schema the document was checked against
	Errors []FieldError
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	if ve.Schema != "" {
		sb.WriteString(fmt.Sprintf("%s validation failed:\n", ve.Schema))
	} else {
		sb.WriteString("validation failed:\n")
	}
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// SchemaLoadError means the schema itself could not be loaded or compiled.
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// ValidateJSON validates a JSON file against a JSON Schema file.
func ValidateJSON(schemaPath, jsonPath string) error {
	schemaAbs, err := existingFile("schema", schemaPath)
	if err != nil {
		return err
	}
	jsonAbs, err := existingFile("JSON", jsonPath)
	if err != nil {
		return err
	}

	return run(schemaAbs,
		gojsonschema.NewReferenceLoader("file://"+filepath.ToSlash(schemaAbs)),
		gojsonschema.NewReferenceLoader("file://"+filepath.ToSlash(jsonAbs)),
	)
}

// ValidateJSONString validates JSON content against schema content.
func ValidateJSONString(schemaContent, jsonContent string) error {
	return run("(string schema)",
		gojsonschema.NewStringLoader(schemaContent),
		gojsonschema.NewStringLoader(jsonContent),
	)
}

// existingFile returns the absolute form of path, or a "not found" error.
func existingFile(kind, path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s path: %w", kind, err)
	}
	if _, err := os.Stat(abs); errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("%s file not found: %s", kind, abs)
	}
	return abs, nil
}

// run validates document against schema. Load failures become SchemaLoadErrors and
// violations a ValidationError labelled with name.
func run(name string, schema, document gojsonschema.JSONLoader) error {
	result, err := gojsonschema.Validate(schema, document)
	if err != nil {
		return &SchemaLoadError{Path: name, Message: "schema validation failed during load", Cause: err}
	}
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Schema: filepath.Base(name),
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{Field: field, Message: desc.Description()})
	}
	return validationErr
}

// internal/sweep/load.go
package sweep

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// resultsSchema describes a characterization results file: an array of
// {config, results} records where results may be null for failed runs.
const resultsSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["config"],
    "properties": {
      "config": {
        "type": "object",
        "properties": {
          "name": {"type": ["string", "number", "null"]}
        }
      },
      "results": {
        "type": ["object", "null"],
        "properties": {
          "ratio":     {"type": ["number", "null"]},
          "blackTime": {"type": ["number", "null"]},
          "whiteTime": {"type": ["number", "null"]}
        }
      }
    }
  }
}`

// FieldError is one schema violation.
type FieldError struct {
	Field       string
	Description string
}

// SchemaError reports a results document that does not match the schema.
type SchemaError struct {
	Source string
	Fields []FieldError
}

func (e *SchemaError) Error() string {
	details := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		details = append(details, f.Field+": "+f.Description)
	}
	source := e.Source
	if source == "" {
		source = "results"
	}
	return fmt.Sprintf("%s failed validation: %s", source, strings.Join(details, "; "))
}

// Parse validates data against the results schema and decodes it.
func Parse(data []byte) ([]ConfigResult, error) {
	return parse(data, "")
}

func parse(data []byte, source string) ([]ConfigResult, error) {
	schemaLoader := gojsonschema.NewStringLoader(resultsSchema)
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("schema validation error: %w", err)
	}
	if !result.Valid() {
		schemaErr := &SchemaError{Source: source}
		for _, desc := range result.Errors() {
			schemaErr.Fields = append(schemaErr.Fields, FieldError{
				Field:       desc.Field(),
				Description: desc.Description(),
			})
		}
		return nil, schemaErr
	}

	var results []ConfigResult
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("decode results: %w", err)
	}
	for i := range results {
		results[i].Index = i
	}
	return results, nil
}

// Load reads and parses the results file at path.
func Load(path string) ([]ConfigResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read results %s: %w", path, err)
	}
	return parse(data, path)
}

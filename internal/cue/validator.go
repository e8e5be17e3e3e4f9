package cue

import (
	"embed"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	yamlv3 "gopkg.in/yaml.v3"
)

//go:embed schemas/*.cue
var schemaFS embed.FS

// ValidationError represents a validation error
type ValidationError struct {
	File     string
	Message  string
	Severity string // error, warning
}

// Validator handles CUE validation
type Validator struct {
	ctx     *cue.Context
	schemas map[string]cue.Value
}

// NewValidator creates a new Validator instance
func NewValidator() *Validator {
	return &Validator{
		ctx:     cuecontext.New(),
		schemas: make(map[string]cue.Value),
	}
}

// LoadSchemas loads all CUE schema files from the embedded filesystem
func (v *Validator) LoadSchemas() error {
	entries, err := schemaFS.ReadDir("schemas")
	if err != nil {
		return fmt.Errorf("could not read embedded schemas: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".cue" {
			continue
		}
		content, err := schemaFS.ReadFile("schemas/" + entry.Name())
		if err != nil {
			continue
		}

		inst := v.ctx.CompileBytes(content, cue.Filename(entry.Name()))
		if instErr := inst.Err(); instErr != nil {
			return fmt.Errorf("schema %s: %w", entry.Name(), instErr)
		}

		// snapshot.cue -> snapshot
		schemaName := strings.TrimSuffix(entry.Name(), ".cue")
		v.schemas[schemaName] = inst.Value()
	}

	if len(v.schemas) == 0 {
		return fmt.Errorf("no CUE schemas loaded")
	}

	return nil
}

// ValidateSnapshot validates decoded snapshot data against the snapshot schema
func (v *Validator) ValidateSnapshot(data map[string]any) ([]ValidationError, error) {
	schema, ok := v.schemas["snapshot"]
	if !ok {
		return nil, fmt.Errorf("snapshot schema not loaded")
	}
	return v.validateAgainstSchema(schema, data, "snapshot")
}

// ValidateFile decodes a JSON or YAML snapshot and validates it
func (v *Validator) ValidateFile(path string, content []byte) ([]ValidationError, error) {
	data, err := DecodeDocument(path, content)
	if err != nil {
		return []ValidationError{{
			File:     path,
			Message:  err.Error(),
			Severity: "error",
		}}, nil
	}

	errs, err := v.ValidateSnapshot(data)
	for i := range errs {
		errs[i].File = path
	}
	return errs, err
}

// DecodeDocument parses content by extension into a generic map
func DecodeDocument(path string, content []byte) (map[string]any, error) {
	data := make(map[string]any)
	if len(strings.TrimSpace(string(content))) == 0 {
		return data, nil
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yamlv3.Unmarshal(content, &data); err != nil {
			return nil, fmt.Errorf("error parsing YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(content, &data); err != nil {
			return nil, fmt.Errorf("error parsing JSON: %w", err)
		}
	}
	return data, nil
}

// validateAgainstSchema validates data against the #<Type> definition of a schema
func (v *Validator) validateAgainstSchema(schema cue.Value, data map[string]any, schemaType string) ([]ValidationError, error) {
	dataValue := v.ctx.Encode(data)
	if encErr := dataValue.Err(); encErr != nil {
		return nil, fmt.Errorf("error encoding data: %w", encErr)
	}

	defPath := cue.ParsePath(fmt.Sprintf("#%s", strings.ToUpper(schemaType[:1])+schemaType[1:]))
	def := schema.LookupPath(defPath)
	if !def.Exists() {
		return nil, fmt.Errorf("schema definition #%s not found", schemaType)
	}

	unified := def.Unify(dataValue)
	if err := unified.Err(); err != nil {
		return v.extractErrorsFromCUE(err), nil
	}

	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return v.extractErrorsFromCUE(err), nil
	}

	return nil, nil
}

// extractErrorsFromCUE extracts user-friendly validation errors from CUE errors
func (v *Validator) extractErrorsFromCUE(err error) []ValidationError {
	return []ValidationError{{
		Message:  fmt.Sprintf("Schema validation failed: %v", err),
		Severity: "error",
	}}
}

package validate

import (
	"embed"
	"fmt"
	"sync"

	"github.com/kaptinlin/jsonschema"
)

//go:embed schemas/*.schema.json
var schemaFiles embed.FS

var (
	compileOnce     sync.Once
	compileErr      error
	iterationSchema *jsonschema.Schema
	dashboardSchema *jsonschema.Schema
)

// Iteration validates raw iteration-record JSON against the embedded schema.
func Iteration(data []byte) error {
	if err := compileSchemas(); err != nil {
		return err
	}
	return validateJSON(iterationSchema, data)
}

// Dashboard validates raw dashboard-record JSON against the embedded schema.
func Dashboard(data []byte) error {
	if err := compileSchemas(); err != nil {
		return err
	}
	return validateJSON(dashboardSchema, data)
}

func compileSchemas() error {
	compileOnce.Do(func() {
		iterationSchema, compileErr = compileSchema("schemas/iteration.schema.json")
		if compileErr != nil {
			return
		}
		dashboardSchema, compileErr = compileSchema("schemas/dashboard.schema.json")
	})
	return compileErr
}

func compileSchema(name string) (*jsonschema.Schema, error) {
	data, err := schemaFiles.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read schema %s: %w", name, err)
	}
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	schema, err := compiler.Compile(data)
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", name, err)
	}
	return schema, nil
}

func validateJSON(schema *jsonschema.Schema, data []byte) error {
	result := schema.ValidateJSON(data)
	if result.IsValid() {
		return nil
	}
	return fmt.Errorf("schema validation failed: %v", result.Errors)
}

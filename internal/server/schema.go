package server

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// The point limit is enforced by the calculator, which answers 413.
const computeSchema = `
{
  "type": "object",
  "required": ["x", "y"],
  "additionalProperties": false,
  "properties": {
    "x": {
      "description": "Partition points, ascending.",
      "type": "array",
      "items": {"type": "number"}
    },
    "y": {
      "description": "Function values at the partition points.",
      "type": "array",
      "items": {"type": "number"}
    },
    "precision": {
      "description": "Decimals in the formatted result.",
      "type": "integer",
      "minimum": 0,
      "maximum": 17
    }
  }
}`

// requestSchema validates POST /api/compute bodies.
type requestSchema struct {
	schema *jsonschema.Schema
}

func compileRequestSchema() (*requestSchema, error) {
	sch, err := jsonschema.CompileString("compute.json", computeSchema)
	if err != nil {
		return nil, err
	}
	return &requestSchema{schema: sch}, nil
}

// Validate checks a raw JSON document against the schema.
func (rs *requestSchema) Validate(body []byte) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return rs.schema.Validate(doc)
}

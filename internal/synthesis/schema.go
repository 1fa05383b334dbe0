package synthesis

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// contentSchema requires both synthesis sections. A response carrying
// only one of them is a failure, never a partial success.
const contentSchema = `{
	"type": "object",
	"required": ["email_body", "tailored_resume"],
	"properties": {
		"email_body": {"type": "string", "minLength": 1},
		"tailored_resume": {
			"type": "object",
			"required": ["summary", "skills", "experience"],
			"properties": {
				"name": {"type": "string"},
				"title": {"type": "string"},
				"email": {"type": "string"},
				"phone": {"type": "string"},
				"location": {"type": "string"},
				"linkedin": {"type": "string"},
				"summary": {"type": "string"},
				"skills": {
					"type": "array",
					"items": {
						"type": "object",
						"required": ["category", "items"],
						"properties": {
							"category": {"type": "string"},
							"items": {"type": "string"}
						}
					}
				},
				"experience": {
					"type": "array",
					"items": {
						"type": "object",
						"properties": {
							"title": {"type": "string"},
							"company": {"type": "string"},
							"location": {"type": "string"},
							"dates": {"type": "string"},
							"points": {"type": "array", "items": {"type": "string"}}
						}
					}
				}
			}
		}
	}
}`

func validatePayload(payload []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(contentSchema)
	docLoader := gojsonschema.NewBytesLoader(payload)

	res, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return err
	}
	if res.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("schema validation failed: %s", strings.Join(msgs, "; "))
}

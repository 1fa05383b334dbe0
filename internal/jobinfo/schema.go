package jobinfo

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// recordSchema checks field types only. No field is required; absent
// fields become the unknown marker during normalization.
const recordSchema = `{
	"type": "object",
	"properties": {
		"job_title": {"type": "string"},
		"company": {"type": "string"},
		"location": {"type": "string"},
		"job_type": {"type": "string"},
		"key_skills": {"type": "array", "items": {"type": "string"}}
	}
}`

func validatePayload(payload []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(recordSchema)
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

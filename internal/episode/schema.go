package episode

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// Schema returns the JSON Schema for lesson config files.
func Schema() *jsonschema.Schema {
	r := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	s := r.Reflect(&LessonConfig{})
	s.Title = "hanzireel lesson"
	s.Description = "Lesson configuration stored as config.json inside a lesson folder"
	return s
}

// SchemaJSON returns the indented lesson schema document.
func SchemaJSON() ([]byte, error) {
	return json.MarshalIndent(Schema(), "", "  ")
}

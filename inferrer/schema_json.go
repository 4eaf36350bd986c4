package inferrer

import (
	json "github.com/goccy/go-json"
)

// UnmarshalJSON implements json.Unmarshaler. The bytes are decoded
// generically and converted through SchemaFromValue, giving items and
// type their canonical in-memory shapes (*Schema or []*Schema, string
// or []string) and rejecting malformed keyword shapes.
func (s *Schema) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := SchemaFromValue(raw)
	if err != nil {
		return err
	}
	*s = *parsed
	return nil
}

// MarshalIndent renders the schema as 2-space-indented JSON. Output is
// deterministic: struct fields are declared in lexicographic key order
// and the codec sorts map keys, so identical schemas always produce
// identical bytes.
func (s *Schema) MarshalIndent() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

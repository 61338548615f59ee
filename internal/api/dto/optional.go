package dto

import "encoding/json"

// Optional records whether a JSON field was present at all. A present null
// gives Set true with a nil Value.
type Optional[T any] struct {
	Set   bool
	Value *T
}

// OptionalString is an optional, nullable string field.
type OptionalString = Optional[string]

// UnmarshalJSON is only invoked for keys present in the document.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

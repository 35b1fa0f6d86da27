package types

import "encoding/json"

// Optional distinguishes a JSON field that was absent from one explicitly
// sent as null. UnmarshalJSON only runs for keys present in the payload, so
// Set reports key presence and Value is nil exactly when the key carried
// null. The zero value means "absent".
type Optional[T any] struct {
	Set   bool
	Value *T
}

// Some wraps a concrete value.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: &v}
}

// Null marks a field as explicitly set to null.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

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

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.Value)
}

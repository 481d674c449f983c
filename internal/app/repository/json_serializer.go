package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"

	"gorm.io/gorm/schema"
)

func init() {
	// Replaces gorm's builtin "json" serializer so every serializer:json
	// column in ds goes through the defensive decode below.
	schema.RegisterSerializer("json", defensiveJSONSerializer{})
}

// defensiveJSONSerializer decodes JSON columns tolerating legacy
// double-encoded rows: parse once, and if the stored value turns out to be a
// JSON string containing JSON, parse again. Writes always single-encode.
type defensiveJSONSerializer struct{}

func (defensiveJSONSerializer) Scan(ctx context.Context, field *schema.Field, dst reflect.Value, dbValue interface{}) error {
	fieldValue := reflect.New(field.FieldType)

	if dbValue != nil {
		var raw []byte
		switch v := dbValue.(type) {
		case []byte:
			raw = v
		case string:
			raw = []byte(v)
		default:
			return fmt.Errorf("failed to decode JSON column %s: unsupported type %T", field.Name, dbValue)
		}

		if len(raw) > 0 {
			raw = undoubleEncode(raw)
			if err := json.Unmarshal(raw, fieldValue.Interface()); err != nil {
				return fmt.Errorf("failed to decode JSON column %s: %w", field.Name, err)
			}
		}
	}

	field.ReflectValueOf(ctx, dst).Set(fieldValue.Elem())
	return nil
}

func (defensiveJSONSerializer) Value(ctx context.Context, field *schema.Field, dst reflect.Value, fieldValue interface{}) (interface{}, error) {
	b, err := json.Marshal(fieldValue)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// undoubleEncode unwraps a value that was serialized twice (`"{\"a\":1}"`).
// Values that are legitimately plain JSON strings are left alone.
func undoubleEncode(raw []byte) []byte {
	if len(raw) == 0 || raw[0] != '"' {
		return raw
	}
	var inner string
	if err := json.Unmarshal(raw, &inner); err != nil {
		return raw
	}
	if len(inner) == 0 {
		return raw
	}
	switch inner[0] {
	case '{', '[', '"':
		if json.Valid([]byte(inner)) {
			return []byte(inner)
		}
	}
	return raw
}

package futures

import (
	"errors"

	"github.com/tidwall/gjson"
)

// Schema declares which fields to project out of an inbound frame. Keys are
// gjson paths resolved against the frame (or against each element when
// ArrayKey is set, or when the frame itself is a JSON array). Declared once
// per monitor; immutable for that monitor's lifetime.
type Schema struct {
	Keys     []string
	ArrayKey string
}

// Field is one extracted key/value pair. Values keep the exchange's string
// form; numeric fields are not re-typed here.
type Field struct {
	Name  string
	Value string
}

// Record is an ordered projection of one message (or one array element).
// Field order follows the schema's key order.
type Record []Field

// Get returns the value for name and whether the message carried it.
func (r Record) Get(name string) (string, bool) {
	for _, f := range r {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// RecordHandler receives extracted records in strict receipt order on the
// owning session's read goroutine.
type RecordHandler func(Record)

var errMalformedFrame = errors.New("malformed frame")

// extractRecords projects a raw frame through the schema. A declared key
// absent from the message is omitted from the record, not defaulted. A
// frame that is not valid JSON is an error for this message only; the
// caller keeps reading.
func extractRecords(msg []byte, schema Schema) ([]Record, error) {
	if !gjson.ValidBytes(msg) {
		return nil, errMalformedFrame
	}
	root := gjson.ParseBytes(msg)

	if schema.ArrayKey != "" {
		arr := root.Get(schema.ArrayKey)
		if !arr.Exists() || !arr.IsArray() {
			return nil, nil
		}
		return extractElements(arr, schema.Keys), nil
	}

	// Streams like !markPrice@arr deliver a bare top-level array.
	if root.IsArray() {
		return extractElements(root, schema.Keys), nil
	}

	if rec := extractRecord(root, schema.Keys); len(rec) > 0 {
		return []Record{rec}, nil
	}
	return nil, nil
}

func extractElements(arr gjson.Result, keys []string) []Record {
	var records []Record
	arr.ForEach(func(_, elem gjson.Result) bool {
		if rec := extractRecord(elem, keys); len(rec) > 0 {
			records = append(records, rec)
		}
		return true
	})
	return records
}

func extractRecord(v gjson.Result, keys []string) Record {
	rec := make(Record, 0, len(keys))
	for _, key := range keys {
		if field := v.Get(key); field.Exists() {
			rec = append(rec, Field{Name: key, Value: field.String()})
		}
	}
	return rec
}

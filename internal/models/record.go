package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

const NameKey = "name"

var ErrRecordNotObject = errors.New("record must be a JSON object")

type Field struct {
	Key   string
	Value float64
}

// Record is one category of a chart dataset. Fields keep the key order of the
// source object because unknown series are emitted in that order.
type Record struct {
	Name   string
	Fields []Field
}

func NewRecord(name string, fields ...Field) Record {
	return Record{Name: name, Fields: fields}
}

func (record Record) Value(key string) (float64, bool) {
	for _, field := range record.Fields {
		if field.Key == key {
			return field.Value, true
		}
	}
	return 0, false
}

func (record Record) NumericKeys() []string {
	keys := make([]string, 0, len(record.Fields))
	for _, field := range record.Fields {
		keys = append(keys, field.Key)
	}
	return keys
}

func (record *Record) UnmarshalJSON(data []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(data))

	token, err := decoder.Token()
	if err != nil {
		return err
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return ErrRecordNotObject
	}

	parsed := Record{Fields: []Field{}}
	seen := map[string]int{}
	for decoder.More() {
		keyToken, err := decoder.Token()
		if err != nil {
			return err
		}
		key, ok := keyToken.(string)
		if !ok {
			return fmt.Errorf("record key must be a string, got %T", keyToken)
		}

		var raw json.RawMessage
		if err := decoder.Decode(&raw); err != nil {
			return fmt.Errorf("decode record field %q: %w", key, err)
		}

		if key == NameKey {
			parsed.Name = recordNameFromJSON(raw)
			continue
		}

		value, numeric, err := numericFromJSON(raw)
		if err != nil {
			return fmt.Errorf("decode record field %q: %w", key, err)
		}
		if !numeric {
			continue
		}
		if index, duplicate := seen[key]; duplicate {
			parsed.Fields[index].Value = value
			continue
		}
		seen[key] = len(parsed.Fields)
		parsed.Fields = append(parsed.Fields, Field{Key: key, Value: value})
	}

	if _, err := decoder.Token(); err != nil {
		return err
	}

	*record = parsed
	return nil
}

func (record Record) MarshalJSON() ([]byte, error) {
	var buffer bytes.Buffer
	buffer.WriteByte('{')

	name, err := json.Marshal(record.Name)
	if err != nil {
		return nil, err
	}
	buffer.WriteString(`"name":`)
	buffer.Write(name)

	for _, field := range record.Fields {
		key, err := json.Marshal(field.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(field.Value)
		if err != nil {
			return nil, err
		}
		buffer.WriteByte(',')
		buffer.Write(key)
		buffer.WriteByte(':')
		buffer.Write(value)
	}

	buffer.WriteByte('}')
	return buffer.Bytes(), nil
}

func ParseRecords(data []byte) ([]Record, error) {
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse chart data: %w", err)
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}

func recordNameFromJSON(raw json.RawMessage) string {
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text
	}
	trimmed := bytes.TrimSpace(raw)
	if bytes.Equal(trimmed, []byte("null")) {
		return ""
	}
	return string(trimmed)
}

func numericFromJSON(raw json.RawMessage) (float64, bool, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return 0, false, nil
	}
	first := trimmed[0]
	if first != '-' && (first < '0' || first > '9') {
		return 0, false, nil
	}
	value, err := strconv.ParseFloat(string(trimmed), 64)
	if err != nil {
		return 0, false, err
	}
	return value, true, nil
}

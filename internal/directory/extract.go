package directory

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// ErrUnrecognizedFormat signals a personnel payload in none of the shapes
// the API has been observed to serve.
var ErrUnrecognizedFormat = errors.New("format data tidak dikenali")

// extractStrategy pulls the record list out of one known payload shape,
// returning nil when the shape does not apply. Strategies are tried in
// order; the first non-nil result wins.
type extractStrategy func(payload any) []any

var extractStrategies = []extractStrategy{
	topLevelArray,
	wrapperKey("data"),
	wrapperKey("pegawai"),
	wrapperKey("results"),
	firstArrayValue,
}

func topLevelArray(payload any) []any {
	arr, _ := payload.([]any)
	return arr
}

func wrapperKey(key string) extractStrategy {
	return func(payload any) []any {
		obj, ok := payload.(map[string]any)
		if !ok {
			return nil
		}
		arr, _ := obj[key].([]any)
		return arr
	}
}

// firstArrayValue scans remaining object values for any array. Keys are
// visited in sorted order so the result does not depend on map iteration.
func firstArrayValue(payload any) []any {
	obj, ok := payload.(map[string]any)
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if arr, ok := obj[k].([]any); ok {
			return arr
		}
	}
	return nil
}

// Parse decodes a personnel response body and normalizes every record.
func Parse(body []byte) ([]Person, error) {
	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decoding personnel response: %w", err)
	}

	var raw []any
	for _, strategy := range extractStrategies {
		if raw = strategy(payload); raw != nil {
			break
		}
	}
	if raw == nil {
		return nil, ErrUnrecognizedFormat
	}

	people := make([]Person, 0, len(raw))
	for _, item := range raw {
		record, ok := item.(map[string]any)
		if !ok {
			continue
		}
		people = append(people, normalize(record))
	}
	return people, nil
}

// normalize maps one raw record through the alias precedence per field and
// fills sentinel defaults, so downstream rendering never sees a missing field.
func normalize(record map[string]any) Person {
	return Person{
		NIP:       pick(record, []string{"nip", "NIP", "id"}, MissingNIP),
		Nama:      pick(record, []string{"nama", "Nama", "name"}, MissingName),
		Jabatan:   pick(record, []string{"jabatan", "Jabatan", "position"}, MissingField),
		Golongan:  pick(record, []string{"golongan", "Golongan", "grade"}, MissingField),
		Pangkat:   pick(record, []string{"pangkat", "Pangkat"}, ""),
		UnitKerja: pick(record, []string{"unit_kerja", "unitKerja", "department"}, ""),
		Status:    pick(record, []string{"status", "Status"}, DefaultStatus),
	}
}

// pick returns the first alias whose value is a non-empty scalar.
func pick(record map[string]any, aliases []string, fallback string) string {
	for _, key := range aliases {
		v, ok := record[key]
		if !ok {
			continue
		}
		switch s := v.(type) {
		case string:
			if s != "" {
				return s
			}
		case float64:
			// json numbers; ids sometimes arrive numeric
			if s == float64(int64(s)) {
				return fmt.Sprintf("%d", int64(s))
			}
			return fmt.Sprintf("%v", s)
		}
	}
	return fallback
}

package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// StringList is a string set stored as a JSON array in a TEXT column so the
// same column type works on both MySQL and SQLite.
type StringList []string

func (l *StringList) Scan(value any) error {
	if value == nil {
		*l = nil
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("stringlist: unsupported scan type %T", value)
	}
	if len(raw) == 0 {
		*l = nil
		return nil
	}
	return json.Unmarshal(raw, l)
}

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// MarshalJSON renders a nil list as [] so API payloads never carry null
// where the caller expects an array.
func (l StringList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}

// SplitList parses comma-separated user input into a list, trimming
// whitespace and dropping empty entries. An empty input yields an empty list.
func SplitList(s string) StringList {
	out := StringList{}
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

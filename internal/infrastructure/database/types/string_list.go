package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringList mirrors a JSON array of strings stored in a TEXT column, e.g. sentences.tags.
type StringList []string

// Scan implements sql.Scanner
func (l *StringList) Scan(src any) error {
	if src == nil {
		*l = StringList{}
		return nil
	}
	switch data := src.(type) {
	case []byte:
		return l.unmarshal(data)
	case string:
		return l.unmarshal([]byte(data))
	default:
		return fmt.Errorf("StringList: unsupported src type %T", src)
	}
}

func (l *StringList) unmarshal(data []byte) error {
	if len(data) == 0 {
		*l = StringList{}
		return nil
	}
	var out []string
	if err := json.Unmarshal(data, &out); err != nil {
		return fmt.Errorf("StringList: %w", err)
	}
	if out == nil {
		out = []string{}
	}
	*l = out
	return nil
}

// Value implements driver.Valuer. Values are stored as text so every driver accepts them.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

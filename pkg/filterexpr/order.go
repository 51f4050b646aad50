package filterexpr

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

type orderParams struct {
	PrimaryKey    string
	PrimaryDesc   bool
	SecondaryKey  string
	SecondaryDesc bool
}

// parseOrderBy accepts "key [asc|desc][, key [asc|desc]]" with at most two keys.
func parseOrderBy(raw string, schema OrderSchema) (orderParams, error) {
	if err := schema.validate(); err != nil {
		return orderParams{}, err
	}

	ord := orderParams{
		PrimaryKey:    schema.DefaultPrimary,
		PrimaryDesc:   schema.DefaultPrimaryDesc,
		SecondaryKey:  schema.FallbackKey,
		SecondaryDesc: schema.FallbackDesc,
	}

	var keys []string
	var dirs []bool
	for _, seg := range strings.Split(raw, ",") {
		parts := strings.Fields(seg)
		if len(parts) == 0 {
			continue
		}
		if len(parts) > 2 {
			return orderParams{}, fmt.Errorf("invalid order segment %q", strings.TrimSpace(seg))
		}
		key := parts[0]
		if _, ok := schema.Fields[key]; !ok {
			return orderParams{}, fmt.Errorf("field %q cannot be used for ordering", key)
		}
		desc := false
		if len(parts) == 2 {
			switch strings.ToLower(parts[1]) {
			case "asc":
			case "desc":
				desc = true
			default:
				return orderParams{}, fmt.Errorf("invalid direction %q for field %q", parts[1], key)
			}
		}
		for _, seen := range keys {
			if seen == key {
				return orderParams{}, fmt.Errorf("duplicate order key %q", key)
			}
		}
		keys = append(keys, key)
		dirs = append(dirs, desc)
	}

	switch len(keys) {
	case 0:
		return ord, nil
	case 1, 2:
	default:
		return orderParams{}, errors.New("order_by supports at most two keys")
	}

	ord.PrimaryKey, ord.PrimaryDesc = keys[0], dirs[0]
	if len(keys) == 2 {
		ord.SecondaryKey, ord.SecondaryDesc = keys[1], dirs[1]
	}
	if ord.SecondaryKey == ord.PrimaryKey {
		// Keep the ordering total: fall back to the default primary key.
		ord.SecondaryKey, ord.SecondaryDesc = schema.DefaultPrimary, schema.DefaultPrimaryDesc
		if ord.SecondaryKey == ord.PrimaryKey {
			return orderParams{}, errors.New("order schema requires at least two distinct keys for stable ordering")
		}
	}
	return ord, nil
}

func (s OrderSchema) validate() error {
	if s.DefaultPrimary == "" {
		return errors.New("order schema default primary key required")
	}
	if s.FallbackKey == "" {
		return errors.New("order schema fallback key required")
	}
	if _, ok := s.Fields[s.DefaultPrimary]; !ok {
		return fmt.Errorf("order key %q missing from schema fields", s.DefaultPrimary)
	}
	if _, ok := s.Fields[s.FallbackKey]; !ok {
		return fmt.Errorf("fallback order key %q missing from schema fields", s.FallbackKey)
	}
	return nil
}

func setOrderParams(binding any, ord orderParams) error {
	target, err := structTarget(binding)
	if err != nil {
		return err
	}
	assignments := []struct {
		name  string
		value any
	}{
		{"PrimaryKey", ord.PrimaryKey},
		{"PrimaryDesc", ord.PrimaryDesc},
		{"SecondaryKey", ord.SecondaryKey},
		{"SecondaryDesc", ord.SecondaryDesc},
	}
	for _, a := range assignments {
		if err := setAssignableField(target, a.name, reflect.ValueOf(a.value)); err != nil {
			return err
		}
	}
	return nil
}

func setAssignableField(target reflect.Value, name string, value reflect.Value) error {
	field := target.FieldByName(name)
	if !field.IsValid() {
		return fmt.Errorf("params struct %s has no field named %q", target.Type(), name)
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field %q on params struct", name)
	}
	if field.Kind() == reflect.Interface {
		field.Set(value)
		return nil
	}
	if !value.Type().ConvertibleTo(field.Type()) {
		return fmt.Errorf("field %q must be %s-compatible, got %s", name, field.Type(), value.Type())
	}
	field.Set(value.Convert(field.Type()))
	return nil
}

// OrderClause renders the bound order keys as a SQL ORDER BY body using the schema's
// expressions. Keys must already have been validated by Bind.
func OrderClause(schema OrderSchema, primary string, primaryDesc bool, secondary string, secondaryDesc bool) string {
	parts := make([]string, 0, 2)
	for _, o := range []struct {
		key  string
		desc bool
	}{{primary, primaryDesc}, {secondary, secondaryDesc}} {
		field, ok := schema.Fields[o.key]
		if !ok {
			continue
		}
		part := field.Expr
		if o.desc {
			part += " DESC"
		} else {
			part += " ASC"
		}
		if field.Nulls != "" {
			part += " NULLS " + strings.ToUpper(field.Nulls)
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, ", ")
}

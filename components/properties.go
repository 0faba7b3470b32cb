package components

import (
	"image/color"
	"reflect"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"ebiten-platformer/ecs"
)

var (
	colorType = reflect.TypeOf(color.RGBA{})
	uuidType  = reflect.TypeOf(uuid.UUID{})
)

// ApplyMetadata sets every metadata key on the matching exported field of comp.
// Keys are matched case-insensitively, nested maps fill nested structs.
func ApplyMetadata(comp any, meta ecs.Metadata) error {
	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if err := SetComponentProperty(comp, k, meta[k]); err != nil {
			return err
		}
	}
	return nil
}

// GetComponentProperty returns the value of a property in a component
func GetComponentProperty(comp any, propertyName string) (any, error) {
	val := reflect.ValueOf(comp)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return nil, eris.Errorf("component is not a struct: %T", comp)
	}

	field := fieldByName(val, propertyName)
	if !field.IsValid() || !field.CanInterface() {
		return nil, eris.Errorf("property not found: %s", propertyName)
	}
	return field.Interface(), nil
}

// SetComponentProperty sets the value of a property in a component
func SetComponentProperty(comp any, propertyName string, value any) error {
	val := reflect.ValueOf(comp)
	if val.Kind() != reflect.Ptr {
		return eris.Errorf("component must be a pointer to struct: %T", comp)
	}
	val = val.Elem()
	if val.Kind() != reflect.Struct {
		return eris.Errorf("component is not a struct: %T", comp)
	}

	field := fieldByName(val, propertyName)
	if !field.IsValid() {
		return eris.Errorf("property not found: %s", propertyName)
	}
	if !field.CanSet() {
		return eris.Errorf("property cannot be set: %s", propertyName)
	}

	if err := assign(field, value); err != nil {
		return eris.Wrapf(err, "property %s", propertyName)
	}
	return nil
}

func fieldByName(val reflect.Value, name string) reflect.Value {
	return val.FieldByNameFunc(func(fieldName string) bool {
		return strings.EqualFold(fieldName, name)
	})
}

func assign(field reflect.Value, value any) error {
	switch field.Type() {
	case colorType:
		hex, ok := value.(string)
		if !ok {
			return eris.Errorf("cannot convert %T to color", value)
		}
		c, err := ParseHexColor(hex)
		if err != nil {
			return err
		}
		field.Set(reflect.ValueOf(c))
		return nil
	case uuidType:
		s, ok := value.(string)
		if !ok {
			return eris.Errorf("cannot convert %T to uuid", value)
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return eris.Wrap(err, "invalid uuid")
		}
		field.Set(reflect.ValueOf(id))
		return nil
	}

	switch field.Kind() {
	case reflect.Int32:
		// runes may be given as one-character strings
		if s, ok := value.(string); ok {
			r, size := utf8.DecodeRuneInString(s)
			if size == 0 || size != len(s) {
				return eris.Errorf("expected a single character, got %q", s)
			}
			field.SetInt(int64(r))
			return nil
		}
		fallthrough
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int64:
		var intVal int64
		switch v := value.(type) {
		case int:
			intVal = int64(v)
		case int64:
			intVal = v
		case float64:
			intVal = int64(v)
		default:
			return eris.Errorf("cannot convert %T to int", value)
		}
		field.SetInt(intVal)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		var uintVal uint64
		switch v := value.(type) {
		case uint:
			uintVal = uint64(v)
		case int:
			if v < 0 {
				return eris.New("cannot convert negative value to uint")
			}
			uintVal = uint64(v)
		case float64:
			if v < 0 {
				return eris.New("cannot convert negative value to uint")
			}
			uintVal = uint64(v)
		default:
			return eris.Errorf("cannot convert %T to uint", value)
		}
		field.SetUint(uintVal)

	case reflect.Float32, reflect.Float64:
		var floatVal float64
		switch v := value.(type) {
		case float64:
			floatVal = v
		case float32:
			floatVal = float64(v)
		case int:
			floatVal = float64(v)
		default:
			return eris.Errorf("cannot convert %T to float", value)
		}
		field.SetFloat(floatVal)

	case reflect.Bool:
		boolVal, ok := value.(bool)
		if !ok {
			return eris.Errorf("cannot convert %T to bool", value)
		}
		field.SetBool(boolVal)

	case reflect.String:
		strVal, ok := value.(string)
		if !ok {
			return eris.Errorf("cannot convert %T to string", value)
		}
		field.SetString(strVal)

	case reflect.Struct:
		nested, ok := value.(map[string]any)
		if !ok {
			if m, isMeta := value.(ecs.Metadata); isMeta {
				nested = m
			} else {
				return eris.Errorf("cannot convert %T to %s", value, field.Type())
			}
		}
		return ApplyMetadata(field.Addr().Interface(), nested)

	default:
		valueVal := reflect.ValueOf(value)
		if valueVal.IsValid() && valueVal.Type().AssignableTo(field.Type()) {
			field.Set(valueVal)
			return nil
		}
		return eris.Errorf("unsupported property type: %s", field.Kind())
	}

	return nil
}

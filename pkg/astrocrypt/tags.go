package astrocrypt

import (
	"fmt"
	"reflect"
)

// EncryptStruct encrypts every string field tagged `encrypt:"true"`,
// walking nested structs.
func (s *Service) EncryptStruct(v interface{}) error {
	return s.walk(v, s.Encrypt)
}

// DecryptStruct decrypts every string field tagged `encrypt:"true"`,
// walking nested structs.
func (s *Service) DecryptStruct(v interface{}) error {
	return s.walk(v, s.Decrypt)
}

func (s *Service) walk(v interface{}, fn func(string) (string, error)) error {
	val := reflect.ValueOf(v)
	if val.Kind() != reflect.Ptr || val.IsNil() || val.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("astrocrypt: expected a pointer to a struct, got %T", v)
	}
	return walkStruct(val.Elem(), fn)
}

func walkStruct(val reflect.Value, fn func(string) (string, error)) error {
	typ := val.Type()

	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		typeField := typ.Field(i)
		if !typeField.IsExported() {
			continue
		}

		if field.Kind() == reflect.Struct {
			if err := walkStruct(field, fn); err != nil {
				return err
			}
			continue
		}

		if typeField.Tag.Get("encrypt") != "true" || field.Kind() != reflect.String {
			continue
		}
		if field.String() == "" {
			continue
		}

		out, err := fn(field.String())
		if err != nil {
			return fmt.Errorf("field %q: %w", typeField.Name, err)
		}
		field.SetString(out)
	}

	return nil
}

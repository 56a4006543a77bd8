package astroenv

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// LoadEnvVarible loads the given dotenv files (".env" when none are named)
// into the process environment and then fills cfg from its `env` tags.
// Missing dotenv files are skipped; variables already set in the process
// environment win over file values.
//
// Tag format:
//
//	`env:"ENV_KEY"`           → required, error if missing
//	`env:"ENV_KEY,default"`   → optional, uses default if missing
//	`env:"ENV_KEY,"`          → optional, empty default
//
// Supported kinds: string, signed and unsigned ints, bool, floats.
// Nested structs are walked recursively.
func LoadEnvVarible(cfg interface{}, files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return ParseEnv(cfg)
}

// ParseEnv fills cfg from the current process environment only.
func ParseEnv(cfg interface{}) error {
	v := reflect.ValueOf(cfg)
	if v.Kind() != reflect.Ptr || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("astroenv: expected a pointer to a struct, got %T", cfg)
	}
	return parseStruct(v.Elem())
}

func parseStruct(v reflect.Value) error {
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)
		if !fieldType.IsExported() {
			continue
		}

		if field.Kind() == reflect.Struct {
			if err := parseStruct(field); err != nil {
				return err
			}
			continue
		}

		tag := fieldType.Tag.Get("env")
		if tag == "" {
			continue
		}

		key, def, hasDefault := parseTag(tag)
		raw, err := resolveValue(key, def, hasDefault, fieldType.Name)
		if err != nil {
			return err
		}
		if err := setField(field, fieldType.Name, raw); err != nil {
			return err
		}
	}

	return nil
}

// parseTag splits "KEY,default" into its parts.
func parseTag(tag string) (key, def string, hasDefault bool) {
	parts := strings.SplitN(tag, ",", 2)
	key = strings.TrimSpace(parts[0])
	if len(parts) == 2 {
		return key, strings.TrimSpace(parts[1]), true
	}
	return key, "", false
}

func resolveValue(key, def string, hasDefault bool, fieldName string) (string, error) {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val, nil
	}
	if hasDefault {
		return def, nil
	}
	return "", fmt.Errorf("missing required env variable %q (for field %q)", key, fieldName)
}

func setField(field reflect.Value, fieldName, raw string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(raw)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if raw == "" {
			field.SetInt(0)
			return nil
		}
		n, err := strconv.ParseInt(raw, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("field %q: cannot parse %q as int: %w", fieldName, raw, err)
		}
		field.SetInt(n)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if raw == "" {
			field.SetUint(0)
			return nil
		}
		n, err := strconv.ParseUint(raw, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("field %q: cannot parse %q as uint: %w", fieldName, raw, err)
		}
		field.SetUint(n)

	case reflect.Bool:
		if raw == "" {
			field.SetBool(false)
			return nil
		}
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("field %q: cannot parse %q as bool (use true/false/1/0): %w", fieldName, raw, err)
		}
		field.SetBool(b)

	case reflect.Float32, reflect.Float64:
		if raw == "" {
			field.SetFloat(0)
			return nil
		}
		f, err := strconv.ParseFloat(raw, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("field %q: cannot parse %q as float: %w", fieldName, raw, err)
		}
		field.SetFloat(f)

	default:
		return fmt.Errorf("field %q: unsupported type %s", fieldName, field.Kind())
	}

	return nil
}

// Package config loads service configuration from YAML files and
// environment variables.
//
// Environment variable names follow the pattern:
//
//	{Prefix}_{SECTION}_{FIELD}
//
// Named nested structs add their name as a path segment; anonymous
// (embedded) structs are flattened. Go field names are converted from
// CamelCase to UPPER_SNAKE_CASE:
//
//	BufferSize      → BUFFER_SIZE
//	DispatchTimeout → DISPATCH_TIMEOUT
//
// Supported field types: string, bool, int*, uint*, float*, time.Duration.
// Fields of other types are silently skipped. Only fields with set
// environment variables are modified, so env loading overlays file or
// programmatic defaults:
//
//	MEDIATOR_SERVER_ADDR=:9090
//	MEDIATOR_STORE_BACKEND=redis
//	MEDIATOR_DISPATCH_TIMEOUT=5s
package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode"

	"gopkg.in/yaml.v3"
)

var durationType = reflect.TypeOf(time.Duration(0))

// Loader reads environment variables into configuration structs.
type Loader struct {
	// Prefix for environment variable names. Default: "MEDIATOR".
	Prefix string

	// lookup overrides os.LookupEnv for testing.
	lookup func(string) (string, bool)
}

func (l Loader) prefix() string {
	if l.Prefix == "" {
		return "MEDIATOR"
	}
	return l.Prefix
}

func (l Loader) lookupEnv(key string) (string, bool) {
	if l.lookup != nil {
		return l.lookup(key)
	}
	return os.LookupEnv(key)
}

// Load populates the struct pointed to by dst from environment variables.
// The section parameter becomes the second segment of the variable name;
// an empty section is skipped.
func (l Loader) Load(section string, dst any) error {
	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("config: dst must be a pointer to a struct, got %T", dst)
	}
	prefix := l.prefix()
	if seg := normalizeSection(section); seg != "" {
		prefix += "_" + seg
	}
	return l.loadStruct(prefix, v.Elem())
}

// Load populates dst using the default Loader with prefix "MEDIATOR".
func Load(section string, dst any) error {
	return Loader{}.Load(section, dst)
}

// LoadFile reads a YAML file into dst, then overlays environment variables
// using the default Loader. A missing file is not an error; env overrides
// still apply, so the caller's programmatic defaults survive.
func LoadFile(path, section string, dst any) error {
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, dst); err != nil {
			return fmt.Errorf("config: parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// fall through to env overrides
	default:
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	return Load(section, dst)
}

func (l Loader) loadStruct(prefix string, v reflect.Value) error {
	t := v.Type()
	for i := range t.NumField() {
		field := t.Field(i)
		fv := v.Field(i)

		if !field.IsExported() {
			continue
		}

		// Embedded structs are flattened; named struct fields add a segment.
		key := prefix
		if !field.Anonymous {
			key = prefix + "_" + toUpperSnake(field.Name)
		}

		// time.Duration is int64 underneath but parses as "5s", "100ms".
		if field.Type == durationType {
			raw, ok := l.lookupEnv(key)
			if !ok {
				continue
			}
			d, err := time.ParseDuration(raw)
			if err != nil {
				return fmt.Errorf("config: %s: %w", key, err)
			}
			fv.SetInt(int64(d))
			continue
		}

		if field.Type.Kind() == reflect.Struct {
			if err := l.loadStruct(key, fv); err != nil {
				return err
			}
			continue
		}

		raw, ok := l.lookupEnv(key)
		if !ok {
			continue
		}
		if err := setField(fv, raw, key); err != nil {
			return err
		}
	}
	return nil
}

func setField(v reflect.Value, raw, key string) error {
	switch v.Kind() {
	case reflect.String:
		v.SetString(raw)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("config: %s: %w", key, err)
		}
		v.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("config: %s: %w", key, err)
		}
		v.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("config: %s: %w", key, err)
		}
		v.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("config: %s: %w", key, err)
		}
		v.SetFloat(f)
	default:
		// unsupported kinds (func, chan, interface, pointer, slice) are skipped
	}
	return nil
}

// normalizeSection converts a section name to a valid env var segment.
func normalizeSection(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(unicode.ToUpper(r))
		case (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
		case r == '-' || r == ' ' || r == '_':
			b.WriteRune('_')
		}
	}
	return b.String()
}

// toUpperSnake converts a Go CamelCase field name to UPPER_SNAKE_CASE.
//
//	BufferSize → BUFFER_SIZE
//	HTTPClient → HTTP_CLIENT
func toUpperSnake(s string) string {
	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			if unicode.IsLower(prev) || unicode.IsDigit(prev) {
				b.WriteRune('_')
			} else if unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
				b.WriteRune('_')
			}
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

package imvector

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unsafe"

	"github.com/goccy/go-reflect"
	"github.com/joho/godotenv"
)

// Use envTag to fill a field from the environment: `env:"NAME"` or
// `env:"NAME:-default"`.
const envTag = "env"

// loadEnv parses a dotenv stream.
func loadEnv(r io.Reader) (map[string]string, error) {
	return godotenv.Parse(r)
}

// fillEnv assigns every env-tagged field of the struct dst points to.
// Unexported fields are filled as well.
func fillEnv(dst any, lookup func(string) (string, bool)) error {
	t := reflect.TypeOf(dst)
	if dst == nil || t.Kind() != reflect.Ptr || t.Elem().Kind() != reflect.Struct {
		return errors.New("imvector: env target must be a pointer to struct")
	}

	base := pointerOf(dst)
	if base == nil {
		return errors.New("imvector: env target is a nil pointer")
	}

	t = t.Elem()

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag, ok := f.Tag.Lookup(envTag)
		if !ok || tag == "" {
			continue
		}

		name, def, hasDef := strings.Cut(tag, ":-")
		value, ok := lookup(name)
		if !ok || value == "" {
			if !hasDef {
				continue
			}
			value = def
		}

		if err := setScalar(unsafe.Add(base, f.Offset), f.Type, value); err != nil {
			return fmt.Errorf("imvector: %s (%s): %w", name, f.Name, err)
		}
	}

	return nil
}

func setScalar(p unsafe.Pointer, t reflect.Type, s string) error {
	switch t.Kind() {
	case reflect.Bool:
		v, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		*(*bool)(p) = v
	case reflect.String:
		*(*string)(p) = s
	default:
		return fmt.Errorf("unsupported kind %s", t.Kind())
	}

	return nil
}

package cache

import (
	"fmt"
	"reflect"
	"strings"
)

// Key builds a deterministic cache key from an operation prefix and every
// parameter that affects the result. Nil parts are rendered as the "null"
// sentinel instead of being dropped so that two requests differing only in
// an optional field never collide.
func Key(prefix string, parts ...any) string {
	var b strings.Builder
	b.WriteString(prefix)
	for _, part := range parts {
		b.WriteByte('_')
		b.WriteString(render(part))
	}
	return b.String()
}

func render(part any) string {
	switch v := part.(type) {
	case nil:
		return "null"
	case string:
		if v == "" {
			return "null"
		}
		return v
	}

	rv := reflect.ValueOf(part)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return "null"
		}
		return render(rv.Elem().Interface())
	}
	return fmt.Sprint(part)
}

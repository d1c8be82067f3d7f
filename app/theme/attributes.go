package theme

import (
	"fmt"
	"html"
	"html/template"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

const dataPrefix = "data-"

// DataAttributes merges objs left to right into data-* attribute pairs.
// Keys may be camelCase or already prefixed; both become lowercase
// kebab-case with a single data- prefix. Nil values are dropped. The testId
// alias maps to data-testid. When two keys of one map normalize to the same
// attribute, the data- prefixed key wins; otherwise the key that sorts last.
func DataAttributes(objs ...map[string]any) map[string]string {
	out := make(map[string]string)
	for _, obj := range objs {
		for _, k := range orderedKeys(obj) {
			v := obj[k]
			if isNil(v) {
				continue
			}
			key := AttributeName(k)
			if key == "" {
				continue
			}
			out[key] = stringify(v)
		}
	}
	return out
}

// orderedKeys returns the keys of obj sorted, bare keys before prefixed ones.
func orderedKeys(obj map[string]any) []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		pi, pj := hasDataPrefix(keys[i]), hasDataPrefix(keys[j])
		if pi != pj {
			return pj
		}
		return keys[i] < keys[j]
	})
	return keys
}

func hasDataPrefix(key string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(key)), dataPrefix)
}

// AttributeName converts a prop name into its data-* attribute name.
func AttributeName(key string) string {
	key = strings.TrimSpace(key)
	if hasDataPrefix(key) {
		key = key[len(dataPrefix):]
	}
	switch key {
	case "testId", "testID", "testid", "test-id":
		return dataPrefix + "testid"
	}

	kebab := kebabCase(key)
	if kebab == "" {
		return ""
	}
	return dataPrefix + kebab
}

func kebabCase(s string) string {
	var b strings.Builder
	rs := []rune(s)
	for i, r := range rs {
		switch {
		case r == '_' || r == '-' || unicode.IsSpace(r):
			b.WriteByte('-')
		case unicode.IsUpper(r):
			if i > 0 && startsWord(rs, i) {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}

	parts := strings.FieldsFunc(b.String(), func(r rune) bool { return r == '-' })
	return strings.Join(parts, "-")
}

// startsWord reports whether the upper-case rune at i begins a new word:
// after a lower-case letter or digit, or as the last capital of an acronym
// followed by a lower-case letter (HTMLId -> html-id).
func startsWord(rs []rune, i int) bool {
	prev := rs[i-1]
	if unicode.IsLower(prev) || unicode.IsDigit(prev) {
		return true
	}
	return unicode.IsUpper(prev) && i+1 < len(rs) && unicode.IsLower(rs[i+1])
}

// isNil reports whether v is nil or a chain of pointers ending in nil.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	for {
		switch rv.Kind() {
		case reflect.Pointer, reflect.Interface:
			if rv.IsNil() {
				return true
			}
			rv = rv.Elem()
		case reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return rv.IsNil()
		default:
			return false
		}
	}
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case fmt.Stringer:
		return t.String()
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if elem := rv.Elem(); elem.IsValid() && elem.CanInterface() {
			return stringify(elem.Interface())
		}
		return ""
	}
	if rv.Kind() == reflect.String {
		return rv.String()
	}
	return fmt.Sprint(v)
}

// HTMLAttributes renders attrs as a space separated, key-sorted attribute
// list with escaped values.
func HTMLAttributes(attrs map[string]string) template.HTMLAttr {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf(`%s="%s"`, html.EscapeString(k), html.EscapeString(attrs[k]))
	}
	return template.HTMLAttr(strings.Join(parts, " "))
}

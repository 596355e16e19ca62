package extract

import (
	"encoding/json"
	"reflect"
	"regexp"

	"github.com/aretw0/vlogger/pkg/domain"
)

// literal matches the first '{' or '[' and runs greedily to the last closer of the same kind.
var literal = regexp.MustCompile(`(\{[\s\S]*\}|\[[\s\S]*\])`)

// Value converts a reply into a list or mapping, returning def when it cannot.
func Value(reply domain.Reply, def any) any {
	switch reply.Kind {
	case domain.ReplyStructured:
		if IsStructured(reply.Value) {
			return reply.Value
		}
		return def
	case domain.ReplyText:
		return FromText(reply.Text, def)
	default:
		return def
	}
}

// FromText parses text as a whole, then its first embedded literal.
func FromText(text string, def any) any {
	if v, ok := parse(text); ok {
		return v
	}
	match := literal.FindStringSubmatch(text)
	if match == nil {
		return def
	}
	if v, ok := parse(match[1]); ok {
		return v
	}
	return def
}

// IsStructured reports whether v is a list or a mapping.
func IsStructured(v any) bool {
	if v == nil {
		return false
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return true
	default:
		return false
	}
}

func parse(text string) (any, bool) {
	var v any
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return nil, false
	}
	if !IsStructured(v) {
		return nil, false
	}
	return v, true
}

// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package binding

// Lookuper is a read-only key value store, e.g. a *dotenv.Dotenv or a
// *config.Manager.
type Lookuper interface {
	Get(key string) (string, bool)
}

// Map is a Lookuper backed by a plain map.
type Map map[string]string

// Get implements the Lookuper interface.
func (m Map) Get(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// Source tells where a Resolved value came from.
type Source int

const (
	// SourceNone means no value was found and the field is left untouched.
	SourceNone Source = iota
	SourceStore
	SourceDefault
)

func (s Source) String() string {
	switch s {
	case SourceStore:
		return "store"
	case SourceDefault:
		return "default"
	default:
		return "none"
	}
}

// Resolved is the raw outcome of binding one field.
type Resolved struct {
	Field  Metadata
	Key    string
	Raw    string
	Source Source
}

// Found reports whether there is a raw value to convert.
func (r Resolved) Found() bool {
	return r.Source != SourceNone
}

// ResolveField decides which raw value applies to m. The store value
// under prefix+m.Key wins, then the declared default. A required field
// with neither fails with a RequiredValueMissingError.
func ResolveField(store Lookuper, prefix string, m Metadata) (Resolved, error) {
	key := prefix + m.Key
	res := Resolved{Field: m, Key: key}

	if v, ok := store.Get(key); ok {
		res.Raw = v
		res.Source = SourceStore
		return res, nil
	}
	if m.HasDefault {
		res.Raw = m.Default
		res.Source = SourceDefault
		return res, nil
	}
	if m.Required {
		return res, RequiredValueMissingError{
			Field:   m.Name,
			Key:     key,
			Message: m.Message,
		}
	}
	return res, nil
}

// Resolve resolves every field of d which is not ignored, in declaration
// order. It stops at the first RequiredValueMissingError.
func Resolve(store Lookuper, d Descriptor) ([]Resolved, error) {
	resolved := make([]Resolved, 0, len(d.Fields))
	for _, m := range d.Fields {
		if m.Ignored {
			continue
		}
		res, err := ResolveField(store, d.Prefix, m)
		if err != nil {
			return resolved, err
		}
		resolved = append(resolved, res)
	}
	return resolved, nil
}

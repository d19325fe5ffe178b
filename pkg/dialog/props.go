package dialog

import (
	"fmt"
	"maps"
	"reflect"
	"strings"
	"sync"

	"github.com/go-viper/mapstructure/v2"
)

// Reserved prop keys. Callers never set these through typed props.
const (
	ModelValueKey = "modelValue"
	ConfirmKey    = "confirm"
)

const propsTag = "dialog"

// Props is the mutable prop mapping of one entry. It always holds
// ModelValueKey; only the registry flips it.
type Props struct {
	mu     sync.RWMutex
	values map[string]any
}

// newProps layers defaults under props and forces the model value to true.
func newProps(defaults, props map[string]any) *Props {
	values := make(map[string]any, len(defaults)+len(props)+1)
	mergeProps(values, defaults)
	mergeProps(values, props)
	deleteFold(values, ModelValueKey)
	values[ModelValueKey] = true
	return &Props{values: values}
}

// ModelValue reports whether the dialog is open. It turns false once
// removal has begun.
func (p *Props) ModelValue() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	v, _ := p.values[ModelValueKey].(bool)
	return v
}

// swapModelValue stores v and returns the previous model value.
func (p *Props) swapModelValue(v bool) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	old, _ := p.values[ModelValueKey].(bool)
	p.values[ModelValueKey] = v
	return old
}

// Get returns the prop stored under key. Lookup falls back to a
// case-insensitive match so config-loaded defaults line up with struct
// field names.
func (p *Props) Get(key string) (any, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if v, ok := p.values[key]; ok {
		return v, true
	}
	for k, v := range p.values {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return nil, false
}

// Map returns a copy of all props.
func (p *Props) Map() map[string]any {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return maps.Clone(p.values)
}

// Decode copies the props into out, which must be a pointer to a struct or
// map. Unknown keys are ignored.
func (p *Props) Decode(out any) error {
	return decodeProps(p.Map(), out)
}

// EncodeProps turns a props struct (or map) into the map form stored on an
// entry. Field values are stored as they are, so pointers, slices and
// nested structs keep their identity. Zero-valued fields tagged
// ",omitempty" are left out so defaults can fill them.
func EncodeProps(v any) (map[string]any, error) {
	switch t := v.(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		return maps.Clone(t), nil
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return map[string]any{}, nil
		}
		rv = rv.Elem()
	}

	out := map[string]any{}
	switch rv.Kind() {
	case reflect.Struct:
		rt := rv.Type()
		for i := range rt.NumField() {
			f := rt.Field(i)
			name, omitEmpty, ok := propField(f)
			if !ok {
				continue
			}
			fv := rv.Field(i)
			if omitEmpty && fv.IsZero() {
				continue
			}
			out[name] = fv.Interface()
		}
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("encode props %T: map keys must be strings", v)
		}
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = iter.Value().Interface()
		}
	default:
		return nil, fmt.Errorf("encode props %T: want a struct or map", v)
	}
	return out, nil
}

// propField returns the prop key of a struct field.
func propField(f reflect.StructField) (name string, omitEmpty, ok bool) {
	if !f.IsExported() {
		return "", false, false
	}
	tag := f.Tag.Get(propsTag)
	if tag == "-" {
		return "", false, false
	}
	name, opts, _ := strings.Cut(tag, ",")
	if name == "" {
		name = f.Name
	}
	for _, opt := range strings.Split(opts, ",") {
		if opt == "omitempty" {
			omitEmpty = true
		}
	}
	return name, omitEmpty, true
}

// decodeProps fills out from in. Values already assignable to their field
// are set directly and keep their identity; the rest go through
// mapstructure, which converts config-style strings and numbers.
func decodeProps(in map[string]any, out any) error {
	rest, direct := splitAssignable(in, out)

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          propsTag,
		Result:           out,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return fmt.Errorf("props decoder: %w", err)
	}
	if err := dec.Decode(rest); err != nil {
		return fmt.Errorf("decode props into %T: %w", out, err)
	}

	for _, d := range direct {
		d.field.Set(d.value)
	}
	return nil
}

type directField struct {
	field reflect.Value
	value reflect.Value
}

// splitAssignable picks the props whose values can be assigned to a field
// of *out as they are. The remaining props are returned for decoding.
func splitAssignable(in map[string]any, out any) (map[string]any, []directField) {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return in, nil
	}
	sv := rv.Elem()
	st := sv.Type()

	rest := maps.Clone(in)
	var direct []directField
	for i := range st.NumField() {
		f := st.Field(i)
		name, _, ok := propField(f)
		if !ok || f.Anonymous {
			continue
		}
		key, ok := lookupFold(rest, name)
		if !ok || rest[key] == nil {
			continue
		}
		val := reflect.ValueOf(rest[key])
		if !val.Type().AssignableTo(f.Type) {
			continue
		}
		direct = append(direct, directField{field: sv.Field(i), value: val})
		delete(rest, key)
	}
	return rest, direct
}

// lookupFold finds key in m, exact match first.
func lookupFold(m map[string]any, key string) (string, bool) {
	if _, ok := m[key]; ok {
		return key, true
	}
	for k := range m {
		if strings.EqualFold(k, key) {
			return k, true
		}
	}
	return "", false
}

// mergeProps copies src over dst. A key in src replaces any key in dst that
// differs only by case.
func mergeProps(dst, src map[string]any) {
	for k, v := range src {
		deleteFold(dst, k)
		dst[k] = v
	}
}

func deleteFold(m map[string]any, key string) {
	for k := range m {
		if strings.EqualFold(k, key) {
			delete(m, k)
		}
	}
}

package param

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"
)

// kindByType maps supported field types to kinds.
var kindByType = map[reflect.Type]Kind{
	reflect.TypeFor[string]():     String,
	reflect.TypeFor[int]():        Int,
	reflect.TypeFor[float64]():    Double,
	reflect.TypeFor[bool]():       Bool,
	reflect.TypeFor[time.Time]():  DateTime,
	reflect.TypeFor[uuid.UUID]():  GUID,
	reflect.TypeFor[*int]():       NullableInt,
	reflect.TypeFor[*float64]():   NullableDouble,
	reflect.TypeFor[*bool]():      NullableBool,
	reflect.TypeFor[*time.Time](): NullableDateTime,
	reflect.TypeFor[*uuid.UUID](): NullableGUID,
}

type boundField struct {
	index    int
	name     string
	key      string
	kind     Kind
	required bool
}

// Bind resolves every exported field of the struct pointed to by v.
//
// Struct tags:
//   - `param:"name"` - resolves parameter "name"
//   - `param:"name,required"` - a missing parameter is ErrMissingParam
//   - `param:"-"` - skips the field
//
// Without a tag the lowercased field name is used. Field types must be one of
// the Value types; any other type fails with ErrUnsupportedType before a
// single parameter is looked up. Missing optional parameters leave the field
// untouched.
//
// Example:
//
//	type ListRequest struct {
//		Page    int        `param:"page"`
//		Active  *bool      `param:"active"`
//		OwnerID uuid.UUID  `param:"owner_id,required"`
//		Since   *time.Time `param:"since"`
//	}
//
//	var in ListRequest
//	if err := param.Bind(r.Context(), req, &in); err != nil {
//		http.Error(w, err.Error(), http.StatusBadRequest)
//		return
//	}
func Bind(ctx context.Context, req *Request, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return ErrInvalidTarget
	}
	rv = rv.Elem()

	fields, err := planFields(rv.Type())
	if err != nil {
		return err
	}

	for _, f := range fields {
		out, err := Resolve(ctx, req, f.key, f.kind)
		if err != nil {
			return fmt.Errorf("field %s: %w", f.name, err)
		}

		switch out.Status {
		case NotFound:
			if f.required {
				return fmt.Errorf("%w: %s", ErrMissingParam, f.key)
			}
		case ParseFailed:
			return fmt.Errorf("%w: field %s: %v", ErrInvalidParam, f.name, out.Err)
		case Found:
			setField(rv.Field(f.index), out.Value)
		}
	}

	return nil
}

func planFields(rt reflect.Type) ([]boundField, error) {
	fields := make([]boundField, 0, rt.NumField())
	for i := range rt.NumField() {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}

		key, required, skip := parseFieldTag(sf)
		if skip {
			continue
		}

		kind, ok := kindByType[sf.Type]
		if !ok {
			return nil, fmt.Errorf("%w: field %s has type %s", ErrUnsupportedType, sf.Name, sf.Type)
		}

		fields = append(fields, boundField{
			index:    i,
			name:     sf.Name,
			key:      key,
			kind:     kind,
			required: required,
		})
	}
	return fields, nil
}

// parseFieldTag extracts the parameter name and options from the param tag.
// If no tag is present, it defaults to the lowercase field name.
func parseFieldTag(field reflect.StructField) (key string, required, skip bool) {
	tag := field.Tag.Get("param")
	if tag == "-" {
		return "", false, true
	}

	parts := strings.Split(tag, ",")
	key = parts[0]
	if key == "" {
		key = strings.ToLower(field.Name)
	}
	for _, opt := range parts[1:] {
		if strings.TrimSpace(opt) == "required" {
			required = true
		}
	}
	return key, required, false
}

func setField(field reflect.Value, v any) {
	val := reflect.ValueOf(v)
	if field.Kind() == reflect.Pointer {
		ptr := reflect.New(field.Type().Elem())
		ptr.Elem().Set(val)
		field.Set(ptr)
		return
	}
	field.Set(val)
}

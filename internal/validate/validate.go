// Package validate checks untrusted, already decoded JSON input against a
// struct schema and reports every failing field under its dotted JSON path.
//
// A schema is a plain struct. Field tags drive the behaviour:
//
//	json     field name in the input and in error paths
//	validate go-playground/validator constraints (required, min, email, omitnil, ...)
//	default  value used when the key is absent
//	nullable present on a pointer field, accepts an explicit null as nil
//	message  overrides messages: "text" for every rule, or "rule=text;rule=text";
//	         the rule name "type" covers type mismatches and "int" a fractional
//	         number given for an integer field
//
// Pointer fields distinguish an absent key from a zero value. An explicit null
// is a type mismatch unless the field is nullable. Integral floats such as 1.0
// are accepted for integer fields. The "notblank" rule rejects whitespace-only strings.
package validate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// RootPath keys errors that concern the input as a whole.
const RootPath = "body"

// FieldErrors maps a dotted field path to its ordered messages.
type FieldErrors map[string][]string

func (e FieldErrors) Add(path, msg string) {
	e[path] = append(e[path], msg)
}

// Result is either Success with Data set, or a failure with Errors set.
type Result[T any] struct {
	Success bool
	Data    *T
	Errors  FieldErrors
}

type options struct {
	disallowUnknown bool
}

type Option func(*options)

// DisallowUnknown reports keys the schema does not declare.
func DisallowUnknown() Option {
	return func(o *options) { o.disallowUnknown = true }
}

// Validator is safe for concurrent use; build one per process.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := jsonName(fld)
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(fmt.Sprintf("validate: register notblank: %v", err))
	}
	return &Validator{validate: v}
}

// DecodeJSON decodes a request body keeping numbers exact.
func DecodeJSON(body []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errors.New("unexpected data after JSON value")
	}
	return out, nil
}

// ValidateJSON decodes body and validates it against T. Malformed JSON is a RootPath failure.
func ValidateJSON[T any](v *Validator, body []byte, opts ...Option) Result[T] {
	input, err := DecodeJSON(body)
	if err != nil {
		return Result[T]{Errors: FieldErrors{RootPath: {"Malformed JSON in request body"}}}
	}
	return Validate[T](v, input, opts...)
}

// Validate checks input against the struct schema T. It never panics on bad input;
// it panics only if T is not a struct, which is a programming error.
func Validate[T any](v *Validator, input any, opts ...Option) Result[T] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var out T
	rv := reflect.ValueOf(&out).Elem()
	if rv.Kind() != reflect.Struct {
		panic(fmt.Sprintf("validate: schema %T is not a struct", out))
	}

	obj, ok := input.(map[string]any)
	if !ok {
		return Result[T]{Errors: FieldErrors{RootPath: {fmt.Sprintf("Expected object, received %s", describe(input))}}}
	}

	d := decoder{
		opts:       o,
		errs:       FieldErrors{},
		rules:      map[string]messageRules{},
		typeFailed: map[string]bool{},
	}
	d.decodeStruct(rv, obj, "")

	if err := v.validate.Struct(&out); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			d.errs.Add(RootPath, err.Error())
		}
		for _, fe := range verrs {
			path := fieldPath(fe)
			if d.suppressed(path) {
				continue
			}
			d.errs.Add(path, d.rules[path].text(fe.Tag(), defaultMessage(fe)))
		}
	}

	if len(d.errs) > 0 {
		return Result[T]{Errors: d.errs}
	}
	return Result[T]{Success: true, Data: &out}
}

type decoder struct {
	opts       options
	errs       FieldErrors
	rules      map[string]messageRules
	typeFailed map[string]bool
}

func (d *decoder) decodeStruct(rv reflect.Value, obj map[string]any, prefix string) {
	rt := rv.Type()
	known := make(map[string]bool, rt.NumField())

	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := jsonName(sf)
		if name == "-" {
			continue
		}
		known[name] = true
		path := joinPath(prefix, name)
		rules := parseMessages(sf.Tag.Get("message"))
		d.rules[path] = rules
		fv := rv.Field(i)

		raw, present := obj[name]
		if !present {
			if def, ok := sf.Tag.Lookup("default"); ok {
				if err := setDefault(fv, def); err != nil {
					panic(fmt.Sprintf("validate: bad default for %s: %v", path, err))
				}
			}
			continue
		}

		if raw == nil && isNullable(sf) {
			fv.Set(reflect.Zero(sf.Type))
			continue
		}

		if isNested(sf.Type) {
			nested, ok := raw.(map[string]any)
			if !ok {
				d.fail(path, rules, "object", raw)
				continue
			}
			target := fv
			if fv.Kind() == reflect.Pointer {
				fv.Set(reflect.New(sf.Type.Elem()))
				target = fv.Elem()
			}
			d.decodeStruct(target, nested, path)
			continue
		}

		if err := assign(fv, raw); err != nil {
			if errors.Is(err, errFraction) {
				d.typeFailed[path] = true
				d.errs.Add(path, rules.text("int", "Expected integer, received float"))
				continue
			}
			d.fail(path, rules, expected(sf.Type), raw)
		}
	}

	if d.opts.disallowUnknown {
		for key := range obj {
			if !known[key] {
				d.errs.Add(joinPath(prefix, key), "Unrecognized key")
			}
		}
	}
}

// suppressed reports whether path or one of its parents already failed to decode.
func (d *decoder) suppressed(path string) bool {
	for {
		if d.typeFailed[path] {
			return true
		}
		i := strings.LastIndex(path, ".")
		if i < 0 {
			return false
		}
		path = path[:i]
	}
}

func (d *decoder) fail(path string, rules messageRules, want string, raw any) {
	d.typeFailed[path] = true
	d.errs.Add(path, rules.text("type", fmt.Sprintf("Expected %s, received %s", want, describe(raw))))
}

var errFraction = errors.New("fractional number for integer field")

// assign decodes one raw value into field through encoding/json.
func assign(field reflect.Value, raw any) error {
	if raw == nil {
		return errors.New("null for non-nullable field")
	}
	if n, ok := raw.(json.Number); ok && isInteger(field.Type()) && strings.ContainsAny(n.String(), ".eE") {
		f, err := n.Float64()
		if err != nil {
			return err
		}
		if f != math.Trunc(f) {
			return errFraction
		}
		raw = json.Number(strconv.FormatFloat(f, 'f', -1, 64))
	}
	encoded, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	return json.Unmarshal(encoded, field.Addr().Interface())
}

func setDefault(field reflect.Value, def string) error {
	target := field
	if field.Kind() == reflect.Pointer {
		field.Set(reflect.New(field.Type().Elem()))
		target = field.Elem()
	}
	if target.Kind() == reflect.String {
		target.SetString(def)
		return nil
	}
	return json.Unmarshal([]byte(def), target.Addr().Interface())
}

var unmarshalerType = reflect.TypeOf((*json.Unmarshaler)(nil)).Elem()

func isNullable(sf reflect.StructField) bool {
	_, ok := sf.Tag.Lookup("nullable")
	return ok && sf.Type.Kind() == reflect.Pointer
}

func isInteger(t reflect.Type) bool {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

func isNested(t reflect.Type) bool {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return false
	}
	return !reflect.PointerTo(t).Implements(unmarshalerType)
}

func jsonName(sf reflect.StructField) string {
	name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
	if name == "" {
		return sf.Name
	}
	return name
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

// fieldPath drops the schema type name from the validator namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func expected(t reflect.Type) string {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Slice, reflect.Array:
		return "array"
	default:
		return "object"
	}
}

func describe(v any) string {
	switch n := v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number:
		if strings.ContainsAny(n.String(), ".eE") {
			return "float"
		}
		return "integer"
	case float64, float32, int, int64, int32:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func defaultMessage(fe validator.FieldError) string {
	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required", "required_if", "required_with", "required_without", "notblank":
		return "Required"
	case "email":
		return "Invalid email"
	case "min", "gte":
		if isString {
			return fmt.Sprintf("String must contain at least %s character(s)", fe.Param())
		}
		return fmt.Sprintf("Number must be greater than or equal to %s", fe.Param())
	case "max", "lte":
		if isString {
			return fmt.Sprintf("String must contain at most %s character(s)", fe.Param())
		}
		return fmt.Sprintf("Number must be less than or equal to %s", fe.Param())
	case "gt":
		return fmt.Sprintf("Number must be greater than %s", fe.Param())
	case "lt":
		return fmt.Sprintf("Number must be less than %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("Invalid enum value. Expected one of: %s", fe.Param())
	case "url":
		return "Invalid url"
	default:
		return "Invalid value"
	}
}

type messageRules struct {
	fallback string
	byRule   map[string]string
}

func parseMessages(tag string) messageRules {
	var r messageRules
	if tag == "" {
		return r
	}
	for _, part := range strings.Split(tag, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if rule, text, ok := strings.Cut(part, "="); ok && isRuleName(rule) {
			if r.byRule == nil {
				r.byRule = map[string]string{}
			}
			r.byRule[rule] = text
			continue
		}
		r.fallback = part
	}
	return r
}

func (r messageRules) text(rule, def string) string {
	if msg, ok := r.byRule[rule]; ok {
		return msg
	}
	if r.fallback != "" {
		return r.fallback
	}
	return def
}

func isRuleName(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if (c < 'a' || c > 'z') && c != '_' {
			return false
		}
	}
	return true
}

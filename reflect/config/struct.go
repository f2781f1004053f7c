// Package config implements the small reflection/serialisation DSL every
// configuration and state object in this tree is built on: declare a
// field once, and get named get/set, fuzzy string-driven set, and a
// BSON-like binary serialisation for free.
//
// Field declaration rides on Go's own reflect package plus struct tags
// (`config:"name"`, and `enum:"A,B,C"` for enum-valued fields) rather than
// a constructor-time DeclareField(name) call list, since Go has no
// templates/macros to hang that call-list pattern on; the tag is this
// tree's equivalent of the declaration site remaining one line per field.
package config

import (
	"encoding/binary"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// FieldKind categorises a declared field's storage type.
type FieldKind int

const (
	KindInt FieldKind = iota
	KindString
	KindBool
	KindFloat
	KindEnum
	KindBytes
	KindStruct
)

// FieldInfo is the per-field entry in a Struct's declared-field table,
// analogous to the (offset, size, type-id, count) tuple DeclareField
// registers in the reference implementation.
type FieldInfo struct {
	Name       string
	Kind       FieldKind
	EnumValues []string
	index      []int
}

// Struct is satisfied by any configuration/state object that wants named
// field access, fuzzy set-from-string, and serialisation. Embed StructBase
// and call Init(self) from the constructor to get a default reflective
// implementation of all of it.
type Struct interface {
	Fields() []FieldInfo
	Get(name string) (any, bool)
	Set(name string, value any) bool
	ShouldSerialise(name string) bool
}

// StructBase provides the default, tag-driven implementation of Struct.
// Embed it by value in a config/state struct and call Init with a pointer
// to the owning struct from the constructor.
type StructBase struct {
	target any
	fields []FieldInfo
	limits map[string][]string
}

// Init registers target (which must be a pointer to a struct) for
// reflection. Fields are discovered from `config:"name"` tags; an
// `enum:"A,B,C"` tag on a string or int field narrows it to
// ReflectableEnum semantics.
func (s *StructBase) Init(target any) {
	s.target = target
	s.fields = discoverFields(target)
}

func discoverFields(target any) []FieldInfo {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		panic("config: StructBase.Init requires a pointer to a struct")
	}
	t := v.Elem().Type()

	var fields []FieldInfo
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		name, ok := sf.Tag.Lookup("config")
		if !ok {
			continue
		}

		fi := FieldInfo{Name: name, index: []int{i}}

		if enumTag, ok := sf.Tag.Lookup("enum"); ok {
			fi.Kind = KindEnum
			fi.EnumValues = strings.Split(enumTag, ",")
			fields = append(fields, fi)
			continue
		}

		switch sf.Type.Kind() {
		case reflect.String:
			fi.Kind = KindString
		case reflect.Bool:
			fi.Kind = KindBool
		case reflect.Float32, reflect.Float64:
			fi.Kind = KindFloat
		case reflect.Slice:
			if sf.Type.Elem().Kind() == reflect.Uint8 {
				fi.Kind = KindBytes
			}
		case reflect.Struct:
			fi.Kind = KindStruct
		default:
			fi.Kind = KindInt
		}

		fields = append(fields, fi)
	}
	return fields
}

// Fields returns the declared-field table.
func (s *StructBase) Fields() []FieldInfo {
	return s.fields
}

func (s *StructBase) fieldByName(name string) (FieldInfo, reflect.Value, bool) {
	for _, f := range s.fields {
		if f.Name == name {
			v := reflect.ValueOf(s.target).Elem().FieldByIndex(f.index)
			return f, v, true
		}
	}
	return FieldInfo{}, reflect.Value{}, false
}

// Get returns the current value of a declared field by name.
func (s *StructBase) Get(name string) (any, bool) {
	_, v, ok := s.fieldByName(name)
	if !ok {
		return nil, false
	}
	return v.Interface(), true
}

// Set assigns value to a declared field by name, with int/string/bool/
// float overloads resolved by the field's declared kind. Enum-valued
// fields accept either their string name or their underlying integer
// value. Returns false if the field doesn't exist or value's type doesn't
// match.
func (s *StructBase) Set(name string, value any) bool {
	f, v, ok := s.fieldByName(name)
	if !ok || !v.CanSet() {
		return false
	}

	if f.Kind == KindEnum {
		switch val := value.(type) {
		case string:
			if !contains(f.EnumValues, val) {
				return false
			}
			v.SetString(val)
			return true
		case int:
			if val < 0 || val >= len(f.EnumValues) {
				return false
			}
			v.SetInt(int64(val))
			return true
		}
		return false
	}

	switch val := value.(type) {
	case string:
		if v.Kind() == reflect.String {
			v.SetString(val)
			return true
		}
	case int:
		if v.CanInt() {
			v.SetInt(int64(val))
			return true
		}
	case int64:
		if v.CanInt() {
			v.SetInt(val)
			return true
		}
	case bool:
		if v.Kind() == reflect.Bool {
			v.SetBool(val)
			return true
		}
	case float64:
		if v.CanFloat() {
			v.SetFloat(val)
			return true
		}
	}
	return false
}

// ShouldSerialise is the default per-object allowlist hook: everything
// declared serialises. Embedders that want to exclude a field override
// this method on the owning type (Go's lack of virtual dispatch through
// an embedded struct means the owner must forward to StructBase and
// special-case the excluded names itself).
func (s *StructBase) ShouldSerialise(name string) bool {
	return true
}

// LimitEnum narrows the legal value set for a particular enum field,
// mirroring limit_enum(field, v1, v2, ..., -1) in the reference
// implementation (the Go rendering drops the -1 sentinel in favour of a
// normal variadic slice).
func (s *StructBase) LimitEnum(field string, allowed ...string) {
	if s.limits == nil {
		s.limits = make(map[string][]string)
	}
	s.limits[field] = allowed
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

// FuzzySet performs case-insensitive enum lookup, integer/float parsing,
// and yes/no bool mapping against a string, for the case where the value
// originates from user input (a command line, a config file, a UI text
// field) rather than already being typed.
func FuzzySet(target Struct, name, value string) bool {
	for _, f := range target.Fields() {
		if f.Name != name {
			continue
		}

		switch f.Kind {
		case KindEnum:
			allowed := f.EnumValues
			if sb, ok := target.(*StructBase); ok {
				if limited, ok := sb.limits[name]; ok {
					allowed = limited
				}
			}
			lower := strings.ToLower(value)
			for _, candidate := range allowed {
				if strings.ToLower(candidate) == lower {
					return target.Set(name, candidate)
				}
			}
			return false

		case KindBool:
			switch strings.ToLower(value) {
			case "yes", "y", "true", "on", "1":
				return target.Set(name, true)
			case "no", "n", "false", "off", "0":
				return target.Set(name, false)
			}
			return false

		case KindInt:
			n, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return false
			}
			return target.Set(name, n)

		case KindFloat:
			n, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return false
			}
			return target.Set(name, n)

		default:
			return target.Set(name, value)
		}
	}
	return false
}

// Serialise walks the declared fields that ShouldSerialise allows and
// produces a compact, BSON-like binary document: a length-prefixed
// sequence of (name, type tag, value) triples. It is not wire-compatible
// with real BSON; it borrows the same "self-describing document of typed,
// named fields" shape because that is exactly what the declared-field
// table already gives us for free.
func Serialise(s Struct) []byte {
	var doc []byte

	writeString := func(str string) {
		doc = binary.LittleEndian.AppendUint32(doc, uint32(len(str)))
		doc = append(doc, str...)
	}

	for _, f := range s.Fields() {
		if !s.ShouldSerialise(f.Name) {
			continue
		}
		val, ok := s.Get(f.Name)
		if !ok {
			continue
		}

		writeString(f.Name)
		doc = append(doc, byte(f.Kind))

		switch f.Kind {
		case KindEnum, KindString:
			writeString(fmt.Sprintf("%v", val))
		case KindBool:
			b := val.(bool)
			if b {
				doc = append(doc, 1)
			} else {
				doc = append(doc, 0)
			}
		case KindInt:
			doc = binary.LittleEndian.AppendUint64(doc, uint64(toInt64(val)))
		case KindFloat:
			doc = binary.LittleEndian.AppendUint64(doc, uint64(toInt64(val)))
		case KindBytes:
			b := val.([]byte)
			doc = binary.LittleEndian.AppendUint32(doc, uint32(len(b)))
			doc = append(doc, b...)
		default:
			writeString(fmt.Sprintf("%v", val))
		}
	}

	return doc
}

func toInt64(v any) int64 {
	rv := reflect.ValueOf(v)
	if rv.CanInt() {
		return rv.Int()
	}
	if rv.CanFloat() {
		return int64(rv.Float())
	}
	return 0
}

// Deserialise applies as many fields from data as it recognises, ignoring
// unrecognised field names (the declared-field table may be a superset or
// subset of whatever produced data, e.g. across a version change) and
// stopping cleanly rather than panicking on truncated or malformed input.
// It returns false (leaving s unmodified field-by-field as it goes, which
// callers should guard with their own copy-then-commit if atomicity is
// required) if the document could not be parsed at all.
func Deserialise(s Struct, data []byte) bool {
	pos := 0
	readString := func() (string, bool) {
		if pos+4 > len(data) {
			return "", false
		}
		n := int(binary.LittleEndian.Uint32(data[pos : pos+4]))
		pos += 4
		if pos+n > len(data) {
			return "", false
		}
		str := string(data[pos : pos+n])
		pos += n
		return str, true
	}

	ok := true
	for pos < len(data) {
		name, readOK := readString()
		if !readOK {
			return false
		}
		if pos >= len(data) {
			return false
		}
		kind := FieldKind(data[pos])
		pos++

		switch kind {
		case KindEnum, KindString:
			str, readOK := readString()
			if !readOK {
				return false
			}
			if !s.Set(name, str) {
				ok = false
			}
		case KindBool:
			if pos >= len(data) {
				return false
			}
			v := data[pos] != 0
			pos++
			if !s.Set(name, v) {
				ok = false
			}
		case KindInt:
			if pos+8 > len(data) {
				return false
			}
			v := int64(binary.LittleEndian.Uint64(data[pos : pos+8]))
			pos += 8
			if !s.Set(name, v) {
				ok = false
			}
		case KindFloat:
			if pos+8 > len(data) {
				return false
			}
			v := float64(int64(binary.LittleEndian.Uint64(data[pos : pos+8])))
			pos += 8
			if !s.Set(name, v) {
				ok = false
			}
		case KindBytes:
			if pos+4 > len(data) {
				return false
			}
			n := int(binary.LittleEndian.Uint32(data[pos : pos+4]))
			pos += 4
			if pos+n > len(data) {
				return false
			}
			b := append([]byte(nil), data[pos:pos+n]...)
			pos += n
			if !s.Set(name, b) {
				ok = false
			}
		default:
			if _, readOK := readString(); !readOK {
				return false
			}
		}
	}

	return ok
}

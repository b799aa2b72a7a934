/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package value provides the recursive JSON value model used as the payload
// currency across the workflow client. A Value decodes any server-supplied
// JSON without coercion: a JSON string "123" stays a string.
package value

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/asgardeo/spark/idx/flowerror"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	// KindNull denotes a JSON null or the zero Value.
	KindNull Kind = iota
	// KindString denotes a text value.
	KindString
	// KindNumber denotes a numeric value.
	KindNumber
	// KindBool denotes a boolean value.
	KindBool
	// KindList denotes an ordered sequence of values.
	KindList
	// KindObject denotes a string-keyed mapping of values.
	KindObject
	// KindWrapped denotes a native object wrapped for in-process use.
	// Wrapped values are never produced by decoding and cannot be encoded.
	KindWrapped
)

// Value is a tagged union over the JSON value variants.
type Value struct {
	kind    Kind
	str     string
	num     float64
	boolean bool
	list    []Value
	obj     map[string]Value
	wrapped interface{}
}

// Null returns the null value.
func Null() Value {
	return Value{kind: KindNull}
}

// String creates a text value.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Number creates a numeric value.
func Number(n float64) Value {
	return Value{kind: KindNumber, num: n}
}

// Bool creates a boolean value.
func Bool(b bool) Value {
	return Value{kind: KindBool, boolean: b}
}

// List creates an ordered sequence value.
func List(items ...Value) Value {
	return Value{kind: KindList, list: items}
}

// Object creates a mapping value. The given map is used as is.
func Object(members map[string]Value) Value {
	if members == nil {
		members = map[string]Value{}
	}
	return Value{kind: KindObject, obj: members}
}

// Wrap creates a value holding a native object for in-process use.
func Wrap(native interface{}) Value {
	return Value{kind: KindWrapped, wrapped: native}
}

// Kind returns the variant held by the value.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether the value is null.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// StringValue returns the text content and whether the value is a string.
func (v Value) StringValue() (string, bool) {
	return v.str, v.kind == KindString
}

// NumberValue returns the numeric content and whether the value is a number.
func (v Value) NumberValue() (float64, bool) {
	return v.num, v.kind == KindNumber
}

// BoolValue returns the boolean content and whether the value is a boolean.
func (v Value) BoolValue() (bool, bool) {
	return v.boolean, v.kind == KindBool
}

// ListValue returns the sequence content and whether the value is a list.
func (v Value) ListValue() ([]Value, bool) {
	return v.list, v.kind == KindList
}

// ObjectValue returns the mapping content and whether the value is an object.
func (v Value) ObjectValue() (map[string]Value, bool) {
	return v.obj, v.kind == KindObject
}

// WrappedValue returns the native content and whether the value is a wrapped object.
func (v Value) WrappedValue() (interface{}, bool) {
	return v.wrapped, v.kind == KindWrapped
}

// UnmarshalJSON decodes arbitrary JSON into the tagged union. The variant is
// chosen from the token syntax alone, never by coercion.
func (v *Value) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return flowerror.New(flowerror.KindInvalidResponseData, "empty JSON value")
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return flowerror.NewInternal(err)
		}
		*v = String(s)
	case '{':
		var raw map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return flowerror.NewInternal(err)
		}
		members := make(map[string]Value, len(raw))
		for key, member := range raw {
			var decoded Value
			if err := decoded.UnmarshalJSON(member); err != nil {
				return err
			}
			members[key] = decoded
		}
		*v = Object(members)
	case '[':
		var raw []json.RawMessage
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return flowerror.NewInternal(err)
		}
		items := make([]Value, len(raw))
		for i, item := range raw {
			if err := items[i].UnmarshalJSON(item); err != nil {
				return err
			}
		}
		*v = List(items...)
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(trimmed, &b); err != nil {
			return flowerror.NewInternal(err)
		}
		*v = Bool(b)
	case 'n':
		if string(trimmed) != "null" {
			return flowerror.New(flowerror.KindInvalidResponseData, "malformed JSON literal")
		}
		*v = Null()
	default:
		var n float64
		if err := json.Unmarshal(trimmed, &n); err != nil {
			return flowerror.NewInternal(err)
		}
		*v = Number(n)
	}

	return nil
}

// MarshalJSON encodes the value back to JSON. Object keys are emitted in
// ascending order so encoded bodies are deterministic. Encoding a wrapped
// value fails.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindString:
		return json.Marshal(v.str)
	case KindNumber:
		return json.Marshal(v.num)
	case KindBool:
		return json.Marshal(v.boolean)
	case KindList:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, item := range v.list {
			if i > 0 {
				buf.WriteByte(',')
			}
			encoded, err := item.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(encoded)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	case KindObject:
		keys := make([]string, 0, len(v.obj))
		for key := range v.obj {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		var buf bytes.Buffer
		buf.WriteByte('{')
		for i, key := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			encodedKey, err := json.Marshal(key)
			if err != nil {
				return nil, err
			}
			buf.Write(encodedKey)
			buf.WriteByte(':')
			encoded, err := v.obj[key].MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(encoded)
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil
	case KindWrapped:
		return nil, flowerror.NewInternalMessage("wrapped values cannot be encoded")
	default:
		return nil, flowerror.NewInternalMessage("unknown value kind")
	}
}

// Equal reports whether two values are equal, pairwise per variant. Wrapped
// values compare equal only when the native objects are comparable and equal.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindString:
		return v.str == other.str
	case KindNumber:
		return v.num == other.num
	case KindBool:
		return v.boolean == other.boolean
	case KindList:
		if len(v.list) != len(other.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(other.list[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.obj) != len(other.obj) {
			return false
		}
		for key, member := range v.obj {
			otherMember, ok := other.obj[key]
			if !ok || !member.Equal(otherMember) {
				return false
			}
		}
		return true
	case KindWrapped:
		if v.wrapped == nil || other.wrapped == nil {
			return v.wrapped == other.wrapped
		}
		if !reflect.TypeOf(v.wrapped).Comparable() || !reflect.TypeOf(other.wrapped).Comparable() {
			return false
		}
		return v.wrapped == other.wrapped
	default:
		return false
	}
}

// String renders a debug representation of the value.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindString:
		return strconv.Quote(v.str)
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.boolean)
	case KindList:
		parts := make([]string, len(v.list))
		for i, item := range v.list {
			parts[i] = item.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindObject:
		keys := make([]string, 0, len(v.obj))
		for key := range v.obj {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, key := range keys {
			parts[i] = strconv.Quote(key) + ": " + v.obj[key].String()
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case KindWrapped:
		if stringer, ok := v.wrapped.(fmt.Stringer); ok {
			return stringer.String()
		}
		return fmt.Sprintf("<wrapped %T>", v.wrapped)
	default:
		return "<unknown>"
	}
}

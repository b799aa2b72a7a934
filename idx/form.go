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

package idx

import (
	"strings"

	"github.com/asgardeo/spark/idx/flowerror"
	"github.com/asgardeo/spark/idx/jsonmodel"
	"github.com/asgardeo/spark/idx/value"
)

// Form is an ordered set of fields describing the expected input of a
// remediation. No two sibling fields share a name.
type Form struct {
	fields []*Field
}

// newForm converts wire field descriptors into a Form.
func newForm(defs []jsonmodel.FieldDefinition) *Form {
	form := &Form{fields: make([]*Field, 0, len(defs))}
	for _, def := range defs {
		form.fields = append(form.fields, newField(def))
	}
	return form
}

// Fields returns the ordered fields of the form.
func (f *Form) Fields() []*Field {
	return f.fields
}

// field returns the direct child with the given name, or nil.
func (f *Form) field(name string) *Field {
	for _, candidate := range f.fields {
		if candidate.Name == name {
			return candidate
		}
	}
	return nil
}

// Lookup resolves a dotted path to a field. Each non-terminal segment must
// name a field owning a nested form to descend into.
func (f *Form) Lookup(path string) (*Field, error) {
	segments := strings.Split(path, ".")
	current := f
	for i, segment := range segments {
		field := current.field(segment)
		if field == nil {
			return nil, flowerror.NewInvalidParameter(path)
		}
		if i == len(segments)-1 {
			return field, nil
		}
		if field.Form == nil {
			return nil, flowerror.NewInvalidParameter(path)
		}
		current = field.Form
	}
	// Unreachable: strings.Split never yields an empty slice.
	return nil, flowerror.NewInvalidParameter(path)
}

// SetValue merges a value into the form at a dotted path. An object value
// merged onto a field owning a nested form descends into the sub-fields so
// mutability is checked at the leaves. Immutable fields accept only their
// existing value.
func (f *Form) SetValue(path string, v value.Value) error {
	field, err := f.Lookup(path)
	if err != nil {
		return err
	}

	if members, ok := v.ObjectValue(); ok && field.Form != nil {
		for name, member := range members {
			if err := field.Form.SetValue(name, member); err != nil {
				return err
			}
		}
		return nil
	}

	if !field.Mutable {
		if !field.value.IsNull() && !field.value.Equal(v) {
			return flowerror.NewParameterImmutable(field.Name)
		}
		if field.value.IsNull() {
			field.value = v
		}
		return nil
	}

	field.value = v
	return nil
}

// SelectOption marks one option of the field at the given path as the chosen
// alternative. The option is matched by label first, then by its plain value.
func (f *Form) SelectOption(path, option string) error {
	field, err := f.Lookup(path)
	if err != nil {
		return err
	}
	if len(field.Options) == 0 {
		return flowerror.NewInvalidParameter(path)
	}
	for _, candidate := range field.Options {
		if candidate.Label == option {
			field.selected = candidate
			return nil
		}
		if text, ok := candidate.Value.StringValue(); ok && text == option {
			field.selected = candidate
			return nil
		}
	}
	return flowerror.NewUnknownRemediationOption(option)
}

// collect walks the form and produces the parameter mapping for submission.
// A field owning a nested form contributes its collected sub-fields under its
// own name; a selected option contributes its form in place of the parent
// value; unset fields are absent, required or not.
func (f *Form) collect() (map[string]value.Value, error) {
	parameters := map[string]value.Value{}
	for _, field := range f.fields {
		switch {
		case len(field.Options) > 0:
			if field.selected == nil {
				// A direct value merged onto an option field wins over an
				// unselected choice.
				if !field.value.IsNull() {
					parameters[field.Name] = field.value
				}
				continue
			}
			if field.selected.Form != nil {
				nested, err := field.selected.Form.collect()
				if err != nil {
					return nil, err
				}
				parameters[field.Name] = value.Object(nested)
				continue
			}
			parameters[field.Name] = field.selected.Value
		case field.Form != nil:
			nested, err := field.Form.collect()
			if err != nil {
				return nil, err
			}
			if len(nested) > 0 {
				parameters[field.Name] = value.Object(nested)
			}
		case !field.value.IsNull():
			parameters[field.Name] = field.value
		}
	}
	return parameters, nil
}

// clone returns a deep copy of the form, detached from its origin.
func (f *Form) clone() *Form {
	copied := &Form{fields: make([]*Field, len(f.fields))}
	for i, field := range f.fields {
		copied.fields[i] = field.clone()
	}
	return copied
}

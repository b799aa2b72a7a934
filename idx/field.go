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
	"encoding/json"

	"github.com/asgardeo/spark/idx/jsonmodel"
	"github.com/asgardeo/spark/idx/value"
)

// Field describes one expected input of a remediation form. A field either
// carries a direct value, owns a nested Form (composite value), or offers
// Options (a discriminated choice between alternative sub-forms). A field
// with options never carries a scalar value of its own.
type Field struct {
	// Name is the parameter name, unique among its siblings.
	Name string
	// Label is the human readable display label.
	Label string
	// Type is the declared value kind, as supplied by the server.
	Type string
	// Required marks the field as required by the server. The client does not
	// enforce required fields; the server reports field level messages.
	Required bool
	// Mutable marks whether a caller may change the field's value.
	Mutable bool
	// Secret marks values that should not be displayed or logged.
	Secret bool
	// Visible marks whether the field should be rendered to the user.
	Visible bool
	// Form is the nested form for composite values, nil otherwise.
	Form *Form
	// Options holds the selectable alternatives of a discriminated choice.
	Options []*Option
	// Messages holds the server messages describing this field.
	Messages []Message
	// RelatesTo is an optional reference into the owning response.
	RelatesTo string

	value    value.Value
	selected *Option
}

// Option is one selectable alternative of a field. An option either owns a
// sub-form contributing its fields in place of the parent value, or carries
// a plain value.
type Option struct {
	// Label is the display label of the option.
	Label string
	// Form is the option's own form, nil for plain valued options.
	Form *Form
	// Value is the plain option value, null when the option owns a form.
	Value value.Value
}

// Value returns the field's current value. It is null until populated by the
// server or a caller.
func (f *Field) Value() value.Value {
	return f.value
}

// SelectedOption returns the currently selected option, or nil.
func (f *Field) SelectedOption() *Option {
	return f.selected
}

// newField converts a wire field descriptor into a Field.
func newField(def jsonmodel.FieldDefinition) *Field {
	field := &Field{
		Name:      def.Name,
		Label:     def.Label,
		Type:      def.Type,
		Required:  def.Required,
		Secret:    def.Secret,
		Visible:   true,
		Mutable:   true,
		RelatesTo: def.RelatesTo,
		value:     def.Value,
	}
	if def.Visible != nil {
		field.Visible = *def.Visible
	}
	if def.Mutable != nil {
		field.Mutable = *def.Mutable
	}
	if def.Form != nil {
		field.Form = newForm(def.Form.Value)
	}
	for _, optionDef := range def.Options {
		field.Options = append(field.Options, newOption(optionDef))
	}
	if def.Messages != nil {
		for _, messageDef := range def.Messages.Value {
			field.Messages = append(field.Messages, newMessage(messageDef))
		}
	}
	return field
}

// newOption converts a wire option descriptor into an Option. The raw value
// is an object owning a form for composite options, anything else is kept as
// a plain value.
func newOption(def jsonmodel.OptionDefinition) *Option {
	option := &Option{Label: def.Label, Value: value.Null()}
	if len(def.Value) == 0 {
		return option
	}

	var composite jsonmodel.OptionFormDefinition
	if err := json.Unmarshal(def.Value, &composite); err == nil && composite.Form != nil {
		option.Form = newForm(composite.Form.Value)
		return option
	}

	var plain value.Value
	if err := json.Unmarshal(def.Value, &plain); err == nil {
		option.Value = plain
	}
	return option
}

// clone returns a deep copy of the field, detached from its origin.
func (f *Field) clone() *Field {
	copied := *f
	if f.Form != nil {
		copied.Form = f.Form.clone()
	}
	copied.Options = make([]*Option, len(f.Options))
	for i, option := range f.Options {
		copied.Options[i] = option.clone()
	}
	if f.selected != nil {
		for i, option := range f.Options {
			if option == f.selected {
				copied.selected = copied.Options[i]
			}
		}
	}
	return &copied
}

// clone returns a deep copy of the option.
func (o *Option) clone() *Option {
	copied := *o
	if o.Form != nil {
		copied.Form = o.Form.clone()
	}
	return &copied
}

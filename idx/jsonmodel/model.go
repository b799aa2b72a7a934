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

// Package jsonmodel provides the structures for decoding identity engine
// responses from their JSON wire format.
package jsonmodel

import (
	"encoding/json"

	"github.com/asgardeo/spark/idx/value"
)

// Collection represents the protocol's typed array container.
type Collection[T any] struct {
	Type  string `json:"type,omitempty"`
	Value []T    `json:"value"`
}

// ObjectContainer represents the protocol's typed object container.
type ObjectContainer[T any] struct {
	Type  string `json:"type,omitempty"`
	Value T      `json:"value"`
}

// ResponseDefinition represents a decoded identity engine response.
type ResponseDefinition struct {
	StateHandle                string                                    `json:"stateHandle,omitempty"`
	Version                    string                                    `json:"version,omitempty"`
	ExpiresAt                  string                                    `json:"expiresAt,omitempty"`
	Intent                     string                                    `json:"intent,omitempty"`
	Remediation                *Collection[RemediationDefinition]        `json:"remediation,omitempty"`
	Messages                   *Collection[MessageDefinition]            `json:"messages,omitempty"`
	Authenticators             *Collection[AuthenticatorDefinition]      `json:"authenticators,omitempty"`
	AuthenticatorEnrollments   *Collection[AuthenticatorDefinition]      `json:"authenticatorEnrollments,omitempty"`
	CurrentAuthenticator       *ObjectContainer[AuthenticatorDefinition] `json:"currentAuthenticator,omitempty"`
	SuccessWithInteractionCode *RemediationDefinition                    `json:"successWithInteractionCode,omitempty"`
	Cancel                     *RemediationDefinition                    `json:"cancel,omitempty"`
	App                        *ObjectContainer[AppDefinition]           `json:"app,omitempty"`
	User                       *ObjectContainer[UserDefinition]          `json:"user,omitempty"`
}

// RemediationDefinition represents one remediation descriptor.
type RemediationDefinition struct {
	Rel          []string          `json:"rel,omitempty"`
	Name         string            `json:"name"`
	Method       string            `json:"method"`
	Href         string            `json:"href"`
	Accepts      string            `json:"accepts,omitempty"`
	Produces     string            `json:"produces,omitempty"`
	Value        []FieldDefinition `json:"value,omitempty"`
	RelatesTo    []string          `json:"relatesTo,omitempty"`
	Refresh      *int64            `json:"refresh,omitempty"`
	Capabilities []string          `json:"capabilities,omitempty"`
	Idp          *IdpDefinition    `json:"idp,omitempty"`
}

// IdpDefinition identifies an external identity provider on a redirect remediation.
type IdpDefinition struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// FieldDefinition represents one form value descriptor.
type FieldDefinition struct {
	Name      string                         `json:"name"`
	Label     string                         `json:"label,omitempty"`
	Type      string                         `json:"type,omitempty"`
	Required  bool                           `json:"required,omitempty"`
	Secret    bool                           `json:"secret,omitempty"`
	Visible   *bool                          `json:"visible,omitempty"`
	Mutable   *bool                          `json:"mutable,omitempty"`
	Value     value.Value                    `json:"value,omitempty"`
	Form      *FormDefinition                `json:"form,omitempty"`
	Options   []OptionDefinition             `json:"options,omitempty"`
	RelatesTo string                         `json:"relatesTo,omitempty"`
	Messages  *Collection[MessageDefinition] `json:"messages,omitempty"`
}

// FormDefinition represents a nested form owned by a field.
type FormDefinition struct {
	Value []FieldDefinition `json:"value"`
}

// OptionDefinition represents one selectable option of a field. The value is
// either a scalar or an object owning a nested form, so it is kept raw until
// the conversion layer inspects it.
type OptionDefinition struct {
	Label string          `json:"label"`
	Value json.RawMessage `json:"value"`
}

// OptionFormDefinition is the object shape of an option value owning a form.
type OptionFormDefinition struct {
	Form *FormDefinition `json:"form"`
}

// MessageDefinition represents one server message.
type MessageDefinition struct {
	Message string          `json:"message"`
	Class   string          `json:"class,omitempty"`
	I18n    *I18nDefinition `json:"i18n,omitempty"`
}

// I18nDefinition carries the localization key of a message.
type I18nDefinition struct {
	Key    string        `json:"key"`
	Params []interface{} `json:"params,omitempty"`
}

// AuthenticatorDefinition represents a verification method offered by the server.
type AuthenticatorDefinition struct {
	ID          string                 `json:"id,omitempty"`
	Type        string                 `json:"type"`
	Key         string                 `json:"key,omitempty"`
	DisplayName string                 `json:"displayName,omitempty"`
	Methods     []MethodDefinition     `json:"methods,omitempty"`
	Profile     map[string]interface{} `json:"profile,omitempty"`
}

// MethodDefinition represents one method of an authenticator.
type MethodDefinition struct {
	Type string `json:"type"`
}

// AppDefinition represents the application information attached to a response.
type AppDefinition struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
	Label string `json:"label,omitempty"`
}

// UserDefinition represents the user information attached to a response once
// the flow has identified one.
type UserDefinition struct {
	ID         string `json:"id,omitempty"`
	Identifier string `json:"identifier,omitempty"`
}

// InteractDefinition represents the interact endpoint response.
type InteractDefinition struct {
	InteractionHandle string `json:"interaction_handle"`
}

// ErrorDefinition represents the server error body.
type ErrorDefinition struct {
	Message         string `json:"message"`
	LocalizationKey string `json:"localizationKey,omitempty"`
	Type            string `json:"type,omitempty"`
}

// OAuthErrorDefinition represents the token endpoint error body.
type OAuthErrorDefinition struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
	ErrorID          string `json:"errorId,omitempty"`
}

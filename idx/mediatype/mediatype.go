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

// Package mediatype negotiates the two wire encodings used by the identity
// engine protocol and encodes request bodies accordingly.
package mediatype

import (
	"encoding/json"
	"net/url"

	"github.com/elnormous/contenttype"

	"github.com/asgardeo/spark/idx/flowerror"
	"github.com/asgardeo/spark/idx/value"
)

const (
	// FormMediaType is the media type of the form-url-encoded wire format.
	FormMediaType = "application/x-www-form-urlencoded"
	// IonJSONMediaType is the media type of the structured JSON wire format.
	IonJSONMediaType = "application/ion+json"
	// VersionParameter is the media type parameter carrying the protocol version.
	VersionParameter = "okta-version"
)

// AcceptKind identifies the negotiated wire encoding.
type AcceptKind int

const (
	// Unrecognized denotes a media type outside the protocol. Callers must
	// treat it as a hard stop; it is a typed absence, not an error.
	Unrecognized AcceptKind = iota
	// FormEncoded denotes the form-url-encoded wire format.
	FormEncoded
	// IonJSON denotes the structured JSON wire format, optionally versioned.
	IonJSON
)

// AcceptType is the parsed form of an accept or content type header value.
type AcceptType struct {
	kind    AcceptKind
	version string
	raw     string
}

// NewFormEncoded returns the form-url-encoded accept type.
func NewFormEncoded() AcceptType {
	return AcceptType{kind: FormEncoded, raw: FormMediaType}
}

// NewIonJSON returns the structured JSON accept type with an optional version.
func NewIonJSON(version string) AcceptType {
	return AcceptType{kind: IonJSON, version: version, raw: IonJSONMediaType}
}

// Parse parses a header value into an AcceptType. Anything that is not one of
// the two protocol media types parses to Unrecognized. The okta-version
// parameter is captured verbatim without validating its syntax.
func Parse(headerValue string) AcceptType {
	parsed := contenttype.NewMediaType(headerValue)
	switch parsed.MIME() {
	case FormMediaType:
		return AcceptType{kind: FormEncoded, raw: headerValue}
	case IonJSONMediaType:
		return AcceptType{
			kind:    IonJSON,
			version: parsed.Parameters[VersionParameter],
			raw:     headerValue,
		}
	default:
		return AcceptType{raw: headerValue}
	}
}

// Kind returns the negotiated encoding kind.
func (a AcceptType) Kind() AcceptKind {
	return a.kind
}

// Version returns the protocol version, set only for versioned IonJSON types.
func (a AcceptType) Version() string {
	return a.version
}

// Raw returns the header value the type was parsed from.
func (a AcceptType) Raw() string {
	return a.raw
}

// String renders the accept type back to a header value. The version
// parameter is re-added only when present.
func (a AcceptType) String() string {
	switch a.kind {
	case FormEncoded:
		return FormMediaType
	case IonJSON:
		if a.version == "" {
			return IonJSONMediaType
		}
		return IonJSONMediaType + "; " + VersionParameter + "=" + a.version
	default:
		return a.raw
	}
}

// Equal reports whether two accept types negotiate the same encoding.
func (a AcceptType) Equal(other AcceptType) bool {
	return a.kind == other.kind && a.version == other.version
}

// Encode serializes the parameter map in the negotiated wire format and
// returns the body together with the content type header value.
//
// The form-url-encoded format accepts only string parameters; any structured
// value is an invalid request data error. The structured JSON format encodes
// object keys in ascending order so bodies are deterministic.
func (a AcceptType) Encode(parameters map[string]value.Value) ([]byte, string, error) {
	switch a.kind {
	case FormEncoded:
		form := url.Values{}
		for name, parameter := range parameters {
			text, ok := parameter.StringValue()
			if !ok {
				return nil, "", &flowerror.FlowError{
					Kind:      flowerror.KindInvalidRequestData,
					Message:   "form encoding accepts only string parameters",
					Parameter: name,
				}
			}
			form.Set(name, text)
		}
		return []byte(form.Encode()), a.String(), nil
	case IonJSON:
		body, err := json.Marshal(value.Object(parameters))
		if err != nil {
			return nil, "", err
		}
		return body, a.String(), nil
	default:
		return nil, "", flowerror.New(flowerror.KindCannotBuildRequest,
			"cannot encode a body for an unrecognized media type")
	}
}

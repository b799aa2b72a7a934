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

// Package flowerror defines the typed error structures surfaced by the workflow client.
package flowerror

import (
	"errors"
	"fmt"
)

// Kind identifies the category of a workflow error.
type Kind string

const (
	// KindInvalidClient denotes an operation invoked without a live session.
	KindInvalidClient Kind = "invalid_client"
	// KindCannotBuildRequest denotes a failure while constructing an outbound request.
	KindCannotBuildRequest Kind = "cannot_build_request"
	// KindInvalidHTTPResponse denotes an HTTP response with an unexpected status.
	KindInvalidHTTPResponse Kind = "invalid_http_response"
	// KindInvalidResponseData denotes a malformed or undecodable response body.
	KindInvalidResponseData Kind = "invalid_response_data"
	// KindInvalidRequestData denotes parameters whose shape does not match the negotiated encoding.
	KindInvalidRequestData Kind = "invalid_request_data"
	// KindServerError denotes an error message returned by the server.
	KindServerError Kind = "server_error"
	// KindInternalError denotes a wrapped internal failure, including transport errors.
	KindInternalError Kind = "internal_error"
	// KindInternalMessage denotes an internal failure described by a plain message.
	KindInternalMessage Kind = "internal_message"
	// KindOAuth2Error denotes an error returned by the token endpoint.
	KindOAuth2Error Kind = "oauth2_error"
	// KindInvalidParameter denotes a parameter unknown to the target form.
	KindInvalidParameter Kind = "invalid_parameter"
	// KindInvalidParameterValue denotes a parameter whose value has the wrong type.
	KindInvalidParameterValue Kind = "invalid_parameter_value"
	// KindParameterImmutable denotes an attempt to overwrite an immutable field value.
	KindParameterImmutable Kind = "parameter_immutable"
	// KindMissingRequiredParameter denotes an absent parameter required by the operation.
	KindMissingRequiredParameter Kind = "missing_required_parameter"
	// KindMissingRemediationOption denotes a remediation absent from the current response.
	KindMissingRemediationOption Kind = "missing_remediation_option"
	// KindUnknownRemediationOption denotes a remediation option name not present in a field.
	KindUnknownRemediationOption Kind = "unknown_remediation_option"
	// KindSuccessResponseMissing denotes a code exchange attempted before the flow succeeded.
	KindSuccessResponseMissing Kind = "success_response_missing"
	// KindMissingRefreshToken denotes a refresh attempted on a token without a refresh token.
	KindMissingRefreshToken Kind = "missing_refresh_token"
	// KindMissingRelatedObject denotes a relatesTo reference that cannot be resolved.
	KindMissingRelatedObject Kind = "missing_related_object"
)

// FlowError is the error type surfaced by all workflow operations.
type FlowError struct {
	Kind    Kind
	Message string
	// Parameter carries the offending parameter name for parameter errors.
	Parameter string
	// ExpectedType carries the expected value type for invalid parameter value errors.
	ExpectedType string
	// LocalizationKey carries the server-supplied localization key for server errors.
	LocalizationKey string
	// ServerType carries the server-supplied error type for server errors.
	ServerType string
	// Code carries the error code for OAuth2 errors.
	Code string
	// ErrorID carries the server-assigned error identifier for OAuth2 errors.
	ErrorID string

	cause error
}

// Error returns the string representation of the error.
func (e *FlowError) Error() string {
	switch {
	case e.Parameter != "" && e.ExpectedType != "":
		return fmt.Sprintf("%s: parameter %q expects type %s", e.Kind, e.Parameter, e.ExpectedType)
	case e.Parameter != "":
		return fmt.Sprintf("%s: parameter %q", e.Kind, e.Parameter)
	case e.Code != "":
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, e.Code)
	case e.cause != nil && e.Message == "":
		return fmt.Sprintf("%s: %s", e.Kind, e.cause.Error())
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	default:
		return string(e.Kind)
	}
}

// Unwrap returns the wrapped cause, if any.
func (e *FlowError) Unwrap() error {
	return e.cause
}

// Is reports whether the target error matches this error by kind.
func (e *FlowError) Is(target error) bool {
	var fe *FlowError
	if !errors.As(target, &fe) {
		return false
	}
	return e.Kind == fe.Kind
}

// IsKind reports whether err is a FlowError of the given kind.
func IsKind(err error, kind Kind) bool {
	var fe *FlowError
	if !errors.As(err, &fe) {
		return false
	}
	return fe.Kind == kind
}

// New creates a FlowError of the given kind with a message.
func New(kind Kind, message string) *FlowError {
	return &FlowError{Kind: kind, Message: message}
}

// NewInvalidClient creates an invalid client error.
func NewInvalidClient() *FlowError {
	return &FlowError{Kind: KindInvalidClient, Message: "no active session is associated with this object"}
}

// NewInternal wraps an internal failure.
func NewInternal(cause error) *FlowError {
	return &FlowError{Kind: KindInternalError, cause: cause}
}

// NewInternalMessage creates an internal error from a plain message.
func NewInternalMessage(message string) *FlowError {
	return &FlowError{Kind: KindInternalMessage, Message: message}
}

// NewServerError creates an error from a server error body.
func NewServerError(message, localizationKey, serverType string) *FlowError {
	return &FlowError{
		Kind:            KindServerError,
		Message:         message,
		LocalizationKey: localizationKey,
		ServerType:      serverType,
	}
}

// NewOAuth2Error creates an error from a token endpoint error body.
func NewOAuth2Error(summary, code, errorID string) *FlowError {
	return &FlowError{Kind: KindOAuth2Error, Message: summary, Code: code, ErrorID: errorID}
}

// NewInvalidParameter creates an error for an unknown parameter name.
func NewInvalidParameter(name string) *FlowError {
	return &FlowError{Kind: KindInvalidParameter, Parameter: name}
}

// NewInvalidParameterValue creates an error for a parameter with an unexpected value type.
func NewInvalidParameterValue(name, expectedType string) *FlowError {
	return &FlowError{Kind: KindInvalidParameterValue, Parameter: name, ExpectedType: expectedType}
}

// NewParameterImmutable creates an error for an attempt to change an immutable parameter.
func NewParameterImmutable(name string) *FlowError {
	return &FlowError{Kind: KindParameterImmutable, Parameter: name}
}

// NewMissingRequiredParameter creates an error for an absent required parameter.
func NewMissingRequiredParameter(name string) *FlowError {
	return &FlowError{Kind: KindMissingRequiredParameter, Parameter: name}
}

// NewMissingRemediationOption creates an error for a remediation absent from the response.
func NewMissingRemediationOption(name string) *FlowError {
	return &FlowError{Kind: KindMissingRemediationOption, Parameter: name}
}

// NewUnknownRemediationOption creates an error for an option name not present in a field.
func NewUnknownRemediationOption(name string) *FlowError {
	return &FlowError{Kind: KindUnknownRemediationOption, Parameter: name}
}

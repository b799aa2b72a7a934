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
	"context"
	"strconv"
	"strings"

	"github.com/asgardeo/spark/idx/flowerror"
	"github.com/asgardeo/spark/idx/jsonmodel"
)

// Response is a decoded server reply: the ordered set of available
// remediations plus the messages and authenticators describing the current
// workflow state. A response is an immutable snapshot, superseded wholesale
// by the next response.
type Response struct {
	stateHandle    string
	version        string
	intent         string
	remediations   []*Remediation
	messages       []Message
	authenticators []*Authenticator
	enrollments    []*Authenticator
	current        *Authenticator
	success        *Remediation
	cancel         *Remediation
	app            *AppInfo
	user           *UserInfo
}

// AppInfo describes the application the workflow authenticates into.
type AppInfo struct {
	ID    string
	Name  string
	Label string
}

// UserInfo describes the user the flow has identified so far.
type UserInfo struct {
	ID         string
	Identifier string
}

// newResponse converts a decoded wire response into a Response bound to the
// given session.
func newResponse(def *jsonmodel.ResponseDefinition, sess session) *Response {
	response := &Response{
		stateHandle: def.StateHandle,
		version:     def.Version,
		intent:      def.Intent,
	}

	if def.Remediation != nil {
		for _, remediationDef := range def.Remediation.Value {
			response.remediations = append(response.remediations, newRemediation(remediationDef, sess))
		}
	}
	if def.Messages != nil {
		for _, messageDef := range def.Messages.Value {
			response.messages = append(response.messages, newMessage(messageDef))
		}
	}
	if def.Authenticators != nil {
		for _, authenticatorDef := range def.Authenticators.Value {
			response.authenticators = append(response.authenticators, newAuthenticator(authenticatorDef))
		}
	}
	if def.AuthenticatorEnrollments != nil {
		for _, authenticatorDef := range def.AuthenticatorEnrollments.Value {
			response.enrollments = append(response.enrollments, newAuthenticator(authenticatorDef))
		}
	}
	if def.CurrentAuthenticator != nil {
		response.current = newAuthenticator(def.CurrentAuthenticator.Value)
	}
	if def.SuccessWithInteractionCode != nil {
		response.success = newRemediation(*def.SuccessWithInteractionCode, sess)
	}
	if def.Cancel != nil {
		response.cancel = newRemediation(*def.Cancel, sess)
	}
	response.app = extractApp(def)
	response.user = extractUser(def)

	// Remediations resolve their related authenticators against the response
	// collections once everything is decoded.
	for _, remediation := range response.remediations {
		for _, reference := range remediation.RelatesTo {
			if authenticator, err := response.RelatedAuthenticator(reference); err == nil {
				remediation.Authenticators = append(remediation.Authenticators, authenticator)
			}
		}
	}

	return response
}

// extractApp returns the application info of a response, or nil.
func extractApp(def *jsonmodel.ResponseDefinition) *AppInfo {
	if def.App == nil {
		return nil
	}
	return &AppInfo{
		ID:    def.App.Value.ID,
		Name:  def.App.Value.Name,
		Label: def.App.Value.Label,
	}
}

// extractUser returns the user info of a response, or nil.
func extractUser(def *jsonmodel.ResponseDefinition) *UserInfo {
	if def.User == nil {
		return nil
	}
	return &UserInfo{
		ID:         def.User.Value.ID,
		Identifier: def.User.Value.Identifier,
	}
}

// RelatedAuthenticator resolves a relatesTo reference to an authenticator of
// this response. Supported references are "$.currentAuthenticator",
// "$.authenticators.value[N]" and "$.authenticatorEnrollments.value[N]"; any
// other reference, or an index out of range, is a missing related object
// error.
func (r *Response) RelatedAuthenticator(reference string) (*Authenticator, error) {
	missing := &flowerror.FlowError{Kind: flowerror.KindMissingRelatedObject, Parameter: reference}

	if reference == "$.currentAuthenticator" {
		if r.current == nil {
			return nil, missing
		}
		return r.current, nil
	}

	var collection []*Authenticator
	var index int
	switch {
	case strings.HasPrefix(reference, "$.authenticators.value["):
		collection = r.authenticators
		index = parseReferenceIndex(reference)
	case strings.HasPrefix(reference, "$.authenticatorEnrollments.value["):
		collection = r.enrollments
		index = parseReferenceIndex(reference)
	default:
		return nil, missing
	}
	if index < 0 || index >= len(collection) {
		return nil, missing
	}
	return collection[index], nil
}

// parseReferenceIndex extracts the bracketed index of a relatesTo reference,
// returning -1 when it is absent or malformed.
func parseReferenceIndex(reference string) int {
	open := strings.IndexByte(reference, '[')
	end := strings.IndexByte(reference, ']')
	if open < 0 || end <= open+1 {
		return -1
	}
	index, err := strconv.Atoi(reference[open+1 : end])
	if err != nil {
		return -1
	}
	return index
}

// StateHandle returns the resumable state token of this snapshot.
func (r *Response) StateHandle() string {
	return r.stateHandle
}

// Intent returns the flow intent reported by the server.
func (r *Response) Intent() string {
	return r.intent
}

// Remediations returns the ordered remediation collection.
func (r *Response) Remediations() []*Remediation {
	return r.remediations
}

// Remediation returns the remediation of the given kind, or a missing
// remediation option error when the response does not offer it.
func (r *Response) Remediation(kind RemediationKind) (*Remediation, error) {
	for _, remediation := range r.remediations {
		if remediation.Kind == kind {
			return remediation, nil
		}
	}
	return nil, flowerror.NewMissingRemediationOption(string(kind))
}

// RemediationNamed returns the remediation with the given raw name, or a
// missing remediation option error. It is the escape hatch for unrecognized
// remediations.
func (r *Response) RemediationNamed(name string) (*Remediation, error) {
	for _, remediation := range r.remediations {
		if remediation.Name == name {
			return remediation, nil
		}
	}
	return nil, flowerror.NewMissingRemediationOption(name)
}

// Messages returns the top level messages of the response. Field level
// messages are nested under the fields they describe.
func (r *Response) Messages() []Message {
	return r.messages
}

// Authenticators returns the authenticators offered by the response.
func (r *Response) Authenticators() []*Authenticator {
	return r.authenticators
}

// AuthenticatorEnrollments returns the user's enrolled authenticators.
func (r *Response) AuthenticatorEnrollments() []*Authenticator {
	return r.enrollments
}

// CurrentAuthenticator returns the authenticator the current step relates to, or nil.
func (r *Response) CurrentAuthenticator() *Authenticator {
	return r.current
}

// LoginSuccess reports whether the workflow reached the terminal success
// state. Once it does, exchanging the interaction code is the only further
// valid operation.
func (r *Response) LoginSuccess() bool {
	return r.success != nil
}

// SuccessResponse returns the terminal success remediation, or a success
// response missing error while the flow is still in progress.
func (r *Response) SuccessResponse() (*Remediation, error) {
	if r.success == nil {
		return nil, &flowerror.FlowError{Kind: flowerror.KindSuccessResponseMissing}
	}
	return r.success, nil
}

// CancelResponse issues the cancel remediation and returns the fresh
// response of the restarted flow.
func (r *Response) CancelResponse(ctx context.Context) (*Response, error) {
	if r.cancel == nil {
		return nil, flowerror.NewMissingRemediationOption(string(RemediationCancel))
	}
	return r.cancel.Proceed(ctx, nil)
}

// CanCancel reports whether the response carries a cancel remediation.
func (r *Response) CanCancel() bool {
	return r.cancel != nil
}

// App returns the application info attached to the response, or nil.
func (r *Response) App() *AppInfo {
	return r.app
}

// User returns the user info attached to the response, nil until the flow
// has identified one.
func (r *Response) User() *UserInfo {
	return r.user
}

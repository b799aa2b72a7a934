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
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/asgardeo/spark/idx/flowerror"
	"github.com/asgardeo/spark/idx/jsonmodel"
	"github.com/asgardeo/spark/idx/mediatype"
	"github.com/asgardeo/spark/idx/value"
	"github.com/asgardeo/spark/internal/system/log"
)

// RemediationKind is the closed enumeration of known remediation names.
type RemediationKind string

const (
	// RemediationIdentify collects the user identifier.
	RemediationIdentify RemediationKind = "identify"
	// RemediationChallengeAuthenticator verifies a challenge for the current authenticator.
	RemediationChallengeAuthenticator RemediationKind = "challenge-authenticator"
	// RemediationSelectAuthenticatorAuthenticate selects an authenticator to verify with.
	RemediationSelectAuthenticatorAuthenticate RemediationKind = "select-authenticator-authenticate"
	// RemediationSelectAuthenticatorEnroll selects an authenticator to enroll.
	RemediationSelectAuthenticatorEnroll RemediationKind = "select-authenticator-enroll"
	// RemediationEnrollProfile collects profile attributes for a new account.
	RemediationEnrollProfile RemediationKind = "enroll-profile"
	// RemediationSelectEnrollProfile switches the flow to account enrollment.
	RemediationSelectEnrollProfile RemediationKind = "select-enroll-profile"
	// RemediationEnrollAuthenticator enrolls the selected authenticator.
	RemediationEnrollAuthenticator RemediationKind = "enroll-authenticator"
	// RemediationAuthenticatorVerificationData collects verification method data.
	RemediationAuthenticatorVerificationData RemediationKind = "authenticator-verification-data"
	// RemediationAuthenticatorEnrollmentData collects enrollment method data.
	RemediationAuthenticatorEnrollmentData RemediationKind = "authenticator-enrollment-data"
	// RemediationResetAuthenticator resets an authenticator after recovery.
	RemediationResetAuthenticator RemediationKind = "reset-authenticator"
	// RemediationReenrollAuthenticator re-enrolls an expired authenticator.
	RemediationReenrollAuthenticator RemediationKind = "reenroll-authenticator"
	// RemediationRedirectIdp redirects the user to an external identity provider.
	RemediationRedirectIdp RemediationKind = "redirect-idp"
	// RemediationChallengePoll polls for an out of band challenge completion.
	RemediationChallengePoll RemediationKind = "challenge-poll"
	// RemediationDeviceChallengePoll polls for a device challenge completion.
	RemediationDeviceChallengePoll RemediationKind = "device-challenge-poll"
	// RemediationUnlockAccount starts the self service unlock flow.
	RemediationUnlockAccount RemediationKind = "unlock-account"
	// RemediationSkip skips an optional step.
	RemediationSkip RemediationKind = "skip"
	// RemediationCancel restarts the flow.
	RemediationCancel RemediationKind = "cancel"
	// RemediationIssue exchanges the interaction code on the terminal success response.
	RemediationIssue RemediationKind = "issue"
	// RemediationUnrecognized is the fallback for names outside the known set.
	// The raw name is preserved on the remediation.
	RemediationUnrecognized RemediationKind = "unrecognized"
)

// knownRemediationKinds is the closed set a server supplied name is mapped against.
var knownRemediationKinds = map[string]RemediationKind{
	"identify":                          RemediationIdentify,
	"challenge-authenticator":           RemediationChallengeAuthenticator,
	"select-authenticator-authenticate": RemediationSelectAuthenticatorAuthenticate,
	"select-authenticator-enroll":       RemediationSelectAuthenticatorEnroll,
	"enroll-profile":                    RemediationEnrollProfile,
	"select-enroll-profile":             RemediationSelectEnrollProfile,
	"enroll-authenticator":              RemediationEnrollAuthenticator,
	"authenticator-verification-data":   RemediationAuthenticatorVerificationData,
	"authenticator-enrollment-data":     RemediationAuthenticatorEnrollmentData,
	"reset-authenticator":               RemediationResetAuthenticator,
	"reenroll-authenticator":            RemediationReenrollAuthenticator,
	"redirect-idp":                      RemediationRedirectIdp,
	"challenge-poll":                    RemediationChallengePoll,
	"device-challenge-poll":             RemediationDeviceChallengePoll,
	"unlock-account":                    RemediationUnlockAccount,
	"skip":                              RemediationSkip,
	"cancel":                            RemediationCancel,
	"issue":                             RemediationIssue,
}

// RemediationKindFromName maps a server supplied name into the known
// enumeration, falling back to RemediationUnrecognized.
func RemediationKindFromName(name string) RemediationKind {
	if kind, ok := knownRemediationKinds[name]; ok {
		return kind
	}
	return RemediationUnrecognized
}

// session is the live workflow handle a remediation proceeds through. It is
// passed in by the response that produced the remediation; a remediation
// detached from a session cannot proceed.
type session interface {
	execute(req *http.Request) (*Response, error)
	acceptVersion() string
}

// Remediation is one available next step of the workflow. It is owned by the
// response that produced it and is a frozen snapshot: proceeding never
// mutates it, and it is superseded wholesale by the next response.
type Remediation struct {
	// Kind is the known remediation kind, RemediationUnrecognized otherwise.
	Kind RemediationKind
	// Name is the raw server supplied name.
	Name string
	// Method is the HTTP method of the next request.
	Method string
	// Href is the target address of the next request.
	Href string
	// Accepts is the negotiated encoding of the next request body.
	Accepts mediatype.AcceptType
	// Form describes the expected input.
	Form *Form
	// Authenticators lists the verification methods associated with this step.
	Authenticators []*Authenticator
	// Capabilities lists the specialized behaviors of this step.
	Capabilities []Capability
	// Refresh is the polling interval, zero unless this is a polling step.
	Refresh time.Duration
	// RelatesTo lists references to related objects in the owning response.
	RelatesTo []string

	session session
}

// newRemediation converts a wire remediation descriptor into a Remediation
// bound to the given session.
func newRemediation(def jsonmodel.RemediationDefinition, sess session) *Remediation {
	remediation := &Remediation{
		Kind:         RemediationKindFromName(def.Name),
		Name:         def.Name,
		Method:       def.Method,
		Href:         def.Href,
		Accepts:      mediatype.Parse(def.Accepts),
		Form:         newForm(def.Value),
		Capabilities: newCapabilities(def),
		RelatesTo:    def.RelatesTo,
		session:      sess,
	}
	if def.Refresh != nil && *def.Refresh > 0 {
		remediation.Refresh = time.Duration(*def.Refresh) * time.Millisecond
	}
	return remediation
}

// Capability returns the first capability of the given kind. A remediation
// should not declare the same capability twice; when it does, the first match
// wins.
func (r *Remediation) Capability(kind CapabilityKind) (Capability, bool) {
	for _, capability := range r.Capabilities {
		if capability.Kind == kind {
			return capability, true
		}
	}
	return Capability{}, false
}

// Proceed submits the remediation with the given values and returns the next
// response, which supersedes the one that produced this remediation. Values
// are addressed by dotted field paths; object values merge into nested forms.
//
// Proceeding twice re-sends the request; avoiding duplicate side effects,
// such as re-submitting a one time code, is the caller's responsibility.
func (r *Remediation) Proceed(ctx context.Context, values map[string]interface{}) (*Response, error) {
	if r.session == nil {
		return nil, flowerror.NewInvalidClient()
	}
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "Remediation"),
		log.String(log.LoggerKeyRemediationName, r.Name))

	// Merge into a copy so a failure leaves this remediation frozen.
	form := r.Form.clone()
	for path, raw := range values {
		if err := form.SetValue(path, value.FromInterface(raw)); err != nil {
			return nil, err
		}
	}

	parameters, err := form.collect()
	if err != nil {
		return nil, err
	}

	body, contentType, err := r.Accepts.Encode(parameters)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, r.Href, bytes.NewReader(body))
	if err != nil {
		return nil, flowerror.New(flowerror.KindCannotBuildRequest, err.Error())
	}
	req.Header.Set(headerContentType, contentType)
	req.Header.Set(headerAccept, mediatype.NewIonJSON(r.session.acceptVersion()).String())

	logger.Debug("Proceeding remediation", log.String("method", r.Method))
	return r.session.execute(req)
}

// Poll repeatedly re-issues a polling remediation, waiting out the refresh
// interval between attempts, until the server stops offering the same polling
// step or ctx is done. The latest response is returned.
func (r *Remediation) Poll(ctx context.Context) (*Response, error) {
	if r.Refresh <= 0 {
		return nil, flowerror.NewMissingRequiredParameter("refresh")
	}

	current := r
	for {
		timer := time.NewTimer(current.Refresh)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, flowerror.NewInternal(ctx.Err())
		case <-timer.C:
		}

		response, err := current.Proceed(ctx, nil)
		if err != nil {
			return nil, err
		}

		next, err := response.Remediation(current.Kind)
		if err != nil || next.Refresh <= 0 {
			return response, nil
		}
		current = next
	}
}

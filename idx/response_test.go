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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asgardeo/spark/idx/flowerror"
	"github.com/asgardeo/spark/idx/jsonmodel"
)

const challengeResponseJSON = `{
	"version": "1.0.0",
	"stateHandle": "sh-abc",
	"expiresAt": "2026-01-01T00:00:00.000Z",
	"intent": "LOGIN",
	"remediation": {
		"type": "array",
		"value": [
			{
				"rel": ["create-form"],
				"name": "challenge-authenticator",
				"relatesTo": ["$.currentAuthenticator"],
				"href": "https://acme.example.com/idp/idx/challenge/answer",
				"method": "POST",
				"accepts": "application/ion+json; okta-version=1.0.0",
				"value": [
					{
						"name": "credentials",
						"form": {
							"value": [
								{"name": "passcode", "label": "Password", "secret": true}
							]
						}
					},
					{"name": "stateHandle", "required": true, "value": "sh-abc", "visible": false, "mutable": false}
				]
			},
			{
				"rel": ["create-form"],
				"name": "challenge-poll",
				"href": "https://acme.example.com/idp/idx/challenge/poll",
				"method": "POST",
				"accepts": "application/ion+json; okta-version=1.0.0",
				"refresh": 4000,
				"value": [
					{"name": "stateHandle", "required": true, "value": "sh-abc", "visible": false, "mutable": false}
				]
			},
			{
				"name": "launch-authenticator",
				"href": "https://acme.example.com/idp/idx/launch",
				"method": "POST",
				"accepts": "application/ion+json; okta-version=1.0.0",
				"value": []
			}
		]
	},
	"currentAuthenticator": {
		"type": "object",
		"value": {
			"id": "aut-email",
			"type": "email",
			"key": "okta_email",
			"displayName": "Email",
			"methods": [{"type": "email"}]
		}
	},
	"authenticators": {
		"type": "array",
		"value": [
			{"id": "aut-email", "type": "email", "key": "okta_email", "displayName": "Email", "methods": [{"type": "email"}]},
			{"id": "aut-pwd", "type": "password", "key": "okta_password", "displayName": "Password", "methods": [{"type": "password"}]}
		]
	},
	"messages": {
		"type": "array",
		"value": [
			{
				"message": "Verification code sent.",
				"class": "INFO",
				"i18n": {"key": "mail.challenge.sent"}
			}
		]
	},
	"cancel": {
		"rel": ["create-form"],
		"name": "cancel",
		"href": "https://acme.example.com/idp/idx/cancel",
		"method": "POST",
		"accepts": "application/ion+json; okta-version=1.0.0",
		"value": [
			{"name": "stateHandle", "required": true, "value": "sh-abc", "visible": false, "mutable": false}
		]
	},
	"app": {
		"type": "object",
		"value": {"id": "app-1", "name": "acme_app", "label": "Acme"}
	},
	"user": {
		"type": "object",
		"value": {"id": "usr-1", "identifier": "user@example.com"}
	}
}`

func decodeResponseDefinition(t *testing.T, raw string) *jsonmodel.ResponseDefinition {
	t.Helper()
	var def jsonmodel.ResponseDefinition
	require.NoError(t, json.Unmarshal([]byte(raw), &def))
	return &def
}

func TestResponseDecodesChallengeState(t *testing.T) {
	response := newResponse(decodeResponseDefinition(t, challengeResponseJSON), nil)

	assert.Equal(t, "sh-abc", response.StateHandle())
	assert.Equal(t, "LOGIN", response.Intent())
	assert.False(t, response.LoginSuccess())
	assert.True(t, response.CanCancel())
	require.Len(t, response.Remediations(), 3)

	challenge, err := response.Remediation(RemediationChallengeAuthenticator)
	require.NoError(t, err)
	assert.Equal(t, "challenge-authenticator", challenge.Name)
	assert.Equal(t, "POST", challenge.Method)
	assert.Equal(t, "https://acme.example.com/idp/idx/challenge/answer", challenge.Href)
}

func TestResponseUnrecognizedRemediationPreserved(t *testing.T) {
	response := newResponse(decodeResponseDefinition(t, challengeResponseJSON), nil)

	launch, err := response.RemediationNamed("launch-authenticator")
	require.NoError(t, err)
	assert.Equal(t, RemediationUnrecognized, launch.Kind)
	assert.Equal(t, "launch-authenticator", launch.Name)
}

func TestResponseMissingRemediation(t *testing.T) {
	response := newResponse(decodeResponseDefinition(t, challengeResponseJSON), nil)

	_, err := response.Remediation(RemediationEnrollProfile)
	assert.True(t, flowerror.IsKind(err, flowerror.KindMissingRemediationOption))
}

func TestResponsePollCapability(t *testing.T) {
	response := newResponse(decodeResponseDefinition(t, challengeResponseJSON), nil)

	poll, err := response.Remediation(RemediationChallengePoll)
	require.NoError(t, err)
	assert.Equal(t, 4*time.Second, poll.Refresh)

	capability, ok := poll.Capability(CapabilityPoll)
	require.True(t, ok)
	assert.Equal(t, 4*time.Second, capability.Refresh)
}

func TestResponseRelatedAuthenticator(t *testing.T) {
	response := newResponse(decodeResponseDefinition(t, challengeResponseJSON), nil)

	current, err := response.RelatedAuthenticator("$.currentAuthenticator")
	require.NoError(t, err)
	assert.Equal(t, "aut-email", current.ID)

	second, err := response.RelatedAuthenticator("$.authenticators.value[1]")
	require.NoError(t, err)
	assert.Equal(t, "aut-pwd", second.ID)

	_, err = response.RelatedAuthenticator("$.authenticators.value[9]")
	assert.True(t, flowerror.IsKind(err, flowerror.KindMissingRelatedObject))

	_, err = response.RelatedAuthenticator("$.somewhere.else")
	assert.True(t, flowerror.IsKind(err, flowerror.KindMissingRelatedObject))
}

func TestResponseRemediationResolvesRelatesTo(t *testing.T) {
	response := newResponse(decodeResponseDefinition(t, challengeResponseJSON), nil)

	challenge, err := response.Remediation(RemediationChallengeAuthenticator)
	require.NoError(t, err)
	require.Len(t, challenge.Authenticators, 1)
	assert.Equal(t, "okta_email", challenge.Authenticators[0].Key)
}

func TestResponseMessages(t *testing.T) {
	response := newResponse(decodeResponseDefinition(t, challengeResponseJSON), nil)

	messages := response.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, "Verification code sent.", messages[0].Text)
	assert.Equal(t, MessageClassInfo, messages[0].Class)
	assert.Equal(t, "mail.challenge.sent", messages[0].LocalizationKey)
}

func TestResponseApp(t *testing.T) {
	response := newResponse(decodeResponseDefinition(t, challengeResponseJSON), nil)

	app := response.App()
	require.NotNil(t, app)
	assert.Equal(t, "Acme", app.Label)

	user := response.User()
	require.NotNil(t, user)
	assert.Equal(t, "usr-1", user.ID)
	assert.Equal(t, "user@example.com", user.Identifier)
}

func TestResponseSuccessMissing(t *testing.T) {
	response := newResponse(decodeResponseDefinition(t, challengeResponseJSON), nil)

	_, err := response.SuccessResponse()
	assert.True(t, flowerror.IsKind(err, flowerror.KindSuccessResponseMissing))
}

func TestResponseSuccessPresent(t *testing.T) {
	raw := `{
		"version": "1.0.0",
		"stateHandle": "sh-final",
		"successWithInteractionCode": {
			"rel": ["create-form"],
			"name": "issue",
			"href": "https://acme.example.com/oauth2/v1/token",
			"method": "POST",
			"accepts": "application/x-www-form-urlencoded",
			"value": [
				{"name": "grant_type", "required": true, "value": "interaction_code"},
				{"name": "interaction_code", "required": true, "value": "ic-42"},
				{"name": "client_id", "required": true, "value": "client-1"}
			]
		}
	}`
	response := newResponse(decodeResponseDefinition(t, raw), nil)

	assert.True(t, response.LoginSuccess())
	success, err := response.SuccessResponse()
	require.NoError(t, err)
	assert.Equal(t, RemediationIssue, success.Kind)
	assert.Equal(t, "ic-42", successInteractionCode(success))
}

func TestResponseAuthenticatorCollections(t *testing.T) {
	response := newResponse(decodeResponseDefinition(t, challengeResponseJSON), nil)

	require.Len(t, response.Authenticators(), 2)
	assert.Equal(t, []string{"email"}, response.Authenticators()[0].Methods)
	require.NotNil(t, response.CurrentAuthenticator())
	assert.Equal(t, "Email", response.CurrentAuthenticator().DisplayName)
	assert.Empty(t, response.AuthenticatorEnrollments())
}

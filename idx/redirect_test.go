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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asgardeo/spark/idx/flowerror"
)

func redirectTestClient(t *testing.T) *Client {
	t.Helper()
	client, err := NewClient(&Configuration{
		Issuer:      "https://acme.example.com",
		ClientID:    "client-1",
		Scopes:      []string{"openid"},
		RedirectURI: "https://app.example.com/callback",
	})
	require.NoError(t, err)
	return client
}

func TestEvaluateRedirectAuthenticated(t *testing.T) {
	client := redirectTestClient(t)

	result := client.EvaluateRedirect("https://app.example.com/callback?interaction_code=ic-1&state=st-1")
	assert.Equal(t, RedirectStatusAuthenticated, result.Status)
	assert.Equal(t, "ic-1", result.InteractionCode)
	assert.Equal(t, "st-1", result.State)
}

func TestEvaluateRedirectPlainCodeParameter(t *testing.T) {
	client := redirectTestClient(t)

	result := client.EvaluateRedirect("https://app.example.com/callback?code=ic-2")
	assert.Equal(t, RedirectStatusAuthenticated, result.Status)
	assert.Equal(t, "ic-2", result.InteractionCode)
}

func TestEvaluateRedirectErrorBeatsCode(t *testing.T) {
	client := redirectTestClient(t)

	result := client.EvaluateRedirect(
		"https://app.example.com/callback?error=access_denied&error_description=denied&interaction_code=ic-1")
	assert.Equal(t, RedirectStatusError, result.Status)
	assert.Equal(t, "access_denied", result.ErrorCode)
	assert.Equal(t, "denied", result.ErrorDescription)
	assert.Empty(t, result.InteractionCode)
}

func TestEvaluateRedirectInteractionRequired(t *testing.T) {
	client := redirectTestClient(t)

	result := client.EvaluateRedirect("https://app.example.com/callback?error=interaction_required")
	assert.Equal(t, RedirectStatusRemediationRequired, result.Status)
}

func TestEvaluateRedirectWrongAddress(t *testing.T) {
	client := redirectTestClient(t)

	for _, url := range []string{
		"https://evil.example.com/callback?interaction_code=ic-1",
		"http://app.example.com/callback?interaction_code=ic-1",
		"https://app.example.com/other?interaction_code=ic-1",
		"://bad",
		"https://app.example.com/callback",
	} {
		result := client.EvaluateRedirect(url)
		assert.Equal(t, RedirectStatusInvalid, result.Status, "url: %s", url)
	}
}

func TestEvaluateRedirectStateMismatch(t *testing.T) {
	client := redirectTestClient(t)
	require.NoError(t, client.RestoreContext(&Context{
		InteractionHandle: "ih-1",
		CodeVerifier:      "verifier",
		State:             "expected-state",
	}))

	result := client.EvaluateRedirect("https://app.example.com/callback?interaction_code=ic-1&state=other")
	assert.Equal(t, RedirectStatusInvalid, result.Status)

	result = client.EvaluateRedirect("https://app.example.com/callback?interaction_code=ic-1&state=expected-state")
	assert.Equal(t, RedirectStatusAuthenticated, result.Status)
}

func TestExchangeCodeForRedirectRejectsErrorRedirect(t *testing.T) {
	client := redirectTestClient(t)
	require.NoError(t, client.RestoreContext(&Context{
		InteractionHandle: "ih-1",
		CodeVerifier:      "verifier",
	}))

	_, err := client.ExchangeCodeForRedirect(context.Background(),
		"https://app.example.com/callback?error=access_denied")
	assert.True(t, flowerror.IsKind(err, flowerror.KindOAuth2Error))
}

func TestExchangeCodeForRedirectRejectsForeignURL(t *testing.T) {
	client := redirectTestClient(t)
	require.NoError(t, client.RestoreContext(&Context{
		InteractionHandle: "ih-1",
		CodeVerifier:      "verifier",
	}))

	_, err := client.ExchangeCodeForRedirect(context.Background(),
		"https://evil.example.com/callback?interaction_code=ic-1")
	assert.True(t, flowerror.IsKind(err, flowerror.KindInvalidParameterValue))
}

func TestExchangeCodeForRedirectWithoutContext(t *testing.T) {
	client := redirectTestClient(t)

	_, err := client.ExchangeCodeForRedirect(context.Background(),
		"https://app.example.com/callback?interaction_code=ic-1")
	assert.True(t, flowerror.IsKind(err, flowerror.KindInvalidClient))
}

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

// HTTP header names used by the workflow client.
const (
	headerContentType = "Content-Type"
	headerAccept      = "Accept"
)

// OAuth2 parameter names used on the interact and token endpoints.
const (
	paramClientID            = "client_id"
	paramClientSecret        = "client_secret"
	paramScope               = "scope"
	paramState               = "state"
	paramRedirectURI         = "redirect_uri"
	paramCodeChallenge       = "code_challenge"
	paramCodeChallengeMethod = "code_challenge_method"
	paramCodeVerifier        = "code_verifier"
	paramGrantType           = "grant_type"
	paramInteractionCode     = "interaction_code"
	paramRefreshToken        = "refresh_token"
	paramActivationToken     = "activation_token"
	paramRecoveryToken       = "recovery_token"
	paramToken               = "token"
	paramTokenTypeHint       = "token_type_hint"
)

// Grant types issued against the token endpoint.
const (
	grantTypeInteractionCode = "interaction_code"
	grantTypeRefreshToken    = "refresh_token"
)

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
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/asgardeo/spark/idx/flowerror"
	"github.com/asgardeo/spark/idx/mediatype"
	syshttp "github.com/asgardeo/spark/internal/system/http"
)

// Token is a minted credential set. It stays usable after the flow that
// produced it ends: refresh and revocation run against the token endpoints
// directly, independent of any workflow context.
type Token struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	Scope        string `json:"scope"`
	RefreshToken string `json:"refresh_token,omitempty"`
	IDToken      string `json:"id_token,omitempty"`

	issuedAt  time.Time
	cfg       *Configuration
	transport Transport
}

// RevokeTokenKind selects which credential of a token set to revoke.
type RevokeTokenKind string

const (
	// RevokeAccessToken revokes the access token.
	RevokeAccessToken RevokeTokenKind = "access_token"
	// RevokeRefreshToken revokes the refresh token and, server side, the
	// access tokens minted alongside it.
	RevokeRefreshToken RevokeTokenKind = "refresh_token"
)

// IssuedAt returns the local time the token set was received.
func (t *Token) IssuedAt() time.Time {
	return t.issuedAt
}

// ExpiresAt returns the local time the access token expires.
func (t *Token) ExpiresAt() time.Time {
	return t.issuedAt.Add(time.Duration(t.ExpiresIn) * time.Second)
}

// Refresh trades the refresh token for a fresh token set. The receiver is
// left unchanged; the replacement is returned.
func (t *Token) Refresh(ctx context.Context) (*Token, error) {
	if t.RefreshToken == "" {
		return nil, flowerror.New(flowerror.KindMissingRefreshToken,
			"token set carries no refresh token")
	}

	form := url.Values{}
	form.Set(paramGrantType, grantTypeRefreshToken)
	form.Set(paramRefreshToken, t.RefreshToken)
	form.Set(paramClientID, t.cfg.ClientID)
	if t.cfg.ClientSecret != "" {
		form.Set(paramClientSecret, t.cfg.ClientSecret)
	}
	if len(t.cfg.Scopes) > 0 {
		form.Set(paramScope, strings.Join(t.cfg.Scopes, " "))
	}
	return requestToken(ctx, t.transport, t.cfg, form)
}

// Revoke invalidates one credential of the token set. Revoking an already
// revoked credential succeeds.
func (t *Token) Revoke(ctx context.Context, kind RevokeTokenKind) error {
	var credential string
	switch kind {
	case RevokeAccessToken:
		if t.AccessToken == "" {
			return flowerror.NewMissingRequiredParameter(paramToken)
		}
		credential = t.AccessToken
	case RevokeRefreshToken:
		if t.RefreshToken == "" {
			return flowerror.New(flowerror.KindMissingRefreshToken,
				"token set carries no refresh token")
		}
		credential = t.RefreshToken
	default:
		return flowerror.NewInvalidParameterValue(paramTokenTypeHint, "RevokeTokenKind")
	}

	form := url.Values{}
	form.Set(paramToken, credential)
	form.Set(paramTokenTypeHint, string(kind))
	form.Set(paramClientID, t.cfg.ClientID)
	if t.cfg.ClientSecret != "" {
		form.Set(paramClientSecret, t.cfg.ClientSecret)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.cfg.revokeEndpoint(),
		strings.NewReader(form.Encode()))
	if err != nil {
		return flowerror.New(flowerror.KindCannotBuildRequest, err.Error())
	}
	req.Header.Set(headerContentType, mediatype.FormMediaType)

	resp, err := t.transport.Do(req)
	if err != nil {
		return flowerror.NewInternal(err)
	}
	defer syshttp.CloseBody(resp)

	if resp.StatusCode != http.StatusOK {
		body, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return flowerror.NewInternal(readErr)
		}
		return decodeErrorBody(resp.StatusCode, body)
	}
	return nil
}

// IDTokenClaims returns the claims of the identity token without verifying
// its signature. Callers needing verified claims must validate the token
// against the issuer's published keys themselves.
func (t *Token) IDTokenClaims() (map[string]interface{}, error) {
	if t.IDToken == "" {
		return nil, flowerror.NewMissingRequiredParameter("id_token")
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(t.IDToken, claims); err != nil {
		return nil, flowerror.New(flowerror.KindInvalidResponseData,
			"identity token is not a well formed JWT")
	}
	return claims, nil
}

// requestToken performs one request against the token endpoint and decodes
// the minted token set.
func requestToken(ctx context.Context, transport Transport, cfg *Configuration, form url.Values) (*Token, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.tokenEndpoint(),
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, flowerror.New(flowerror.KindCannotBuildRequest, err.Error())
	}
	req.Header.Set(headerContentType, mediatype.FormMediaType)
	req.Header.Set(headerAccept, "application/json")

	resp, err := transport.Do(req)
	if err != nil {
		return nil, flowerror.NewInternal(err)
	}
	defer syshttp.CloseBody(resp)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, flowerror.NewInternal(err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, decodeErrorBody(resp.StatusCode, body)
	}

	token := &Token{
		issuedAt:  time.Now(),
		cfg:       cfg,
		transport: transport,
	}
	if err := json.Unmarshal(body, token); err != nil {
		return nil, flowerror.New(flowerror.KindInvalidResponseData, "malformed token response")
	}
	if token.AccessToken == "" {
		return nil, flowerror.New(flowerror.KindInvalidResponseData,
			"token response carries no access token")
	}
	return token, nil
}

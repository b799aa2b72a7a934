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
	"net/url"

	"github.com/asgardeo/spark/idx/flowerror"
)

// RedirectStatus classifies a browser redirect back to the registered
// redirect address.
type RedirectStatus int

const (
	// RedirectStatusInvalid marks a URL that does not belong to this flow:
	// wrong address, mismatched state, or no recognizable outcome.
	RedirectStatusInvalid RedirectStatus = iota
	// RedirectStatusAuthenticated marks a redirect carrying an exchangeable
	// interaction code.
	RedirectStatusAuthenticated
	// RedirectStatusRemediationRequired marks a redirect asking the client
	// to resume the remediation loop.
	RedirectStatusRemediationRequired
	// RedirectStatusError marks a redirect carrying a terminal error.
	RedirectStatusError
)

// RedirectResult is the classification of a redirect URL.
type RedirectResult struct {
	Status           RedirectStatus
	InteractionCode  string
	State            string
	ErrorCode        string
	ErrorDescription string
}

// EvaluateRedirect classifies a redirect URL against the registered redirect
// address and the state of the active context. A URL carrying an error
// parameter never classifies as authenticated, even when a code is present.
func (c *Client) EvaluateRedirect(redirectURL string) RedirectResult {
	parsed, err := url.Parse(redirectURL)
	if err != nil {
		return RedirectResult{Status: RedirectStatusInvalid}
	}
	registered, err := url.Parse(c.cfg.RedirectURI)
	if err != nil {
		return RedirectResult{Status: RedirectStatusInvalid}
	}
	if parsed.Scheme != registered.Scheme || parsed.Host != registered.Host {
		return RedirectResult{Status: RedirectStatusInvalid}
	}
	if registered.Path != "" && parsed.Path != registered.Path {
		return RedirectResult{Status: RedirectStatusInvalid}
	}

	query := parsed.Query()
	state := query.Get(paramState)
	if flowContext := c.Context(); flowContext != nil && flowContext.State != "" &&
		state != "" && state != flowContext.State {
		return RedirectResult{Status: RedirectStatusInvalid}
	}

	if errorCode := query.Get("error"); errorCode != "" {
		if errorCode == "interaction_required" {
			return RedirectResult{Status: RedirectStatusRemediationRequired, State: state}
		}
		return RedirectResult{
			Status:           RedirectStatusError,
			State:            state,
			ErrorCode:        errorCode,
			ErrorDescription: query.Get("error_description"),
		}
	}

	code := query.Get(paramInteractionCode)
	if code == "" {
		code = query.Get("code")
	}
	if code != "" {
		return RedirectResult{
			Status:          RedirectStatusAuthenticated,
			InteractionCode: code,
			State:           state,
		}
	}

	return RedirectResult{Status: RedirectStatusInvalid}
}

// ExchangeCode trades the interaction code of a successful response for
// tokens and closes the active context.
func (c *Client) ExchangeCode(ctx context.Context, response *Response) (*Token, error) {
	token, err := c.exchangeCode(ctx, response)
	return c.deliverToken(token, err)
}

func (c *Client) exchangeCode(ctx context.Context, response *Response) (*Token, error) {
	flowContext := c.Context()
	if flowContext == nil {
		return nil, flowerror.NewInvalidClient()
	}
	if response == nil {
		return nil, flowerror.NewMissingRequiredParameter("response")
	}

	success, err := response.SuccessResponse()
	if err != nil {
		return nil, err
	}
	code := successInteractionCode(success)
	if code == "" {
		return nil, flowerror.NewMissingRequiredParameter(paramInteractionCode)
	}

	return c.redeemInteractionCode(ctx, flowContext, code)
}

// ExchangeCodeForRedirect trades the interaction code carried by a redirect
// URL for tokens. Redirects classified as anything but authenticated fail.
func (c *Client) ExchangeCodeForRedirect(ctx context.Context, redirectURL string) (*Token, error) {
	token, err := c.exchangeCodeForRedirect(ctx, redirectURL)
	return c.deliverToken(token, err)
}

func (c *Client) exchangeCodeForRedirect(ctx context.Context, redirectURL string) (*Token, error) {
	flowContext := c.Context()
	if flowContext == nil {
		return nil, flowerror.NewInvalidClient()
	}

	result := c.EvaluateRedirect(redirectURL)
	switch result.Status {
	case RedirectStatusAuthenticated:
		return c.redeemInteractionCode(ctx, flowContext, result.InteractionCode)
	case RedirectStatusError:
		return nil, flowerror.NewOAuth2Error(result.ErrorDescription, result.ErrorCode, "")
	case RedirectStatusRemediationRequired:
		return nil, flowerror.New(flowerror.KindOAuth2Error,
			"redirect requires resuming remediation before tokens can be issued")
	default:
		return nil, flowerror.NewInvalidParameterValue("redirect_uri", "redirect URL")
	}
}

// redeemInteractionCode performs the token request and closes the context on
// success. A closed context cannot be reused for another exchange.
func (c *Client) redeemInteractionCode(ctx context.Context, flowContext *Context, code string) (*Token, error) {
	form := url.Values{}
	form.Set(paramGrantType, grantTypeInteractionCode)
	form.Set(paramInteractionCode, code)
	form.Set(paramClientID, c.cfg.ClientID)
	form.Set(paramCodeVerifier, flowContext.CodeVerifier)
	form.Set(paramRedirectURI, c.cfg.RedirectURI)
	if c.cfg.ClientSecret != "" {
		form.Set(paramClientSecret, c.cfg.ClientSecret)
	}

	token, err := requestToken(ctx, c.transport, c.cfg, form)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.flowContext = nil
	c.mu.Unlock()
	return token, nil
}

// successInteractionCode extracts the interaction code from the form of a
// terminal success remediation.
func successInteractionCode(success *Remediation) string {
	if success == nil || success.Form == nil {
		return ""
	}
	field, err := success.Form.Lookup(paramInteractionCode)
	if err != nil {
		return ""
	}
	code, ok := field.Value().StringValue()
	if !ok {
		return ""
	}
	return code
}

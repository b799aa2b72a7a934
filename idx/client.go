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

// Package idx implements the client for the hypermedia driven, multi step
// authentication protocol of the identity engine. A server response
// describes the current state as a set of remediations; the client renders
// their forms, re-encodes collected values and submits them until a terminal
// success yields exchangeable credentials.
package idx

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/asgardeo/spark/idx/flowerror"
	"github.com/asgardeo/spark/idx/jsonmodel"
	"github.com/asgardeo/spark/idx/mediatype"
	"github.com/asgardeo/spark/idx/value"
	syshttp "github.com/asgardeo/spark/internal/system/http"
	"github.com/asgardeo/spark/internal/system/log"
	"github.com/asgardeo/spark/internal/system/pkce"
)

const loggerComponentName = "FlowClient"

// defaultAcceptVersion is the protocol version requested until a response
// reports its own.
const defaultAcceptVersion = "1.0.0"

// Transport issues the outbound HTTP requests of a client. A transport may be
// shared read-only across many clients.
type Transport interface {
	Do(req *http.Request) (*http.Response, error)
}

// FlowObserver receives every outcome a client produces, identical to the
// value returned to the caller of the operation that produced it.
type FlowObserver interface {
	OnResponse(response *Response)
	OnToken(token *Token)
	OnError(err error)
}

// ClientOption configures a client at construction time.
type ClientOption func(*Client)

// WithTransport replaces the default HTTP transport.
func WithTransport(transport Transport) ClientOption {
	return func(c *Client) {
		c.transport = transport
	}
}

// WithObserver registers a long lived observer notified of every outcome.
func WithObserver(observer FlowObserver) ClientOption {
	return func(c *Client) {
		c.observer = observer
	}
}

// Client is the workflow state machine. It owns the active context of one
// flow run and is otherwise stateless with respect to workflow progress.
//
// A client should be treated as single writer: at most one workflow
// advancing call in flight at a time. Two concurrent proceed calls against
// the same context race on the server side state token and the stale one is
// rejected. Concurrent Resume calls are safe, they are idempotent reads.
type Client struct {
	cfg       *Configuration
	transport Transport
	observer  FlowObserver

	mu          sync.Mutex
	flowContext *Context
	version     string
}

// NewClient creates a workflow client for the given configuration.
func NewClient(cfg *Configuration, opts ...ClientOption) (*Client, error) {
	if cfg == nil {
		return nil, flowerror.NewMissingRequiredParameter("configuration")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client := &Client{
		cfg:       cfg,
		transport: syshttp.GetHTTPClient(),
		version:   defaultAcceptVersion,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Configuration returns the configuration the client was created with.
func (c *Client) Configuration() *Configuration {
	return c.cfg
}

// Context returns the active flow context, nil before Start and after a
// completed code exchange.
func (c *Client) Context() *Context {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.flowContext
}

// RestoreContext installs a previously persisted context so the flow can be
// resumed across process boundaries.
func (c *Client) RestoreContext(flowContext *Context) error {
	if flowContext == nil {
		return flowerror.NewMissingRequiredParameter("context")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.flowContext = flowContext
	return nil
}

// StartOptions carries the optional parameters of a new interaction.
type StartOptions struct {
	// ActivationToken starts the flow for a pre-enrolled account activation.
	ActivationToken string
	// RecoveryToken starts the flow for an account recovery.
	RecoveryToken string
}

// Start creates a fresh context through the interaction handshake and
// returns the first response of the new flow.
func (c *Client) Start(ctx context.Context, opts *StartOptions) (*Response, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	verifier, err := pkce.GenerateCodeVerifier()
	if err != nil {
		return c.deliverResponse(nil, flowerror.NewInternal(err))
	}
	state := uuid.NewString()

	form := url.Values{}
	form.Set(paramClientID, c.cfg.ClientID)
	form.Set(paramScope, strings.Join(c.cfg.Scopes, " "))
	form.Set(paramRedirectURI, c.cfg.RedirectURI)
	form.Set(paramState, state)
	form.Set(paramCodeChallenge, pkce.ComputeS256Challenge(verifier))
	form.Set(paramCodeChallengeMethod, pkce.CodeChallengeMethodS256)
	if c.cfg.ClientSecret != "" {
		form.Set(paramClientSecret, c.cfg.ClientSecret)
	}
	if opts != nil && opts.ActivationToken != "" {
		form.Set(paramActivationToken, opts.ActivationToken)
	}
	if opts != nil && opts.RecoveryToken != "" {
		form.Set(paramRecoveryToken, opts.RecoveryToken)
	}

	handle, err := c.interact(ctx, form)
	if err != nil {
		return c.deliverResponse(nil, err)
	}
	logger.Debug("Interaction handshake completed")

	c.mu.Lock()
	c.flowContext = &Context{
		InteractionHandle: handle,
		CodeVerifier:      verifier,
		State:             state,
		Configuration:     c.cfg,
	}
	c.mu.Unlock()

	return c.introspect(ctx)
}

// Resume re-fetches the current state of the active context without creating
// a new interaction.
func (c *Client) Resume(ctx context.Context) (*Response, error) {
	return c.introspect(ctx)
}

// interact performs the interaction handshake and returns the minted handle.
func (c *Client) interact(ctx context.Context, form url.Values) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.interactEndpoint(),
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", flowerror.New(flowerror.KindCannotBuildRequest, err.Error())
	}
	req.Header.Set(headerContentType, mediatype.FormMediaType)
	req.Header.Set(headerAccept, "application/json")

	resp, err := c.transport.Do(req)
	if err != nil {
		return "", flowerror.NewInternal(err)
	}
	defer syshttp.CloseBody(resp)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", flowerror.NewInternal(err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", decodeErrorBody(resp.StatusCode, body)
	}

	var interact jsonmodel.InteractDefinition
	if err := json.Unmarshal(body, &interact); err != nil {
		return "", flowerror.New(flowerror.KindInvalidResponseData, "malformed interact response")
	}
	if interact.InteractionHandle == "" {
		return "", flowerror.New(flowerror.KindInvalidResponseData, "interact response carries no handle")
	}
	return interact.InteractionHandle, nil
}

// introspect fetches the current workflow state for the active context.
func (c *Client) introspect(ctx context.Context) (*Response, error) {
	c.mu.Lock()
	flowContext := c.flowContext
	version := c.version
	c.mu.Unlock()

	if flowContext == nil {
		return c.deliverResponse(nil, flowerror.NewInvalidClient())
	}

	parameters := map[string]value.Value{}
	if flowContext.StateHandle != "" {
		parameters["stateHandle"] = value.String(flowContext.StateHandle)
	} else {
		parameters["interactionHandle"] = value.String(flowContext.InteractionHandle)
	}

	accept := mediatype.NewIonJSON(version)
	body, contentType, err := accept.Encode(parameters)
	if err != nil {
		return c.deliverResponse(nil, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.introspectEndpoint(),
		strings.NewReader(string(body)))
	if err != nil {
		return c.deliverResponse(nil, flowerror.New(flowerror.KindCannotBuildRequest, err.Error()))
	}
	req.Header.Set(headerContentType, contentType)
	req.Header.Set(headerAccept, accept.String())

	return c.execute(req)
}

// execute is the single point producing Response outcomes: it issues the
// request, decodes the reply, advances the context's state handle and fans
// the outcome out to the caller and the registered observer.
func (c *Client) execute(req *http.Request) (*Response, error) {
	response, err := c.doExecute(req)
	return c.deliverResponse(response, err)
}

func (c *Client) doExecute(req *http.Request) (*Response, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	resp, err := c.transport.Do(req)
	if err != nil {
		return nil, flowerror.NewInternal(err)
	}
	defer syshttp.CloseBody(resp)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, flowerror.NewInternal(err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, decodeErrorBody(resp.StatusCode, body)
	}

	var def jsonmodel.ResponseDefinition
	if err := json.Unmarshal(body, &def); err != nil {
		return nil, flowerror.New(flowerror.KindInvalidResponseData, "response body is not valid JSON")
	}
	if def.StateHandle == "" && def.Remediation == nil && def.SuccessWithInteractionCode == nil {
		return nil, flowerror.New(flowerror.KindInvalidResponseData, "response is not an identity engine state")
	}

	c.mu.Lock()
	if c.flowContext != nil && def.StateHandle != "" {
		c.flowContext.StateHandle = def.StateHandle
	}
	if def.Version != "" {
		c.version = def.Version
	}
	c.mu.Unlock()

	logger.Debug("Decoded workflow response",
		log.Int("remediations", remediationCount(&def)),
		log.Bool("success", def.SuccessWithInteractionCode != nil))
	return newResponse(&def, c), nil
}

// acceptVersion returns the protocol version advertised on Accept headers.
func (c *Client) acceptVersion() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.version
}

// deliverResponse fans a response outcome out to the registered observer and
// returns it unchanged. The observer and the direct return never disagree.
func (c *Client) deliverResponse(response *Response, err error) (*Response, error) {
	if c.observer != nil {
		if err != nil {
			c.observer.OnError(err)
		} else {
			c.observer.OnResponse(response)
		}
	}
	return response, err
}

// deliverToken fans a token outcome out to the registered observer and
// returns it unchanged.
func (c *Client) deliverToken(token *Token, err error) (*Token, error) {
	if c.observer != nil {
		if err != nil {
			c.observer.OnError(err)
		} else {
			c.observer.OnToken(token)
		}
	}
	return token, err
}

// remediationCount returns the remediation count of a wire response.
func remediationCount(def *jsonmodel.ResponseDefinition) int {
	if def.Remediation == nil {
		return 0
	}
	return len(def.Remediation.Value)
}

// decodeErrorBody maps a failed HTTP reply onto a typed error: a token
// endpoint error body, a server error body, an identity engine state carrying
// error messages, or a bare unexpected status.
func decodeErrorBody(status int, body []byte) error {
	var oauthDef jsonmodel.OAuthErrorDefinition
	if err := json.Unmarshal(body, &oauthDef); err == nil && oauthDef.Error != "" {
		return flowerror.NewOAuth2Error(oauthDef.ErrorDescription, oauthDef.Error, oauthDef.ErrorID)
	}

	var errDef jsonmodel.ErrorDefinition
	if err := json.Unmarshal(body, &errDef); err == nil && errDef.Message != "" {
		return flowerror.NewServerError(errDef.Message, errDef.LocalizationKey, errDef.Type)
	}

	var def jsonmodel.ResponseDefinition
	if err := json.Unmarshal(body, &def); err == nil && def.Messages != nil && len(def.Messages.Value) > 0 {
		message := def.Messages.Value[0]
		localizationKey := ""
		if message.I18n != nil {
			localizationKey = message.I18n.Key
		}
		return flowerror.NewServerError(message.Message, localizationKey, message.Class)
	}

	return flowerror.New(flowerror.KindInvalidHTTPResponse,
		"unexpected HTTP status "+strconv.Itoa(status))
}

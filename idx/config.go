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
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	yaml "gopkg.in/yaml.v3"

	"github.com/asgardeo/spark/idx/flowerror"
)

// Configuration holds the settings identifying the client application
// against the identity engine. A configuration is created once and shared by
// the contexts and tokens minted from it.
type Configuration struct {
	// Issuer is the authorization server URL.
	Issuer string `yaml:"issuer" json:"issuer" env:"SPARK_ISSUER"`
	// ClientID is the OAuth2 client identifier.
	ClientID string `yaml:"client_id" json:"clientId" env:"SPARK_CLIENT_ID"`
	// ClientSecret is the OAuth2 client secret, set only for confidential clients.
	ClientSecret string `yaml:"client_secret" json:"clientSecret,omitempty" env:"SPARK_CLIENT_SECRET"`
	// Scopes are the OAuth2 scopes requested for minted tokens.
	Scopes []string `yaml:"scopes" json:"scopes" env:"SPARK_SCOPES" envSeparator:","`
	// RedirectURI is the registered redirect address of the application.
	RedirectURI string `yaml:"redirect_uri" json:"redirectUri" env:"SPARK_REDIRECT_URI"`
}

// configFile is the on-disk layout of a configuration file.
type configFile struct {
	Client Configuration `yaml:"client"`
}

// LoadConfiguration loads and validates a configuration from a yaml file. The
// settings live under the top level "client" key.
func LoadConfiguration(path string) (*Configuration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var file configFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg := file.Client
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ConfigurationFromEnv builds and validates a configuration from the
// SPARK_* environment variables.
func ConfigurationFromEnv() (*Configuration, error) {
	var cfg Configuration
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration is complete enough to start a flow.
func (c *Configuration) Validate() error {
	if c.Issuer == "" {
		return flowerror.NewMissingRequiredParameter("issuer")
	}
	issuer, err := url.Parse(c.Issuer)
	if err != nil || issuer.Scheme == "" || issuer.Host == "" {
		return flowerror.NewInvalidParameter("issuer")
	}
	if c.ClientID == "" {
		return flowerror.NewMissingRequiredParameter("client_id")
	}
	if len(c.Scopes) == 0 {
		return flowerror.NewMissingRequiredParameter("scopes")
	}
	if c.RedirectURI == "" {
		return flowerror.NewMissingRequiredParameter("redirect_uri")
	}
	if redirect, err := url.Parse(c.RedirectURI); err != nil || redirect.Scheme == "" {
		return flowerror.NewInvalidParameter("redirect_uri")
	}
	return nil
}

// oauth2Base returns the issuer's OAuth2 base. An org level issuer gains the
// /oauth2 path segment; a custom authorization server issuer already carries it.
func (c *Configuration) oauth2Base() string {
	issuer := strings.TrimSuffix(c.Issuer, "/")
	if strings.Contains(issuer, "/oauth2") {
		return issuer
	}
	return issuer + "/oauth2"
}

// baseDomain returns the scheme and host of the issuer.
func (c *Configuration) baseDomain() string {
	issuer, err := url.Parse(c.Issuer)
	if err != nil {
		return strings.TrimSuffix(c.Issuer, "/")
	}
	return issuer.Scheme + "://" + issuer.Host
}

// interactEndpoint returns the interaction handshake endpoint.
func (c *Configuration) interactEndpoint() string {
	return c.oauth2Base() + "/v1/interact"
}

// introspectEndpoint returns the identity engine introspection endpoint.
func (c *Configuration) introspectEndpoint() string {
	return c.baseDomain() + "/idp/idx/introspect"
}

// tokenEndpoint returns the OAuth2 token endpoint.
func (c *Configuration) tokenEndpoint() string {
	return c.oauth2Base() + "/v1/token"
}

// revokeEndpoint returns the OAuth2 revocation endpoint.
func (c *Configuration) revokeEndpoint() string {
	return c.oauth2Base() + "/v1/revoke"
}

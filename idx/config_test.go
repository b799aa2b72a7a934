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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/asgardeo/spark/idx/flowerror"
)

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func validConfiguration() *Configuration {
	return &Configuration{
		Issuer:      "https://acme.example.com",
		ClientID:    "client-1",
		Scopes:      []string{"openid", "profile"},
		RedirectURI: "https://app.example.com/callback",
	}
}

func (suite *ConfigTestSuite) TestValidateComplete() {
	suite.NoError(validConfiguration().Validate())
}

func (suite *ConfigTestSuite) TestValidateMissingFields() {
	cases := []struct {
		mutate    func(*Configuration)
		parameter string
	}{
		{func(c *Configuration) { c.Issuer = "" }, "issuer"},
		{func(c *Configuration) { c.ClientID = "" }, "client_id"},
		{func(c *Configuration) { c.Scopes = nil }, "scopes"},
		{func(c *Configuration) { c.RedirectURI = "" }, "redirect_uri"},
	}
	for _, tc := range cases {
		cfg := validConfiguration()
		tc.mutate(cfg)
		err := cfg.Validate()
		suite.True(flowerror.IsKind(err, flowerror.KindMissingRequiredParameter), "parameter: %s", tc.parameter)
	}
}

func (suite *ConfigTestSuite) TestValidateMalformedIssuer() {
	cfg := validConfiguration()
	cfg.Issuer = "acme.example.com"
	suite.True(flowerror.IsKind(cfg.Validate(), flowerror.KindInvalidParameter))
}

func (suite *ConfigTestSuite) TestOrgIssuerEndpoints() {
	cfg := validConfiguration()

	suite.Equal("https://acme.example.com/oauth2/v1/interact", cfg.interactEndpoint())
	suite.Equal("https://acme.example.com/idp/idx/introspect", cfg.introspectEndpoint())
	suite.Equal("https://acme.example.com/oauth2/v1/token", cfg.tokenEndpoint())
	suite.Equal("https://acme.example.com/oauth2/v1/revoke", cfg.revokeEndpoint())
}

func (suite *ConfigTestSuite) TestCustomAuthorizationServerEndpoints() {
	cfg := validConfiguration()
	cfg.Issuer = "https://acme.example.com/oauth2/ausr8xw3v"

	suite.Equal("https://acme.example.com/oauth2/ausr8xw3v/v1/interact", cfg.interactEndpoint())
	// Introspection always runs against the org domain.
	suite.Equal("https://acme.example.com/idp/idx/introspect", cfg.introspectEndpoint())
	suite.Equal("https://acme.example.com/oauth2/ausr8xw3v/v1/token", cfg.tokenEndpoint())
}

func (suite *ConfigTestSuite) TestTrailingSlashTrimmed() {
	cfg := validConfiguration()
	cfg.Issuer = "https://acme.example.com/"

	suite.Equal("https://acme.example.com/oauth2/v1/interact", cfg.interactEndpoint())
}

func TestLoadConfigurationFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.yaml")
	content := `client:
  issuer: "https://acme.example.com"
  client_id: "client-1"
  client_secret: "sssh"
  scopes:
    - "openid"
    - "profile"
  redirect_uri: "https://app.example.com/callback"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfiguration(path)
	require.NoError(t, err)
	assert.Equal(t, "client-1", cfg.ClientID)
	assert.Equal(t, "sssh", cfg.ClientSecret)
	assert.Equal(t, []string{"openid", "profile"}, cfg.Scopes)
}

func TestLoadConfigurationMissingFile(t *testing.T) {
	_, err := LoadConfiguration(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigurationIncomplete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.yaml")
	require.NoError(t, os.WriteFile(path, []byte("client:\n  issuer: \"https://acme.example.com\"\n"), 0o600))

	_, err := LoadConfiguration(path)
	assert.True(t, flowerror.IsKind(err, flowerror.KindMissingRequiredParameter))
}

func TestConfigurationFromEnv(t *testing.T) {
	t.Setenv("SPARK_ISSUER", "https://acme.example.com")
	t.Setenv("SPARK_CLIENT_ID", "client-env")
	t.Setenv("SPARK_SCOPES", "openid,offline_access")
	t.Setenv("SPARK_REDIRECT_URI", "https://app.example.com/callback")

	cfg, err := ConfigurationFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "client-env", cfg.ClientID)
	assert.Equal(t, []string{"openid", "offline_access"}, cfg.Scopes)
}

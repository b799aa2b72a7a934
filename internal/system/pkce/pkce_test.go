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

package pkce

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type PKCETestSuite struct {
	suite.Suite
}

func TestPKCESuite(t *testing.T) {
	suite.Run(t, new(PKCETestSuite))
}

func (suite *PKCETestSuite) TestGenerateCodeVerifier() {
	verifier, err := GenerateCodeVerifier()
	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), ValidateCodeVerifier(verifier))
	assert.Len(suite.T(), verifier, verifierLength)
}

func (suite *PKCETestSuite) TestGenerateCodeVerifierIsRandom() {
	first, err := GenerateCodeVerifier()
	assert.NoError(suite.T(), err)
	second, err := GenerateCodeVerifier()
	assert.NoError(suite.T(), err)
	assert.NotEqual(suite.T(), first, second)
}

func (suite *PKCETestSuite) TestComputeS256Challenge() {
	// Known vector from RFC 7636 appendix B.
	verifier := "dBjftJeZ4CVP-mB92K27uhbUJU1p1r_wW1gFWFOEjXk"
	assert.Equal(suite.T(),
		"E9Melhoa2OwvFrEMTJguCHaoeK1t8URWbuGJSstw-cM", ComputeS256Challenge(verifier))
}

func (suite *PKCETestSuite) TestValidateCodeVerifier() {
	testCases := []struct {
		name     string
		verifier string
		valid    bool
	}{
		{"empty", "", false},
		{"too short", "short", false},
		{"valid", "dBjftJeZ4CVP-mB92K27uhbUJU1p1r_wW1gFWFOEjXk", true},
		{"invalid characters", "dBjftJeZ4CVP-mB92K27uhbUJU1p1r_wW1gFWFOEjX!", false},
	}
	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			err := ValidateCodeVerifier(tc.verifier)
			if tc.valid {
				assert.NoError(suite.T(), err)
			} else {
				assert.ErrorIs(suite.T(), err, ErrInvalidCodeVerifier)
			}
		})
	}
}

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

package value

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/asgardeo/spark/idx/flowerror"
)

type ValueTestSuite struct {
	suite.Suite
}

func TestValueSuite(t *testing.T) {
	suite.Run(t, new(ValueTestSuite))
}

func (suite *ValueTestSuite) TestDecodeVariants() {
	testCases := []struct {
		name     string
		input    string
		expected Value
	}{
		{"string", `"hello"`, String("hello")},
		{"numeric string stays string", `"123"`, String("123")},
		{"number", `42.5`, Number(42.5)},
		{"integer", `7`, Number(7)},
		{"bool true", `true`, Bool(true)},
		{"bool false", `false`, Bool(false)},
		{"null", `null`, Null()},
		{"list", `["a", 1, true]`, List(String("a"), Number(1), Bool(true))},
		{
			"object",
			`{"name": "identify", "required": true}`,
			Object(map[string]Value{"name": String("identify"), "required": Bool(true)}),
		},
		{
			"nested",
			`{"credentials": {"passcode": "secret"}}`,
			Object(map[string]Value{
				"credentials": Object(map[string]Value{"passcode": String("secret")}),
			}),
		},
	}
	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			var decoded Value
			err := json.Unmarshal([]byte(tc.input), &decoded)
			assert.NoError(suite.T(), err)
			assert.True(suite.T(), decoded.Equal(tc.expected), "decoded %s", decoded)
		})
	}
}

func (suite *ValueTestSuite) TestDecodeMalformed() {
	var decoded Value
	assert.Error(suite.T(), json.Unmarshal([]byte(`{"unterminated`), &decoded))
}

func (suite *ValueTestSuite) TestEncodeDecodeRoundTrip() {
	original := Object(map[string]Value{
		"identifier": String("user@example.com"),
		"rememberMe": Bool(false),
		"factors":    List(String("email"), String("password")),
		"attempt":    Number(2),
		"metadata":   Null(),
	})

	encoded, err := json.Marshal(original)
	assert.NoError(suite.T(), err)

	var decoded Value
	assert.NoError(suite.T(), json.Unmarshal(encoded, &decoded))
	assert.True(suite.T(), decoded.Equal(original))
}

func (suite *ValueTestSuite) TestEncodeSortsObjectKeys() {
	encoded, err := json.Marshal(Object(map[string]Value{
		"zeta":  String("z"),
		"alpha": String("a"),
		"mid":   Number(1),
	}))
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), `{"alpha":"a","mid":1,"zeta":"z"}`, string(encoded))
}

func (suite *ValueTestSuite) TestEncodeWrappedFails() {
	wrapped := Object(map[string]Value{"handle": Wrap(struct{ id int }{1})})
	_, err := json.Marshal(wrapped)
	assert.Error(suite.T(), err)
	assert.True(suite.T(), flowerror.IsKind(err, flowerror.KindInternalMessage))
}

func (suite *ValueTestSuite) TestEquality() {
	assert.True(suite.T(), String("a").Equal(String("a")))
	assert.False(suite.T(), String("1").Equal(Number(1)))
	assert.True(suite.T(), Null().Equal(Null()))
	assert.False(suite.T(), List(String("a")).Equal(List(String("a"), String("b"))))
	assert.True(suite.T(),
		Object(map[string]Value{"a": Number(1)}).Equal(Object(map[string]Value{"a": Number(1)})))
	assert.False(suite.T(),
		Object(map[string]Value{"a": Number(1)}).Equal(Object(map[string]Value{"b": Number(1)})))
}

func (suite *ValueTestSuite) TestWrappedEquality() {
	type handle struct{ id int }
	assert.True(suite.T(), Wrap(handle{1}).Equal(Wrap(handle{1})))
	assert.False(suite.T(), Wrap(handle{1}).Equal(Wrap(handle{2})))

	// Non-comparable native values never compare equal.
	slice := []string{"a"}
	assert.False(suite.T(), Wrap(slice).Equal(Wrap(slice)))
}

func (suite *ValueTestSuite) TestDebugRendering() {
	v := Object(map[string]Value{"count": Number(3), "label": String("x")})
	assert.Equal(suite.T(), `{"count": 3, "label": "x"}`, v.String())
	assert.Equal(suite.T(), `["a", true]`, List(String("a"), Bool(true)).String())
	assert.Contains(suite.T(), Wrap([]int{1}).String(), "wrapped")
}

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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asgardeo/spark/idx/flowerror"
)

func TestContextSerializationRoundTrip(t *testing.T) {
	original := &Context{
		InteractionHandle: "ih-1",
		StateHandle:       "sh-1",
		CodeVerifier:      "verifier",
		State:             "st-1",
		Configuration:     validConfiguration(),
	}

	data, err := original.Serialize()
	require.NoError(t, err)

	restored, err := DeserializeContext(data)
	require.NoError(t, err)
	assert.Equal(t, original.InteractionHandle, restored.InteractionHandle)
	assert.Equal(t, original.StateHandle, restored.StateHandle)
	assert.Equal(t, original.CodeVerifier, restored.CodeVerifier)
	assert.Equal(t, original.State, restored.State)
	require.NotNil(t, restored.Configuration)
	assert.Equal(t, original.Configuration.ClientID, restored.Configuration.ClientID)
}

func TestDeserializeContextMalformed(t *testing.T) {
	_, err := DeserializeContext([]byte("{"))
	assert.True(t, flowerror.IsKind(err, flowerror.KindInvalidResponseData))
}

func TestDeserializeContextWithoutHandles(t *testing.T) {
	_, err := DeserializeContext([]byte(`{"codeVerifier": "v"}`))
	assert.True(t, flowerror.IsKind(err, flowerror.KindInvalidResponseData))
}

func TestDeserializeContextStateHandleOnly(t *testing.T) {
	restored, err := DeserializeContext([]byte(`{"stateHandle": "sh-1", "codeVerifier": "v"}`))
	require.NoError(t, err)
	assert.Equal(t, "sh-1", restored.StateHandle)
}

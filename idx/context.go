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
	"encoding/json"

	"github.com/asgardeo/spark/idx/flowerror"
)

// Context is the opaque, resumable session state linking the successive
// requests of one workflow run. It serializes to JSON so a caller can persist
// it, for example across an application restart, and resume with it later.
type Context struct {
	// InteractionHandle is the handle minted by the interaction handshake.
	InteractionHandle string `json:"interactionHandle"`
	// StateHandle is the resumable state token of the latest response.
	StateHandle string `json:"stateHandle,omitempty"`
	// CodeVerifier is the PKCE verifier spent at code exchange.
	CodeVerifier string `json:"codeVerifier"`
	// State is the opaque state value carried through redirects.
	State string `json:"state,omitempty"`
	// Configuration is the configuration the context was created with.
	Configuration *Configuration `json:"configuration"`
}

// Serialize encodes the context for persistence across process boundaries.
func (c *Context) Serialize() ([]byte, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return nil, flowerror.NewInternal(err)
	}
	return data, nil
}

// DeserializeContext restores a context previously encoded with Serialize.
func DeserializeContext(data []byte) (*Context, error) {
	var restored Context
	if err := json.Unmarshal(data, &restored); err != nil {
		return nil, flowerror.New(flowerror.KindInvalidResponseData, "malformed serialized context")
	}
	if restored.InteractionHandle == "" && restored.StateHandle == "" {
		return nil, flowerror.New(flowerror.KindInvalidResponseData, "serialized context carries no handles")
	}
	return &restored, nil
}

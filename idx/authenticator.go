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

import "github.com/asgardeo/spark/idx/jsonmodel"

// Authenticator is a verification method offered by the server, associated
// with one or more remediations.
type Authenticator struct {
	// ID is the server assigned identifier.
	ID string
	// Type is the authenticator type, for example "password" or "email".
	Type string
	// Key is the stable authenticator key.
	Key string
	// DisplayName is the human readable name.
	DisplayName string
	// Methods lists the verification method types the authenticator supports.
	Methods []string
}

// newAuthenticator converts a wire authenticator descriptor into an Authenticator.
func newAuthenticator(def jsonmodel.AuthenticatorDefinition) *Authenticator {
	authenticator := &Authenticator{
		ID:          def.ID,
		Type:        def.Type,
		Key:         def.Key,
		DisplayName: def.DisplayName,
	}
	for _, method := range def.Methods {
		authenticator.Methods = append(authenticator.Methods, method.Type)
	}
	return authenticator
}

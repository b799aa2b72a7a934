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

// Message classes reported by the server.
const (
	MessageClassError = "ERROR"
	MessageClassInfo  = "INFO"
	MessageClassWarn  = "WARNING"
)

// Message is a server supplied message, either top level on a response or
// attached to the field it describes.
type Message struct {
	// Text is the human readable message.
	Text string
	// Class is the message class, one of the MessageClass constants.
	Class string
	// LocalizationKey is the stable key for localizing the message.
	LocalizationKey string
}

// newMessage converts a wire message descriptor into a Message.
func newMessage(def jsonmodel.MessageDefinition) Message {
	message := Message{Text: def.Message, Class: def.Class}
	if def.I18n != nil {
		message.LocalizationKey = def.I18n.Key
	}
	return message
}

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

import "fmt"

// FromInterface converts a native Go value into a Value. Maps and slices are
// converted recursively; any other native type is wrapped.
func FromInterface(native interface{}) Value {
	switch typed := native.(type) {
	case nil:
		return Null()
	case Value:
		return typed
	case string:
		return String(typed)
	case bool:
		return Bool(typed)
	case float64:
		return Number(typed)
	case float32:
		return Number(float64(typed))
	case int:
		return Number(float64(typed))
	case int32:
		return Number(float64(typed))
	case int64:
		return Number(float64(typed))
	case map[string]interface{}:
		members := make(map[string]Value, len(typed))
		for key, member := range typed {
			members[key] = FromInterface(member)
		}
		return Object(members)
	case map[string]string:
		members := make(map[string]Value, len(typed))
		for key, member := range typed {
			members[key] = String(member)
		}
		return Object(members)
	case []interface{}:
		items := make([]Value, len(typed))
		for i, item := range typed {
			items[i] = FromInterface(item)
		}
		return List(items...)
	case []string:
		items := make([]Value, len(typed))
		for i, item := range typed {
			items[i] = String(item)
		}
		return List(items...)
	case fmt.Stringer:
		return String(typed.String())
	default:
		return Wrap(typed)
	}
}

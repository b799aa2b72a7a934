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

// Package contextstore provides persistence backends for workflow contexts,
// so a flow started in one process can be resumed in another.
package contextstore

import (
	"context"
	"errors"
	"time"

	"github.com/asgardeo/spark/idx"
)

// ErrContextNotFound is returned when a key holds no context, including when
// a stored context has expired.
var ErrContextNotFound = errors.New("flow context not found")

// DefaultValidityPeriod bounds how long a stored context stays resumable.
// Server side state tokens expire on their own; keeping entries longer only
// accumulates garbage.
const DefaultValidityPeriod = 10 * time.Minute

// StoreInterface defines the persistence operations for workflow contexts.
type StoreInterface interface {
	// Save persists a context under the given key, replacing any previous
	// entry for that key.
	Save(ctx context.Context, key string, flowContext *idx.Context) error
	// Load retrieves the context stored under the key.
	Load(ctx context.Context, key string) (*idx.Context, error)
	// Delete removes the entry for the key. Deleting an absent key succeeds.
	Delete(ctx context.Context, key string) error
	// Close releases the resources of the backend.
	Close() error
}

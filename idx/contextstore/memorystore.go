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

package contextstore

import (
	"context"
	"sync"
	"time"

	"github.com/asgardeo/spark/idx"
	"github.com/asgardeo/spark/idx/flowerror"
)

// memoryStoreEntry represents an entry in the in-memory context store.
type memoryStoreEntry struct {
	data       []byte
	expiryTime time.Time
}

// MemoryStore keeps serialized contexts in process memory. Entries expire
// after the validity period and are reaped lazily on access.
type MemoryStore struct {
	entries        map[string]memoryStoreEntry
	validityPeriod time.Duration
	mu             sync.RWMutex
}

// NewMemoryStore creates an in-memory context store. A non-positive validity
// period falls back to DefaultValidityPeriod.
func NewMemoryStore(validityPeriod time.Duration) *MemoryStore {
	if validityPeriod <= 0 {
		validityPeriod = DefaultValidityPeriod
	}
	return &MemoryStore{
		entries:        make(map[string]memoryStoreEntry),
		validityPeriod: validityPeriod,
	}
}

// Save persists a context under the given key.
func (ms *MemoryStore) Save(_ context.Context, key string, flowContext *idx.Context) error {
	if key == "" {
		return flowerror.NewMissingRequiredParameter("key")
	}
	if flowContext == nil {
		return flowerror.NewMissingRequiredParameter("context")
	}

	data, err := flowContext.Serialize()
	if err != nil {
		return err
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.entries[key] = memoryStoreEntry{
		data:       data,
		expiryTime: time.Now().Add(ms.validityPeriod),
	}
	return nil
}

// Load retrieves the context stored under the key.
func (ms *MemoryStore) Load(_ context.Context, key string) (*idx.Context, error) {
	if key == "" {
		return nil, flowerror.NewMissingRequiredParameter("key")
	}

	ms.mu.RLock()
	entry, exists := ms.entries[key]
	ms.mu.RUnlock()

	if !exists {
		return nil, ErrContextNotFound
	}
	if !time.Now().Before(entry.expiryTime) {
		ms.mu.Lock()
		delete(ms.entries, key)
		ms.mu.Unlock()
		return nil, ErrContextNotFound
	}

	return idx.DeserializeContext(entry.data)
}

// Delete removes the entry for the key.
func (ms *MemoryStore) Delete(_ context.Context, key string) error {
	if key == "" {
		return flowerror.NewMissingRequiredParameter("key")
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()
	delete(ms.entries, key)
	return nil
}

// Close drops all entries.
func (ms *MemoryStore) Close() error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.entries = make(map[string]memoryStoreEntry)
	return nil
}

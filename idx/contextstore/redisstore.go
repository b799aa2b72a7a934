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
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/asgardeo/spark/idx"
	"github.com/asgardeo/spark/idx/flowerror"
)

// defaultRedisKeyPrefix namespaces context entries in a shared database.
const defaultRedisKeyPrefix = "spark:flowctx:"

// RedisStore persists serialized contexts in Redis with a TTL, so expiry is
// enforced by the server rather than reaped by the client.
type RedisStore struct {
	client         redis.UniversalClient
	keyPrefix      string
	validityPeriod time.Duration
}

// NewRedisStore creates a context store on top of an existing Redis client.
// Close closes the client, so a shared client should not be handed to more
// than one owner.
func NewRedisStore(client redis.UniversalClient, validityPeriod time.Duration) (*RedisStore, error) {
	if client == nil {
		return nil, flowerror.NewMissingRequiredParameter("client")
	}
	if validityPeriod <= 0 {
		validityPeriod = DefaultValidityPeriod
	}
	return &RedisStore{
		client:         client,
		keyPrefix:      defaultRedisKeyPrefix,
		validityPeriod: validityPeriod,
	}, nil
}

// NewRedisStoreFromURL dials Redis using a connection URL, e.g.
// "redis://localhost:6379/0". The returned store owns the connection.
func NewRedisStoreFromURL(url string, validityPeriod time.Duration) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	store, err := NewRedisStore(redis.NewClient(opts), validityPeriod)
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Save persists a context under the given key.
func (rs *RedisStore) Save(ctx context.Context, key string, flowContext *idx.Context) error {
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
	if err := rs.client.Set(ctx, rs.keyPrefix+key, data, rs.validityPeriod).Err(); err != nil {
		return fmt.Errorf("failed to save flow context: %w", err)
	}
	return nil
}

// Load retrieves the context stored under the key.
func (rs *RedisStore) Load(ctx context.Context, key string) (*idx.Context, error) {
	if key == "" {
		return nil, flowerror.NewMissingRequiredParameter("key")
	}

	data, err := rs.client.Get(ctx, rs.keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrContextNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load flow context: %w", err)
	}
	return idx.DeserializeContext(data)
}

// Delete removes the entry for the key.
func (rs *RedisStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return flowerror.NewMissingRequiredParameter("key")
	}
	if err := rs.client.Del(ctx, rs.keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to delete flow context: %w", err)
	}
	return nil
}

// Close closes the underlying client connection.
func (rs *RedisStore) Close() error {
	return rs.client.Close()
}

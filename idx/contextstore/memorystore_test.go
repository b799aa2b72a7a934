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
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/asgardeo/spark/idx"
)

type MemoryStoreTestSuite struct {
	suite.Suite
	store *MemoryStore
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreTestSuite))
}

func (suite *MemoryStoreTestSuite) SetupTest() {
	suite.store = NewMemoryStore(time.Minute)
}

func testFlowContext() *idx.Context {
	return &idx.Context{
		InteractionHandle: "handle-123",
		StateHandle:       "state-456",
		CodeVerifier:      "verifier-789",
		State:             "state-param",
	}
}

func (suite *MemoryStoreTestSuite) TestSaveAndLoad() {
	ctx := context.Background()
	original := testFlowContext()

	err := suite.store.Save(ctx, "key1", original)
	suite.Require().NoError(err)

	loaded, err := suite.store.Load(ctx, "key1")
	suite.Require().NoError(err)
	suite.Equal(original.InteractionHandle, loaded.InteractionHandle)
	suite.Equal(original.StateHandle, loaded.StateHandle)
	suite.Equal(original.CodeVerifier, loaded.CodeVerifier)
	suite.Equal(original.State, loaded.State)
}

func (suite *MemoryStoreTestSuite) TestLoadMissingKey() {
	_, err := suite.store.Load(context.Background(), "absent")
	suite.ErrorIs(err, ErrContextNotFound)
}

func (suite *MemoryStoreTestSuite) TestSaveReplacesExisting() {
	ctx := context.Background()
	first := testFlowContext()
	suite.Require().NoError(suite.store.Save(ctx, "key1", first))

	second := testFlowContext()
	second.StateHandle = "state-replaced"
	suite.Require().NoError(suite.store.Save(ctx, "key1", second))

	loaded, err := suite.store.Load(ctx, "key1")
	suite.Require().NoError(err)
	suite.Equal("state-replaced", loaded.StateHandle)
}

func (suite *MemoryStoreTestSuite) TestDelete() {
	ctx := context.Background()
	suite.Require().NoError(suite.store.Save(ctx, "key1", testFlowContext()))
	suite.Require().NoError(suite.store.Delete(ctx, "key1"))

	_, err := suite.store.Load(ctx, "key1")
	suite.ErrorIs(err, ErrContextNotFound)
}

func (suite *MemoryStoreTestSuite) TestDeleteAbsentKeySucceeds() {
	suite.NoError(suite.store.Delete(context.Background(), "absent"))
}

func (suite *MemoryStoreTestSuite) TestExpiry() {
	ctx := context.Background()
	store := NewMemoryStore(time.Millisecond)
	suite.Require().NoError(store.Save(ctx, "key1", testFlowContext()))

	time.Sleep(5 * time.Millisecond)

	_, err := store.Load(ctx, "key1")
	suite.ErrorIs(err, ErrContextNotFound)
}

func (suite *MemoryStoreTestSuite) TestEmptyKeyRejected() {
	ctx := context.Background()
	suite.Error(suite.store.Save(ctx, "", testFlowContext()))
	_, err := suite.store.Load(ctx, "")
	suite.Error(err)
	suite.Error(suite.store.Delete(ctx, ""))
}

func (suite *MemoryStoreTestSuite) TestNilContextRejected() {
	suite.Error(suite.store.Save(context.Background(), "key1", nil))
}

func (suite *MemoryStoreTestSuite) TestClose() {
	ctx := context.Background()
	suite.Require().NoError(suite.store.Save(ctx, "key1", testFlowContext()))
	suite.Require().NoError(suite.store.Close())

	_, err := suite.store.Load(ctx, "key1")
	suite.ErrorIs(err, ErrContextNotFound)
}

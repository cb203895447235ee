// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/launchpool/launchpool/kv"
	"github.com/launchpool/launchpool/lvldb"
)

func TestBucket(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	pools := kv.Bucket("p").NewStore(db)
	metas := kv.Bucket("m").NewStore(db)

	require.NoError(t, pools.Put([]byte("k1"), []byte("v1")))
	require.NoError(t, metas.Put([]byte("k1"), []byte("m1")))

	v, err := pools.Get([]byte("k1"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), v)

	raw, err := db.Get([]byte("mk1"))
	require.NoError(t, err)
	assert.Equal(t, []byte("m1"), raw)

	_, err = pools.Get([]byte("k2"))
	assert.True(t, pools.IsNotFound(err))

	batch := pools.NewBatch()
	require.NoError(t, batch.Put([]byte("k2"), []byte("v2")))
	require.NoError(t, batch.Delete([]byte("k1")))
	assert.Equal(t, 2, batch.Len())
	require.NoError(t, batch.Write())

	has, err := pools.Has([]byte("k1"))
	require.NoError(t, err)
	assert.False(t, has)

	iter := pools.Iterate(kv.Range{})
	defer iter.Release()
	var keys []string
	for iter.Next() {
		keys = append(keys, string(iter.Key()))
	}
	require.NoError(t, iter.Error())
	assert.Equal(t, []string{"k2"}, keys)
}

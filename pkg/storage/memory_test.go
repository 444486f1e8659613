// Copyright (c) 2026 Jeremy Hahn
// Copyright (c) 2026 Automate The Things, LLC
//
// This file is part of go-qrvault.
//
// go-qrvault is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryPutGet(t *testing.T) {
	backend := NewMemory()

	require.NoError(t, backend.Put("sealed/wallet", []byte("payload"), nil))

	value, err := backend.Get("sealed/wallet")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), value)

	// Mutating the returned slice must not affect the stored payload.
	value[0] = 'X'
	again, err := backend.Get("sealed/wallet")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), again)
}

func TestMemoryGetMissing(t *testing.T) {
	backend := NewMemory()

	_, err := backend.Get("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryOverwrite(t *testing.T) {
	backend := NewMemory()

	require.NoError(t, backend.Put("k", []byte("one"), nil))
	require.NoError(t, backend.Put("k", []byte("two"), nil))

	value, err := backend.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("two"), value)
}

func TestMemoryDelete(t *testing.T) {
	backend := NewMemory()

	require.NoError(t, backend.Put("k", []byte("v"), nil))
	require.NoError(t, backend.Delete("k"))

	assert.ErrorIs(t, backend.Delete("k"), ErrNotFound)

	exists, err := backend.Exists("k")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestMemoryList(t *testing.T) {
	backend := NewMemory()

	require.NoError(t, backend.Put("shares/wallet/2", []byte("b"), nil))
	require.NoError(t, backend.Put("shares/wallet/1", []byte("a"), nil))
	require.NoError(t, backend.Put("sealed/wallet", []byte("c"), nil))

	keys, err := backend.List("shares/")
	require.NoError(t, err)
	assert.Equal(t, []string{"shares/wallet/1", "shares/wallet/2"}, keys)

	all, err := backend.List("")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestMemoryEmptyKey(t *testing.T) {
	backend := NewMemory()
	assert.ErrorIs(t, backend.Put("", []byte("v"), nil), ErrInvalidKey)
}

func TestMemoryClosed(t *testing.T) {
	backend := NewMemory()
	require.NoError(t, backend.Put("k", []byte("v"), nil))
	require.NoError(t, backend.Close())

	_, err := backend.Get("k")
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, backend.Put("k", []byte("v"), nil), ErrClosed)
	assert.ErrorIs(t, backend.Delete("k"), ErrClosed)

	_, err = backend.List("")
	assert.ErrorIs(t, err, ErrClosed)
}

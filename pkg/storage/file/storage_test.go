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

package file

import (
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeremyhahn/go-qrvault/pkg/storage"
)

func newBackend(t *testing.T) *FileStorage {
	t.Helper()

	backend, err := New(filepath.Join(t.TempDir(), "vault"))
	require.NoError(t, err)
	return backend
}

func TestNewEmptyRoot(t *testing.T) {
	_, err := New("")
	assert.Error(t, err)
}

func TestPutGetRoundTrip(t *testing.T) {
	backend := newBackend(t)

	require.NoError(t, backend.Put("sealed/wallet", []byte("payload"), nil))

	value, err := backend.Get("sealed/wallet")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), value)
}

func TestGetMissing(t *testing.T) {
	backend := newBackend(t)

	_, err := backend.Get("missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDefaultPermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions")
	}
	backend := newBackend(t)

	require.NoError(t, backend.Put("sealed/wallet", []byte("payload"), nil))

	info, err := os.Stat(filepath.Join(backend.rootDir, "sealed", "wallet"))
	require.NoError(t, err)
	assert.Equal(t, fs.FileMode(0600), info.Mode().Perm())

	rootInfo, err := os.Stat(backend.rootDir)
	require.NoError(t, err)
	assert.Equal(t, fs.FileMode(0700), rootInfo.Mode().Perm())
}

func TestExplicitPermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions")
	}
	backend := newBackend(t)

	opts := &storage.Options{Permissions: 0640}
	require.NoError(t, backend.Put("k", []byte("v"), opts))

	info, err := os.Stat(filepath.Join(backend.rootDir, "k"))
	require.NoError(t, err)
	assert.Equal(t, fs.FileMode(0640), info.Mode().Perm())
}

func TestDelete(t *testing.T) {
	backend := newBackend(t)

	require.NoError(t, backend.Put("k", []byte("v"), nil))
	require.NoError(t, backend.Delete("k"))
	assert.ErrorIs(t, backend.Delete("k"), storage.ErrNotFound)
}

func TestList(t *testing.T) {
	backend := newBackend(t)

	require.NoError(t, backend.Put("shares/wallet/2", []byte("b"), nil))
	require.NoError(t, backend.Put("shares/wallet/1", []byte("a"), nil))
	require.NoError(t, backend.Put("sealed/wallet", []byte("c"), nil))

	keys, err := backend.List("shares/")
	require.NoError(t, err)
	assert.Equal(t, []string{"shares/wallet/1", "shares/wallet/2"}, keys)

	all, err := backend.List("")
	require.NoError(t, err)
	assert.Equal(t, []string{"sealed/wallet", "shares/wallet/1", "shares/wallet/2"}, all)
}

func TestExists(t *testing.T) {
	backend := newBackend(t)

	exists, err := backend.Exists("k")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, backend.Put("k", []byte("v"), nil))

	exists, err = backend.Exists("k")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestInvalidKeys(t *testing.T) {
	backend := newBackend(t)

	for _, key := range []string{"", "/abs", "../escape", "shares/../../escape", "nul\x00byte"} {
		err := backend.Put(key, []byte("v"), nil)
		assert.ErrorIs(t, err, storage.ErrInvalidKey, "key %q", key)
	}
}

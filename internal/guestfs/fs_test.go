// Copyright 2025 TouchGo Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package guestfs

import (
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	billyutil "github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"touchgo/internal/common"
)

const testHome = "/User/Applications/00000000-0000-0000-0000-000000000000"

// newTestFs builds a guest filesystem over an in-memory host with a small
// Demo.app bundle and the bundled dylibs in place.
func newTestFs(t *testing.T) (*Fs, GuestPath, billy.Filesystem) {
	t.Helper()

	host := memfs.New()
	writeHostFile(t, host, "touchHLE_dylibs/libgcc_s.1.dylib", []byte("gcc dylib"))
	writeHostFile(t, host, "touchHLE_dylibs/libstdc++.6.0.4.dylib", []byte("stdc++ dylib"))
	writeHostFile(t, host, "Demo.app/Info.plist", []byte("<plist/>"))
	writeHostFile(t, host, "Demo.app/Demo", []byte("\xfe\xed\xfa\xce"))
	writeHostFile(t, host, "Demo.app/en.lproj/Localizable.strings", []byte("\"hi\" = \"hi\";"))

	fs, bundlePath := New(host, "Demo.app", "Demo.app", "com.ex.demo")
	return fs, bundlePath, host
}

func TestNew_Layout(t *testing.T) {
	t.Parallel()

	fs, bundlePath, host := newTestFs(t)

	assert.Equal(t, GuestPath(testHome+"/Demo.app"), bundlePath)
	assert.Equal(t, GuestPath(testHome), fs.HomeDirectory())

	assert.True(t, fs.IsFile("/usr/lib/libgcc_s.1.dylib"))
	assert.True(t, fs.IsFile("/usr/lib/libstdc++.6.dylib"))
	assert.True(t, fs.IsFile("/usr/lib/libstdc++.6.0.4.dylib"))
	assert.True(t, fs.IsFile(bundlePath.Join("Info.plist")))
	assert.False(t, fs.IsFile(bundlePath), "bundle directory is not a file")
	assert.False(t, fs.IsFile("/usr/lib/libmissing.dylib"))

	// The Documents host directory was created inside the sandbox.
	info, err := host.Stat(host.Join("touchHLE_sandbox", "com.ex.demo", "Documents"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNew_RelativePathsResolveAgainstHome(t *testing.T) {
	t.Parallel()

	fs, _, _ := newTestFs(t)

	// The current directory starts out as the home directory.
	assert.True(t, fs.IsFile("Demo.app/Info.plist"))
	assert.True(t, fs.IsFile("./Demo.app/Info.plist"))
	assert.False(t, fs.IsFile("Info.plist"))
}

func TestRead(t *testing.T) {
	t.Parallel()

	fs, bundlePath, _ := newTestFs(t)

	data, err := fs.Read(bundlePath.Join("Info.plist"))
	require.NoError(t, err)
	assert.Equal(t, []byte("<plist/>"), data)

	_, err = fs.Read("/usr/lib/libmissing.dylib")
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = fs.Read("/usr/lib")
	assert.ErrorIs(t, err, common.ErrNotFound, "directories are not readable")
}

func TestRead_DylibAlias(t *testing.T) {
	t.Parallel()

	fs, _, _ := newTestFs(t)

	// libstdc++.6.dylib stands in for a symlink: it reads the bytes of
	// the 6.0.4 host file.
	data, err := fs.Read("/usr/lib/libstdc++.6.dylib")
	require.NoError(t, err)
	assert.Equal(t, []byte("stdc++ dylib"), data)
}

func TestOpen(t *testing.T) {
	t.Parallel()

	fs, bundlePath, _ := newTestFs(t)

	f, err := fs.Open(bundlePath.Join("Demo"))
	require.NoError(t, err)
	defer f.Close()

	buf := make([]byte, 4)
	_, err = f.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, []byte("\xfe\xed\xfa\xce"), buf)

	_, err = fs.Open("/nope")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestList(t *testing.T) {
	t.Parallel()

	fs, _, _ := newTestFs(t)

	names, err := fs.List("/usr/lib")
	require.NoError(t, err)
	assert.Equal(t, []string{"libgcc_s.1.dylib", "libstdc++.6.0.4.dylib", "libstdc++.6.dylib"}, names)

	_, err = fs.List("/usr/lib/libgcc_s.1.dylib")
	assert.ErrorIs(t, err, common.ErrNotFound, "files cannot be listed")
}

func TestOpenWithOptions_Create(t *testing.T) {
	t.Parallel()

	fs, _, host := newTestFs(t)

	opts := NewGuestOpenOptions().Write().Create()
	f, err := fs.OpenWithOptions("Documents/a.txt", opts)
	require.NoError(t, err)
	_, err = f.Write([]byte("hello"))
	require.NoError(t, err)
	require.NoError(t, f.Close())

	// The new node is visible to subsequent lookups, absolute or relative.
	assert.True(t, fs.IsFile(GuestPath(testHome+"/Documents/a.txt")))
	assert.True(t, fs.IsFile("Documents/a.txt"))

	// The host file landed inside the sandbox.
	data, err := billyutil.ReadFile(host, host.Join("touchHLE_sandbox", "com.ex.demo", "Documents", "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), data)
}

func TestOpenWithOptions_CreatedFileIsWriteable(t *testing.T) {
	t.Parallel()

	fs, _, _ := newTestFs(t)

	f, err := fs.OpenWithOptions("Documents/save.dat", NewGuestOpenOptions().Write().Create())
	require.NoError(t, err)
	require.NoError(t, f.Close())

	// Re-opening for write without create succeeds: created files are
	// writeable.
	f, err = fs.OpenWithOptions("Documents/save.dat", NewGuestOpenOptions().Write().Truncate())
	require.NoError(t, err)
	require.NoError(t, f.Close())
}

func TestOpenWithOptions_ExistingWithoutCreate(t *testing.T) {
	t.Parallel()

	fs, bundlePath, _ := newTestFs(t)

	// Reading an existing read-only file through the options path is fine.
	f, err := fs.OpenWithOptions(bundlePath.Join("Info.plist"), NewGuestOpenOptions().Read())
	require.NoError(t, err)
	require.NoError(t, f.Close())

	// A missing file without the create flag is not found.
	_, err = fs.OpenWithOptions("Documents/missing.txt", NewGuestOpenOptions().Write())
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestOpenWithOptions_ReadOnlyFileDenied(t *testing.T) {
	t.Parallel()

	fs, bundlePath, host := newTestFs(t)

	_, err := fs.OpenWithOptions(bundlePath.Join("Info.plist"), NewGuestOpenOptions().Write())
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = fs.OpenWithOptions(bundlePath.Join("Info.plist"), NewGuestOpenOptions().Read().Append())
	assert.ErrorIs(t, err, common.ErrNotFound)

	// The host file is untouched.
	data, err := billyutil.ReadFile(host, host.Join("Demo.app", "Info.plist"))
	require.NoError(t, err)
	assert.Equal(t, []byte("<plist/>"), data)
}

func TestOpenWithOptions_ReadOnlyDirDenied(t *testing.T) {
	t.Parallel()

	fs, bundlePath, _ := newTestFs(t)

	// The bundle directory has no writeable host dir, so creation is
	// denied even with the create flag.
	_, err := fs.OpenWithOptions(bundlePath.Join("cheat.txt"), NewGuestOpenOptions().Write().Create())
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.False(t, fs.IsFile(bundlePath.Join("cheat.txt")))
}

func TestOpenWithOptions_EscapeAttempt(t *testing.T) {
	t.Parallel()

	fs, _, _ := newTestFs(t)

	// ".." popping keeps resolution inside the declared tree; the result
	// is simply a nonexistent node.
	_, err := fs.OpenWithOptions("Documents/../../etc/passwd", NewGuestOpenOptions().Read())
	assert.ErrorIs(t, err, common.ErrNotFound)
	_, err = fs.OpenWithOptions("/../../../etc/passwd", NewGuestOpenOptions().Read())
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestOpenWithOptions_RootNotFound(t *testing.T) {
	t.Parallel()

	fs, _, _ := newTestFs(t)

	// The root has no parent, so the options path cannot address it.
	_, err := fs.OpenWithOptions("/", NewGuestOpenOptions().Read())
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestOpenWithOptions_InvalidCombination(t *testing.T) {
	t.Parallel()

	fs, _, _ := newTestFs(t)

	require.Panics(t, func() {
		fs.OpenWithOptions("Documents/a.txt", NewGuestOpenOptions().Read().Create())
	})
	require.Panics(t, func() {
		fs.OpenWithOptions("Documents/a.txt", NewGuestOpenOptions().Read().Truncate())
	})
}

func TestNew_MissingBundleFatal(t *testing.T) {
	t.Parallel()

	host := memfs.New()
	writeHostFile(t, host, "touchHLE_dylibs/libgcc_s.1.dylib", []byte("x"))

	require.Panics(t, func() {
		New(host, "Missing.app", "Missing.app", "com.ex.missing")
	})
}

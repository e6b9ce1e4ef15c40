package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"

	"touchgo/internal/guestfs"
)

// openBundle builds the guest filesystem for the bundle at hostDir. The
// host root is the working directory, so touchHLE_sandbox/ and
// touchHLE_dylibs/ are expected to live there.
func openBundle(hostDir string) (fs *guestfs.Fs, bundlePath guestfs.GuestPath, id string, err error) {
	name := filepath.Base(filepath.Clean(hostDir))
	if !strings.HasSuffix(name, ".app") {
		return nil, "", "", fmt.Errorf("bundle directory %q does not end in .app", hostDir)
	}
	id = bundleID
	if id == "" {
		id = strings.TrimSuffix(name, ".app")
	}
	fs, bundlePath = guestfs.New(osfs.New("."), hostDir, name, id)
	return fs, bundlePath, id, nil
}

// Package guestfs is the virtual filesystem seen by the emulated app.
//
// It puts files and directories where the guest expects them to be without
// constraining the layout of the host filesystem. The layout is frozen at
// construction time: except for creating new files in writeable
// directories, no nodes are created, deleted, renamed or moved.
//
// Every guest file is backed by a host file. Traversing the guest tree
// yields the host path; after that the host file is accessed directly,
// there is no virtualization of file I/O. Directories only need a backing
// host directory when they are writeable.
package guestfs

import (
	"os"
	"sort"

	"github.com/go-git/go-billy/v5"
	billyutil "github.com/go-git/go-billy/v5/util"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"touchgo/internal/common"
)

// Fixed host-relative locations consumed by the constructor. Both are
// interpreted against the billy filesystem the Fs is built on.
const (
	// SandboxHostDir holds per-app writeable state, keyed by bundle ID.
	SandboxHostDir = "touchHLE_sandbox"
	// DylibsHostDir holds the bundled Free Software dylibs.
	DylibsHostDir = "touchHLE_dylibs"
)

// fakeUUID stands in for the per-install UUID a real device would put in
// the home directory path. uuid.Nil keeps guest paths deterministic.
var fakeUUID = uuid.Nil.String()

// Fs owns the guest filesystem tree and provides accessors for it.
// It is confined to the single cooperative emulator thread: no internal
// locking, and operations run to completion.
type Fs struct {
	host             billy.Filesystem
	root             *fsNode
	currentDirectory GuestPath
	homeDirectory    GuestPath
}

// New constructs a filesystem containing a home directory for the app, its
// bundle and documents, and the bundled shared libraries. It returns the
// new filesystem and the guest path of the bundle.
//
// bundleHostPath is the host directory scanned (read-only) as the bundle.
// bundleDirName is the guest-visible name of the bundle directory and must
// end in ".app"; it may differ from the host directory's name so the host
// copy can be renamed without confusing the app. bundleID uniquely
// identifies the app and selects the sandbox directory where documents
// live; that directory is created if missing (failure is fatal).
func New(host billy.Filesystem, bundleHostPath, bundleDirName, bundleID string) (*Fs, GuestPath) {
	homeDirectory := GuestPath("/User/Applications/" + fakeUUID)
	bundleGuestPath := homeDirectory.Join(bundleDirName)

	documentsHostPath := host.Join(SandboxHostDir, bundleID, "Documents")
	if err := host.MkdirAll(documentsHostPath, 0o755); err != nil {
		log.Panicf("could not create documents directory for app at %q: %v", documentsHostPath, err)
	}

	usrLib := newDir().
		withChild("libgcc_s.1.dylib",
			newFile(host.Join(DylibsHostDir, "libgcc_s.1.dylib"))).
		// Stands in for the libstdc++.6.dylib → libstdc++.6.0.4.dylib symlink.
		withChild("libstdc++.6.dylib",
			newFile(host.Join(DylibsHostDir, "libstdc++.6.0.4.dylib"))).
		withChild("libstdc++.6.0.4.dylib",
			newFile(host.Join(DylibsHostDir, "libstdc++.6.0.4.dylib")))

	root := newDir().
		withChild("User", newDir().
			withChild("Applications", newDir().
				withChild(fakeUUID, newDir().
					withChild(bundleDirName, fromHostDir(host, bundleHostPath, false)).
					withChild("Documents", fromHostDir(host, documentsHostPath, true))))).
		withChild("usr", newDir().
			withChild("lib", usrLib))

	log.Debugf("[FS] initial layout ready: bundle=%q documents=%q", bundleGuestPath, documentsHostPath)

	return &Fs{
		host:             host,
		root:             root,
		currentDirectory: homeDirectory,
		homeDirectory:    homeDirectory,
	}, bundleGuestPath
}

// checkHostIO escalates a host I/O error after a successful guest lookup.
// The guest tree holds all the information needed to tell whether an access
// should succeed, so a host failure at this point means the environment is
// broken, not the guest.
func checkHostIO(err error, hostPath string) {
	if err != nil {
		log.Panicf("unexpected I/O failure when accessing host path %q: %v; files needed by the emulator may be missing, or were moved while it was running", hostPath, err)
	}
}

// HomeDirectory returns the absolute guest path of the app's sandboxed
// home directory.
func (fs *Fs) HomeDirectory() GuestPath {
	return fs.homeDirectory
}

// lookupNode returns the node at path, if it exists. An empty resolved
// component list yields the root.
func (fs *Fs) lookupNode(path GuestPath) (*fsNode, bool) {
	node := fs.root
	for _, component := range resolvePath(path, fs.currentDirectory) {
		if !node.isDir() {
			return nil, false
		}
		child, ok := node.children[component]
		if !ok {
			return nil, false
		}
		node = child
	}
	return node, true
}

// lookupParent walks to the parent of path and returns it together with
// the final path component. Unlike lookupNode it succeeds when the target
// itself does not exist yet, which is what the creation path needs. The
// root has no parent.
func (fs *Fs) lookupParent(path GuestPath) (*fsNode, string, bool) {
	components := resolvePath(path, fs.currentDirectory)
	if len(components) == 0 {
		return nil, "", false
	}
	finalName := components[len(components)-1]

	parent := fs.root
	for _, component := range components[:len(components)-1] {
		if !parent.isDir() {
			return nil, "", false
		}
		child, ok := parent.children[component]
		if !ok {
			return nil, "", false
		}
		parent = child
	}
	return parent, finalName, true
}

// IsFile reports whether path resolves to a file node.
func (fs *Fs) IsFile(path GuestPath) bool {
	node, ok := fs.lookupNode(path)
	return ok && !node.isDir()
}

// List returns the sorted child names of the directory at path. It is a
// host-side debugging accessor; the guest-facing façade does not list
// directories.
func (fs *Fs) List(path GuestPath) ([]string, error) {
	node, ok := fs.lookupNode(path)
	if !ok || !node.isDir() {
		return nil, common.ErrNotFound
	}
	names := make([]string, 0, len(node.children))
	for name := range node.children {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Read returns the full contents of the guest file at path.
func (fs *Fs) Read(path GuestPath) ([]byte, error) {
	node, ok := fs.lookupNode(path)
	if !ok || node.isDir() {
		return nil, common.ErrNotFound
	}
	data, err := billyutil.ReadFile(fs.host, node.hostPath)
	checkHostIO(err, node.hostPath)
	return data, nil
}

// Open opens the guest file at path read-only. It is shorthand for
// OpenWithOptions with only the read flag; callers that need write access
// go through OpenWithOptions. The returned handle is owned by the caller.
func (fs *Fs) Open(path GuestPath) (billy.File, error) {
	node, ok := fs.lookupNode(path)
	if !ok || node.isDir() {
		return nil, common.ErrNotFound
	}
	f, err := fs.host.Open(node.hostPath)
	checkHostIO(err, node.hostPath)
	return f, nil
}

// OpenWithOptions opens the guest file at path with the given flags,
// creating it when the create flag is set and the containing directory is
// writeable. The guest tree is authoritative: existence and writeability
// are decided here, and a host failure after the tree has approved the
// request is fatal. The returned handle is owned by the caller; Fs does
// not track or close it.
func (fs *Fs) OpenWithOptions(path GuestPath, options *GuestOpenOptions) (billy.File, error) {
	if (options.create || options.truncate) && !(options.write || options.append) {
		log.Panicf("invalid open options for %q: create or truncate requires write or append", path)
	}

	parent, name, ok := fs.lookupParent(path)
	if !ok || !parent.isDir() {
		return nil, common.ErrNotFound
	}

	// Open an existing file if possible.

	if existing, ok := parent.children[name]; ok {
		if existing.isDir() {
			return nil, common.ErrNotFound
		}
		if !existing.writeable && (options.write || options.append) {
			log.Warnf("attempt to write to read-only file %q", path)
			return nil, common.ErrNotFound
		}
		f, err := fs.host.OpenFile(existing.hostPath, options.hostFlag(false), 0o644)
		checkHostIO(err, existing.hostPath)
		return f, nil
	}

	// Create a new file otherwise.

	if !options.create {
		return nil, common.ErrNotFound
	}
	if parent.hostDir == "" {
		log.Warnf("attempt to create file at %q, but the directory is read-only", path)
		return nil, common.ErrNotFound
	}
	for i := 0; i < len(name); i++ {
		if os.IsPathSeparator(name[i]) {
			log.Panicf("attempt to create file at %q, but filename contains path separator %q", path, string(name[i]))
		}
	}

	hostPath := fs.host.Join(parent.hostDir, name)
	f, err := fs.host.OpenFile(hostPath, options.hostFlag(true), 0o644)
	checkHostIO(err, hostPath)

	log.Debugf("[FS] created file %q (host path %q)", path, hostPath)
	parent.children[name] = &fsNode{hostPath: hostPath, writeable: true}
	return f, nil
}

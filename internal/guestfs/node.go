package guestfs

import (
	"os"

	"github.com/go-git/go-billy/v5"
	log "github.com/sirupsen/logrus"
)

// fsNode is one entry in the guest tree: either a file backed by a host
// file, or a directory owning its children. Directories have a non-nil
// children map; that is the discriminant.
type fsNode struct {
	// Directory fields.
	children map[string]*fsNode
	hostDir  string // host directory new files are created in; "" means read-only

	// File fields.
	hostPath  string
	writeable bool
}

func (n *fsNode) isDir() bool { return n.children != nil }

// newDir and newFile build the hand-assembled read-only parts of the
// initial layout.

func newDir() *fsNode {
	return &fsNode{children: make(map[string]*fsNode)}
}

func newFile(hostPath string) *fsNode {
	return &fsNode{hostPath: hostPath}
}

func (n *fsNode) withChild(name string, child *fsNode) *fsNode {
	if !n.isDir() {
		log.Panicf("cannot add child %q to a file node", name)
	}
	if _, exists := n.children[name]; exists {
		log.Panicf("duplicate child %q in guest directory", name)
	}
	n.children[name] = child
	return n
}

// fromHostDir recursively scans a host directory into a directory node.
// Files and subdirectories inherit the writeable flag. Symlinks are not
// supported: every file node must have a single canonical host path, so a
// symlink during the scan is fatal rather than silently dereferenced.
// Anything that is neither file, directory nor symlink is fatal too, as is
// any I/O failure.
func fromHostDir(host billy.Filesystem, hostPath string, writeable bool) *fsNode {
	if _, err := host.Stat(hostPath); err != nil {
		log.Panicf("could not scan host directory %q: %v", hostPath, err)
	}
	entries, err := host.ReadDir(hostPath)
	if err != nil {
		log.Panicf("could not scan host directory %q: %v", hostPath, err)
	}

	dir := &fsNode{children: make(map[string]*fsNode, len(entries))}
	if writeable {
		dir.hostDir = hostPath
	}

	for _, entry := range entries {
		name := entry.Name()
		entryHostPath := host.Join(hostPath, name)
		mode := entry.Mode()
		switch {
		case mode&os.ModeSymlink != 0:
			log.Panicf("unimplemented: symlink at host path %q", entryHostPath)
		case mode.IsRegular():
			dir.children[name] = &fsNode{hostPath: entryHostPath, writeable: writeable}
		case mode.IsDir():
			dir.children[name] = fromHostDir(host, entryHostPath, writeable)
		default:
			log.Panicf("host path %q is not a symlink, file or directory", entryHostPath)
		}
	}

	return dir
}

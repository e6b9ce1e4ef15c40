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
	"strings"

	log "github.com/sirupsen/logrus"
)

// GuestPath is a path in the guest filesystem. It is raw text with '/' as
// the only separator; no normalization happens until resolution time.
type GuestPath string

func (p GuestPath) String() string { return string(p) }

// IsAbs reports whether the path starts at the guest root.
func (p GuestPath) IsAbs() bool { return strings.HasPrefix(string(p), "/") }

// Join appends a path component, producing "{p}/{component}" verbatim.
// Separators are not deduplicated.
func (p GuestPath) Join(component string) GuestPath {
	return GuestPath(string(p) + "/" + component)
}

// FileName returns the substring after the last '/'. ok is false when the
// path contains no separator at all. This is deliberately coarse: it does
// not resolve "." or ".." the way a host path library would.
func (p GuestPath) FileName() (name string, ok bool) {
	i := strings.LastIndexByte(string(p), '/')
	if i < 0 {
		return "", false
	}
	return string(p)[i+1:], true
}

func applyPathComponent(components []string, component string) []string {
	switch component {
	case "", ".":
		return components
	case "..":
		if n := len(components); n > 0 {
			return components[:n-1]
		}
		return components
	default:
		return append(components, component)
	}
}

// resolvePath turns path into a canonical absolute component list with no
// empty, "." or ".." entries (e.g. ["foo","bar"] means /foo/bar).
// Resolution is purely textual; it never consults the node tree.
//
// relativeTo is the starting point for a relative path, e.g. the current
// directory, and must itself be absolute. It is ignored for absolute paths.
func resolvePath(path, relativeTo GuestPath) []string {
	var components []string

	if !path.IsAbs() {
		if !relativeTo.IsAbs() {
			log.Panicf("cannot resolve relative path %q against non-absolute base %q", path, relativeTo)
		}
		for _, component := range strings.Split(string(relativeTo), "/") {
			components = applyPathComponent(components, component)
		}
	}

	for _, component := range strings.Split(string(path), "/") {
		components = applyPathComponent(components, component)
	}

	return components
}

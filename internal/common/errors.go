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

package common

import "errors"

// ErrNotFound is the single sentinel for all expected guest filesystem
// errors: a path that does not resolve, a node of the wrong kind, a write
// to a read-only file, or a create in a read-only directory. The guest
// only ever observes "not found"; the distinction is logged, not returned.
var ErrNotFound = errors.New("not found")

// ErrLocked reports that another process holds the sandbox lock.
var ErrLocked = errors.New("sandbox locked by another process")

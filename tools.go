//go:build tools

// Package tools pins build/test tooling in go.mod.
package tools

import (
	_ "gotest.tools/gotestsum/cmd"
)

//go:build tools

// Package main declares tool dependencies for this module.
//
// mockgen is invoked via `go generate`; importing it here keeps it pinned in
// go.mod so regenerating mocks works on a fresh checkout.
package main

import (
	_ "go.uber.org/mock/mockgen"
)

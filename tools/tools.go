//go:build tools

// Package tools pins the code generators and linters used by go:generate
// and CI.
package tools

import (
	_ "go.uber.org/mock/mockgen"
	_ "golang.org/x/lint/golint"
	_ "golang.org/x/tools/cmd/goimports"
)

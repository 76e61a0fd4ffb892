//go:build !diag

package engine

const diagChecks = false

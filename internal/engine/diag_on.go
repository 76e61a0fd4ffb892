//go:build diag

package engine

// diagChecks turns on the per-operation invariant sweep. Diagnostic builds
// only: go test -tags diag ./...
const diagChecks = true

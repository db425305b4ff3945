// Package harness drives the external tools used to check rewritten units:
// the pointer analysis, LLVM FileCheck, and the pointwise-rewrite metrics
// over their build logs.
package harness

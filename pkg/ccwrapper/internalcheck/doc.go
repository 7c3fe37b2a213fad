// Package internalcheck provides internal validation and testing utilities.
//
// This package contains static policy checks run as part of the test suite
// of the CCWrapper library: source-level rules that every package handling
// key material has to follow. It is not intended for external use and the
// API may change without notice.
//
// # Internal Use Only
//
// This package is part of the internal implementation and should not be
// imported by applications using the CCWrapper library. Use the public API
// provided by pkg/ccwrapper and its subpackages instead.
package internalcheck

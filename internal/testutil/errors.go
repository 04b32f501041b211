// Package testutil provides testing utilities for drover.
//
// It contains mock errors used to simulate failure scenarios across test
// files. It should only be imported by test files (*_test.go).
package testutil

import "errors"

// Mock errors for simulating failure scenarios in tests.
var (
	// ErrMockGitFailed indicates a mock git command failed.
	ErrMockGitFailed = errors.New("git command failed")

	// ErrMockGHFailed indicates a mock gh command failed.
	ErrMockGHFailed = errors.New("gh command failed")

	// ErrMockNetwork indicates a mock network error occurred.
	ErrMockNetwork = errors.New("network error")

	// ErrMockScanFailed indicates a mock scanner failure.
	ErrMockScanFailed = errors.New("scanner failed")
)

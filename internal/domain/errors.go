package domain

import "errors"

var (
	// ErrStorageUnavailable marks a failed read against the payroll
	// relations. The call that hit it returns no total.
	ErrStorageUnavailable = errors.New("payroll storage unavailable")

	// ErrCancelled marks a caller-requested abort mid-scan.
	ErrCancelled = errors.New("payroll aggregation cancelled")
)

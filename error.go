// SPDX-License-Identifier: MPL-2.0

package ruleops

import "errors"

// Sentinel errors returned (wrapped with %w and an operation-specific
// prefix) by the value and dataset packages. Callers should compare
// against these with errors.Is rather than string-matching messages.
var (
	ErrInternal             = errors.New("internal error")
	ErrInvalidPayload       = errors.New("invalid payload shape")
	ErrInvalidArgument      = errors.New("invalid argument shape")
	ErrOperatorPrecondition = errors.New("operator precondition failed")
	ErrUnknownColumn        = errors.New("unknown column")
	ErrUnsupportedOrder     = errors.New("unsupported order token")
)

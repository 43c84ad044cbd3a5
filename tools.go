//go:build tools

// SPDX-License-Identifier: MPL-2.0

package ruleops

// Pin the formatting tool used by this repo's development workflow so it
// shows up in go.mod without being a runtime dependency.
import (
	_ "mvdan.cc/gofumpt"
)

// SPDX-License-Identifier: MIT

package config

import "errors"

var (
	// ErrSettings indicates an unreadable or invalid settings source.
	ErrSettings = errors.New("config: invalid settings")

	// ErrModel indicates an unreadable or invalid model document.
	ErrModel = errors.New("config: invalid model document")
)

// Package git reads user identity from the system git configuration.
package git

import "errors"

// ErrSystemGitNotFound indicates the git binary is not on PATH.
var ErrSystemGitNotFound = errors.New("git binary not found")

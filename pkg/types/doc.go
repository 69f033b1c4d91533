// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the configuration and run records shared by the
// docmirror packages and commands.
package types

// Package errors provides sentinel errors for page discovery and path-map remapping.
// Callers wrap them with the path or command involved.
package errors

import "errors"

var (
	// ErrRootNotFound indicates the configured pages directory does not exist or is not a directory.
	ErrRootNotFound = errors.New("pages directory not found")

	// ErrWalkFailed indicates reading a directory or entry beneath the pages directory failed.
	ErrWalkFailed = errors.New("pages directory walk failed")

	// ErrPathCollision indicates two source files resolved to the same logical path.
	ErrPathCollision = errors.New("logical path collision")

	// ErrTransformFailed indicates an external path-map transform failed or returned unusable output.
	ErrTransformFailed = errors.New("path map transform failed")
)

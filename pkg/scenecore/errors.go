// Package scenecore provides the resource-lifecycle and asynchronous-loading
// core of a real-time scene-graph engine.
package scenecore

import (
	"errors"
	"fmt"
)

// Sentinel errors for the device-context lifecycle.
var (
	// ErrDeviceContextInvalid indicates a device call was attempted while
	// no device context is current.
	ErrDeviceContextInvalid = errors.New("device context invalid")
)

// Sentinel errors for the loader.
var (
	// ErrLoaderRunning indicates StartLoading() was called on a loader
	// whose worker is already active.
	ErrLoaderRunning = errors.New("loader already running")

	// ErrLoaderNotRunning indicates StopLoading() was called on an inert loader.
	ErrLoaderNotRunning = errors.New("loader not running")

	// ErrSyncCancelled indicates a synchronization rendezvous was abandoned
	// because the loader shut down before the render thread serviced it.
	ErrSyncCancelled = errors.New("synchronization cancelled")
)

// ResourceError wraps a failure from a resource lifecycle hook.
// Hook failures are non-fatal; traversal continues past them.
type ResourceError struct {
	// Handle identifies the resource that failed.
	Handle string
	// Op is the hook that failed ("initialize", "shutdown", "update").
	Op string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ResourceError) Error() string {
	return fmt.Sprintf("resource %s: %s: %v", e.Handle, e.Op, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *ResourceError) Unwrap() error {
	return e.Err
}

// BuildError wraps a failure while loading or building an asset subtree.
// The request still proceeds to the synchronization point with an empty
// subtree; the completion callback receives the BuildError.
type BuildError struct {
	// Asset is the asset name the request was for.
	Asset string
	// Op is the step that failed ("read", "build").
	Op string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *BuildError) Error() string {
	return fmt.Sprintf("asset %s: %s: %v", e.Asset, e.Op, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *BuildError) Unwrap() error {
	return e.Err
}

// AttachError wraps a runtime attach failure on worker start.
// StartLoading returns it and the loader stays inert.
type AttachError struct {
	// Err is the underlying error from Runtime.Attach.
	Err error
}

// Error implements the error interface.
func (e *AttachError) Error() string {
	return fmt.Sprintf("worker runtime attach: %v", e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *AttachError) Unwrap() error {
	return e.Err
}

// Package extension provides the run-time registry that binds action
// handlers to host call points.
//
// The registry is normally modified through the public APIs under the
// root callpoint package, therefore most applications do not need to import
// this package directly.
package extension

// Package executor routes action invocations to the handler registered for
// their call point. It is the glue between the host facing service and the
// individual handler implementations.
package executor

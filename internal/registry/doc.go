// Package registry provides the central "glue" between the class names found
// in configuration and the compiled diagnostic and plot-layer
// implementations.
//
// The registry is a static registration table: diagnostic and layer packages
// register their factories at application startup through the Module
// interface, and lookups resolve a class name through its normalized module
// name exactly once. The table is never mutated after startup, so concurrent
// lookups are safe and repeated lookups of the same name always yield the
// same factory.
package registry

// Package conv defines conversion entries tagged with a read or write direction
// and a reflection-based converter that consults a registry of such entries
// before falling back to primitive, time and slice coercion.
package conv

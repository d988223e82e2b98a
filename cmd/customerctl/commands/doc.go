// Package commands wires the customerctl command tree: list, add and remove
// against a remote customer store, reading through the directory cache.
package commands

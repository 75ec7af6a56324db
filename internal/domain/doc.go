// Package domain contains the core entities of the worksheet generator:
// arithmetic operations, problems and worksheets. It is independent of any
// rendering backend, transport or randomness source.
package domain

// Package generation produces arithmetic problems and worksheets.
//
// A Generator draws operands for a single problem under the constraints of its
// operation: subtraction never goes negative, division is always exact and
// multiplication can be limited to the 0-12 times tables. An Assembler fills a
// fixed 5x4 grid with independently generated problems.
//
// All randomness comes from an injected Source, so a seeded source reproduces
// a worksheet exactly and tests can script every draw.
package generation

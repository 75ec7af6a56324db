// Package render turns a worksheet grid into a finished document. A Template
// fills named slots in a LaTeX template and a Compiler runs the external
// typesetting tool over the result.
package render

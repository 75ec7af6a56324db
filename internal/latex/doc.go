// Package latex renders worksheets as LaTeX markup: zero-padded operands,
// vertically stacked problem blocks and the row/column grid that is placed
// into a document template.
package latex

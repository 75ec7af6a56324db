package latex

import (
	"strings"

	"github.com/phrazzld/mathsheet/internal/domain"
)

// Grid separators.
const (
	ColumnSeparator = "&\n"
	RowBreak        = `\\` + " \n"
)

// Grid renders every problem of ws and lays them out row by row. Cells in a
// row are joined by ColumnSeparator and every row ends with RowBreak.
func Grid(ws *domain.Worksheet) string {
	var b strings.Builder
	for _, row := range ws.Rows {
		cells := make([]string, len(row))
		for i, p := range row {
			cells[i] = Problem(ws.Digits, p)
		}
		b.WriteString(strings.Join(cells, ColumnSeparator))
		b.WriteString(RowBreak)
	}
	return b.String()
}

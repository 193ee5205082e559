package mdpage

// assembleTable turns buffered rows into a table block. Column count is
// taken from the first row and the content width is divided equally
// between columns. The first row is styled as the header row; header
// flags recorded on later rows do not move it. Returns false when there
// is nothing to emit.
func assembleTable(rows []Row, contentWidth float64) (Block, bool) {
	if len(rows) == 0 {
		return Block{}, false
	}
	cols := len(rows[0].Cells)
	if cols == 0 {
		return Block{}, false
	}
	widths := make([]float64, cols)
	for i := range widths {
		widths[i] = contentWidth / float64(cols)
	}
	out := make([]Row, len(rows))
	for i, row := range rows {
		cells := make([]Cell, len(row.Cells))
		copy(cells, row.Cells)
		for j := range cells {
			cells[j].Header = i == 0
		}
		out[i] = Row{Cells: cells}
	}
	return Block{Kind: BlockTable, Rows: out, ColWidths: widths}, true
}

package geometry

import (
	"fmt"
	"strings"

	"github.com/njchilds90/cplxalg"
)

// Matrix is a small dense matrix of expressions.
type Matrix struct {
	rows, cols int
	data       [][]cplxalg.Expr
}

// NewMatrix returns a rows×cols zero matrix.
func NewMatrix(rows, cols int) *Matrix {
	data := make([][]cplxalg.Expr, rows)
	for i := range data {
		data[i] = make([]cplxalg.Expr, cols)
		for j := range data[i] {
			data[i][j] = cplxalg.Zero()
		}
	}
	return &Matrix{rows: rows, cols: cols, data: data}
}

// MatrixFromRows builds a matrix from equally long rows.
func MatrixFromRows(rows ...[]cplxalg.Expr) *Matrix {
	if len(rows) == 0 {
		return &Matrix{}
	}
	m := NewMatrix(len(rows), len(rows[0]))
	for i, r := range rows {
		if len(r) != m.cols {
			panic(fmt.Sprintf("geometry: row %d has %d entries, want %d", i, len(r), m.cols))
		}
		copy(m.data[i], r)
	}
	return m
}

func (m *Matrix) checkBounds(row, col int) {
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		panic(fmt.Sprintf("geometry: matrix index out of range [%d,%d] for %dx%d", row, col, m.rows, m.cols))
	}
}

func (m *Matrix) Get(row, col int) cplxalg.Expr {
	m.checkBounds(row, col)
	return m.data[row][col]
}

func (m *Matrix) Set(row, col int, val cplxalg.Expr) {
	m.checkBounds(row, col)
	m.data[row][col] = val
}

func (m *Matrix) Rows() int { return m.rows }
func (m *Matrix) Cols() int { return m.cols }

func (m *Matrix) String() string {
	var sb strings.Builder
	for i, row := range m.data {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("[")
		for j, e := range row {
			if j > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(e.String())
		}
		sb.WriteString("]")
	}
	return sb.String()
}

// Det is the cofactor expansion along the first row. The result is left
// unexpanded.
func (m *Matrix) Det() cplxalg.Expr {
	if m.rows != m.cols {
		panic("geometry: Det requires a square matrix")
	}
	if m.rows == 0 {
		return cplxalg.One()
	}
	return matDet(m.data, m.rows)
}

func matDet(data [][]cplxalg.Expr, n int) cplxalg.Expr {
	if n == 1 {
		return data[0][0]
	}
	if n == 2 {
		return data[0][0].Mul(data[1][1]).Sub(data[0][1].Mul(data[1][0]))
	}
	acc := cplxalg.Zero()
	for j := 0; j < n; j++ {
		term := data[0][j].Mul(matDet(makeMinor(data, n, 0, j), n-1))
		if j%2 == 1 {
			acc = acc.Sub(term)
		} else {
			acc = acc.Add(term)
		}
	}
	return acc
}

func makeMinor(data [][]cplxalg.Expr, n, skipRow, skipCol int) [][]cplxalg.Expr {
	minor := make([][]cplxalg.Expr, n-1)
	mi := 0
	for i := 0; i < n; i++ {
		if i == skipRow {
			continue
		}
		minor[mi] = make([]cplxalg.Expr, 0, n-1)
		for j := 0; j < n; j++ {
			if j != skipCol {
				minor[mi] = append(minor[mi], data[i][j])
			}
		}
		mi++
	}
	return minor
}

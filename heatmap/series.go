package heatmap

import (
	"slices"

	"github.com/delaneyj/chartparty/consistency"
	"github.com/delaneyj/chartparty/core"
	"github.com/delaneyj/chartparty/signal"
)

// Cell is one value of the grid.
type Cell struct {
	Column int     `json:"column" yaml:"column"`
	Row    int     `json:"row" yaml:"row"`
	Value  float64 `json:"value" yaml:"value"`
}

const SeriesSignals = signal.NeedsRedraw | signal.DataChanged | signal.NeedUpdateColorRange

// Series holds the grid values of a heatmap.
type Series struct {
	core.Base
	cells []Cell
}

func NewSeries() *Series {
	s := &Series{}
	s.Base = core.NewBase(s, "heatseries", consistency.OnlyDispatching, SeriesSignals)
	return s
}

func (s *Series) Cells() []Cell { return slices.Clone(s.cells) }
func (s *Series) Len() int      { return len(s.cells) }

func (s *Series) SetCells(cells []Cell) {
	if slices.Equal(s.cells, cells) {
		return
	}
	s.cells = slices.Clone(cells)
	s.DispatchSignal(signal.DataChanged | signal.NeedUpdateColorRange)
}

// SetValue updates the cell at column and row, adding it when missing.
func (s *Series) SetValue(column, row int, v float64) {
	i := slices.IndexFunc(s.cells, func(c Cell) bool { return c.Column == column && c.Row == row })
	if i >= 0 {
		if s.cells[i].Value == v {
			return
		}
		s.cells[i].Value = v
		s.DispatchSignal(signal.NeedsRedraw | signal.NeedUpdateColorRange)
		return
	}
	s.cells = append(s.cells, Cell{Column: column, Row: row, Value: v})
	s.DispatchSignal(signal.DataChanged | signal.NeedUpdateColorRange)
}

// Extent is the number of columns and rows the cells span from zero.
func (s *Series) Extent() (columns, rows int) {
	for _, c := range s.cells {
		columns = max(columns, c.Column+1)
		rows = max(rows, c.Row+1)
	}
	return columns, rows
}

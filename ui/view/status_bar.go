package view

import (
	"fmt"

	//lint:ignore ST1001 Dot import for concise Tk widget DSL.
	. "modernc.org/tk9.0"
)

// StatusBar shows the footer progress line and the frame counter.
type StatusBar interface {
	SetStatus(text string)
	SetCounts(captured, planned int)
}

type statusBar struct {
	statusLbl *LabelWidget
	countsLbl *LabelWidget
}

// NewStatusBar creates the footer labels at the given row. The progress line
// spans the form columns; the counter sits in the last column.
func NewStatusBar(row int) StatusBar {
	s := &statusBar{
		statusLbl: Label(Anchor("w"), Borderwidth(1), Relief("sunken")),
		countsLbl: Label(Width(12), Anchor("e")),
	}
	Grid(s.statusLbl, Row(row), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	Grid(s.countsLbl, Row(row), Column(2), Sticky("e"), Padx("0.4m"), Pady("0.3m"))
	s.statusLbl.Configure(Txt("Ready"))
	s.countsLbl.Configure(Txt("0/0"))
	return s
}

func (s *statusBar) SetStatus(text string) {
	if s == nil || s.statusLbl == nil {
		return
	}
	s.statusLbl.Configure(Txt(text))
}

func (s *statusBar) SetCounts(captured, planned int) {
	if s == nil || s.countsLbl == nil {
		return
	}
	s.countsLbl.Configure(Txt(fmt.Sprintf("%d/%d", captured, planned)))
}

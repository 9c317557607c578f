package layout

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestCalculate_WideScreen(t *testing.T) {
	l := Calculate(160, 40, true)

	if l.SinglePanel || l.TwoPanelMode {
		t.Fatalf("160 cols should be three-panel, got %+v", l)
	}
	if l.HistoryWidth < minHistoryWidth || l.HistoryWidth > maxHistoryWidth {
		t.Errorf("history width %d outside [%d,%d]", l.HistoryWidth, minHistoryWidth, maxHistoryWidth)
	}
	if total := l.HistoryWidth + l.FormWidth + l.ResultWidth; total != 160 {
		t.Errorf("panel widths should sum to 160, got %d", total)
	}
	if l.ResultWidth <= l.FormWidth {
		t.Errorf("result panel (%d) should be wider than form (%d)", l.ResultWidth, l.FormWidth)
	}
	if l.ContentHeight != 38 {
		t.Errorf("ContentHeight = %d, want 38", l.ContentHeight)
	}
}

func TestCalculate_MediumScreen(t *testing.T) {
	l := Calculate(80, 30, true)

	if !l.TwoPanelMode {
		t.Error("should be two panel mode at 80 cols")
	}
	if l.HistoryVisible {
		t.Error("history should be hidden in two-panel mode")
	}
	if l.FormWidth != minFormWidth {
		t.Errorf("FormWidth = %d, want %d", l.FormWidth, minFormWidth)
	}
	if l.FormWidth+l.ResultWidth != 80 {
		t.Errorf("form+result should sum to 80, got %d", l.FormWidth+l.ResultWidth)
	}
}

func TestCalculate_NarrowScreen(t *testing.T) {
	l := Calculate(50, 20, true)

	if !l.SinglePanel {
		t.Error("should be single panel at 50 cols")
	}
	if l.FormWidth != 50 || l.ResultWidth != 50 {
		t.Errorf("single panel widths = %d/%d, want 50/50", l.FormWidth, l.ResultWidth)
	}
}

func TestCalculate_HistoryHidden(t *testing.T) {
	l := Calculate(160, 40, false)

	if l.HistoryWidth != 0 {
		t.Error("history width should be 0 when hidden")
	}
	if total := l.FormWidth + l.ResultWidth; total != 160 {
		t.Errorf("form+result should sum to 160, got %d", total)
	}
}

func TestCalculate_TinyHeight(t *testing.T) {
	if l := Calculate(120, 1, true); l.ContentHeight != 1 {
		t.Errorf("ContentHeight = %d, want 1", l.ContentHeight)
	}
}

func TestHandleResize(t *testing.T) {
	l := HandleResize(tea.WindowSizeMsg{Width: 140, Height: 30}, true)
	if l.Width != 140 || l.Height != 30 {
		t.Fatalf("HandleResize() = %dx%d, want 140x30", l.Width, l.Height)
	}
}

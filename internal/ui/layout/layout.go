package layout

import tea "github.com/charmbracelet/bubbletea"

// PanelLayout holds calculated dimensions for the history, form and
// result panels.
type PanelLayout struct {
	Width  int
	Height int

	HistoryWidth int
	FormWidth    int
	ResultWidth  int

	ContentHeight int // height minus tab bar and status bar

	HistoryVisible bool
	TwoPanelMode   bool
	SinglePanel    bool
}

const (
	tabBarHeight    = 1
	statusBarHeight = 1
	minHistoryWidth = 24
	maxHistoryWidth = 40
	minFormWidth    = 36
)

// Calculate computes the panel layout from terminal dimensions.
func Calculate(width, height int, historyVisible bool) PanelLayout {
	l := PanelLayout{
		Width:          width,
		Height:         height,
		HistoryVisible: historyVisible,
		ContentHeight:  height - tabBarHeight - statusBarHeight,
	}
	if l.ContentHeight < 1 {
		l.ContentHeight = 1
	}

	switch {
	case width < 60:
		l.SinglePanel = true
		l.HistoryVisible = false
		l.FormWidth = width
		l.ResultWidth = width
	case width < 110:
		l.TwoPanelMode = true
		l.HistoryVisible = false
		l.FormWidth = splitForm(width)
		l.ResultWidth = width - l.FormWidth
	default:
		remaining := width
		if historyVisible {
			l.HistoryWidth = clamp(width/5, minHistoryWidth, maxHistoryWidth)
			remaining -= l.HistoryWidth
		}
		l.FormWidth = splitForm(remaining)
		l.ResultWidth = remaining - l.FormWidth
	}
	return l
}

// HandleResize processes a WindowSizeMsg and returns the updated layout.
func HandleResize(msg tea.WindowSizeMsg, historyVisible bool) PanelLayout {
	return Calculate(msg.Width, msg.Height, historyVisible)
}

// the form gets two fifths of the space, results the rest
func splitForm(width int) int {
	w := width * 2 / 5
	if w < minFormWidth {
		w = minFormWidth
	}
	if w > width {
		w = width
	}
	return w
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

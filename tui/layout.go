package tui

type Layout struct {
	WindowWidth  int
	WindowHeight int
	Breakpoints  LayoutBreakpoints
}

type LayoutBreakpoints struct {
	MinWidth    int
	MinHeight   int
	DetailWidth int
}

type AdaptiveLayout struct {
	ListPanelWidth   int
	DetailPanelWidth int
	ContentHeight    int
	ListRows         int
	ThumbCols        int
	PhotoMaxWidth    int
	PhotoMaxHeight   int
	ShowDetail       bool
}

func NewLayout() *Layout {
	return &Layout{
		Breakpoints: LayoutBreakpoints{
			MinWidth:    50,
			MinHeight:   12,
			DetailWidth: 90,
		},
	}
}

func (l *Layout) Update(width, height int) {
	l.WindowWidth = width
	l.WindowHeight = height
}

func (l *Layout) Calculate() AdaptiveLayout {
	contentHeight := max(l.WindowHeight-1, 3)

	listWidth := l.WindowWidth
	detailWidth := 0
	photoW, photoH := 0, 0

	if l.WindowWidth >= l.Breakpoints.DetailWidth {
		detailWidth = min(max(l.WindowWidth*2/5, 36), 70)
		listWidth = l.WindowWidth - detailWidth
		// border, padding, title, links and the blank line under the photo
		photoW = detailWidth - 4
		photoH = contentHeight - 8
		if photoW < 16 || photoH < 4 {
			photoW, photoH = 0, 0
		}
	}

	return AdaptiveLayout{
		ListPanelWidth:   listWidth,
		DetailPanelWidth: detailWidth,
		ContentHeight:    contentHeight,
		// border and the header and footer lines
		ListRows:       max(contentHeight-4, 1),
		ThumbCols:      4,
		PhotoMaxWidth:  photoW,
		PhotoMaxHeight: photoH,
		ShowDetail:     detailWidth > 0,
	}
}

func (l *Layout) IsMinimumSize() bool {
	return l.WindowWidth >= l.Breakpoints.MinWidth &&
		l.WindowHeight >= l.Breakpoints.MinHeight
}

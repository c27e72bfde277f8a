package render

import (
	"image/color"
	"testing"

	"github.com/gdamore/tcell/v2"
)

// fakeScreen 记录写入的字符格
type fakeScreen struct {
	cols, rows int
	cells      map[[2]int]tcell.Style
	runes      map[[2]int]rune
}

func newFakeScreen(cols, rows int) *fakeScreen {
	return &fakeScreen{
		cols:  cols,
		rows:  rows,
		cells: make(map[[2]int]tcell.Style),
		runes: make(map[[2]int]rune),
	}
}

func (s *fakeScreen) SetContent(x, y int, primary rune, combining []rune, style tcell.Style) {
	s.cells[[2]int{x, y}] = style
	s.runes[[2]int{x, y}] = primary
}

func (s *fakeScreen) Size() (int, int) {
	return s.cols, s.rows
}

func TestTerminalPresent(t *testing.T) {
	screen := newFakeScreen(4, 2)
	c := NewRasterCanvas(4, 4, 1)
	// 第 0 行像素为红色，第 1 行保持黑色
	c.StrokeLine(0, 0.5, 4, 0.5, 1, color.NRGBA{R: 255, A: 255})

	NewTerminalPresenter(screen).Present(c)

	if len(screen.cells) != 8 {
		t.Fatalf("写入 %d 个字符格, 期望 8", len(screen.cells))
	}
	if r := screen.runes[[2]int{1, 0}]; r != halfBlock {
		t.Errorf("字符 = %q, 期望半块", r)
	}

	fg, bg, _ := screen.cells[[2]int{1, 0}].Decompose()
	if fg != tcell.NewRGBColor(255, 0, 0) {
		t.Errorf("前景色 = %v, 期望红色", fg)
	}
	if bg != tcell.NewRGBColor(0, 0, 0) {
		t.Errorf("背景色 = %v, 期望黑色", bg)
	}
}

func TestCanvasScale(t *testing.T) {
	tests := []struct {
		name       string
		w, h       int
		cols, rows int
		want       float64
	}{
		{"宽度受限", 800, 600, 80, 100, 0.1},
		{"高度受限", 800, 600, 200, 30, 0.1},
		{"非法尺寸", 0, 600, 80, 24, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanvasScale(tt.w, tt.h, tt.cols, tt.rows); got != tt.want {
				t.Errorf("CanvasScale() = %v, 期望 %v", got, tt.want)
			}
		})
	}
}

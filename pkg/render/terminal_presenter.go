package render

import (
	"image/color"

	"github.com/gdamore/tcell/v2"
)

// halfBlock 上半块字符：前景色画上半格，背景色画下半格
const halfBlock = '▀'

// CellScreen 终端输出所需的最小屏幕接口，tcell.Screen 满足该接口
type CellScreen interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (width, height int)
}

// TerminalPresenter 把 RasterCanvas 输出到终端
//
// 每个字符格对应两个竖直相邻的像素，所以画布像素尺寸应为 (cols, rows*2)。
type TerminalPresenter struct {
	screen CellScreen
}

// NewTerminalPresenter 创建终端输出器
func NewTerminalPresenter(screen CellScreen) *TerminalPresenter {
	return &TerminalPresenter{screen: screen}
}

// CanvasScale 返回让逻辑尺寸 w×h 铺满 cols×rows 终端所需的像素缩放
// 取两个方向中较小的比例，保持粒子为圆形
func CanvasScale(w, h, cols, rows int) float64 {
	if w <= 0 || h <= 0 {
		return 1
	}
	sx := float64(cols) / float64(w)
	sy := float64(rows*2) / float64(h)
	return min(sx, sy)
}

// Present 把画布内容写入屏幕缓冲区，调用方负责 Show
func (p *TerminalPresenter) Present(c *RasterCanvas) {
	cols, rows := p.screen.Size()
	pw, ph := c.PixelSize()

	for y := 0; y < rows && y*2 < ph; y++ {
		for x := 0; x < cols && x < pw; x++ {
			top := c.Pixel(x, y*2)
			bottom := c.Pixel(x, y*2+1)
			style := tcell.StyleDefault.
				Foreground(toTcell(top)).
				Background(toTcell(bottom))
			p.screen.SetContent(x, y, halfBlock, nil, style)
		}
	}
}

func toTcell(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

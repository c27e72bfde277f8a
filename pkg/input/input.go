// Package input 把 ebiten 的鼠标与触摸输入归一成指针事件
package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Pointer 一次指针按下（鼠标左键或一根手指）
type Pointer struct {
	X, Y int
}

// AppendJustPressedPointers 把本帧新按下的指针追加到 dst
// 同时支持鼠标点击和多点触摸，每根新按下的手指都算一次
func AppendJustPressedPointers(dst []Pointer) []Pointer {
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		dst = append(dst, Pointer{X: x, Y: y})
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		dst = append(dst, Pointer{X: x, Y: y})
	}

	return dst
}

// Package render 提供烟花模拟的绘制目标抽象
//
// 模拟代码只依赖 Canvas 接口。本包不依赖 ebiten，无头工具可以直接使用：
//   - RasterCanvas: 软件浮点缓冲区，覆盖率由 golang.org/x/image/vector 光栅化
//   - TerminalPresenter: 把 RasterCanvas 以半块字符输出到 tcell 屏幕
//
// GPU 实现在子包 ebitencanvas。
package render

import "image/color"

// Point 画布坐标（像素）
type Point struct {
	X, Y float64
}

// ColorStop 径向渐变的色标
// Offset 取值 [0, 1]，0 为圆心，1 为外缘
type ColorStop struct {
	Offset float64
	Color  color.NRGBA
}

// Canvas 2D 绘制目标
//
// 颜色均为非预乘 alpha；所有绘制都会再乘以当前全局透明度。
// Save/Restore 以栈的方式保存和恢复全局透明度。
type Canvas interface {
	// Size 返回逻辑尺寸
	Size() (w, h int)
	// FillSurface 用颜色覆盖整个画面（按 alpha 混合），用于拖影效果
	FillSurface(c color.NRGBA)
	// FillRadialGradient 以 (cx, cy) 为圆心填充半径为 radius 的径向渐变圆
	FillRadialGradient(cx, cy, radius float64, stops []ColorStop)
	// StrokeLine 绘制线段
	StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA)
	// StrokePolyline 绘制折线，pts 少于 2 个点时不绘制
	StrokePolyline(pts []Point, width float64, c color.NRGBA)
	// SetGlobalAlpha 设置全局透明度 [0, 1]
	SetGlobalAlpha(a float64)
	Save()
	Restore()
}

// AlphaState 全局透明度与 Save/Restore 栈，供各 Canvas 实现内嵌
type AlphaState struct {
	globalAlpha float64
	stack       []float64
}

// NewAlphaState 初始全局透明度为 1
func NewAlphaState() AlphaState {
	return AlphaState{globalAlpha: 1}
}

func (s *AlphaState) SetGlobalAlpha(a float64) {
	switch {
	case a < 0:
		a = 0
	case a > 1:
		a = 1
	}
	s.globalAlpha = a
}

func (s *AlphaState) Save() {
	s.stack = append(s.stack, s.globalAlpha)
}

// Restore 栈为空时不做任何事
func (s *AlphaState) Restore() {
	if len(s.stack) == 0 {
		return
	}
	s.globalAlpha = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
}

// GlobalAlpha 当前全局透明度
func (s *AlphaState) GlobalAlpha() float64 {
	return s.globalAlpha
}

// sampleStops 在色标之间线性插值，返回 [0, 1] 浮点 RGBA（非预乘）
func sampleStops(stops []ColorStop, t float64) (r, g, b, a float64) {
	if len(stops) == 0 {
		return 0, 0, 0, 0
	}
	if t <= stops[0].Offset {
		return UnpackNRGBA(stops[0].Color)
	}
	last := stops[len(stops)-1]
	if t >= last.Offset {
		return UnpackNRGBA(last.Color)
	}
	for i := 1; i < len(stops); i++ {
		hi := stops[i]
		if t > hi.Offset {
			continue
		}
		lo := stops[i-1]
		span := hi.Offset - lo.Offset
		k := 0.0
		if span > 0 {
			k = (t - lo.Offset) / span
		}
		r0, g0, b0, a0 := UnpackNRGBA(lo.Color)
		r1, g1, b1, a1 := UnpackNRGBA(hi.Color)
		return r0 + (r1-r0)*k, g0 + (g1-g0)*k, b0 + (b1-b0)*k, a0 + (a1-a0)*k
	}
	return UnpackNRGBA(last.Color)
}

// UnpackNRGBA 把 8 位颜色分量换算为 [0, 1] 浮点
func UnpackNRGBA(c color.NRGBA) (r, g, b, a float64) {
	return float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255, float64(c.A) / 255
}

// ClipStops 把外缘半径为 R 的渐变截到 f·R 处，追加以 f·R 为外缘的等效色标
// f 不在 (0, 1) 内时原样追加
func ClipStops(dst, stops []ColorStop, f float64) []ColorStop {
	if f <= 0 || f >= 1 || len(stops) == 0 {
		return append(dst, stops...)
	}
	for _, st := range stops {
		if st.Offset >= f {
			break
		}
		dst = append(dst, ColorStop{Offset: st.Offset / f, Color: st.Color})
	}
	r, g, b, a := sampleStops(stops, f)
	edge := color.NRGBA{R: toByte(r), G: toByte(g), B: toByte(b), A: toByte(a)}
	return append(dst, ColorStop{Offset: 1, Color: edge})
}

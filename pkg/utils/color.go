package utils

import (
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// NormalizeHue 将色相归一化到 [0, 360)
// 爆炸图案会在基础色相上叠加偏移（如冠形 +20*ring、双色 +180），结果可能越界
func NormalizeHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

// HSLA 将 HSL + Alpha 转换为非预乘的 NRGBA 颜色
//
// 参数:
//   - h: 色相（度，任意实数，内部归一化）
//   - s: 饱和度 [0, 1]
//   - l: 亮度 [0, 1]
//   - a: 透明度 [0, 1]
func HSLA(h, s, l, a float64) color.NRGBA {
	c := colorful.Hsl(NormalizeHue(h), Clamp01(s), Clamp01(l)).Clamped()
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alphaByte(a)}
}

// RGBA 构造非预乘颜色，a 取值 [0, 1]
// 火箭火花与尾焰使用 RGBA 表示
func RGBA(r, g, b uint8, a float64) color.NRGBA {
	return color.NRGBA{R: r, G: g, B: b, A: alphaByte(a)}
}

func alphaByte(a float64) uint8 {
	return uint8(math.Round(Clamp01(a) * 255))
}

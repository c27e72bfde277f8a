package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// circleKappa 四段三次贝塞尔逼近圆时控制点到端点的距离（相对半径）
const circleKappa = 0.5522847498

// RasterCanvas 软件光栅画布
//
// 以逻辑尺寸接收绘制命令，按 scale 缩放到像素缓冲区。
// 缓冲区是不透明的 RGB 浮点数组（背景为黑色），使用 source-over 混合。
// 圆和线段先由 vector.Rasterizer 转成抗锯齿覆盖率蒙版，再按覆盖率混合颜色。
// 不依赖 GPU，测试与无头工具可以直接使用。
type RasterCanvas struct {
	AlphaState

	w, h   int
	scale  float64
	pw, ph int
	pix    []float64 // RGB，每像素 3 个分量

	z       vector.Rasterizer
	area    image.Rectangle // 当前路径的像素范围
	maskPix []uint8
}

// NewRasterCanvas 创建逻辑尺寸为 w×h、像素缩放为 scale 的画布
// scale <= 0 时按 1 处理
func NewRasterCanvas(w, h int, scale float64) *RasterCanvas {
	c := &RasterCanvas{AlphaState: NewAlphaState()}
	c.Resize(w, h, scale)
	return c
}

// Resize 调整尺寸并清空缓冲区
func (c *RasterCanvas) Resize(w, h int, scale float64) {
	if scale <= 0 {
		scale = 1
	}
	c.w, c.h, c.scale = max(w, 0), max(h, 0), scale
	c.pw = int(math.Ceil(float64(c.w) * scale))
	c.ph = int(math.Ceil(float64(c.h) * scale))
	c.pix = make([]float64, c.pw*c.ph*3)
}

// Size 逻辑尺寸
func (c *RasterCanvas) Size() (int, int) {
	return c.w, c.h
}

// PixelSize 像素缓冲区尺寸
func (c *RasterCanvas) PixelSize() (int, int) {
	return c.pw, c.ph
}

// Pixel 返回像素颜色，越界返回黑色
func (c *RasterCanvas) Pixel(px, py int) color.RGBA {
	if px < 0 || py < 0 || px >= c.pw || py >= c.ph {
		return color.RGBA{A: 0xff}
	}
	i := (py*c.pw + px) * 3
	return color.RGBA{
		R: toByte(c.pix[i]),
		G: toByte(c.pix[i+1]),
		B: toByte(c.pix[i+2]),
		A: 0xff,
	}
}

// Image 导出为 image.RGBA，用于写 PNG
func (c *RasterCanvas) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, c.pw, c.ph))
	for y := 0; y < c.ph; y++ {
		for x := 0; x < c.pw; x++ {
			img.SetRGBA(x, y, c.Pixel(x, y))
		}
	}
	return img
}

// Clear 清为黑色
func (c *RasterCanvas) Clear() {
	clear(c.pix)
}

func (c *RasterCanvas) FillSurface(col color.NRGBA) {
	r, g, b, a := UnpackNRGBA(col)
	a *= c.globalAlpha
	if a <= 0 {
		return
	}
	for i := 0; i < len(c.pix); i += 3 {
		c.pix[i] += (r - c.pix[i]) * a
		c.pix[i+1] += (g - c.pix[i+1]) * a
		c.pix[i+2] += (b - c.pix[i+2]) * a
	}
}

func (c *RasterCanvas) FillRadialGradient(cx, cy, radius float64, stops []ColorStop) {
	if radius <= 0 || len(stops) == 0 {
		return
	}
	pcx, pcy, pr := cx*c.scale, cy*c.scale, radius*c.scale

	area, ok := c.clip(pcx-pr, pcx+pr, pcy-pr, pcy+pr)
	if !ok {
		return
	}
	c.beginPath(area)
	c.circle(pcx, pcy, pr)
	mask := c.rasterize()

	for py := area.Min.Y; py < area.Max.Y; py++ {
		for px := area.Min.X; px < area.Max.X; px++ {
			cov := c.coverage(mask, px, py)
			if cov == 0 {
				continue
			}
			d := math.Hypot(float64(px)+0.5-pcx, float64(py)+0.5-pcy)
			r, g, b, a := sampleStops(stops, math.Min(d/pr, 1))
			c.blend(px, py, r, g, b, a*cov*c.globalAlpha)
		}
	}
}

func (c *RasterCanvas) StrokeLine(x0, y0, x1, y1, width float64, col color.NRGBA) {
	c.StrokePolyline([]Point{{x0, y0}, {x1, y1}}, width, col)
}

// StrokePolyline 每个线段是一个两端各延长半个线宽的矩形，所有矩形同向绕行，
// 重叠处覆盖率饱和为 1，所以拐点处的像素只混合一次
func (c *RasterCanvas) StrokePolyline(pts []Point, width float64, col color.NRGBA) {
	if len(pts) < 2 {
		return
	}
	r, g, b, a := UnpackNRGBA(col)
	a *= c.globalAlpha
	if a <= 0 {
		return
	}

	half := math.Max(width*c.scale/2, 0.5)
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	scaled := make([]Point, len(pts))
	for i, p := range pts {
		sp := Point{p.X * c.scale, p.Y * c.scale}
		scaled[i] = sp
		minX, maxX = math.Min(minX, sp.X), math.Max(maxX, sp.X)
		minY, maxY = math.Min(minY, sp.Y), math.Max(maxY, sp.Y)
	}

	area, ok := c.clip(minX-half, maxX+half, minY-half, maxY+half)
	if !ok {
		return
	}
	c.beginPath(area)
	for i := 1; i < len(scaled); i++ {
		c.segment(scaled[i-1], scaled[i], half)
	}
	mask := c.rasterize()

	for py := area.Min.Y; py < area.Max.Y; py++ {
		for px := area.Min.X; px < area.Max.X; px++ {
			if cov := c.coverage(mask, px, py); cov > 0 {
				c.blend(px, py, r, g, b, a*cov)
			}
		}
	}
}

// clip 把像素包围盒裁剪到缓冲区内
func (c *RasterCanvas) clip(minX, maxX, minY, maxY float64) (image.Rectangle, bool) {
	r := image.Rect(
		int(math.Floor(minX)), int(math.Floor(minY)),
		int(math.Ceil(maxX)), int(math.Ceil(maxY)),
	).Intersect(image.Rect(0, 0, c.pw, c.ph))
	return r, !r.Empty()
}

// beginPath 开始一次光栅化，路径坐标相对 area 左上角
func (c *RasterCanvas) beginPath(area image.Rectangle) {
	c.area = area
	c.z.Reset(area.Dx(), area.Dy())
	c.z.DrawOp = draw.Src
}

func (c *RasterCanvas) moveTo(x, y float64) {
	c.z.MoveTo(float32(x-float64(c.area.Min.X)), float32(y-float64(c.area.Min.Y)))
}

func (c *RasterCanvas) lineTo(x, y float64) {
	c.z.LineTo(float32(x-float64(c.area.Min.X)), float32(y-float64(c.area.Min.Y)))
}

func (c *RasterCanvas) cubeTo(x1, y1, x2, y2, x, y float64) {
	ox, oy := float64(c.area.Min.X), float64(c.area.Min.Y)
	c.z.CubeTo(
		float32(x1-ox), float32(y1-oy),
		float32(x2-ox), float32(y2-oy),
		float32(x-ox), float32(y-oy),
	)
}

// circle 用四段三次贝塞尔曲线逼近圆
func (c *RasterCanvas) circle(cx, cy, r float64) {
	k := circleKappa * r
	c.moveTo(cx+r, cy)
	c.cubeTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
	c.cubeTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
	c.cubeTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
	c.cubeTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
	c.z.ClosePath()
}

// segment 以 a→b 为轴、半宽 half 的矩形，两端各延长 half
// 顶点顺序固定为 a+n, b+n, b-n, a-n，任何方向的线段绕向都相同
func (c *RasterCanvas) segment(a, b Point, half float64) {
	dx, dy := b.X-a.X, b.Y-a.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		dx, dy, l = 1, 0, 1
	}
	ux, uy := dx/l*half, dy/l*half
	nx, ny := -uy, ux

	a = Point{a.X - ux, a.Y - uy}
	b = Point{b.X + ux, b.Y + uy}
	c.moveTo(a.X+nx, a.Y+ny)
	c.lineTo(b.X+nx, b.Y+ny)
	c.lineTo(b.X-nx, b.Y-ny)
	c.lineTo(a.X-nx, a.Y-ny)
	c.z.ClosePath()
}

// rasterize 把当前路径光栅化为覆盖率蒙版，蒙版与 c.area 同尺寸
func (c *RasterCanvas) rasterize() *image.Alpha {
	w, h := c.area.Dx(), c.area.Dy()
	if n := w * h; cap(c.maskPix) < n {
		c.maskPix = make([]uint8, n)
	}
	mask := &image.Alpha{Pix: c.maskPix[:w*h], Stride: w, Rect: image.Rect(0, 0, w, h)}
	c.z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask
}

// coverage 像素 (px, py) 的覆盖率 [0, 1]
func (c *RasterCanvas) coverage(mask *image.Alpha, px, py int) float64 {
	return float64(mask.Pix[(py-c.area.Min.Y)*mask.Stride+px-c.area.Min.X]) / 255
}

func (c *RasterCanvas) blend(px, py int, r, g, b, a float64) {
	if a <= 0 {
		return
	}
	if a > 1 {
		a = 1
	}
	i := (py*c.pw + px) * 3
	c.pix[i] += (r - c.pix[i]) * a
	c.pix[i+1] += (g - c.pix[i+1]) * a
	c.pix[i+2] += (b - c.pix[i+2]) * a
}

func toByte(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(math.Round(v * 255))
}

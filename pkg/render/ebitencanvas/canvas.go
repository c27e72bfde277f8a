// Package ebitencanvas 用 ebiten 离屏图像实现 render.Canvas
package ebitencanvas

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/fireworks/pkg/render"
)

// gradientSegments 径向渐变圆周细分数
const gradientSegments = 24

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// Canvas 基于 ebiten 离屏图像的画布
//
// 拖影效果依赖上一帧的内容，所以绘制目标是持久的离屏图像，
// 每帧由 Draw 把它整体贴到屏幕上。
//
// 径向渐变用顶点着色的三角形扇实现：每个色标一圈顶点，相邻两圈之间连成四边形，
// 颜色由 GPU 在顶点间插值。
type Canvas struct {
	render.AlphaState

	img *ebiten.Image

	vertices []ebiten.Vertex
	indices  []uint16
}

// New 创建 w×h 的离屏画布
func New(w, h int) *Canvas {
	c := &Canvas{AlphaState: render.NewAlphaState()}
	c.Resize(w, h)
	return c
}

// Resize 重建离屏图像，内容清空
func (c *Canvas) Resize(w, h int) {
	if c.img != nil {
		if b := c.img.Bounds(); b.Dx() == w && b.Dy() == h {
			return
		}
		c.img.Deallocate()
	}
	c.img = ebiten.NewImage(max(w, 1), max(h, 1))
	c.img.Fill(color.Black)
}

// Image 离屏图像
func (c *Canvas) Image() *ebiten.Image {
	return c.img
}

// Size 画布尺寸
func (c *Canvas) Size() (int, int) {
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

func (c *Canvas) FillSurface(col color.NRGBA) {
	w, h := c.Size()
	vector.DrawFilledRect(c.img, 0, 0, float32(w), float32(h), c.apply(col), false)
}

func (c *Canvas) FillRadialGradient(cx, cy, radius float64, stops []render.ColorStop) {
	if radius <= 0 || len(stops) == 0 {
		return
	}

	c.vertices = c.vertices[:0]
	c.indices = c.indices[:0]

	for _, st := range stops {
		r, g, b, a := render.UnpackNRGBA(st.Color)
		a *= c.GlobalAlpha()
		rr := radius * st.Offset
		for i := 0; i < gradientSegments; i++ {
			theta := 2 * math.Pi * float64(i) / gradientSegments
			c.vertices = append(c.vertices, ebiten.Vertex{
				DstX:   float32(cx + math.Cos(theta)*rr),
				DstY:   float32(cy + math.Sin(theta)*rr),
				SrcX:   1,
				SrcY:   1,
				ColorR: float32(r),
				ColorG: float32(g),
				ColorB: float32(b),
				ColorA: float32(a),
			})
		}
	}

	// 第一个色标偏移不为 0 时，圆心到第一圈用纯色填充
	if stops[0].Offset > 0 {
		center := c.vertices[0]
		center.DstX, center.DstY = float32(cx), float32(cy)
		ci := uint16(len(c.vertices))
		c.vertices = append(c.vertices, center)
		for i := 0; i < gradientSegments; i++ {
			j := (i + 1) % gradientSegments
			c.indices = append(c.indices, ci, uint16(i), uint16(j))
		}
	}

	for ring := 1; ring < len(stops); ring++ {
		inner := uint16((ring - 1) * gradientSegments)
		outer := uint16(ring * gradientSegments)
		for i := uint16(0); i < gradientSegments; i++ {
			j := (i + 1) % gradientSegments
			c.indices = append(c.indices,
				inner+i, outer+i, outer+j,
				inner+i, outer+j, inner+j,
			)
		}
	}

	if len(c.indices) == 0 {
		return
	}

	op := &ebiten.DrawTrianglesOptions{}
	op.AntiAlias = true
	c.img.DrawTriangles(c.vertices, c.indices, whiteSubImage, op)
}

func (c *Canvas) StrokeLine(x0, y0, x1, y1, width float64, col color.NRGBA) {
	vector.StrokeLine(c.img, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), c.apply(col), true)
}

func (c *Canvas) StrokePolyline(pts []render.Point, width float64, col color.NRGBA) {
	if len(pts) < 2 {
		return
	}
	clr := c.apply(col)
	for i := 1; i < len(pts); i++ {
		vector.StrokeLine(c.img,
			float32(pts[i-1].X), float32(pts[i-1].Y),
			float32(pts[i].X), float32(pts[i].Y),
			float32(width), clr, true)
	}
}

// apply 把全局透明度乘到颜色上
func (c *Canvas) apply(col color.NRGBA) color.NRGBA {
	ga := c.GlobalAlpha()
	if ga >= 1 {
		return col
	}
	col.A = uint8(math.Round(float64(col.A) * ga))
	return col
}

var _ render.Canvas = (*Canvas)(nil)

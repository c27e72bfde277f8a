package render

import (
	"image/color"
	"testing"
)

// TestRasterFillSurface 半透明填充按 alpha 混合
func TestRasterFillSurface(t *testing.T) {
	c := NewRasterCanvas(4, 4, 1)
	c.FillSurface(color.NRGBA{R: 255, A: 255})
	if got := c.Pixel(0, 0); got.R != 255 || got.G != 0 {
		t.Fatalf("不透明填充后像素 = %+v", got)
	}

	// 黑色 25% 覆盖: 255 * 0.75
	c.FillSurface(color.NRGBA{A: 64})
	got := c.Pixel(2, 2).R
	if got < 189 || got > 192 {
		t.Errorf("拖影后红色分量 = %d, 期望约 191", got)
	}
}

// TestRasterRadialGradient 圆心取第一个色标，圆外不受影响
func TestRasterRadialGradient(t *testing.T) {
	c := NewRasterCanvas(20, 20, 1)
	stops := []ColorStop{
		{Offset: 0, Color: color.NRGBA{G: 255, A: 255}},
		{Offset: 1, Color: color.NRGBA{G: 255, A: 0}},
	}
	c.FillRadialGradient(10, 10, 5, stops)

	center := c.Pixel(10, 10).G
	edge := c.Pixel(13, 10).G
	outside := c.Pixel(18, 10).G

	if center < 200 {
		t.Errorf("圆心亮度 = %d, 期望接近 255", center)
	}
	if edge >= center {
		t.Errorf("渐变应向外变暗: center=%d edge=%d", center, edge)
	}
	if outside != 0 {
		t.Errorf("圆外像素被修改: %d", outside)
	}
}

// TestRasterGlobalAlpha 全局透明度参与混合，Restore 恢复之前的值
func TestRasterGlobalAlpha(t *testing.T) {
	c := NewRasterCanvas(10, 10, 1)
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}

	c.Save()
	c.SetGlobalAlpha(0.5)
	c.StrokeLine(0, 2.5, 10, 2.5, 1, white)
	c.Restore()

	if got := c.GlobalAlpha(); got != 1 {
		t.Fatalf("Restore 后全局透明度 = %v", got)
	}
	half := c.Pixel(5, 2).R
	if half < 120 || half > 135 {
		t.Errorf("半透明线条亮度 = %d, 期望约 128", half)
	}

	c.StrokeLine(0, 7.5, 10, 7.5, 1, white)
	if full := c.Pixel(5, 7).R; full != 255 {
		t.Errorf("不透明线条亮度 = %d", full)
	}
}

// TestRasterRestoreEmptyStack 空栈 Restore 不应 panic
func TestRasterRestoreEmptyStack(t *testing.T) {
	c := NewRasterCanvas(1, 1, 1)
	c.SetGlobalAlpha(0.3)
	c.Restore()
	if got := c.GlobalAlpha(); got != 0.3 {
		t.Errorf("全局透明度 = %v, 期望 0.3", got)
	}
}

// TestRasterPolylineBlendsOnce 拐点处的像素只混合一次
func TestRasterPolylineBlendsOnce(t *testing.T) {
	c := NewRasterCanvas(20, 20, 1)
	pts := []Point{{2, 10.5}, {10.5, 10.5}, {10.5, 2}}
	c.StrokePolyline(pts, 1, color.NRGBA{B: 255, A: 128})

	corner := c.Pixel(10, 10).B
	mid := c.Pixel(5, 10).B
	if corner != mid {
		t.Errorf("拐点亮度 %d 与线段中部 %d 不一致", corner, mid)
	}
}

// TestRasterScale 逻辑坐标按 scale 映射到像素
func TestRasterScale(t *testing.T) {
	c := NewRasterCanvas(100, 50, 0.5)
	if w, h := c.Size(); w != 100 || h != 50 {
		t.Errorf("Size() = %d×%d", w, h)
	}
	if pw, ph := c.PixelSize(); pw != 50 || ph != 25 {
		t.Errorf("PixelSize() = %d×%d", pw, ph)
	}

	c.FillRadialGradient(80, 20, 4, []ColorStop{{0, color.NRGBA{R: 255, A: 255}}, {1, color.NRGBA{R: 255, A: 255}}})
	if got := c.Pixel(40, 10).R; got != 255 {
		t.Errorf("缩放后圆心像素 = %d", got)
	}

	img := c.Image()
	if b := img.Bounds(); b.Dx() != 50 || b.Dy() != 25 {
		t.Errorf("Image 尺寸 = %v", b)
	}
}

// TestSampleStops 色标插值
func TestSampleStops(t *testing.T) {
	stops := []ColorStop{
		{Offset: 0, Color: color.NRGBA{A: 255}},
		{Offset: 0.6, Color: color.NRGBA{A: 102}},
		{Offset: 1, Color: color.NRGBA{A: 0}},
	}
	tests := []struct {
		t    float64
		want float64
	}{
		{0, 1},
		{0.3, 0.7},
		{0.6, 0.4},
		{0.8, 0.2},
		{1, 0},
		{2, 0},
	}
	for _, tt := range tests {
		_, _, _, a := sampleStops(stops, tt.t)
		if diff := a - tt.want; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("sampleStops(%v) alpha = %v, 期望 %v", tt.t, a, tt.want)
		}
	}
}

// TestRasterAntialiasedCoverage 跨越像素边界的线条按覆盖率分摊到两行
func TestRasterAntialiasedCoverage(t *testing.T) {
	c := NewRasterCanvas(10, 10, 1)
	c.StrokeLine(0, 5, 10, 5, 1, color.NRGBA{R: 255, A: 255})

	tests := []struct {
		name   string
		y      int
		lo, hi uint8
	}{
		{"上半行", 4, 120, 135},
		{"下半行", 5, 120, 135},
		{"线外", 3, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Pixel(5, tt.y).R
			if got < tt.lo || got > tt.hi {
				t.Errorf("Pixel(5, %d).R = %d, 期望 [%d, %d]", tt.y, got, tt.lo, tt.hi)
			}
		})
	}
}

// TestRasterCircleEdgeCoverage 圆的边缘像素部分覆盖，圆心完全覆盖
func TestRasterCircleEdgeCoverage(t *testing.T) {
	c := NewRasterCanvas(20, 20, 1)
	solid := []ColorStop{{0, color.NRGBA{G: 255, A: 255}}, {1, color.NRGBA{G: 255, A: 255}}}
	c.FillRadialGradient(10, 10, 4, solid)

	if got := c.Pixel(10, 10).G; got != 255 {
		t.Errorf("圆心像素 = %d, 期望 255", got)
	}
	// 像素 (12, 7) 的左下角在圆内，右上角在圆外
	edge := c.Pixel(12, 7).G
	if edge == 0 || edge == 255 {
		t.Errorf("边缘像素 = %d, 期望部分覆盖", edge)
	}
	if got := c.Pixel(15, 10).G; got != 0 {
		t.Errorf("圆外像素 = %d, 期望 0", got)
	}
}

// TestRasterClipOutside 完全在画布外的图形不修改任何像素
func TestRasterClipOutside(t *testing.T) {
	c := NewRasterCanvas(10, 10, 1)
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	c.FillRadialGradient(-20, -20, 5, []ColorStop{{0, white}, {1, white}})
	c.StrokeLine(30, 30, 40, 40, 2, white)

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if px := c.Pixel(x, y); px.R != 0 {
				t.Fatalf("Pixel(%d, %d) = %+v, 期望黑色", x, y, px)
			}
		}
	}
}

// TestClipStops 截断渐变后外缘取原渐变在截断处的颜色
func TestClipStops(t *testing.T) {
	stops := []ColorStop{
		{Offset: 0, Color: color.NRGBA{R: 200, A: 255}},
		{Offset: 0.6, Color: color.NRGBA{R: 200, A: 102}},
		{Offset: 1, Color: color.NRGBA{R: 200, A: 25}},
	}
	tests := []struct {
		name       string
		f          float64
		wantOffset []float64
		wantAlpha  []uint8
	}{
		{"截到 0.75", 0.75, []float64{0, 0.8, 1}, []uint8{255, 102, 73}},
		{"截到 0.45", 0.45, []float64{0, 1}, []uint8{255, 140}},
		{"不截断", 1, []float64{0, 0.6, 1}, []uint8{255, 102, 25}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClipStops(nil, stops, tt.f)
			if len(got) != len(tt.wantOffset) {
				t.Fatalf("色标数 = %d, 期望 %d: %+v", len(got), len(tt.wantOffset), got)
			}
			for i, st := range got {
				if diff := st.Offset - tt.wantOffset[i]; diff > 1e-9 || diff < -1e-9 {
					t.Errorf("色标 %d offset = %v, 期望 %v", i, st.Offset, tt.wantOffset[i])
				}
				if st.Color.A != tt.wantAlpha[i] || st.Color.R != 200 {
					t.Errorf("色标 %d 颜色 = %+v, 期望 alpha %d", i, st.Color, tt.wantAlpha[i])
				}
			}
		})
	}
}

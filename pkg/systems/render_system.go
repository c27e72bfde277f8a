package systems

import (
	"image/color"

	"github.com/decker502/fireworks/pkg/components"
	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/render"
	"github.com/decker502/fireworks/pkg/utils"
)

// 火箭配色
var (
	sparkInner = [3]uint8{255, 140, 20}
	sparkOuter = [3]uint8{255, 100, 0}
	trailColor = [3]uint8{255, 120, 0}
	headInner  = [3]uint8{255, 180, 40}
)

// 粒子渐变的外缘是 size*2，但只填充 size*1.5 以内，可见边缘约为 0.29 倍透明度
const (
	particleGlowRadius = 2.0
	particleDiscRadius = 1.5
)

// RenderSystem 把粒子与火箭绘制到 render.Canvas
//
// 绘制只读取组件状态，从不修改它们。
// 复用内部缓冲区以避免每帧分配。
type RenderSystem struct {
	cfg *config.FireworksConfig

	stops []render.ColorStop
	glow  []render.ColorStop
	pts   []render.Point
}

// NewRenderSystem 创建渲染系统
func NewRenderSystem(cfg *config.FireworksConfig) *RenderSystem {
	return &RenderSystem{
		cfg:   cfg,
		stops: make([]render.ColorStop, 0, 3),
		glow:  make([]render.ColorStop, 0, 3),
	}
}

// DrawBackground 用半透明黑色覆盖画面，形成拖影
func (s *RenderSystem) DrawBackground(c render.Canvas) {
	c.FillSurface(utils.RGBA(0, 0, 0, s.cfg.Performance.BackgroundAlpha))
}

// DrawParticle 绘制单个粒子
//
// 主体是半径 size*2 的径向渐变，截取 size*1.5 以内的圆盘；明显可见的粒子再用 0.2 倍透明度描出拖尾。
func (s *RenderSystem) DrawParticle(c render.Canvas, p *components.ParticleComponent) {
	minAlpha := s.cfg.Performance.MinRenderAlpha
	if p.Alpha <= minAlpha {
		return
	}

	hue := p.DisplayHue()
	light := p.Brightness / 100

	s.glow = append(s.glow[:0],
		render.ColorStop{Offset: 0, Color: utils.HSLA(hue, 1, light, p.Alpha)},
		render.ColorStop{Offset: 0.6, Color: utils.HSLA(hue, 1, light, p.Alpha*0.4)},
		render.ColorStop{Offset: 1, Color: utils.HSLA(hue, 1, light, p.Alpha*0.1)},
	)
	s.stops = render.ClipStops(s.stops[:0], s.glow, particleDiscRadius/particleGlowRadius)
	c.FillRadialGradient(p.X, p.Y, p.Size*particleDiscRadius, s.stops)

	if p.Trail.Len() > 1 && p.Alpha > minAlpha*3 {
		s.pts = s.pts[:0]
		for i := 0; i < p.Trail.Len(); i++ {
			tp := p.Trail.At(i)
			s.pts = append(s.pts, render.Point{X: tp.X, Y: tp.Y})
		}
		c.Save()
		c.SetGlobalAlpha(p.Alpha * 0.2)
		c.StrokePolyline(s.pts, p.Size*0.5, utils.HSLA(hue, 1, light, 1))
		c.Restore()
	}
}

// DrawRocket 绘制火箭：火星、尾焰、头部光晕
//
// 头部光晕在接近目标高度的 FadeDistance 内逐渐熄灭，
// 火星与尾焰受升空初段淡入影响。
func (s *RenderSystem) DrawRocket(c render.Canvas, r *components.RocketComponent) {
	c.Save()
	defer c.Restore()

	flicker := r.GlobalFlicker()
	fade := FadeIn(r)

	for _, sp := range r.Sparks {
		a := sp.Alpha * flicker * fade
		s.stops = append(s.stops[:0],
			render.ColorStop{Offset: 0, Color: rgb(sparkInner, a*0.7)},
			render.ColorStop{Offset: 1, Color: rgb(sparkOuter, 0)},
		)
		c.FillRadialGradient(sp.X, sp.Y, 1.5, s.stops)
	}

	n := r.Trail.Len()
	for i := 1; i < n; i++ {
		prev := r.Trail.At(i - 1)
		pt := r.Trail.At(i)
		a := float64(i) / float64(n) * 0.4 * flicker * pt.FadeIn
		if a <= 0 {
			continue
		}
		c.StrokeLine(prev.X, prev.Y, pt.X, pt.Y, 1, rgb(trailColor, a))
	}

	headFade := 0.0
	if r.FadeDistance > 0 {
		headFade = utils.Clamp01((r.Y - r.TargetY) / r.FadeDistance)
	}
	head := r.CurrentFlicker * flicker * headFade
	s.stops = append(s.stops[:0],
		render.ColorStop{Offset: 0, Color: rgb(headInner, head)},
		render.ColorStop{Offset: 1, Color: rgb(sparkOuter, 0)},
	)
	c.FillRadialGradient(r.X, r.Y, 3, s.stops)
}

// DrawAll 按 背景 → 火箭 → 粒子 的顺序绘制一帧
func (s *RenderSystem) DrawAll(c render.Canvas, rockets []*components.RocketComponent, particles []*components.ParticleComponent) {
	s.DrawBackground(c)
	for _, r := range rockets {
		s.DrawRocket(c, r)
	}
	for _, p := range particles {
		s.DrawParticle(c, p)
	}
}

func rgb(c [3]uint8, a float64) color.NRGBA {
	return utils.RGBA(c[0], c[1], c[2], a)
}

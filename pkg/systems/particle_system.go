package systems

import (
	"cmp"
	"slices"

	"github.com/decker502/fireworks/pkg/components"
	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/utils"
)

// ParticleSystem 负责粒子的物理、透明度衰减与退役
//
// 每次 UpdateParticle 推进一帧（物理系数均以帧为单位）。
// 画面尺寸参与空气密度、风区和越界判定，窗口变化时通过 SetBounds 更新。
type ParticleSystem struct {
	cfg    *config.FireworksConfig
	rng    *utils.Random
	width  float64
	height float64
}

// NewParticleSystem 创建粒子系统
func NewParticleSystem(cfg *config.FireworksConfig, rng *utils.Random, width, height float64) *ParticleSystem {
	return &ParticleSystem{
		cfg:    cfg,
		rng:    rng,
		width:  width,
		height: height,
	}
}

// SetBounds 更新画面尺寸
func (s *ParticleSystem) SetBounds(width, height float64) {
	s.width = width
	s.height = height
}

// UpdateParticle 推进粒子一帧
//
// 执行顺序：
//  1. Life+1，寿命耗尽或透明度已低于阈值时退役
//  2. 可见时记录拖尾
//  3. 物理：摩擦、随高度变化的空气密度、重力，上空的爆炸粒子受微风扰动
//  4. 按类型衰减透明度
//  5. 越界则透明度归零
//
// 返回:
//   - bool: 粒子仍存活返回 true；退役的那一帧以及之后都返回 false
func (s *ParticleSystem) UpdateParticle(p *components.ParticleComponent) bool {
	if p.Dead {
		return false
	}

	fadeAlpha := s.cfg.Timing.FadeAlpha

	p.Life++
	if float64(p.Life) >= p.MaxLife || p.Alpha <= fadeAlpha {
		retire(p)
		return false
	}

	if p.Alpha > s.cfg.Performance.MinRenderAlpha {
		p.Trail.Push(components.TrailPoint{X: p.X, Y: p.Y, Alpha: p.Alpha})
	}

	s.applyPhysics(p)

	switch p.Kind {
	case components.ParticleExplosion:
		s.fadeExplosion(p)
	case components.ParticleWillow:
		fadeWillow(p)
	default:
		p.Alpha = max(0, p.Alpha-p.Decay)
	}

	margin := s.cfg.Performance.BoundsMargin
	if p.Y > s.height+margin || p.X < -margin || p.X > s.width+margin {
		p.Alpha = 0
	}

	if p.Alpha <= fadeAlpha {
		retire(p)
		return false
	}
	return true
}

func (s *ParticleSystem) applyPhysics(p *components.ParticleComponent) {
	phys := s.cfg.Physics

	airDensity := 1.0
	if s.height > 0 {
		airDensity = 1 - (p.Y/s.height)*0.1
	}

	p.VX *= p.Friction * (phys.AirResistance + airDensity*0.002)
	p.VY *= p.Friction
	p.VY += p.Gravity * airDensity

	// 高空微风
	if p.Kind == components.ParticleExplosion && p.Y < s.height*0.6 {
		p.VX += s.rng.Range(-0.02, 0.02)
	}

	p.X += p.VX
	p.Y += p.VY
}

// fadeExplosion 前 30% 寿命缓慢变暗，之后加速
func (s *ParticleSystem) fadeExplosion(p *components.ParticleComponent) {
	lr := p.LifeRatio()
	strength := 0.9
	if lr < 0.3 {
		strength = 0.3
	}
	p.Alpha = max(0, 1-lr*strength)
	p.Brightness = max(10, p.Brightness-lr*0.3)

	if p.Y < s.height*0.4 {
		p.Alpha *= 0.998
	}
}

// fadeWillow 前 70% 寿命保持 0.3 以上，之后线性消失
func fadeWillow(p *components.ParticleComponent) {
	lr := p.LifeRatio()
	if lr < 0.7 {
		p.Alpha = max(0.3, 1-lr*0.4)
	} else {
		p.Alpha = max(0, 0.3-(lr-0.7))
	}
	p.Brightness = max(20, p.Brightness-lr*0.2)
}

func retire(p *components.ParticleComponent) {
	p.Alpha = 0
	p.Trail.Clear()
	p.Dead = true
}

// UpdateAll 更新全部粒子并原地移除退役粒子
// 存活粒子保持原有相对顺序，返回压缩后的切片
func (s *ParticleSystem) UpdateAll(particles []*components.ParticleComponent) []*components.ParticleComponent {
	alive := particles[:0]
	for _, p := range particles {
		if s.UpdateParticle(p) {
			alive = append(alive, p)
		}
	}
	clear(particles[len(alive):])
	return alive
}

// EnforceCap 粒子数超过上限时只保留透明度最高的 limit 个
//
// 按 alpha 降序稳定排序后截断，alpha 相同的粒子保持原有顺序。
// 未超限时切片原样返回。
func EnforceCap(particles []*components.ParticleComponent, limit int) []*components.ParticleComponent {
	if limit < 0 {
		limit = 0
	}
	if len(particles) <= limit {
		return particles
	}

	slices.SortStableFunc(particles, func(a, b *components.ParticleComponent) int {
		return cmp.Compare(b.Alpha, a.Alpha)
	})

	clear(particles[limit:])
	return particles[:limit]
}

// ParticleLimit 当前模式下的粒子上限
func ParticleLimit(cfg *config.FireworksConfig, burstActive bool) int {
	return cfg.MaxParticlesFor(burstActive)
}

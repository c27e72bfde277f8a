package entities

import (
	"fmt"
	"math"

	"github.com/decker502/fireworks/pkg/components"
	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/utils"
)

// Explosion 一次爆炸的输入
type Explosion struct {
	X, Y    float64
	Scale   float64
	Pattern components.ExplosionPattern
	// Burst 连发模式中，使用较少的基础粒子数以控制总负载
	Burst bool
}

// ExplosionFactory 爆炸图案生成器
//
// Spawn 把图案粒子以及闪光、光晕、烟雾追加到调用方持有的粒子切片中，
// 生成器本身不保留任何粒子引用。
type ExplosionFactory struct {
	cfg       *config.FireworksConfig
	rng       *utils.Random
	particles *ParticleFactory
}

// NewExplosionFactory 创建爆炸图案生成器
func NewExplosionFactory(cfg *config.FireworksConfig, rng *utils.Random, pf *ParticleFactory) *ExplosionFactory {
	return &ExplosionFactory{cfg: cfg, rng: rng, particles: pf}
}

// ParticleCount 返回该爆炸的图案粒子基数（基础数 × scale，向下取整）
func (f *ExplosionFactory) ParticleCount(e Explosion) int {
	return int(math.Floor(float64(f.cfg.BaseCountFor(e.Burst)) * e.Scale))
}

// Spawn 生成一次爆炸
//
// 整个爆炸共用一个随机色相，各粒子只做小幅抖动，保证视觉上是同一朵烟花。
//
// 参数:
//   - dst: 目标粒子切片
//   - e: 爆炸参数
//
// 返回:
//   - []*components.ParticleComponent: 追加后的切片
//   - error: 图案越界（ErrInvalidPattern）或 scale 非法（ErrInvalidScale）时，
//     返回原切片与错误，不追加任何粒子
func (f *ExplosionFactory) Spawn(dst []*components.ParticleComponent, e Explosion) ([]*components.ParticleComponent, error) {
	if !e.Pattern.Valid() {
		return dst, fmt.Errorf("pattern %d: %w", int(e.Pattern), ErrInvalidPattern)
	}
	if !utils.IsFinite(e.Scale) || e.Scale <= 0 {
		return dst, fmt.Errorf("explosion scale %v: %w", e.Scale, ErrInvalidScale)
	}

	origLen := len(dst)
	rng := f.rng
	hue := rng.Range(0, 360)
	n := f.ParticleCount(e)
	s := e.Scale

	var err error
	add := func(kind components.ParticleKind, h, scale, vx, vy float64) *components.ParticleComponent {
		if err != nil {
			return nil
		}
		var p *components.ParticleComponent
		p, err = f.particles.NewParticle(e.X, e.Y, h, kind, scale, &components.Vec2{X: vx, Y: vy})
		if err != nil {
			return nil
		}
		dst = append(dst, p)
		return p
	}
	explode := func(h, scale, vx, vy float64) {
		add(components.ParticleExplosion, h, scale, vx, vy)
	}

	switch e.Pattern {
	case components.PatternDoubleChrysanthemum:
		fn := float64(n)
		// 内层小球
		for i := 0; float64(i) < fn*0.25; i++ {
			angle := rng.Angle()
			radius := rng.Range(0.3, 0.8)
			speed := rng.Range(0.8, 1.5) * s * radius
			explode(hue+rng.Range(-5, 5), s*0.6, math.Cos(angle)*speed, math.Sin(angle)*speed)
		}
		// 外层大球
		for i := 0; float64(i) < fn*0.75; i++ {
			angle := rng.Angle()
			variation := rng.Range(0.7, 1.3)
			speed := rng.Range(2.0, 3.2) * s * variation
			explode(hue+rng.Range(-8, 8), s, math.Cos(angle)*speed, math.Sin(angle)*speed*0.9)
		}

	case components.PatternPeony:
		const petals = 6
		perPetal := n / petals
		for petal := 0; petal < petals; petal++ {
			petalAngle := float64(petal) / petals * 2 * math.Pi
			for i := 0; i < perPetal; i++ {
				angle := petalAngle + rng.Range(-0.4, 0.4)
				d := float64(i) / float64(perPetal)
				shape := math.Sin(d*math.Pi)*0.8 + 0.2
				speed := rng.Range(1.5, 3.5) * s * shape
				h := hue + rng.Range(-12, 12) + float64(petal)*3
				explode(h, s*(0.7+shape*0.3), math.Cos(angle)*speed, math.Sin(angle)*speed*0.85)
			}
		}

	case components.PatternCrown:
		const rings = 4
		for ring := 0; ring < rings; ring++ {
			ringParticles := int(math.Floor(float64(n) * (0.4 - float64(ring)*0.08)))
			baseSpeed := (2.5 - float64(ring)*0.4) * s
			for i := 0; i < ringParticles; i++ {
				angle := rng.Angle()
				speed := baseSpeed * rng.Range(0.8, 1.2)
				bias := 0.9
				if math.Sin(angle) > 0 {
					bias = 1.2
				}
				h := hue + float64(ring)*20 + rng.Range(-8, 8)
				explode(h, (1-float64(ring)*0.15)*s, math.Cos(angle)*speed, math.Sin(angle)*speed*bias)
			}
		}

	case components.PatternWillow:
		for i := 0; i < n; i++ {
			angle := -math.Pi/2 + rng.Range(-math.Pi*0.25, math.Pi*0.25)
			speed := rng.Range(1.8, 4.2) * s
			drift := rng.Range(-0.8, 0.8)
			p := add(components.ParticleWillow, hue+rng.Range(-10, 10), s*rng.Range(0.8, 1.2),
				math.Cos(angle)*speed+drift, math.Sin(angle)*speed)
			if p == nil {
				break
			}
			p.Gravity = f.cfg.Physics.WillowGravity
			p.Friction = f.cfg.Willow.Friction
			p.MaxLife = rng.Range(f.cfg.Willow.Life.Min, f.cfg.Willow.Life.Max)
		}

	case components.PatternChrysanthemum:
		for i := 0; i < n; i++ {
			angle := rng.Angle()
			speed := rng.Range(2.2, 3.8) * s
			explode(hue+rng.Range(-5, 5), s, math.Cos(angle)*speed, math.Sin(angle)*speed*0.95)
		}

	case components.PatternPlumBlossom:
		const branches = 5
		perBranch := n / branches
		for branch := 0; branch < branches; branch++ {
			branchAngle := float64(branch) / branches * 2 * math.Pi
			for i := 0; i < perBranch; i++ {
				d := float64(i) / float64(perBranch)
				angle := branchAngle + rng.Range(-0.2, 0.2)
				speed := rng.Range(1.2, 2.8) * s * (1 - d*0.3)
				explode(hue+rng.Range(-8, 8), s*0.8, math.Cos(angle)*speed, math.Sin(angle)*speed)
			}
		}

	case components.PatternSpiral:
		const turns = 3
		for i := 0; i < n; i++ {
			progress := float64(i) / float64(n)
			angle := progress * 2 * math.Pi * turns
			radius := progress * 2.5 * s
			speed := rng.Range(1.5, 3.0) * s
			cos, sin := math.Cos(angle), math.Sin(angle)
			explode(hue+progress*60, s, cos*speed+cos*radius*0.1, sin*speed+sin*radius*0.1)
		}

	case components.PatternSplit:
		first := hue
		second := math.Mod(hue+180, 360)
		for i := 0; i < n; i++ {
			angle := rng.Angle()
			speed := rng.Range(2.0, 3.5) * s
			h := second
			if float64(i) < float64(n)/2 {
				h = first
			}
			explode(h, s, math.Cos(angle)*speed, math.Sin(angle)*speed)
		}
	}

	if err != nil {
		return dst[:origLen], fmt.Errorf("spawn %s pattern: %w", e.Pattern, err)
	}

	if err := f.spawnAccents(&dst, e, hue); err != nil {
		return dst[:origLen], err
	}

	return dst, nil
}

// spawnAccents 追加 1 个闪光、若干光晕与烟雾
func (f *ExplosionFactory) spawnAccents(dst *[]*components.ParticleComponent, e Explosion, hue float64) error {
	flash, err := f.particles.NewFlash(e.X, e.Y, hue, e.Scale)
	if err != nil {
		return fmt.Errorf("spawn flash: %w", err)
	}
	*dst = append(*dst, flash)

	for i := 0; i < f.cfg.Effects.GlowParticles; i++ {
		glow, err := f.particles.NewGlow(e.X, e.Y, hue, e.Scale)
		if err != nil {
			return fmt.Errorf("spawn glow: %w", err)
		}
		*dst = append(*dst, glow)
	}

	for i := 0; i < f.cfg.Effects.SmokeParticles; i++ {
		smoke, err := f.particles.NewSmoke(e.X, e.Y, e.Scale)
		if err != nil {
			return fmt.Errorf("spawn smoke: %w", err)
		}
		*dst = append(*dst, smoke)
	}

	return nil
}

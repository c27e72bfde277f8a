package entities

import (
	"fmt"
	"math"

	"github.com/decker502/fireworks/pkg/components"
	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/utils"
)

// kindProfile 每种粒子类型在构造时采用的系数
type kindProfile struct {
	speed    config.Range
	decay    config.Range
	life     config.Range
	gravity  float64
	friction float64
}

// ParticleFactory 按配置创建粒子
//
// 工厂持有配置与随机源，本身不保存任何粒子引用。
type ParticleFactory struct {
	cfg      *config.FireworksConfig
	rng      *utils.Random
	profiles [components.ParticleKindCount]kindProfile
}

// NewParticleFactory 创建粒子工厂
func NewParticleFactory(cfg *config.FireworksConfig, rng *utils.Random) *ParticleFactory {
	f := &ParticleFactory{cfg: cfg, rng: rng}

	standard := kindProfile{
		speed:    cfg.Particles.Speed,
		decay:    cfg.Timing.Decay,
		life:     cfg.Timing.Life,
		gravity:  cfg.Physics.Gravity,
		friction: cfg.Physics.Friction,
	}
	for k := range f.profiles {
		f.profiles[k] = standard
	}
	f.profiles[components.ParticleExplosion] = kindProfile{
		speed:    cfg.Particles.ExplosionSpeed,
		decay:    cfg.Timing.ExplosionDecay,
		life:     cfg.Timing.ExplosionLife,
		gravity:  cfg.Physics.ExplosionGravity,
		friction: cfg.Physics.ExplosionFriction,
	}

	return f
}

// NewParticle 创建一个粒子
//
// 参数:
//   - x, y: 生成位置
//   - hue: 基础色相（度）
//   - kind: 粒子类型
//   - scale: 尺寸/速度倍数，必须为有限正数
//   - velocity: 初速度；为 nil 时按随机角度与类型速度区间生成
//
// 返回:
//   - *components.ParticleComponent: 新粒子
//   - error: 参数非法时返回 ErrInvalidKind / ErrInvalidScale / ErrInvalidVelocity
func (f *ParticleFactory) NewParticle(x, y, hue float64, kind components.ParticleKind, scale float64, velocity *components.Vec2) (*components.ParticleComponent, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("particle kind %d: %w", int(kind), ErrInvalidKind)
	}
	if !utils.IsFinite(scale) || scale <= 0 {
		return nil, fmt.Errorf("particle scale %v: %w", scale, ErrInvalidScale)
	}
	if velocity != nil && (!utils.IsFinite(velocity.X) || !utils.IsFinite(velocity.Y)) {
		return nil, fmt.Errorf("particle velocity (%v, %v): %w", velocity.X, velocity.Y, ErrInvalidVelocity)
	}
	if !utils.IsFinite(x) || !utils.IsFinite(y) {
		return nil, fmt.Errorf("particle origin (%v, %v): %w", x, y, ErrInvalidSurface)
	}

	prof := f.profiles[kind]
	rng := f.rng

	p := &components.ParticleComponent{
		X:          x,
		Y:          y,
		Hue:        hue,
		Kind:       kind,
		Alpha:      1,
		Brightness: rng.Range(f.cfg.Particles.Brightness.Min, f.cfg.Particles.Brightness.Max),
		Decay:      rng.Range(prof.decay.Min, prof.decay.Max),
		Size:       rng.Range(f.cfg.Particles.Size.Min, f.cfg.Particles.Size.Max) * scale,
		Gravity:    prof.gravity,
		Friction:   prof.friction,
		Trail:      components.NewTrail[components.TrailPoint](f.cfg.Particles.TrailLength),
	}

	angle := rng.Angle()
	speed := rng.Range(prof.speed.Min, prof.speed.Max) * scale
	p.HueVariance = rng.Range(-f.cfg.Colors.HueVariance, f.cfg.Colors.HueVariance)
	p.MaxLife = rng.Range(prof.life.Min, prof.life.Max)

	if velocity != nil {
		p.VX, p.VY = velocity.X, velocity.Y
	} else {
		p.VX = math.Cos(angle) * speed
		p.VY = math.Sin(angle) * speed
	}

	return p, nil
}

// NewFlash 爆炸中心闪光：大尺寸、快速衰减、固定寿命
func (f *ParticleFactory) NewFlash(x, y, hue, scale float64) (*components.ParticleComponent, error) {
	p, err := f.NewParticle(x, y, hue, components.ParticleFlash, scale, nil)
	if err != nil {
		return nil, err
	}
	p.Size = f.cfg.Effects.FlashSize * scale
	p.Decay = f.cfg.Effects.FlashDecay
	p.MaxLife = f.cfg.Effects.FlashLife
	return p, nil
}

// NewGlow 爆炸光晕
func (f *ParticleFactory) NewGlow(x, y, hue, scale float64) (*components.ParticleComponent, error) {
	return f.NewParticle(x, y, hue+f.cfg.Effects.GlowHueOffset, components.ParticleGlow, scale, nil)
}

// NewSmoke 爆炸烟雾：初速竖直分量反向并减弱，低重力、低亮度、大尺寸
func (f *ParticleFactory) NewSmoke(x, y, scale float64) (*components.ParticleComponent, error) {
	p, err := f.NewParticle(x, y, f.cfg.Colors.SmokeHue, components.ParticleSmoke, scale, nil)
	if err != nil {
		return nil, err
	}
	p.VY *= f.cfg.Smoke.VelocityFactor
	p.Gravity = f.cfg.Smoke.Gravity
	p.Brightness = f.cfg.Colors.SmokeBrightness
	p.Size = f.rng.Range(f.cfg.Smoke.Size.Min, f.cfg.Smoke.Size.Max) * scale
	return p, nil
}

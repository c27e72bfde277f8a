package systems

import (
	"math"

	"github.com/decker502/fireworks/pkg/components"
	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/utils"
)

// DetonateFunc 火箭到达目标高度时的回调
type DetonateFunc func(x, y, scale float64, pattern components.ExplosionPattern)

// RocketSystem 负责火箭的上升、闪烁、火星与爆炸判定
type RocketSystem struct {
	cfg *config.FireworksConfig
	rng *utils.Random
}

// NewRocketSystem 创建火箭系统
func NewRocketSystem(cfg *config.FireworksConfig, rng *utils.Random) *RocketSystem {
	return &RocketSystem{cfg: cfg, rng: rng}
}

// UpdateFlicker 以 FlickerRate 的概率重新选取目标闪烁值，
// 然后让当前值向目标平滑靠近
func (s *RocketSystem) UpdateFlicker(r *components.RocketComponent) {
	rc := s.cfg.Rocket
	if s.rng.Chance(r.FlickerRate) {
		r.TargetFlicker = s.rng.Range(rc.FlickerTarget.Min, rc.FlickerTarget.Max)
	}
	r.CurrentFlicker = utils.Approach(r.CurrentFlicker, r.TargetFlicker, rc.FlickerSmoothing)
}

// FadeIn 升空初段的淡入比例 [0, 1]
// 淡入时长取 FadeInTicks 与预计飞行时长一半中的较小者，只影响绘制
func FadeIn(r *components.RocketComponent) float64 {
	span := math.Min(r.FadeInTicks, r.FlightTicks/2)
	if span <= 0 {
		return 1
	}
	return utils.Clamp01(float64(r.Age) / span)
}

// UpdateRocket 推进火箭一帧
//
// 到达 TargetY 时调用 detonate 一次并返回 true，调用方应随即移除该火箭。
// detonate 可以为 nil。
func (s *RocketSystem) UpdateRocket(r *components.RocketComponent, detonate DetonateFunc) bool {
	rc := s.cfg.Rocket
	rng := s.rng

	r.Age++
	r.X += r.VX
	r.Y += r.VY
	s.UpdateFlicker(r)

	fade := FadeIn(r)
	r.Trail.Push(components.RocketTrailPoint{
		X:       r.X,
		Y:       r.Y,
		Flicker: r.CurrentFlicker,
		FadeIn:  fade,
	})

	if rng.Chance(rc.SparkChance) {
		r.Sparks = append(r.Sparks, components.Spark{
			X:     r.X + rng.Range(-1, 1),
			Y:     r.Y + rng.Range(-1, 1),
			VX:    rng.Range(-0.3, 0.3),
			VY:    rng.Range(-0.3, 0.3),
			Alpha: rc.SparkInitialAlpha,
		})
	}

	sparks := r.Sparks[:0]
	for _, sp := range r.Sparks {
		sp.X += sp.VX
		sp.Y += sp.VY
		sp.Alpha *= rc.SparkDecay
		if sp.Alpha > rc.SparkMinAlpha {
			sparks = append(sparks, sp)
		}
	}
	r.Sparks = sparks

	if r.Y <= r.TargetY {
		if detonate != nil {
			detonate(r.X, r.Y, r.Scale, r.Pattern)
		}
		return true
	}
	return false
}

// UpdateAll 更新全部火箭，移除已爆炸的火箭
func (s *RocketSystem) UpdateAll(rockets []*components.RocketComponent, detonate DetonateFunc) []*components.RocketComponent {
	flying := rockets[:0]
	for _, r := range rockets {
		if !s.UpdateRocket(r, detonate) {
			flying = append(flying, r)
		}
	}
	clear(rockets[len(flying):])
	return flying
}

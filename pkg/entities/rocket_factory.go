package entities

import (
	"fmt"
	"math"

	"github.com/decker502/fireworks/pkg/components"
	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/utils"
)

// RocketFactory 按配置创建火箭
type RocketFactory struct {
	cfg *config.FireworksConfig
	rng *utils.Random
}

// NewRocketFactory 创建火箭工厂
func NewRocketFactory(cfg *config.FireworksConfig, rng *utils.Random) *RocketFactory {
	return &RocketFactory{cfg: cfg, rng: rng}
}

// NewRocket 在 (x, y) 创建一枚随机火箭
//
// 随机确定规模、图案、爆炸高度（画面高度的 targetHeight 比例带内）、
// 初速度（水平微抖动，竖直向上并随规模加快）与闪烁参数。
//
// 参数:
//   - x, y: 发射位置（通常 y 为画面底部）
//   - surfaceHeight: 画面高度，必须为正
//
// 返回:
//   - *components.RocketComponent: 新火箭
//   - error: 尺寸或坐标非法时返回 ErrInvalidSurface
func (f *RocketFactory) NewRocket(x, y, surfaceHeight float64) (*components.RocketComponent, error) {
	if !utils.IsFinite(surfaceHeight) || surfaceHeight <= 0 {
		return nil, fmt.Errorf("surface height %v: %w", surfaceHeight, ErrInvalidSurface)
	}
	if !utils.IsFinite(x) || !utils.IsFinite(y) {
		return nil, fmt.Errorf("launch position (%v, %v): %w", x, y, ErrInvalidSurface)
	}

	rc := f.cfg.Rocket
	rng := f.rng

	scale := rng.Range(rc.Scale.Min, rc.Scale.Max)
	pattern := components.ExplosionPattern(rng.IntN(int(components.PatternCount)))
	targetY := rng.Range(surfaceHeight*rc.TargetHeight.Min, surfaceHeight*rc.TargetHeight.Max)

	r := &components.RocketComponent{
		X:       x,
		Y:       y,
		Scale:   scale,
		Pattern: pattern,
		TargetY: targetY,
		VX:      rng.Range(-0.1, 0.1),
		VY:      -rng.Range(rc.Speed.Min, rc.Speed.Max) * (1 + scale*0.2),
		Trail:   components.NewTrail[components.RocketTrailPoint](rc.TrailLength),

		FlickerIntensity: rng.Range(rc.FlickerIntensity.Min, rc.FlickerIntensity.Max),
		FlickerRate:      rng.Range(rc.FlickerRate.Min, rc.FlickerRate.Max),
		CurrentFlicker:   1,
		TargetFlicker:    rng.Range(rc.FlickerTarget.Min, rc.FlickerTarget.Max),

		FadeDistance: rc.FadeDistance,
		FadeInTicks:  rc.FadeInTicks,
	}

	// 按初速估算飞行时长，只用于淡入效果，不参与爆炸判定
	r.FlightTicks = math.Max(0, y-targetY) / math.Abs(r.VY)

	return r, nil
}

package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FireworksConfig 烟花模拟的全部可调常量
//
// 默认值由 DefaultFireworksConfig 提供；可选的 YAML 文件只需写出要覆盖的字段，
// 未出现的字段保持默认值。
//
// 配置文件示例: data/fireworks.yaml
type FireworksConfig struct {
	Physics     PhysicsConfig     `yaml:"physics"`
	Particles   ParticlesConfig   `yaml:"particles"`
	Colors      ColorsConfig      `yaml:"colors"`
	Timing      TimingConfig      `yaml:"timing"`
	Effects     EffectsConfig     `yaml:"effects"`
	Rocket      RocketConfig      `yaml:"rocket"`
	Willow      WillowConfig      `yaml:"willow"`
	Smoke       SmokeConfig       `yaml:"smoke"`
	Burst       BurstConfig       `yaml:"burst"`
	Performance PerformanceConfig `yaml:"performance"`
	Scheduler   SchedulerConfig   `yaml:"scheduler"`
}

// Range 闭区间 [Min, Max]
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// IntRange 整数闭区间 [Min, Max]
type IntRange struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// PhysicsConfig 物理系数（每帧）
type PhysicsConfig struct {
	Gravity           float64 `yaml:"gravity"`
	ExplosionGravity  float64 `yaml:"explosionGravity"`
	WillowGravity     float64 `yaml:"willowGravity"`
	Friction          float64 `yaml:"friction"`
	ExplosionFriction float64 `yaml:"explosionFriction"`
	AirResistance     float64 `yaml:"airResistance"`
}

// ParticlesConfig 粒子数量与外观
type ParticlesConfig struct {
	// BaseCount 普通模式下每次爆炸的基础粒子数（再乘以火箭 scale）
	BaseCount int `yaml:"baseCount"`
	// BurstModeCount 连发模式下的基础粒子数
	BurstModeCount int `yaml:"burstModeCount"`
	// MaxParticles 普通模式下的粒子上限
	MaxParticles int `yaml:"maxParticles"`
	// BurstMaxParticles 连发模式下的粒子上限
	BurstMaxParticles int `yaml:"burstMaxParticles"`

	Brightness     Range `yaml:"brightness"`
	Size           Range `yaml:"size"`
	Speed          Range `yaml:"speed"`
	ExplosionSpeed Range `yaml:"explosionSpeed"`
	TrailLength    int   `yaml:"trailLength"`
}

// ColorsConfig 颜色参数
type ColorsConfig struct {
	HueVariance     float64 `yaml:"hueVariance"`
	SmokeHue        float64 `yaml:"smokeHue"`
	SmokeBrightness float64 `yaml:"smokeBrightness"`
}

// TimingConfig 寿命与衰减（以帧为单位）
type TimingConfig struct {
	Life           Range   `yaml:"life"`
	ExplosionLife  Range   `yaml:"explosionLife"`
	FadeAlpha      float64 `yaml:"fadeAlpha"`
	Decay          Range   `yaml:"decay"`
	ExplosionDecay Range   `yaml:"explosionDecay"`
}

// EffectsConfig 爆炸附带效果
type EffectsConfig struct {
	FlashSize      float64 `yaml:"flashSize"`
	FlashLife      float64 `yaml:"flashLife"`
	FlashDecay     float64 `yaml:"flashDecay"`
	SmokeParticles int     `yaml:"smokeParticles"`
	GlowParticles  int     `yaml:"glowParticles"`
	GlowHueOffset  float64 `yaml:"glowHueOffset"`
}

// RocketConfig 火箭参数
type RocketConfig struct {
	Scale Range `yaml:"scale"`
	Speed Range `yaml:"speed"`
	// TargetHeight 爆炸高度带（占画面高度的比例）
	TargetHeight Range   `yaml:"targetHeight"`
	TrailLength  int     `yaml:"trailLength"`
	SparkChance  float64 `yaml:"sparkChance"`

	FlickerIntensity Range   `yaml:"flickerIntensity"`
	FlickerRate      Range   `yaml:"flickerRate"`
	FlickerTarget    Range   `yaml:"flickerTarget"`
	FlickerSmoothing float64 `yaml:"flickerSmoothing"`

	// FadeDistance 头部光晕在目标高度上方多少像素开始变暗
	FadeDistance float64 `yaml:"fadeDistance"`
	// FadeInTicks 升空初段的淡入帧数
	FadeInTicks float64 `yaml:"fadeInTicks"`

	SparkInitialAlpha float64 `yaml:"sparkInitialAlpha"`
	SparkDecay        float64 `yaml:"sparkDecay"`
	SparkMinAlpha     float64 `yaml:"sparkMinAlpha"`
}

// WillowConfig 柳形图案的覆盖参数
type WillowConfig struct {
	Friction float64 `yaml:"friction"`
	Life     Range   `yaml:"life"`
}

// SmokeConfig 烟雾粒子的覆盖参数
type SmokeConfig struct {
	Gravity        float64 `yaml:"gravity"`
	VelocityFactor float64 `yaml:"velocityFactor"`
	Size           Range   `yaml:"size"`
}

// BurstConfig 连发模式参数
type BurstConfig struct {
	// Count 每轮连发的发射批次数
	Count IntRange `yaml:"count"`
	// Interval 批次间隔（秒）
	Interval Range `yaml:"interval"`
	// Rockets 每批次发射的火箭数
	Rockets IntRange `yaml:"rockets"`
	// Cooldown 两轮连发之间的最短间隔（秒）
	Cooldown float64 `yaml:"cooldown"`
}

// PerformanceConfig 渲染性能参数
type PerformanceConfig struct {
	BackgroundAlpha float64 `yaml:"backgroundAlpha"`
	MinRenderAlpha  float64 `yaml:"minRenderAlpha"`
	// BoundsMargin 粒子离开画面多少像素后被移除
	BoundsMargin float64 `yaml:"boundsMargin"`
}

// SchedulerConfig 调度节奏
type SchedulerConfig struct {
	CapCheckInterval    int     `yaml:"capCheckInterval"`
	LaunchCheckInterval int     `yaml:"launchCheckInterval"`
	LaunchChance        float64 `yaml:"launchChance"`
	BurstChance         float64 `yaml:"burstChance"`
	// LaunchBand 自动发射的水平位置带（占画面宽度的比例）
	LaunchBand Range `yaml:"launchBand"`
}

// DefaultFireworksConfig 返回内置默认配置
func DefaultFireworksConfig() *FireworksConfig {
	return &FireworksConfig{
		Physics: PhysicsConfig{
			Gravity:           0.04,
			ExplosionGravity:  0.03,
			WillowGravity:     0.05,
			Friction:          0.995,
			ExplosionFriction: 0.995,
			AirResistance:     0.998,
		},
		Particles: ParticlesConfig{
			BaseCount:         120,
			BurstModeCount:    80,
			MaxParticles:      600,
			BurstMaxParticles: 400,
			Brightness:        Range{50, 80},
			Size:              Range{0.8, 2.5},
			Speed:             Range{0.8, 1.2},
			ExplosionSpeed:    Range{1.5, 3.5},
			TrailLength:       3,
		},
		Colors: ColorsConfig{
			HueVariance:     15,
			SmokeHue:        220,
			SmokeBrightness: 15,
		},
		Timing: TimingConfig{
			Life:           Range{30, 45},
			ExplosionLife:  Range{60, 85},
			FadeAlpha:      0.05,
			Decay:          Range{0.02, 0.03},
			ExplosionDecay: Range{0.025, 0.04},
		},
		Effects: EffectsConfig{
			FlashSize:      10,
			FlashLife:      25,
			FlashDecay:     0.1,
			SmokeParticles: 12,
			GlowParticles:  8,
			GlowHueOffset:  30,
		},
		Rocket: RocketConfig{
			Scale:             Range{0.6, 2.2},
			Speed:             Range{1.8, 2.2},
			TargetHeight:      Range{0.15, 0.45},
			TrailLength:       15,
			SparkChance:       0.15,
			FlickerIntensity:  Range{0.2, 1.0},
			FlickerRate:       Range{0.1, 0.3},
			FlickerTarget:     Range{0.1, 1.0},
			FlickerSmoothing:  0.3,
			FadeDistance:      120,
			FadeInTicks:       30,
			SparkInitialAlpha: 0.6,
			SparkDecay:        0.95,
			SparkMinAlpha:     0.1,
		},
		Willow: WillowConfig{
			Friction: 0.992,
			Life:     Range{300, 400},
		},
		Smoke: SmokeConfig{
			Gravity:        0.01,
			VelocityFactor: -0.15,
			Size:           Range{4, 6},
		},
		Burst: BurstConfig{
			Count:    IntRange{6, 9},
			Interval: Range{0.03, 0.06},
			Rockets:  IntRange{1, 2},
			Cooldown: 480,
		},
		Performance: PerformanceConfig{
			BackgroundAlpha: 0.25,
			MinRenderAlpha:  0.08,
			BoundsMargin:    50,
		},
		Scheduler: SchedulerConfig{
			CapCheckInterval:    10,
			LaunchCheckInterval: 12,
			LaunchChance:        0.06,
			BurstChance:         0.4,
			LaunchBand:          Range{0.1, 0.9},
		},
	}
}

// LoadFireworksConfig 加载烟花配置
//
// 从指定路径读取 YAML，覆盖到默认配置之上，然后校验。
//
// 参数:
//   - path: 配置文件路径（如 "data/fireworks.yaml"）
//
// 返回:
//   - *FireworksConfig: 合并后的配置
//   - error: 读取、解析或校验失败时返回错误
func LoadFireworksConfig(path string) (*FireworksConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fireworks config: %w", err)
	}
	return ParseFireworksConfig(data)
}

// LoadFireworksConfigOrDefault 与 LoadFireworksConfig 相同，path 为空时返回内置默认配置
func LoadFireworksConfigOrDefault(path string) (*FireworksConfig, error) {
	if path == "" {
		return DefaultFireworksConfig(), nil
	}
	return LoadFireworksConfig(path)
}

// ParseFireworksConfig 解析 YAML 内容并覆盖到默认配置之上
func ParseFireworksConfig(data []byte) (*FireworksConfig, error) {
	cfg := DefaultFireworksConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse fireworks config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid fireworks config: %w", err)
	}

	return cfg, nil
}

// Validate 验证配置有效性
//
// 检查：
//   - 所有区间的 Min 不大于 Max
//   - 粒子数、上限、拖尾长度为正
//   - 概率位于 [0, 1]
//   - 爆炸高度带与发射带是画面比例，位于 [0, 1]
//   - 调度间隔为正
func (c *FireworksConfig) Validate() error {
	ranges := []struct {
		name string
		r    Range
	}{
		{"particles.brightness", c.Particles.Brightness},
		{"particles.size", c.Particles.Size},
		{"particles.speed", c.Particles.Speed},
		{"particles.explosionSpeed", c.Particles.ExplosionSpeed},
		{"timing.life", c.Timing.Life},
		{"timing.explosionLife", c.Timing.ExplosionLife},
		{"timing.decay", c.Timing.Decay},
		{"timing.explosionDecay", c.Timing.ExplosionDecay},
		{"rocket.scale", c.Rocket.Scale},
		{"rocket.speed", c.Rocket.Speed},
		{"rocket.targetHeight", c.Rocket.TargetHeight},
		{"rocket.flickerIntensity", c.Rocket.FlickerIntensity},
		{"rocket.flickerRate", c.Rocket.FlickerRate},
		{"rocket.flickerTarget", c.Rocket.FlickerTarget},
		{"willow.life", c.Willow.Life},
		{"smoke.size", c.Smoke.Size},
		{"burst.interval", c.Burst.Interval},
		{"scheduler.launchBand", c.Scheduler.LaunchBand},
	}
	for _, r := range ranges {
		if r.r.Min > r.r.Max {
			return fmt.Errorf("%s range invalid: min(%.3f) > max(%.3f)", r.name, r.r.Min, r.r.Max)
		}
	}

	fractions := []struct {
		name string
		r    Range
	}{
		{"rocket.targetHeight", c.Rocket.TargetHeight},
		{"scheduler.launchBand", c.Scheduler.LaunchBand},
	}
	for _, f := range fractions {
		if f.r.Min < 0 || f.r.Max > 1 {
			return fmt.Errorf("%s must lie within [0, 1], got [%.3f, %.3f]", f.name, f.r.Min, f.r.Max)
		}
	}

	if c.Burst.Count.Min > c.Burst.Count.Max {
		return fmt.Errorf("burst.count range invalid: min(%d) > max(%d)", c.Burst.Count.Min, c.Burst.Count.Max)
	}
	if c.Burst.Rockets.Min > c.Burst.Rockets.Max {
		return fmt.Errorf("burst.rockets range invalid: min(%d) > max(%d)", c.Burst.Rockets.Min, c.Burst.Rockets.Max)
	}
	if c.Burst.Count.Min < 1 || c.Burst.Rockets.Min < 1 {
		return errors.New("burst.count and burst.rockets must be at least 1")
	}
	if c.Burst.Interval.Min <= 0 {
		return fmt.Errorf("burst.interval.min must be > 0, got %.3f", c.Burst.Interval.Min)
	}

	positive := []struct {
		name string
		v    int
	}{
		{"particles.baseCount", c.Particles.BaseCount},
		{"particles.burstModeCount", c.Particles.BurstModeCount},
		{"particles.maxParticles", c.Particles.MaxParticles},
		{"particles.burstMaxParticles", c.Particles.BurstMaxParticles},
		{"particles.trailLength", c.Particles.TrailLength},
		{"rocket.trailLength", c.Rocket.TrailLength},
		{"scheduler.capCheckInterval", c.Scheduler.CapCheckInterval},
		{"scheduler.launchCheckInterval", c.Scheduler.LaunchCheckInterval},
	}
	for _, p := range positive {
		if p.v <= 0 {
			return fmt.Errorf("%s must be > 0, got %d", p.name, p.v)
		}
	}

	if c.Effects.SmokeParticles < 0 || c.Effects.GlowParticles < 0 {
		return errors.New("effects particle counts must not be negative")
	}

	probabilities := []struct {
		name string
		v    float64
	}{
		{"rocket.sparkChance", c.Rocket.SparkChance},
		{"rocket.flickerSmoothing", c.Rocket.FlickerSmoothing},
		{"scheduler.launchChance", c.Scheduler.LaunchChance},
		{"scheduler.burstChance", c.Scheduler.BurstChance},
		{"performance.backgroundAlpha", c.Performance.BackgroundAlpha},
		{"performance.minRenderAlpha", c.Performance.MinRenderAlpha},
		{"timing.fadeAlpha", c.Timing.FadeAlpha},
	}
	for _, p := range probabilities {
		if p.v < 0 || p.v > 1 {
			return fmt.Errorf("%s must be within [0, 1], got %.3f", p.name, p.v)
		}
	}

	if c.Rocket.Scale.Min <= 0 {
		return fmt.Errorf("rocket.scale.min must be > 0, got %.3f", c.Rocket.Scale.Min)
	}
	if c.Rocket.Speed.Min <= 0 {
		return fmt.Errorf("rocket.speed.min must be > 0, got %.3f", c.Rocket.Speed.Min)
	}

	return nil
}

// MaxParticlesFor 返回当前模式下的粒子上限
func (c *FireworksConfig) MaxParticlesFor(burstActive bool) int {
	if burstActive {
		return c.Particles.BurstMaxParticles
	}
	return c.Particles.MaxParticles
}

// BaseCountFor 返回当前模式下每次爆炸的基础粒子数
func (c *FireworksConfig) BaseCountFor(burstActive bool) int {
	if burstActive {
		return c.Particles.BurstModeCount
	}
	return c.Particles.BaseCount
}

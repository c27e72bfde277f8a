package game

import (
	"errors"
	"fmt"
	"log"

	"github.com/decker502/fireworks/pkg/components"
	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/entities"
	"github.com/decker502/fireworks/pkg/render"
	"github.com/decker502/fireworks/pkg/systems"
	"github.com/decker502/fireworks/pkg/utils"
)

// ExplosionListener 爆炸发生后的通知，用于音效等旁路效果
type ExplosionListener func(e entities.Explosion)

// Stats 世界状态快照
type Stats struct {
	Tick        int
	Clock       float64
	Rockets     int
	Particles   int
	BurstActive bool
	BurstCount  int
	// Culled 因粒子上限被移除的粒子累计数
	Culled int
}

// World 烟花模拟的全部状态
//
// World 独占火箭切片、粒子切片与连发状态，所有修改都发生在 Update 中。
// 不是并发安全的：宿主（ebiten 或 tcell 主循环）只能在一个 goroutine 中调用。
//
// 每次 Update 的顺序：
//  1. 推进帧计数与模拟时钟
//  2. 更新火箭，到达目标的火箭爆炸并移除
//  3. 更新粒子，移除退役粒子
//  4. 每 CapCheckInterval 帧执行一次粒子上限
//  5. 自动发射与连发调度
type World struct {
	cfg *config.FireworksConfig
	rng *utils.Random

	width, height float64

	tick  int
	clock float64

	rockets   []*components.RocketComponent
	particles []*components.ParticleComponent
	burst     components.BurstModeComponent
	culled    int

	rocketFactory    *entities.RocketFactory
	explosionFactory *entities.ExplosionFactory

	particleSystem *systems.ParticleSystem
	rocketSystem   *systems.RocketSystem
	launchSystem   *systems.LaunchSystem
	renderSystem   *systems.RenderSystem

	detonate    systems.DetonateFunc
	onExplosion ExplosionListener
}

// NewWorld 创建模拟世界
//
// 参数:
//   - cfg: 已校验的配置
//   - rng: 随机源，所有随机行为都取自它，相同种子得到相同的烟花序列
//   - width, height: 画面尺寸（像素）
//
// 返回:
//   - *World: 新世界
//   - error: 配置非法、随机源为空或尺寸非法（ErrInvalidSurface）
func NewWorld(cfg *config.FireworksConfig, rng *utils.Random, width, height float64) (*World, error) {
	if cfg == nil {
		return nil, errors.New("world: nil config")
	}
	if rng == nil {
		return nil, errors.New("world: nil random source")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("world: %w", err)
	}
	if err := checkSurface(width, height); err != nil {
		return nil, err
	}

	w := &World{
		cfg:    cfg,
		rng:    rng,
		width:  width,
		height: height,
	}

	particleFactory := entities.NewParticleFactory(cfg, rng)
	w.rocketFactory = entities.NewRocketFactory(cfg, rng)
	w.explosionFactory = entities.NewExplosionFactory(cfg, rng, particleFactory)

	w.particleSystem = systems.NewParticleSystem(cfg, rng, width, height)
	w.rocketSystem = systems.NewRocketSystem(cfg, rng)
	w.launchSystem = systems.NewLaunchSystem(cfg, rng, &w.burst)
	w.renderSystem = systems.NewRenderSystem(cfg)

	w.detonate = w.explode

	log.Printf("[World] 创建世界: %.0fx%.0f", width, height)
	return w, nil
}

func checkSurface(width, height float64) error {
	if !utils.IsFinite(width) || !utils.IsFinite(height) || width <= 0 || height <= 0 {
		return fmt.Errorf("surface %vx%v: %w", width, height, entities.ErrInvalidSurface)
	}
	return nil
}

// SetExplosionListener 设置爆炸通知，传 nil 取消
func (w *World) SetExplosionListener(l ExplosionListener) {
	w.onExplosion = l
}

// Update 推进一帧，dt 为帧时长（秒）
func (w *World) Update(dt float64) {
	w.tick++
	w.clock += dt

	w.rockets = w.rocketSystem.UpdateAll(w.rockets, w.detonate)
	w.particles = w.particleSystem.UpdateAll(w.particles)

	if w.tick%w.cfg.Scheduler.CapCheckInterval == 0 {
		limit := systems.ParticleLimit(w.cfg, w.burst.Active)
		before := len(w.particles)
		w.particles = systems.EnforceCap(w.particles, limit)
		w.culled += before - len(w.particles)
	}

	n := w.launchSystem.Update(w.tick, w.clock)
	band := w.cfg.Scheduler.LaunchBand
	for i := 0; i < n; i++ {
		x := w.rng.Range(w.width*band.Min, w.width*band.Max)
		if err := w.LaunchAt(x); err != nil {
			log.Printf("[World] 自动发射失败: %v", err)
		}
	}
}

// explode 火箭爆炸回调：生成图案粒子并通知监听者
func (w *World) explode(x, y, scale float64, pattern components.ExplosionPattern) {
	e := entities.Explosion{
		X:       x,
		Y:       y,
		Scale:   scale,
		Pattern: pattern,
		Burst:   w.burst.Active,
	}

	particles, err := w.explosionFactory.Spawn(w.particles, e)
	w.particles = particles
	if err != nil {
		log.Printf("[World] 爆炸生成失败: %v", err)
		return
	}

	if w.onExplosion != nil {
		w.onExplosion(e)
	}
}

// LaunchAt 在画面底部 x 处发射一枚火箭（点击发射）
func (w *World) LaunchAt(x float64) error {
	r, err := w.rocketFactory.NewRocket(x, w.height, w.height)
	if err != nil {
		return fmt.Errorf("launch at %v: %w", x, err)
	}
	w.rockets = append(w.rockets, r)
	return nil
}

// ForceBurst 立即进入连发模式（调试用），maxCount <= 0 时随机批次数
func (w *World) ForceBurst(maxCount int) {
	w.launchSystem.ForceBurst(w.clock, maxCount)
}

// Resize 更新画面尺寸
// 已存在的火箭与粒子保持原坐标，之后的发射与越界判定使用新尺寸
func (w *World) Resize(width, height float64) error {
	if err := checkSurface(width, height); err != nil {
		return err
	}
	w.width, w.height = width, height
	w.particleSystem.SetBounds(width, height)
	log.Printf("[World] 尺寸变化: %.0fx%.0f", width, height)
	return nil
}

// Size 当前画面尺寸
func (w *World) Size() (float64, float64) {
	return w.width, w.height
}

// Draw 绘制一帧：拖影背景 → 火箭 → 粒子
func (w *World) Draw(c render.Canvas) {
	w.renderSystem.DrawAll(c, w.rockets, w.particles)
}

// Stats 返回状态快照
func (w *World) Stats() Stats {
	return Stats{
		Tick:        w.tick,
		Clock:       w.clock,
		Rockets:     len(w.rockets),
		Particles:   len(w.particles),
		BurstActive: w.burst.Active,
		BurstCount:  w.burst.Count,
		Culled:      w.culled,
	}
}

// Rockets 当前火箭（只读视图，调用方不得修改）
func (w *World) Rockets() []*components.RocketComponent {
	return w.rockets
}

// Particles 当前粒子（只读视图，调用方不得修改）
func (w *World) Particles() []*components.ParticleComponent {
	return w.particles
}

package systems

import (
	"log"

	"github.com/decker502/fireworks/pkg/components"
	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/utils"
)

// LaunchSystem 自动发射调度与连发模式状态机
//
// 状态机由 Update 驱动，不依赖任何外部定时器：
//   - 非连发：每 LaunchCheckInterval 帧以 LaunchChance 概率触发一次判定，
//     冷却已过且命中 BurstChance 时进入连发，否则发射 1 枚火箭
//   - 连发：模拟时钟每到 NextFireAt 发射一批，满 MaxCount 批后退出并记录结束时间
type LaunchSystem struct {
	cfg   *config.FireworksConfig
	rng   *utils.Random
	burst *components.BurstModeComponent
}

// NewLaunchSystem 创建发射调度系统
func NewLaunchSystem(cfg *config.FireworksConfig, rng *utils.Random, burst *components.BurstModeComponent) *LaunchSystem {
	return &LaunchSystem{cfg: cfg, rng: rng, burst: burst}
}

// Burst 返回连发状态
func (s *LaunchSystem) Burst() *components.BurstModeComponent {
	return s.burst
}

// Update 推进调度一帧
//
// 参数:
//   - tick: 当前帧序号（从 1 开始）
//   - clock: 模拟时钟（秒）
//
// 返回:
//   - int: 本帧需要发射的火箭数
func (s *LaunchSystem) Update(tick int, clock float64) int {
	b := s.burst
	if b.Active {
		return s.fireBatches(clock)
	}

	sc := s.cfg.Scheduler
	if sc.LaunchCheckInterval <= 0 || tick%sc.LaunchCheckInterval != 0 {
		return 0
	}
	if !s.rng.Chance(sc.LaunchChance) {
		return 0
	}

	if clock-b.LastBurstEnd > s.cfg.Burst.Cooldown && s.rng.Chance(sc.BurstChance) {
		s.activate(clock)
		return 0
	}
	return 1
}

func (s *LaunchSystem) activate(clock float64) {
	bc := s.cfg.Burst
	b := s.burst
	b.Active = true
	b.Count = 0
	b.MaxCount = s.rng.IntRange(bc.Count.Min, bc.Count.Max)
	b.NextFireAt = clock + s.rng.Range(bc.Interval.Min, bc.Interval.Max)
	log.Printf("[LaunchSystem] 进入连发模式: %d 批, t=%.2fs", b.MaxCount, clock)
}

// fireBatches 发射所有已到期的批次
// 一帧时长可能覆盖多个批次间隔，此时同一帧内连续发射
func (s *LaunchSystem) fireBatches(clock float64) int {
	bc := s.cfg.Burst
	b := s.burst

	launched := 0
	for b.Active && clock >= b.NextFireAt {
		launched += s.rng.IntRange(bc.Rockets.Min, bc.Rockets.Max)
		b.Count++

		if b.Count >= b.MaxCount {
			b.Active = false
			b.LastBurstEnd = clock
			log.Printf("[LaunchSystem] 连发结束: %d 批, t=%.2fs", b.Count, clock)
			break
		}
		b.NextFireAt += s.rng.Range(bc.Interval.Min, bc.Interval.Max)
	}
	return launched
}

// ForceBurst 立即进入连发模式，忽略冷却与概率
// 供调试快捷键与测试使用，已在连发中时不做任何事
func (s *LaunchSystem) ForceBurst(clock float64, maxCount int) {
	if s.burst.Active {
		return
	}
	s.activate(clock)
	if maxCount > 0 {
		s.burst.MaxCount = maxCount
	}
}

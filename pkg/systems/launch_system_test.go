package systems

import (
	"testing"

	"github.com/decker502/fireworks/pkg/components"
	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/utils"
)

const tickDt = 1.0 / 60

func newTestLaunchSystem(cfg *config.FireworksConfig, seed uint64) *LaunchSystem {
	return NewLaunchSystem(cfg, utils.NewRandom(seed), &components.BurstModeComponent{})
}

// TestBurstFiresExactlyMaxCount MaxCount=8 时恰好发射 8 批，之后退出连发，不会出现第 9 批
func TestBurstFiresExactlyMaxCount(t *testing.T) {
	cfg := config.DefaultFireworksConfig()
	cfg.Scheduler.LaunchChance = 0
	s := newTestLaunchSystem(cfg, 3)

	s.ForceBurst(0, 8)
	b := s.Burst()
	if !b.Active || b.MaxCount != 8 || b.Count != 0 {
		t.Fatalf("ForceBurst 后状态 %+v", *b)
	}

	launched := 0
	batches := 0
	clock := 0.0
	for tick := 1; tick <= 300; tick++ {
		clock += tickDt
		before := b.Count
		launched += s.Update(tick, clock)
		batches += b.Count - before
		if !b.Active && b.Count > 8 {
			t.Fatalf("出现第 %d 批", b.Count)
		}
	}

	if b.Active {
		t.Fatal("8 批后应退出连发")
	}
	if b.Count != 8 || batches != 8 {
		t.Errorf("批次数 Count=%d batches=%d, 期望 8", b.Count, batches)
	}
	if launched < 8 || launched > 16 {
		t.Errorf("共发射 %d 枚, 期望 [8, 16]", launched)
	}
	if b.LastBurstEnd <= 0 || b.LastBurstEnd > 1 {
		t.Errorf("LastBurstEnd = %v", b.LastBurstEnd)
	}
}

// TestBurstCatchesUpWithinOneTick 一帧跨越多个批次间隔时在同一帧内补发
func TestBurstCatchesUpWithinOneTick(t *testing.T) {
	cfg := config.DefaultFireworksConfig()
	cfg.Burst.Rockets = config.IntRange{Min: 1, Max: 1}
	s := newTestLaunchSystem(cfg, 5)
	s.ForceBurst(0, 6)

	// 6 批最长 0.36 秒
	if got := s.Update(1, 1.0); got != 6 {
		t.Errorf("Update() = %d, 期望 6", got)
	}
	if s.Burst().Active {
		t.Error("连发应已结束")
	}
}

// TestBurstCooldown 冷却期内不进入连发，只发射单枚火箭
func TestBurstCooldown(t *testing.T) {
	cfg := config.DefaultFireworksConfig()
	cfg.Scheduler.LaunchChance = 1
	cfg.Scheduler.BurstChance = 1
	s := newTestLaunchSystem(cfg, 1)
	s.Burst().LastBurstEnd = 100

	interval := cfg.Scheduler.LaunchCheckInterval
	tests := []struct {
		name       string
		clock      float64
		wantN      int
		wantActive bool
	}{
		{"冷却中", 100 + cfg.Burst.Cooldown - 1, 1, false},
		{"恰好等于冷却时长", 100 + cfg.Burst.Cooldown, 1, false},
		{"冷却结束", 100 + cfg.Burst.Cooldown + 1, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Update(interval, tt.clock); got != tt.wantN {
				t.Errorf("Update() = %d, 期望 %d", got, tt.wantN)
			}
			if s.Burst().Active != tt.wantActive {
				t.Errorf("Active = %v, 期望 %v", s.Burst().Active, tt.wantActive)
			}
		})
	}

	b := s.Burst()
	if b.MaxCount < cfg.Burst.Count.Min || b.MaxCount > cfg.Burst.Count.Max {
		t.Errorf("MaxCount = %d 越界", b.MaxCount)
	}
}

// TestLaunchCheckInterval 只在检查间隔的整数倍帧判定
func TestLaunchCheckInterval(t *testing.T) {
	cfg := config.DefaultFireworksConfig()
	cfg.Scheduler.LaunchChance = 1
	cfg.Scheduler.BurstChance = 0
	s := newTestLaunchSystem(cfg, 1)

	total := 0
	for tick := 1; tick <= 120; tick++ {
		n := s.Update(tick, float64(tick)*tickDt)
		if tick%cfg.Scheduler.LaunchCheckInterval != 0 && n != 0 {
			t.Fatalf("第 %d 帧不应发射", tick)
		}
		total += n
	}
	if total != 120/cfg.Scheduler.LaunchCheckInterval {
		t.Errorf("发射 %d 枚, 期望 %d", total, 120/cfg.Scheduler.LaunchCheckInterval)
	}
}

// TestForceBurstWhileActive 连发中再次触发不重置计数
func TestForceBurstWhileActive(t *testing.T) {
	s := newTestLaunchSystem(config.DefaultFireworksConfig(), 1)
	s.ForceBurst(0, 8)
	s.Burst().Count = 3
	s.ForceBurst(0, 6)
	if b := s.Burst(); b.Count != 3 || b.MaxCount != 8 {
		t.Errorf("状态被重置: %+v", *b)
	}
}

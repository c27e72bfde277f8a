package entities

import (
	"errors"
	"math"
	"testing"

	"github.com/decker502/fireworks/pkg/components"
	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/utils"
)

func TestNewRocket(t *testing.T) {
	cfg := config.DefaultFireworksConfig()
	f := NewRocketFactory(cfg, utils.NewRandom(77))

	seen := make(map[components.ExplosionPattern]bool)
	for i := 0; i < 500; i++ {
		r, err := f.NewRocket(100, 600, 600)
		if err != nil {
			t.Fatalf("NewRocket() error = %v", err)
		}

		if r.X != 100 || r.Y != 600 {
			t.Fatalf("发射位置 = (%v, %v)", r.X, r.Y)
		}
		if r.Scale < cfg.Rocket.Scale.Min || r.Scale > cfg.Rocket.Scale.Max {
			t.Fatalf("scale %v 越界", r.Scale)
		}
		if !r.Pattern.Valid() {
			t.Fatalf("图案 %d 非法", r.Pattern)
		}
		seen[r.Pattern] = true
		if r.TargetY < 90 || r.TargetY > 270 {
			t.Fatalf("目标高度 %v 不在 [90, 270]", r.TargetY)
		}
		if r.VY >= 0 {
			t.Fatalf("火箭应向上飞, VY = %v", r.VY)
		}
		if math.Abs(r.VX) > 0.1 {
			t.Fatalf("水平抖动 %v 过大", r.VX)
		}
		if r.CurrentFlicker != 1 {
			t.Fatalf("初始闪烁应为 1, 实际 %v", r.CurrentFlicker)
		}
		wantFlight := (600 - r.TargetY) / math.Abs(r.VY)
		if math.Abs(r.FlightTicks-wantFlight) > 1e-9 {
			t.Fatalf("FlightTicks = %v, 期望 %v", r.FlightTicks, wantFlight)
		}
		if r.Trail.Cap() != cfg.Rocket.TrailLength {
			t.Fatalf("尾迹容量 = %d", r.Trail.Cap())
		}
	}

	if len(seen) != int(components.PatternCount) {
		t.Errorf("500 枚火箭只覆盖了 %d 种图案", len(seen))
	}
}

func TestNewRocketRejectsInvalidSurface(t *testing.T) {
	f := NewRocketFactory(config.DefaultFireworksConfig(), utils.NewRandom(1))

	tests := []struct {
		name    string
		x, y, h float64
	}{
		{"零高度", 10, 0, 0},
		{"负高度", 10, 0, -5},
		{"NaN 坐标", math.NaN(), 100, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.NewRocket(tt.x, tt.y, tt.h); !errors.Is(err, ErrInvalidSurface) {
				t.Errorf("error = %v, 期望 ErrInvalidSurface", err)
			}
		})
	}
}

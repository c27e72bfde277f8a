//go:build ignore

// validate_yaml 校验烟花参数文件
//
//	go run tools/validate_yaml.go [path]
package main

import (
	"fmt"
	"os"

	"github.com/decker502/fireworks/pkg/config"
)

func main() {
	path := "data/fireworks.yaml"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	cfg, err := config.LoadFireworksConfig(path)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ %s 校验通过\n", path)
	fmt.Printf("✅ 粒子: base=%d burst=%d, 上限 %d/%d\n",
		cfg.Particles.BaseCount, cfg.Particles.BurstModeCount,
		cfg.Particles.MaxParticles, cfg.Particles.BurstMaxParticles)
	fmt.Printf("✅ 连发: %d~%d 批, 冷却 %.0fs\n",
		cfg.Burst.Count.Min, cfg.Burst.Count.Max, cfg.Burst.Cooldown)
}

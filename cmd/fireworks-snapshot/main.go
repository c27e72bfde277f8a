// Package main 无头运行烟花模拟并导出 PNG
//
// 相同的种子、配置和帧数总是得到相同的图片，可用于回归比对。
//
// Usage:
//
//	go run ./cmd/fireworks-snapshot [flags]
//
// Flags:
//
//	--config <path>     烟花参数 YAML
//	--seed <n>          随机种子（默认 1）
//	--ticks <n>         模拟帧数（默认 600）
//	--width, --height   画面尺寸（默认 800x600）
//	--scale <f>         输出像素缩放（默认 1）
//	--burst             开始时立即进入连发
//	--launch <x,...>    开始时在这些 x 坐标点击发射
//	--out <path>        输出文件（默认 fireworks.png）
//	--verbose           输出日志
package main

import (
	"flag"
	"fmt"
	"image/png"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/game"
	"github.com/decker502/fireworks/pkg/render"
	"github.com/decker502/fireworks/pkg/utils"
)

var (
	configFlag  = flag.String("config", "", "Fireworks config YAML (default: built-in values)")
	seedFlag    = flag.Uint64("seed", 1, "Random seed")
	ticksFlag   = flag.Int("ticks", 600, "Number of simulation ticks")
	widthFlag   = flag.Int("width", 800, "Surface width")
	heightFlag  = flag.Int("height", 600, "Surface height")
	scaleFlag   = flag.Float64("scale", 1, "Output pixel scale")
	burstFlag   = flag.Bool("burst", false, "Start in burst mode")
	launchFlag  = flag.String("launch", "", "Comma separated x positions to launch at tick 0")
	outFlag     = flag.String("out", "fireworks.png", "Output PNG path")
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging (default off)")
)

func main() {
	flag.Parse()

	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	if *ticksFlag < 0 {
		return fmt.Errorf("--ticks 不能为负: %d", *ticksFlag)
	}

	launches, err := parseLaunches(*launchFlag)
	if err != nil {
		return err
	}

	cfg, err := config.LoadFireworksConfigOrDefault(*configFlag)
	if err != nil {
		return err
	}

	world, err := game.NewWorld(cfg, utils.NewRandom(*seedFlag), float64(*widthFlag), float64(*heightFlag))
	if err != nil {
		return err
	}

	if *burstFlag {
		world.ForceBurst(0)
	}
	for _, x := range launches {
		if err := world.LaunchAt(x); err != nil {
			return err
		}
	}

	// 每帧都绘制，拖影依赖前几帧的画面
	canvas := render.NewRasterCanvas(*widthFlag, *heightFlag, *scaleFlag)
	dt := 1.0 / 60
	for i := 0; i < *ticksFlag; i++ {
		world.Update(dt)
		world.Draw(canvas)
	}

	st := world.Stats()
	log.Printf("[Snapshot] tick=%d rockets=%d particles=%d culled=%d", st.Tick, st.Rockets, st.Particles, st.Culled)

	f, err := os.Create(*outFlag)
	if err != nil {
		return fmt.Errorf("创建输出文件失败: %w", err)
	}
	if err := png.Encode(f, canvas.Image()); err != nil {
		f.Close()
		return fmt.Errorf("写入 PNG 失败: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Printf("%s: %d ticks, %d rockets, %d particles\n", *outFlag, st.Tick, st.Rockets, st.Particles)
	return nil
}

// parseLaunches 解析逗号分隔的 x 坐标列表
func parseLaunches(s string) ([]float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	var xs []float64
	for _, part := range strings.Split(s, ",") {
		x, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("--launch 坐标 %q 非法: %w", part, err)
		}
		xs = append(xs, x)
	}
	return xs, nil
}

// Package main 是烟花模拟的桌面入口
//
// Usage:
//
//	go run . [flags]
//
// Flags:
//
//	--config <path>       烟花参数 YAML（默认使用内置参数）
//	--seed <n>            随机种子，0 表示按时间取种
//	--width, --height     初始窗口尺寸
//	--telemetry <path>    把每 60 帧的负载汇总写入 CSV
//	--mute                关闭音效
//	--debug               显示调试叠加层
//	--verbose             输出日志
//
// Controls:
//
//	Mouse Click / Touch   - 在点击位置发射火箭
//	B                     - 立即开始一轮连发
//	M                     - 静音开关
//	P                     - 暂停
//	D                     - 调试叠加层开关
//	F11                   - 全屏开关
package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/fireworks/pkg/app"
)

var (
	configFlag    = flag.String("config", "", "Fireworks config YAML (default: built-in values)")
	seedFlag      = flag.Uint64("seed", 0, "Random seed, 0 = time based")
	widthFlag     = flag.Int("width", 1280, "Initial window width")
	heightFlag    = flag.Int("height", 720, "Initial window height")
	telemetryFlag = flag.String("telemetry", "", "Write per-window load statistics to this CSV file")
	muteFlag      = flag.Bool("mute", false, "Disable sound")
	debugFlag     = flag.Bool("debug", false, "Show debug overlay")
	verboseFlag   = flag.Bool("verbose", false, "Enable verbose logging (default off)")
)

func main() {
	flag.Parse()

	fireworksApp, err := app.NewApp(app.Config{
		Verbose:    *verboseFlag,
		Debug:      *debugFlag,
		Mute:       *muteFlag,
		Seed:       *seedFlag,
		ConfigPath: *configFlag,
		Telemetry:  *telemetryFlag,
		Width:      *widthFlag,
		Height:     *heightFlag,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}
	defer fireworksApp.Close()

	ebiten.SetWindowSize(*widthFlag, *heightFlag)
	ebiten.SetWindowTitle("Fireworks")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(fireworksApp); err != nil {
		fireworksApp.Close()
		log.Fatal(err)
	}
}

// Package main 在终端里运行烟花模拟
//
// 每个字符格用上半块字符显示两个竖直相邻的像素，需要支持真彩色的终端。
//
// Usage:
//
//	go run ./cmd/fireworks-tui [flags]
//
// Flags:
//
//	--config <path>       烟花参数 YAML
//	--seed <n>            随机种子，0 表示按时间取种
//	--cell <n>            每个终端像素对应的逻辑像素数（默认 4）
//	--telemetry <path>    遥测 CSV
//	--verbose             把日志写到 fireworks-tui.log
//
// Controls:
//
//	Mouse Click       - 在点击位置发射火箭
//	b                 - 立即开始一轮连发
//	q / Esc / Ctrl-C  - 退出
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/entities"
	"github.com/decker502/fireworks/pkg/game"
	"github.com/decker502/fireworks/pkg/render"
	"github.com/decker502/fireworks/pkg/telemetry"
	"github.com/decker502/fireworks/pkg/utils"
)

// FrameDuration 模拟步长
const FrameDuration = time.Second / 60

// telemetryWindow 遥测窗口长度（帧）
const telemetryWindow = 60

var (
	configFlag    = flag.String("config", "", "Fireworks config YAML (default: built-in values)")
	seedFlag      = flag.Uint64("seed", 0, "Random seed, 0 = time based")
	cellFlag      = flag.Int("cell", 4, "Logical pixels per terminal pixel")
	telemetryFlag = flag.String("telemetry", "", "Write per-window load statistics to this CSV file")
	verboseFlag   = flag.Bool("verbose", false, "Write logs to fireworks-tui.log")
)

// terminalHost 终端宿主：tcell 屏幕 + World + 软件画布
type terminalHost struct {
	screen    tcell.Screen
	world     *game.World
	canvas    *render.RasterCanvas
	presenter *render.TerminalPresenter
	collector *telemetry.Collector
	output    *telemetry.OutputManager

	unit        int
	lastButtons tcell.ButtonMask
}

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// 终端被 tcell 占用，日志只能写文件
	if *verboseFlag {
		f, err := os.Create("fireworks-tui.log")
		if err != nil {
			return fmt.Errorf("创建日志文件失败: %w", err)
		}
		defer f.Close()
		log.SetOutput(f)
	} else {
		log.SetOutput(io.Discard)
	}

	if *cellFlag < 1 {
		return fmt.Errorf("--cell 必须 >= 1, 实际 %d", *cellFlag)
	}

	cfg, err := config.LoadFireworksConfigOrDefault(*configFlag)
	if err != nil {
		return err
	}

	seed := *seedFlag
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	output, err := telemetry.NewOutputManager(*telemetryFlag)
	if err != nil {
		return err
	}
	defer output.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("创建终端屏幕失败: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("初始化终端失败: %w", err)
	}
	defer screen.Fini()

	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	screen.EnableMouse()
	screen.HideCursor()
	screen.Clear()

	h := &terminalHost{
		screen:    screen,
		presenter: render.NewTerminalPresenter(screen),
		collector: telemetry.NewCollector(telemetryWindow),
		output:    output,
		unit:      *cellFlag,
	}

	w, hh := h.logicalSize()
	h.world, err = game.NewWorld(cfg, utils.NewRandom(seed), w, hh)
	if err != nil {
		return fmt.Errorf("创建世界失败: %w", err)
	}
	h.world.SetExplosionListener(func(entities.Explosion) {
		h.collector.RecordExplosion()
	})
	h.canvas = render.NewRasterCanvas(int(w), int(hh), 1/float64(h.unit))
	log.Printf("[TUI] 种子 %d, 逻辑尺寸 %.0fx%.0f", seed, w, hh)

	h.loop()
	return nil
}

// logicalSize 当前终端对应的逻辑尺寸
func (h *terminalHost) logicalSize() (float64, float64) {
	cols, rows := h.screen.Size()
	return float64(max(cols, 1) * h.unit), float64(max(rows, 1) * 2 * h.unit)
}

func (h *terminalHost) loop() {
	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				// Fini 之后 PollEvent 返回 nil
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(FrameDuration)
	defer ticker.Stop()

	dt := FrameDuration.Seconds()
	for {
		select {
		case ev := <-events:
			if quit := h.handleEvent(ev); quit {
				return
			}
		case <-ticker.C:
			start := time.Now()
			h.world.Update(dt)
			h.record(time.Since(start))

			h.world.Draw(h.canvas)
			h.presenter.Present(h.canvas)
			h.screen.Show()
		}
	}
}

// handleEvent 处理一个终端事件，返回是否退出
func (h *terminalHost) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC:
			return true
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			return true
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'b':
			h.world.ForceBurst(0)
		}

	case *tcell.EventMouse:
		buttons := ev.Buttons()
		pressed := buttons&tcell.Button1 != 0 && h.lastButtons&tcell.Button1 == 0
		h.lastButtons = buttons
		if pressed {
			x, _ := ev.Position()
			lx := (float64(x) + 0.5) * float64(h.unit)
			if err := h.world.LaunchAt(lx); err != nil {
				log.Printf("[TUI] 点击发射失败: %v", err)
			}
		}

	case *tcell.EventResize:
		h.screen.Sync()
		w, hh := h.logicalSize()
		if err := h.world.Resize(w, hh); err != nil {
			log.Printf("[TUI] Warning: %v", err)
			return false
		}
		h.canvas.Resize(int(w), int(hh), 1/float64(h.unit))
		h.screen.Clear()
	}
	return false
}

func (h *terminalHost) record(elapsed time.Duration) {
	st := h.world.Stats()
	ws, ok := h.collector.Record(telemetry.Sample{
		Tick:        st.Tick,
		Clock:       st.Clock,
		Particles:   st.Particles,
		Rockets:     st.Rockets,
		BurstActive: st.BurstActive,
		Culled:      st.Culled,
		UpdateTime:  elapsed,
	})
	if !ok {
		return
	}
	telemetry.LogStats(ws)
	if err := h.output.WriteTelemetry(ws); err != nil {
		log.Printf("[Telemetry] Warning: %v", err)
	}
}

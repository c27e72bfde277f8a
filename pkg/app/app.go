// Package app 提供烟花应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来：加载配置、创建 World、
// 音频与遥测，并把它们装配进 FireworksScene。
package app

import (
	"fmt"
	"io"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/game"
	"github.com/decker502/fireworks/pkg/scenes"
	"github.com/decker502/fireworks/pkg/sound"
	"github.com/decker502/fireworks/pkg/telemetry"
	"github.com/decker502/fireworks/pkg/utils"
)

// TelemetryWindow 遥测窗口长度（帧）
const TelemetryWindow = 60

// defaultVolume 爆炸音默认音量
const defaultVolume = 0.6

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Debug 显示调试叠加层
	Debug bool
	// Mute 不创建音频上下文
	Mute bool
	// Seed 随机种子，0 表示使用当前时间
	Seed uint64
	// ConfigPath 烟花参数 YAML，为空使用内置默认值
	ConfigPath string
	// Telemetry 遥测 CSV 路径，为空不写文件
	Telemetry string
	// Width, Height 初始窗口尺寸
	Width, Height int
}

// App 是烟花应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *scenes.SceneManager
	width, height            int
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化烟花应用
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("窗口尺寸非法: %dx%d", cfg.Width, cfg.Height)
	}

	fwConfig, err := loadConfig(cfg.ConfigPath)
	if err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	log.Printf("[App] 随机种子: %d", seed)

	world, err := game.NewWorld(fwConfig, utils.NewRandom(seed), float64(cfg.Width), float64(cfg.Height))
	if err != nil {
		return nil, fmt.Errorf("创建世界失败: %w", err)
	}

	// 初始化音频上下文
	var audioManager *sound.AudioManager
	if !cfg.Mute {
		audioManager = sound.NewAudioManager(audio.NewContext(sound.SampleRate), defaultVolume)
		log.Printf("[App] AudioManager initialized")
	}

	output, err := telemetry.NewOutputManager(cfg.Telemetry)
	if err != nil {
		return nil, fmt.Errorf("遥测输出初始化失败: %w", err)
	}
	if output != nil {
		log.Printf("[App] 遥测写入 %s", output.Path())
	}

	scene, err := scenes.NewFireworksScene(scenes.FireworksSceneOptions{
		World:     world,
		Audio:     audioManager,
		Collector: telemetry.NewCollector(TelemetryWindow),
		Output:    output,
		Debug:     cfg.Debug,
	})
	if err != nil {
		output.Close()
		return nil, err
	}

	// 创建场景管理器
	sceneManager := scenes.NewSceneManager()
	sceneManager.SwitchTo(scene)

	return &App{
		sceneManager: sceneManager,
		width:        cfg.Width,
		height:       cfg.Height,
	}, nil
}

// loadConfig 加载烟花参数，path 为空时返回内置默认值
func loadConfig(path string) (*config.FireworksConfig, error) {
	cfg, err := config.LoadFireworksConfigOrDefault(path)
	if err != nil {
		return nil, fmt.Errorf("配置加载失败: %w", err)
	}
	if path == "" {
		log.Printf("[Config] 使用内置默认配置")
	} else {
		log.Printf("[Config] 加载配置: %s", path)
	}
	return cfg, nil
}

// Update 更新模拟
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.width, a.height)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", a.width, a.height)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		isFullscreen := ebiten.IsFullscreen()
		if isFullscreen {
			// 退出全屏
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// Layout 返回逻辑屏幕尺寸
// 逻辑尺寸跟随窗口：画面不缩放，窗口变化时 World 与画布同步调整
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	// 最小化时窗口尺寸可能为 0
	if outsideWidth <= 0 || outsideHeight <= 0 {
		return a.width, a.height
	}
	a.sceneManager.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// GetSceneManager 返回场景管理器
// 用于在程序关闭时释放场景资源
func (a *App) GetSceneManager() *scenes.SceneManager {
	return a.sceneManager
}

// Close 释放资源（遥测文件等）
func (a *App) Close() {
	a.sceneManager.Close()
}

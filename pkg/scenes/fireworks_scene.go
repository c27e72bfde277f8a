package scenes

import (
	"fmt"
	"image/color"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/fireworks/pkg/entities"
	"github.com/decker502/fireworks/pkg/game"
	"github.com/decker502/fireworks/pkg/input"
	"github.com/decker502/fireworks/pkg/render/ebitencanvas"
	"github.com/decker502/fireworks/pkg/sound"
	"github.com/decker502/fireworks/pkg/telemetry"
)

// SceneInput 场景输入接口
// 用于依赖注入，支持测试时 mock
type SceneInput interface {
	// JustPressedPointers 本帧新按下的指针（鼠标点击或触摸）
	JustPressedPointers() []input.Pointer
	// IsKeyJustPressed 按键是否在本帧按下
	IsKeyJustPressed(key ebiten.Key) bool
}

// ebitenSceneInput Ebitengine 默认实现
type ebitenSceneInput struct {
	buf []input.Pointer
}

func (e *ebitenSceneInput) JustPressedPointers() []input.Pointer {
	e.buf = input.AppendJustPressedPointers(e.buf[:0])
	return e.buf
}

func (e *ebitenSceneInput) IsKeyJustPressed(key ebiten.Key) bool {
	return inpututil.IsKeyJustPressed(key)
}

// 快捷键
const (
	keyForceBurst  = ebiten.KeyB
	keyToggleMute  = ebiten.KeyM
	keyToggleDebug = ebiten.KeyD
	keyPause       = ebiten.KeyP
)

// FireworksSceneOptions 场景依赖
type FireworksSceneOptions struct {
	World *game.World
	// Audio 可为 nil（静音运行）
	Audio *sound.AudioManager
	// Collector 可为 nil（不采集遥测）
	Collector *telemetry.Collector
	// Output 可为 nil（不写 CSV）
	Output *telemetry.OutputManager
	Debug  bool
	// Input 为 nil 时使用 ebiten 输入
	Input SceneInput
}

// FireworksScene 烟花场景
//
// 职责：
//   - 每帧推进 World，点击或触摸处发射火箭
//   - 把 World 绘制到离屏画布，再贴到屏幕；画布跨帧保留，半透明背景形成拖影
//   - 爆炸时播放音效、记录遥测
//   - 调试模式下显示状态叠加层
type FireworksScene struct {
	world     *game.World
	audio     *sound.AudioManager
	collector *telemetry.Collector
	output    *telemetry.OutputManager
	input     SceneInput

	canvas *ebitencanvas.Canvas

	debug  bool
	paused bool

	lastWindow    telemetry.WindowStats
	hasLastWindow bool
}

// NewFireworksScene 创建烟花场景
func NewFireworksScene(opts FireworksSceneOptions) (*FireworksScene, error) {
	if opts.World == nil {
		return nil, fmt.Errorf("fireworks scene: nil world")
	}

	s := &FireworksScene{
		world:     opts.World,
		audio:     opts.Audio,
		collector: opts.Collector,
		output:    opts.Output,
		input:     opts.Input,
		debug:     opts.Debug,
	}
	if s.input == nil {
		s.input = &ebitenSceneInput{}
	}

	s.world.SetExplosionListener(s.onExplosion)
	return s, nil
}

func (s *FireworksScene) onExplosion(e entities.Explosion) {
	if s.collector != nil {
		s.collector.RecordExplosion()
	}
	if s.audio != nil {
		s.audio.OnExplosion(e)
	}
}

// Update 处理输入并推进一帧
func (s *FireworksScene) Update(deltaTime float64) {
	s.handleInput()

	if s.paused {
		return
	}

	start := time.Now()
	s.world.Update(deltaTime)
	elapsed := time.Since(start)

	s.recordTelemetry(elapsed)
}

func (s *FireworksScene) handleInput() {
	for _, p := range s.input.JustPressedPointers() {
		if err := s.world.LaunchAt(float64(p.X)); err != nil {
			log.Printf("[FireworksScene] 点击发射失败: %v", err)
		}
	}

	if s.input.IsKeyJustPressed(keyForceBurst) {
		s.world.ForceBurst(0)
		log.Printf("[FireworksScene] 手动触发连发")
	}
	if s.input.IsKeyJustPressed(keyToggleMute) && s.audio != nil {
		s.audio.SetMuted(!s.audio.IsMuted())
		log.Printf("[FireworksScene] 静音: %v", s.audio.IsMuted())
	}
	if s.input.IsKeyJustPressed(keyToggleDebug) {
		s.debug = !s.debug
	}
	if s.input.IsKeyJustPressed(keyPause) {
		s.paused = !s.paused
		log.Printf("[FireworksScene] 暂停: %v", s.paused)
	}
}

func (s *FireworksScene) recordTelemetry(elapsed time.Duration) {
	if s.collector == nil {
		return
	}

	st := s.world.Stats()
	ws, ok := s.collector.Record(telemetry.Sample{
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

	s.lastWindow = ws
	s.hasLastWindow = true
	telemetry.LogStats(ws)
	if err := s.output.WriteTelemetry(ws); err != nil {
		log.Printf("[Telemetry] Warning: %v", err)
	}
}

// Resize 画面尺寸变化时同步 World，画布在下一次 Draw 时重建
func (s *FireworksScene) Resize(width, height int) {
	if err := s.world.Resize(float64(width), float64(height)); err != nil {
		log.Printf("[FireworksScene] Warning: %v", err)
	}
}

// Draw 绘制 World 与调试叠加层
func (s *FireworksScene) Draw(screen *ebiten.Image) {
	w, h := s.world.Size()
	cw, ch := int(w), int(h)
	if s.canvas == nil {
		s.canvas = ebitencanvas.New(cw, ch)
		s.canvas.FillSurface(color.NRGBA{A: 255})
	} else if pw, ph := s.canvas.Size(); pw != cw || ph != ch {
		s.canvas.Resize(cw, ch)
		s.canvas.FillSurface(color.NRGBA{A: 255})
	}

	s.world.Draw(s.canvas)
	screen.DrawImage(s.canvas.Image(), nil)

	if s.debug {
		ebitenutil.DebugPrintAt(screen, s.debugText(), 8, 8)
	}
}

func (s *FireworksScene) debugText() string {
	st := s.world.Stats()
	text := fmt.Sprintf("TPS: %.0f  FPS: %.0f\nTick: %d  Time: %.1fs\nRockets: %d  Particles: %d  Culled: %d",
		ebiten.ActualTPS(), ebiten.ActualFPS(),
		st.Tick, st.Clock,
		st.Rockets, st.Particles, st.Culled)
	if st.BurstActive {
		text += fmt.Sprintf("\nBURST %d", st.BurstCount)
	}
	if s.paused {
		text += "\nPAUSED"
	}
	if s.hasLastWindow {
		text += fmt.Sprintf("\nWindow p95: %.0f  max: %.0f  update: %.2fms",
			s.lastWindow.ParticlesP95, s.lastWindow.ParticlesMax, s.lastWindow.UpdateMeanMs)
	}
	text += "\n[Click] launch  [B] burst  [M] mute  [P] pause  [D] debug"
	return text
}

// World 场景驱动的模拟世界
func (s *FireworksScene) World() *game.World {
	return s.world
}

// Close 关闭遥测输出
func (s *FireworksScene) Close() error {
	return s.output.Close()
}

package scenes

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gocarina/gocsv"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/game"
	"github.com/decker502/fireworks/pkg/input"
	"github.com/decker502/fireworks/pkg/sound"
	"github.com/decker502/fireworks/pkg/telemetry"
	"github.com/decker502/fireworks/pkg/utils"
)

const dt = 1.0 / 60

// fakeInput 每次 Update 后清空，模拟"刚按下"语义
type fakeInput struct {
	pointers []input.Pointer
	keys     map[ebiten.Key]bool
}

func (f *fakeInput) JustPressedPointers() []input.Pointer {
	p := f.pointers
	f.pointers = nil
	return p
}

func (f *fakeInput) IsKeyJustPressed(key ebiten.Key) bool {
	if f.keys[key] {
		delete(f.keys, key)
		return true
	}
	return false
}

func (f *fakeInput) press(key ebiten.Key) {
	if f.keys == nil {
		f.keys = make(map[ebiten.Key]bool)
	}
	f.keys[key] = true
}

func newQuietWorld(t *testing.T) *game.World {
	t.Helper()
	cfg := config.DefaultFireworksConfig()
	cfg.Scheduler.LaunchChance = 0
	cfg.Scheduler.BurstChance = 0
	w, err := game.NewWorld(cfg, utils.NewRandom(3), 800, 600)
	if err != nil {
		t.Fatalf("NewWorld() error = %v", err)
	}
	return w
}

func TestNewFireworksSceneNilWorld(t *testing.T) {
	if _, err := NewFireworksScene(FireworksSceneOptions{}); err == nil {
		t.Error("nil World 应返回错误")
	}
}

// TestFireworksSceneClickLaunch 点击位置发射火箭
func TestFireworksSceneClickLaunch(t *testing.T) {
	in := &fakeInput{}
	s, err := NewFireworksScene(FireworksSceneOptions{World: newQuietWorld(t), Input: in})
	if err != nil {
		t.Fatal(err)
	}

	in.pointers = []input.Pointer{{X: 120, Y: 300}, {X: 640, Y: 10}}
	s.Update(dt)

	rockets := s.World().Rockets()
	if len(rockets) != 2 {
		t.Fatalf("火箭数 = %d, 期望 2", len(rockets))
	}
	// 火箭水平漂移不超过 0.1 像素/帧
	if math.Abs(rockets[0].X-120) > 0.2 || math.Abs(rockets[1].X-640) > 0.2 {
		t.Errorf("火箭位置 %v, %v", rockets[0].X, rockets[1].X)
	}

	s.Update(dt)
	if len(s.World().Rockets()) != 2 {
		t.Error("指针事件不应重复触发")
	}
}

func TestFireworksSceneKeys(t *testing.T) {
	in := &fakeInput{}
	am := sound.NewAudioManager(nil, 1)
	s, err := NewFireworksScene(FireworksSceneOptions{World: newQuietWorld(t), Input: in, Audio: am})
	if err != nil {
		t.Fatal(err)
	}

	in.press(keyForceBurst)
	s.Update(dt)
	if !s.World().Stats().BurstActive {
		t.Error("B 键应触发连发")
	}

	in.press(keyToggleMute)
	s.Update(dt)
	if !am.IsMuted() {
		t.Error("M 键应切换静音")
	}

	in.press(keyToggleDebug)
	s.Update(dt)
	if !s.debug {
		t.Error("D 键应打开调试叠加层")
	}

	in.press(keyPause)
	s.Update(dt)
	tick := s.World().Stats().Tick
	s.Update(dt)
	s.Update(dt)
	if got := s.World().Stats().Tick; got != tick {
		t.Errorf("暂停期间 tick 从 %d 变为 %d", tick, got)
	}

	in.press(keyPause)
	s.Update(dt)
	if got := s.World().Stats().Tick; got != tick+1 {
		t.Errorf("恢复后 tick = %d, 期望 %d", got, tick+1)
	}
}

// TestFireworksSceneMuteWithoutAudio 没有音频时 M 键被忽略
func TestFireworksSceneMuteWithoutAudio(t *testing.T) {
	in := &fakeInput{}
	s, err := NewFireworksScene(FireworksSceneOptions{World: newQuietWorld(t), Input: in})
	if err != nil {
		t.Fatal(err)
	}
	in.press(keyToggleMute)
	s.Update(dt)
}

func TestFireworksSceneResize(t *testing.T) {
	s, err := NewFireworksScene(FireworksSceneOptions{World: newQuietWorld(t), Input: &fakeInput{}})
	if err != nil {
		t.Fatal(err)
	}

	s.Resize(1024, 768)
	if w, h := s.World().Size(); w != 1024 || h != 768 {
		t.Errorf("World 尺寸 %vx%v", w, h)
	}

	s.Resize(0, 0)
	if w, h := s.World().Size(); w != 1024 || h != 768 {
		t.Errorf("非法尺寸不应生效: %vx%v", w, h)
	}
}

// TestFireworksSceneTelemetry 每个窗口写一行 CSV，并统计爆炸次数
func TestFireworksSceneTelemetry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "telemetry.csv")
	out, err := telemetry.NewOutputManager(path)
	if err != nil {
		t.Fatal(err)
	}

	in := &fakeInput{}
	s, err := NewFireworksScene(FireworksSceneOptions{
		World:     newQuietWorld(t),
		Input:     in,
		Collector: telemetry.NewCollector(600),
		Output:    out,
	})
	if err != nil {
		t.Fatal(err)
	}

	in.pointers = []input.Pointer{{X: 400}}
	for i := 0; i < 1200; i++ {
		s.Update(dt)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if !s.hasLastWindow {
		t.Fatal("应至少产出一个窗口")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("CSV 行数 = %d, 期望 3\n%s", len(lines), data)
	}

	var windows []telemetry.WindowStats
	if err := gocsv.UnmarshalBytes(data, &windows); err != nil {
		t.Fatalf("读回 CSV error = %v", err)
	}
	if windows[0].Explosions != 1 || windows[1].Explosions != 0 {
		t.Errorf("爆炸次数 %d/%d, 期望 1/0", windows[0].Explosions, windows[1].Explosions)
	}
	if windows[1].WindowEndTick != 1200 {
		t.Errorf("第二个窗口结束于 %d", windows[1].WindowEndTick)
	}
}

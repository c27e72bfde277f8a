package scenes

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// MockScene is a mock implementation of the Scene interface for testing.
type MockScene struct {
	updateCalled bool
	drawCalled   bool
	deltaTime    float64
}

// Update records that Update was called and stores the deltaTime.
func (m *MockScene) Update(deltaTime float64) {
	m.updateCalled = true
	m.deltaTime = deltaTime
}

// Draw records that Draw was called.
func (m *MockScene) Draw(screen *ebiten.Image) {
	m.drawCalled = true
}

// resizableScene 记录 Resize 与 Close 调用
type resizableScene struct {
	MockScene
	sizes    [][2]int
	closeErr error
	closed   bool
}

func (r *resizableScene) Resize(width, height int) {
	r.sizes = append(r.sizes, [2]int{width, height})
}

func (r *resizableScene) Close() error {
	r.closed = true
	return r.closeErr
}

// TestNewSceneManager verifies that NewSceneManager creates a valid instance.
func TestNewSceneManager(t *testing.T) {
	sm := NewSceneManager()
	if sm == nil {
		t.Fatal("NewSceneManager() returned nil")
	}
	if sm.GetCurrentScene() != nil {
		t.Error("Expected currentScene to be nil initially")
	}
}

// TestSceneManagerSwitchTo verifies that SwitchTo correctly changes the active scene.
func TestSceneManagerSwitchTo(t *testing.T) {
	sm := NewSceneManager()
	mockScene := &MockScene{}

	sm.SwitchTo(mockScene)

	if sm.GetCurrentScene() != mockScene {
		t.Error("SwitchTo did not set the current scene correctly")
	}
}

// TestSceneManagerUpdate verifies that Update calls the current scene's Update method.
func TestSceneManagerUpdate(t *testing.T) {
	sm := NewSceneManager()
	mockScene := &MockScene{}
	sm.SwitchTo(mockScene)

	deltaTime := 0.016 // ~60 FPS
	sm.Update(deltaTime)

	if !mockScene.updateCalled {
		t.Error("Scene's Update method was not called")
	}
	if mockScene.deltaTime != deltaTime {
		t.Errorf("Expected deltaTime %.3f, got %.3f", deltaTime, mockScene.deltaTime)
	}
}

// TestSceneManagerNoScene verifies that Update, Draw, Resize and Close handle nil scene gracefully.
func TestSceneManagerNoScene(t *testing.T) {
	sm := NewSceneManager()
	sm.Update(0.016)
	sm.Draw(nil)
	sm.Resize(800, 600)
	sm.Close()
}

// TestSceneManagerDraw verifies that Draw calls the current scene's Draw method.
func TestSceneManagerDraw(t *testing.T) {
	sm := NewSceneManager()
	mockScene := &MockScene{}
	sm.SwitchTo(mockScene)

	sm.Draw(nil)

	if !mockScene.drawCalled {
		t.Error("Scene's Draw method was not called")
	}
}

// TestSceneManagerResize 尺寸变化只通知一次，非法尺寸被忽略
func TestSceneManagerResize(t *testing.T) {
	sm := NewSceneManager()
	scene := &resizableScene{}
	sm.SwitchTo(scene)

	sm.Resize(800, 600)
	sm.Resize(800, 600)
	sm.Resize(0, 600)
	sm.Resize(1024, 768)

	want := [][2]int{{800, 600}, {1024, 768}}
	if len(scene.sizes) != len(want) {
		t.Fatalf("Resize 调用 %v, 期望 %v", scene.sizes, want)
	}
	for i := range want {
		if scene.sizes[i] != want[i] {
			t.Errorf("第 %d 次 Resize = %v, 期望 %v", i, scene.sizes[i], want[i])
		}
	}

	// 新场景切入时立即收到当前尺寸
	next := &resizableScene{}
	sm.SwitchTo(next)
	if len(next.sizes) != 1 || next.sizes[0] != [2]int{1024, 768} {
		t.Errorf("新场景收到的尺寸 %v", next.sizes)
	}
}

func TestSceneManagerClose(t *testing.T) {
	sm := NewSceneManager()
	scene := &resizableScene{closeErr: errors.New("disk full")}
	sm.SwitchTo(scene)

	sm.Close()
	if !scene.closed {
		t.Error("Close 未传递给场景")
	}

	// 不实现 Closer 的场景被忽略
	sm.SwitchTo(&MockScene{})
	sm.Close()
}

// TestSceneManagerSwitchBetweenScenes verifies switching between multiple scenes.
func TestSceneManagerSwitchBetweenScenes(t *testing.T) {
	sm := NewSceneManager()
	scene1 := &MockScene{}
	scene2 := &MockScene{}

	sm.SwitchTo(scene1)
	sm.Update(0.016)

	if !scene1.updateCalled {
		t.Error("Scene1's Update was not called")
	}
	if scene2.updateCalled {
		t.Error("Scene2's Update should not have been called yet")
	}

	sm.SwitchTo(scene2)
	sm.Update(0.016)

	if !scene2.updateCalled {
		t.Error("Scene2's Update was not called after switching")
	}
}

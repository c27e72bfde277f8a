package scenes

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a host scene (e.g., the fireworks show).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	// screen is the target image where the scene should be drawn.
	Draw(screen *ebiten.Image)
}

// Resizable 是一个可选接口，用于接收画面尺寸变化
//
// 实现此接口的场景会在 ebiten Layout 报告新的窗口尺寸时被调用 Resize()。
type Resizable interface {
	// Resize 画面尺寸变为 width x height（像素）
	Resize(width, height int)
}

// Closer 是一个可选接口，用于在程序退出时释放场景资源（如遥测文件）
type Closer interface {
	Close() error
}

var (
	_ Scene     = (*FireworksScene)(nil)
	_ Resizable = (*FireworksScene)(nil)
	_ Closer    = (*FireworksScene)(nil)
)

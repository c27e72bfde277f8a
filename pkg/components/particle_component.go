package components

// ParticleKind 粒子类型
//
// 类型在构造时确定，决定物理系数（重力、摩擦）与透明度衰减曲线：
//   - Explosion: 前 30% 寿命保持明亮，随后加速变暗
//   - Willow: 前 70% 寿命几乎不衰减，之后线性消失
//   - 其余类型: 每帧按固定速率衰减
type ParticleKind int

const (
	// ParticleNormal 普通粒子
	ParticleNormal ParticleKind = iota
	// ParticleExplosion 爆炸图案粒子
	ParticleExplosion
	// ParticleWillow 柳形粒子（长寿命、下垂）
	ParticleWillow
	// ParticleFlash 爆炸中心闪光
	ParticleFlash
	// ParticleGlow 爆炸光晕
	ParticleGlow
	// ParticleSmoke 爆炸烟雾
	ParticleSmoke

	// ParticleKindCount 粒子类型总数
	ParticleKindCount
)

var particleKindNames = [...]string{
	ParticleNormal:    "normal",
	ParticleExplosion: "explosion",
	ParticleWillow:    "willow",
	ParticleFlash:     "flash",
	ParticleGlow:      "glow",
	ParticleSmoke:     "smoke",
}

// String 返回类型名
func (k ParticleKind) String() string {
	if k.Valid() {
		return particleKindNames[k]
	}
	return "unknown"
}

// Valid 是否为已定义的类型
func (k ParticleKind) Valid() bool {
	return k >= 0 && k < ParticleKindCount
}

// Vec2 二维向量（像素/帧）
type Vec2 struct {
	X, Y float64
}

// TrailPoint 粒子拖尾中的一个历史位置
type TrailPoint struct {
	X, Y  float64
	Alpha float64
}

// ParticleComponent 单个烟花粒子的运行时状态
//
// 纯数据组件：由 entities.ParticleFactory 创建，
// 由 systems.ParticleSystem 更新，由 systems.RenderSystem 绘制。
type ParticleComponent struct {
	// 位置与速度（像素、像素/帧）
	X, Y   float64
	VX, VY float64

	// 颜色：色相（度）+ 每粒子抖动，亮度为 HSL 的 L（百分比 0-100）
	Hue         float64
	HueVariance float64
	Brightness  float64

	// Alpha 透明度，始终 >= 0
	Alpha float64
	// Size 半径基准（像素）
	Size float64

	Kind ParticleKind

	// 生命周期（帧）
	Life    int
	MaxLife float64

	// Decay 非爆炸/柳形粒子每帧的透明度衰减
	Decay float64

	// 物理系数
	Gravity  float64
	Friction float64

	// Trail 最近位置历史
	Trail *Trail[TrailPoint]

	// Dead 已退役，等待从集合中移除
	Dead bool
}

// LifeRatio 当前年龄占最大寿命的比例
func (p *ParticleComponent) LifeRatio() float64 {
	if p.MaxLife <= 0 {
		return 1
	}
	return float64(p.Life) / p.MaxLife
}

// DisplayHue 绘制时使用的色相
func (p *ParticleComponent) DisplayHue() float64 {
	return p.Hue + p.HueVariance
}

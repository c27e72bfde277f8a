package components

// RocketTrailPoint 火箭尾迹中的一个历史位置
// 记录写入时的闪烁值与淡入比例，绘制时直接使用
type RocketTrailPoint struct {
	X, Y    float64
	Flicker float64
	FadeIn  float64
}

// Spark 火箭尾部飘散的火星
type Spark struct {
	X, Y   float64
	VX, VY float64
	Alpha  float64
}

// RocketComponent 上升中的火箭
//
// 到达 TargetY（y 坐标向下增长，所以是 Y <= TargetY）时触发一次爆炸并退役。
// TargetY 构造后不再改变。
type RocketComponent struct {
	X, Y   float64
	VX, VY float64

	// Scale 决定爆炸规模与粒子数
	Scale float64
	// Pattern 爆炸图案
	Pattern ExplosionPattern
	// TargetY 爆炸高度
	TargetY float64

	Trail  *Trail[RocketTrailPoint]
	Sparks []Spark

	// 闪烁状态：CurrentFlicker 每帧向 TargetFlicker 平滑靠近
	FlickerIntensity float64
	FlickerRate      float64
	CurrentFlicker   float64
	TargetFlicker    float64

	// FadeDistance 头部光晕在 TargetY 上方该距离内逐渐变暗
	FadeDistance float64

	// Age 已飞行帧数
	Age int
	// FlightTicks 按初速估算的到达目标高度所需帧数，仅用于淡入
	FlightTicks float64
	// FadeInTicks 淡入时长上限（帧）
	FadeInTicks float64
}

// GlobalFlicker 整体闪烁强度
func (r *RocketComponent) GlobalFlicker() float64 {
	return r.CurrentFlicker * r.FlickerIntensity
}

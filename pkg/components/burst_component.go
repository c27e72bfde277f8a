package components

// BurstModeComponent 连发模式状态
//
// 状态机：
//
//	INACTIVE --(冷却结束 且 概率命中)--> ACTIVE(Count=0)
//	ACTIVE: 每到 NextFireAt 发射 1-2 枚火箭, Count++
//	Count >= MaxCount --> INACTIVE, LastBurstEnd = 当前时间
//
// 时间字段为模拟时钟（秒），由 World.Update 推进。
type BurstModeComponent struct {
	Active   bool
	Count    int
	MaxCount int

	// NextFireAt 下一批次的发射时间
	NextFireAt float64
	// LastBurstEnd 上一轮连发结束时间，作为冷却起点
	LastBurstEnd float64
}

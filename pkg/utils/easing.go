package utils

import "math"

// 插值与限幅工具
//
// 烟花的闪烁、淡入和衰减曲线都建立在这几个函数之上。

// Approach 指数平滑
// 每次调用让 current 向 target 靠近 factor 比例的差值
// 例如 factor=0.3 时，每帧消除 30% 的差距
func Approach(current, target, factor float64) float64 {
	return current + (target-current)*factor
}

// Clamp 将 v 限制在 [lo, hi] 区间内
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 将 v 限制在 [0, 1] 区间内
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// IsFinite 判断 v 既不是 NaN 也不是 ±Inf
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

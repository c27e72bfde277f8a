package utils

import (
	"math"
	"math/rand/v2"
)

// Random 可注入的随机数源
//
// 所有模拟代码都通过 Random 取随机数，测试时传入固定种子即可复现
// 烟花图案与物理抖动。Random 不是并发安全的，只能在主循环中使用。
type Random struct {
	r *rand.Rand
}

// NewRandom 使用给定种子创建随机数源
func NewRandom(seed uint64) *Random {
	return &Random{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Float64 返回 [0, 1) 内的均匀随机数
func (rnd *Random) Float64() float64 {
	return rnd.r.Float64()
}

// Range 返回 [min, max) 内的均匀随机数
func (rnd *Random) Range(min, max float64) float64 {
	return rnd.r.Float64()*(max-min) + min
}

// IntRange 返回 [min, max] 闭区间内的均匀随机整数
// max < min 时返回 min
func (rnd *Random) IntRange(min, max int) int {
	if max <= min {
		return min
	}
	return min + rnd.r.IntN(max-min+1)
}

// IntN 返回 [0, n) 内的均匀随机整数
func (rnd *Random) IntN(n int) int {
	return rnd.r.IntN(n)
}

// Chance 以概率 p 返回 true
func (rnd *Random) Chance(p float64) bool {
	return rnd.r.Float64() < p
}

// Angle 返回 [0, 2π) 内的均匀随机角度
func (rnd *Random) Angle() float64 {
	return rnd.r.Float64() * 2 * math.Pi
}

package entities

import "errors"

// 构造烟花实体时的契约错误
//
// 这些错误都来自调用方传入的非法参数，应直接拒绝而不是回退到默认值。
var (
	// ErrInvalidPattern 爆炸图案不在 [0, PatternCount) 内
	ErrInvalidPattern = errors.New("invalid explosion pattern")
	// ErrInvalidScale 缩放系数不是有限正数
	ErrInvalidScale = errors.New("invalid scale")
	// ErrInvalidKind 未定义的粒子类型
	ErrInvalidKind = errors.New("invalid particle kind")
	// ErrInvalidVelocity 初速度包含 NaN 或 Inf
	ErrInvalidVelocity = errors.New("invalid velocity")
	// ErrInvalidSurface 画面尺寸或坐标非法
	ErrInvalidSurface = errors.New("invalid surface")
)

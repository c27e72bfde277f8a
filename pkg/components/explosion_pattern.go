package components

// ExplosionPattern 爆炸图案
//
// 图案集合是封闭的，共 8 种（0-7）。超出范围的值视为调用方错误。
type ExplosionPattern int

const (
	// PatternDoubleChrysanthemum 变化菊：内外双层球
	PatternDoubleChrysanthemum ExplosionPattern = iota
	// PatternPeony 牡丹：六瓣花形
	PatternPeony
	// PatternCrown 冠：四层同心环，上半部加速
	PatternCrown
	// PatternWillow 柳：向上锥形喷射，缓慢下垂
	PatternWillow
	// PatternChrysanthemum 菊：单层球
	PatternChrysanthemum
	// PatternPlumBlossom 梅：五枝放射簇
	PatternPlumBlossom
	// PatternSpiral 蛇玉：三圈螺旋
	PatternSpiral
	// PatternSplit 桃割：对半双色球
	PatternSplit

	// PatternCount 图案总数
	PatternCount
)

var patternNames = [...]string{
	PatternDoubleChrysanthemum: "double-chrysanthemum",
	PatternPeony:               "peony",
	PatternCrown:               "crown",
	PatternWillow:              "willow",
	PatternChrysanthemum:       "chrysanthemum",
	PatternPlumBlossom:         "plum-blossom",
	PatternSpiral:              "spiral",
	PatternSplit:               "split",
}

// String 返回图案名
func (p ExplosionPattern) String() string {
	if p.Valid() {
		return patternNames[p]
	}
	return "unknown"
}

// Valid 是否为已定义的图案
func (p ExplosionPattern) Valid() bool {
	return p >= 0 && p < PatternCount
}

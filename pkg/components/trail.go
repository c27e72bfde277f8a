package components

// Trail 固定容量的环形缓冲区，用于粒子与火箭的拖尾历史
//
// Push 在满容量时覆盖最旧的记录，O(1)。
// 遍历顺序为从旧到新（At(0) 为最旧）。
type Trail[T any] struct {
	buf   []T
	start int
	n     int
}

// NewTrail 创建容量为 capacity 的拖尾缓冲区
// capacity <= 0 时缓冲区不保存任何记录
func NewTrail[T any](capacity int) *Trail[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &Trail[T]{buf: make([]T, capacity)}
}

// Push 追加一条记录，超出容量时淘汰最旧的一条
func (t *Trail[T]) Push(v T) {
	if len(t.buf) == 0 {
		return
	}
	if t.n < len(t.buf) {
		t.buf[(t.start+t.n)%len(t.buf)] = v
		t.n++
		return
	}
	t.buf[t.start] = v
	t.start = (t.start + 1) % len(t.buf)
}

// Len 当前记录数
func (t *Trail[T]) Len() int {
	return t.n
}

// Cap 容量
func (t *Trail[T]) Cap() int {
	return len(t.buf)
}

// At 返回第 i 条记录（0 为最旧）
func (t *Trail[T]) At(i int) T {
	if i < 0 || i >= t.n {
		panic("components: trail index out of range")
	}
	return t.buf[(t.start+i)%len(t.buf)]
}

// Clear 清空记录，保留容量
func (t *Trail[T]) Clear() {
	t.start = 0
	t.n = 0
}

// AppendTo 按从旧到新的顺序追加到 dst 并返回
func (t *Trail[T]) AppendTo(dst []T) []T {
	for i := 0; i < t.n; i++ {
		dst = append(dst, t.buf[(t.start+i)%len(t.buf)])
	}
	return dst
}

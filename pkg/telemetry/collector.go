// Package telemetry 汇总模拟的负载数据
//
// 宿主每帧把世界状态喂给 Collector，Collector 每满一个窗口产出一条 WindowStats，
// 可以写日志，也可以通过 OutputManager 追加到 CSV。
package telemetry

import (
	"log"
	"slices"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Sample 单帧采样
type Sample struct {
	Tick        int
	Clock       float64
	Particles   int
	Rockets     int
	BurstActive bool
	Culled      int
	// UpdateTime 本帧 World.Update 的耗时
	UpdateTime time.Duration
}

// WindowStats 一个窗口的汇总
type WindowStats struct {
	WindowStartTick int     `csv:"-"`
	WindowEndTick   int     `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	ParticlesMean float64 `csv:"particles_mean"`
	ParticlesP95  float64 `csv:"particles_p95"`
	ParticlesMax  float64 `csv:"particles_max"`
	RocketsMean   float64 `csv:"rockets_mean"`

	Explosions int     `csv:"explosions"`
	Culled     int     `csv:"culled"`
	BurstRatio float64 `csv:"burst_ratio"`

	UpdateMeanMs float64 `csv:"update_mean_ms"`
	UpdateMaxMs  float64 `csv:"update_max_ms"`
}

// Collector 按固定帧数划分窗口并汇总
type Collector struct {
	window int

	windowStart int
	particles   []float64
	rockets     []float64
	updateMs    []float64
	burstTicks  int
	explosions  int
	culledStart int
	culledLast  int
	started     bool
}

// NewCollector 创建采集器，window 为每个窗口的帧数（< 1 时取 60）
func NewCollector(window int) *Collector {
	if window < 1 {
		window = 60
	}
	return &Collector{
		window:    window,
		particles: make([]float64, 0, window),
		rockets:   make([]float64, 0, window),
		updateMs:  make([]float64, 0, window),
	}
}

// RecordExplosion 记录一次爆炸
func (c *Collector) RecordExplosion() {
	c.explosions++
}

// Record 记录一帧，窗口填满时返回汇总与 true
func (c *Collector) Record(s Sample) (WindowStats, bool) {
	if !c.started {
		c.windowStart = s.Tick
		c.culledStart = s.Culled
		c.started = true
	}

	c.particles = append(c.particles, float64(s.Particles))
	c.rockets = append(c.rockets, float64(s.Rockets))
	c.updateMs = append(c.updateMs, float64(s.UpdateTime)/float64(time.Millisecond))
	if s.BurstActive {
		c.burstTicks++
	}
	c.culledLast = s.Culled

	if len(c.particles) < c.window {
		return WindowStats{}, false
	}

	ws := c.summarize(s)
	c.reset()
	return ws, true
}

func (c *Collector) summarize(last Sample) WindowStats {
	n := float64(len(c.particles))

	sorted := slices.Clone(c.particles)
	slices.Sort(sorted)

	return WindowStats{
		WindowStartTick: c.windowStart,
		WindowEndTick:   last.Tick,
		SimTimeSec:      last.Clock,
		ParticlesMean:   stat.Mean(c.particles, nil),
		ParticlesP95:    stat.Quantile(0.95, stat.Empirical, sorted, nil),
		ParticlesMax:    floats.Max(c.particles),
		RocketsMean:     stat.Mean(c.rockets, nil),
		Explosions:      c.explosions,
		Culled:          c.culledLast - c.culledStart,
		BurstRatio:      float64(c.burstTicks) / n,
		UpdateMeanMs:    stat.Mean(c.updateMs, nil),
		UpdateMaxMs:     floats.Max(c.updateMs),
	}
}

func (c *Collector) reset() {
	c.particles = c.particles[:0]
	c.rockets = c.rockets[:0]
	c.updateMs = c.updateMs[:0]
	c.burstTicks = 0
	c.explosions = 0
	c.started = false
}

// LogStats 以 [Telemetry] 标签输出窗口汇总
func LogStats(ws WindowStats) {
	log.Printf("[Telemetry] tick=%d t=%.1fs particles mean=%.0f p95=%.0f max=%.0f rockets=%.1f explosions=%d culled=%d burst=%.0f%% update=%.2fms/%.2fms",
		ws.WindowEndTick, ws.SimTimeSec,
		ws.ParticlesMean, ws.ParticlesP95, ws.ParticlesMax,
		ws.RocketsMean, ws.Explosions, ws.Culled, ws.BurstRatio*100,
		ws.UpdateMeanMs, ws.UpdateMaxMs)
}

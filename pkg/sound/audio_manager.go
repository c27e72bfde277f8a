package sound

import (
	"encoding/binary"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/decker502/fireworks/pkg/entities"
	"github.com/decker502/fireworks/pkg/utils"
)

// SampleRate 音频采样率
const SampleRate = 48000

// maxVoices 同时播放的爆炸音上限，连发时多余的爆炸静音
const maxVoices = 6

// AudioManager 爆炸音效管理器
// 职责：
//   - 按火箭规模合成爆炸声（低频噪声 + 指数衰减包络）
//   - 缓存合成结果，相近规模共用同一段 PCM
//   - 限制同时发声数，回收播放完毕的播放器
//
// context 为 nil 时（无音频设备或 --mute）所有播放请求直接忽略。
type AudioManager struct {
	context *audio.Context
	volume  float64
	muted   bool

	boomCache map[int][]byte  // 规模档位 -> PCM
	players   []*audio.Player // 正在播放的声音
}

// NewAudioManager 创建音频管理器
//
// 参数：
//   - ctx: ebiten 音频上下文，可为 nil
//   - volume: 音量 (0.0 ~ 1.0)
func NewAudioManager(ctx *audio.Context, volume float64) *AudioManager {
	return &AudioManager{
		context:   ctx,
		volume:    utils.Clamp01(volume),
		boomCache: make(map[int][]byte),
	}
}

// OnExplosion 作为 World 的爆炸监听器
func (am *AudioManager) OnExplosion(e entities.Explosion) {
	am.PlayExplosion(e.Scale)
}

// PlayExplosion 播放一次爆炸声
//
// 规模越大，声音越长越响。
//
// 返回：
//   - bool: 是否成功播放
func (am *AudioManager) PlayExplosion(scale float64) bool {
	if am.context == nil || am.muted || am.volume <= 0 {
		return false
	}

	am.reapFinished()
	if len(am.players) >= maxVoices {
		return false
	}

	pcm := am.boom(scale)
	player := am.context.NewPlayerFromBytes(pcm)
	player.SetVolume(am.volume)
	player.Play()
	am.players = append(am.players, player)
	return true
}

// boom 取缓存的爆炸 PCM，按 0.25 的规模档位缓存
func (am *AudioManager) boom(scale float64) []byte {
	bucket := int(math.Round(scale * 4))
	if pcm, ok := am.boomCache[bucket]; ok {
		return pcm
	}
	pcm := SynthesizeBoom(SampleRate, float64(bucket)/4, uint64(bucket))
	am.boomCache[bucket] = pcm
	log.Printf("[AudioManager] 合成爆炸音: scale=%.2f, %d bytes", float64(bucket)/4, len(pcm))
	return pcm
}

// reapFinished 关闭已播放完毕的播放器
func (am *AudioManager) reapFinished() {
	active := am.players[:0]
	for _, p := range am.players {
		if p.IsPlaying() {
			active = append(active, p)
			continue
		}
		if err := p.Close(); err != nil {
			log.Printf("[AudioManager] Warning: Failed to close player: %v", err)
		}
	}
	clear(am.players[len(active):])
	am.players = active
}

// SetMuted 静音开关
func (am *AudioManager) SetMuted(muted bool) {
	am.muted = muted
	if muted {
		for _, p := range am.players {
			p.Pause()
		}
	}
}

// IsMuted 是否静音
func (am *AudioManager) IsMuted() bool {
	return am.muted
}

// SetVolume 设置音量 (0.0 ~ 1.0)，立即应用到正在播放的声音
func (am *AudioManager) SetVolume(volume float64) {
	am.volume = utils.Clamp01(volume)
	for _, p := range am.players {
		p.SetVolume(am.volume)
	}
}

// Volume 当前音量
func (am *AudioManager) Volume() float64 {
	return am.volume
}

// SynthesizeBoom 合成爆炸声
//
// 白噪声经过两级单极点低通得到沉闷的"轰"声，
// 前 5ms 线性起音，之后按指数衰减；规模决定时长与峰值。
//
// 返回：
//   - []byte: 16-bit 小端立体声 PCM
func SynthesizeBoom(sampleRate int, scale float64, seed uint64) []byte {
	if sampleRate <= 0 {
		return nil
	}
	scale = math.Max(scale, 0.1)

	duration := 0.5 + 0.35*scale
	n := int(float64(sampleRate) * duration)
	peak := math.Min(0.9, 0.35+0.2*scale)
	attack := 0.005 * float64(sampleRate)
	decayRate := 5.0 / duration

	// 规模越大截止频率越低
	alpha := math.Min(0.5, 0.12/scale)

	rng := utils.NewRandom(seed)
	out := make([]byte, n*4)
	var lp1, lp2 float64
	for i := 0; i < n; i++ {
		noise := rng.Range(-1, 1)
		lp1 += (noise - lp1) * alpha
		lp2 += (lp1 - lp2) * alpha

		t := float64(i) / float64(sampleRate)
		env := math.Exp(-t * decayRate)
		if fi := float64(i); fi < attack {
			env *= fi / attack
		}

		// 低通会削弱幅度，乘 4 补偿
		v := utils.Clamp(lp2*4*env*peak, -1, 1)
		s := int16(v * math.MaxInt16)
		binary.LittleEndian.PutUint16(out[i*4:], uint16(s))
		binary.LittleEndian.PutUint16(out[i*4+2:], uint16(s))
	}
	return out
}

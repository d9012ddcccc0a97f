package seed

import (
	"fmt"
	"time"
)

const (
	// MaxBatch 是动物、分店单批的上限，超出部分静默截断。
	MaxBatch = 100
	// DefaultMaxCount 是关系数量属性的默认上限。
	DefaultMaxCount = 100

	attemptsPerItem = 64
)

// Generator 从共享随机源生成各类实体批次，本身没有副作用。
type Generator struct {
	src   *Source
	words func() string
	now   func() time.Time
}

// Option 定制 Generator。
type Option func(*Generator)

// WithWords 替换动物名字的候选来源。
func WithWords(fn func() string) Option {
	return func(g *Generator) {
		if fn != nil {
			g.words = fn
		}
	}
}

// WithClock 替换 HexID 使用的时钟。
func WithClock(fn func() time.Time) Option {
	return func(g *Generator) {
		if fn != nil {
			g.now = fn
		}
	}
}

// NewGenerator 基于给定随机源构建生成器，src 为空时使用 DefaultSeed。
func NewGenerator(src *Source, opts ...Option) *Generator {
	if src == nil {
		src = NewSource(DefaultSeed)
	}
	g := &Generator{src: src, now: time.Now}
	g.words = src.Word
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Source 返回生成器使用的随机源。
func (g *Generator) Source() *Source {
	return g.src
}

// decimal 返回一位小数精度的 [0.0, 99.9]。
func (g *Generator) decimal() float64 {
	return float64(g.src.Intn(1000)) / 10
}

func clampCount(kind string, count int) (int, error) {
	if count <= 0 {
		return 0, fmt.Errorf("%w: %s count must be positive, got %d", ErrInvalidCount, kind, count)
	}
	if count > MaxBatch {
		return MaxBatch, nil
	}
	return count, nil
}

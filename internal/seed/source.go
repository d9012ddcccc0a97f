package seed

import "github.com/brianvoe/gofakeit/v6"

// DefaultSeed 是整个进程共用的固定随机种子。
const DefaultSeed int64 = 1245899876

// Source 是所有生成器共用的确定性随机源。
//
// 同一种子、同样的调用顺序得到完全相同的输出。Source 不是并发安全的，
// 调用方负责串行化访问。
type Source struct {
	seed  int64
	faker *gofakeit.Faker
}

// NewSource 以给定种子创建随机源，0 表示使用 DefaultSeed。
func NewSource(seed int64) *Source {
	if seed == 0 {
		seed = DefaultSeed
	}
	return &Source{seed: seed, faker: gofakeit.NewUnlocked(seed)}
}

// Seed 返回当前种子。
func (s *Source) Seed() int64 {
	return s.seed
}

// Reset 把随机源重置到初始状态。
func (s *Source) Reset() {
	s.faker = gofakeit.NewUnlocked(s.seed)
}

// Intn 返回 [0, n) 内的整数。
func (s *Source) Intn(n int) int {
	return s.faker.Rand.Intn(n)
}

// Word 返回一个 lorem 单词。
func (s *Source) Word() string {
	return s.faker.LoremIpsumWord()
}

// Company 返回一个公司名。
func (s *Source) Company() string {
	return s.faker.Company()
}

// StreetAddress 返回一个街道地址。
func (s *Source) StreetAddress() string {
	return s.faker.Street()
}

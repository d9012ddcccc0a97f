package util

import (
	"context"
	"fmt"
	"time"
)

// maxBackoff 是单次等待的上限。
const maxBackoff = 30 * time.Second

// Retry 最多执行 fn attempts 次，attempt 从 1 开始；等待时间每次翻倍，最后一次失败后直接返回。
func Retry(ctx context.Context, attempts int, backoff time.Duration, fn func(attempt int) error) error {
	if attempts <= 0 {
		attempts = 1
	}
	var err error
	for attempt := 1; ; attempt++ {
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		if err = fn(attempt); err == nil {
			return nil
		}
		if attempt >= attempts {
			return fmt.Errorf("重试 %d 次后仍失败: %w", attempts, err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, maxBackoff)
	}
}

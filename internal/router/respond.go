package router

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tierbench/internal/app"
	"tierbench/internal/bench"
	"tierbench/internal/domain"
	"tierbench/internal/seed"
)

// TimedResult 是所有接口的响应信封，耗时按请求单独计量。
type TimedResult struct {
	Result any     `json:"result"`
	Time   string  `json:"time"`
	TimeMs float64 `json:"time_ms"`
}

var errBadRequest = errors.New("bad request")

// statusOf 把业务错误映射为 HTTP 状态码。
func statusOf(err error) int {
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, seed.ErrInvalidCount),
		errors.Is(err, seed.ErrInvalidRelationCount),
		errors.Is(err, seed.ErrInvalidPolicy),
		errors.Is(err, domain.ErrInvalid):
		return http.StatusBadRequest
	case errors.Is(err, seed.ErrExhaustedSource):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, app.ErrBackendDisabled), errors.Is(err, bench.ErrNoTargets):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, logger *zap.Logger, err error) {
	code := statusOf(err)
	if code == http.StatusInternalServerError && logger != nil {
		logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err))
	}
	c.JSON(code, gin.H{"error": err.Error()})
}

// timed 执行 fn 并用 TimedResult 包装结果。
func timed(c *gin.Context, logger *zap.Logger, fn func(ctx context.Context) (any, error)) {
	start := time.Now()
	result, err := fn(c.Request.Context())
	if err != nil {
		writeError(c, logger, err)
		return
	}
	elapsed := time.Since(start)
	c.JSON(http.StatusOK, TimedResult{
		Result: result,
		Time:   elapsed.String(),
		TimeMs: float64(elapsed.Microseconds()) / 1000,
	})
}

func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return fmt.Errorf("%w: invalid request payload: %v", errBadRequest, err)
	}
	return nil
}

func intParam(c *gin.Context, name string) (int, error) {
	raw := c.Param(name)
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", errBadRequest, name, raw)
	}
	return v, nil
}

func disabled(backend string) error {
	return fmt.Errorf("%w: %s", app.ErrBackendDisabled, backend)
}

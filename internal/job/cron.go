package job

import (
	"context"
	"sync"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// startCron 注册 fn 并启动 cron，parent 结束或调用返回值时停止，停止会等待进行中的任务。
// spec 非法时返回 nil cron 和空操作的停止函数。
func startCron(parent context.Context, name, spec string, fn func(), logger *zap.Logger) (*cron.Cron, context.CancelFunc) {
	c := cron.New()
	id, err := c.AddFunc(spec, fn)
	if err != nil {
		logger.Error("failed to register cron job", zap.String("job", name), zap.String("cron", spec), zap.Error(err))
		return nil, func() {}
	}
	c.Start()
	logger.Info("cron job started", zap.String("job", name), zap.String("cron", spec), zap.Time("next", c.Entry(id).Next))

	var once sync.Once
	stop := func() {
		once.Do(func() {
			<-c.Stop().Done()
			logger.Info("cron job stopped", zap.String("job", name))
		})
	}
	go func() {
		<-parent.Done()
		stop()
	}()
	return c, stop
}

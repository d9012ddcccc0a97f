package ioc

import "tierbench/internal/app"

// ConfigPath 是命令行显式指定的配置路径，为空时按环境变量和默认路径查找。
type ConfigPath string

// InitConfig 读取应用配置。
func InitConfig(path ConfigPath) (app.Config, error) {
	return app.LoadConfig(app.ResolveConfigPath(string(path)))
}

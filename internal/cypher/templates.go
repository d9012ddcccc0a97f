package cypher

import (
	"embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed *.cql
var files embed.FS

// 所有 .cql 在包初始化时一次解析，按文件名取用。
var templates = template.Must(template.New("cypher").ParseFS(files, "*.cql"))

// Render 用 data 渲染指定模板。
func Render(name string, data any) (string, error) {
	var sb strings.Builder
	if err := templates.ExecuteTemplate(&sb, name, data); err != nil {
		return "", fmt.Errorf("渲染模板 %s 失败: %w", name, err)
	}
	return sb.String(), nil
}

// MustTemplate 同 Render，失败直接 panic。模板和参数都在代码里固定，出错只可能是编码错误。
func MustTemplate(name string, data any) string {
	query, err := Render(name, data)
	if err != nil {
		panic(err)
	}
	return query
}

// MustAsset 返回模板原文。
func MustAsset(name string) string {
	b, err := files.ReadFile(name)
	if err != nil {
		panic(fmt.Errorf("读取 %s 失败: %w", name, err))
	}
	return string(b)
}

// Statements 把多语句文件按分号拆开，去掉空语句。
func Statements(name string) []string {
	var out []string
	for _, raw := range strings.Split(MustAsset(name), ";") {
		if stmt := strings.TrimSpace(raw); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}

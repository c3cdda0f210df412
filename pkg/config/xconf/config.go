package xconf

import "github.com/knadh/koanf/v2"

// Format 配置文件格式
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Config 配置实例。基础读取直接使用 Client() 返回的 koanf 实例。
type Config interface {
	// Client 返回当前 koanf 实例。Reload 之后旧实例仍可读，但内容过期。
	Client() *koanf.Koanf

	// Unmarshal 将 path 下的配置解码到 target，path 为空时解码整个配置。
	// 配置中缺失的键不会覆盖 target 已有的值，可用于预填默认值。
	Unmarshal(path string, target any) error

	// Reload 重新读取配置文件，解析失败时保留旧配置。
	Reload() error

	// Path 配置文件路径，从字节创建时为空。
	Path() string

	Format() Format
}

// Package xconf 基于 koanf 加载 YAML/JSON 配置文件。
//
// 只负责加载与解码，不做必填校验和环境变量覆盖。默认值由调用方预填到结构体中，
// 配置里缺失的键不会覆盖它们：
//
//	cfg := defaultAppConfig()
//	c, err := xconf.New("xoui.yaml")
//	if err != nil {
//		return err
//	}
//	if err := c.Unmarshal("", &cfg); err != nil {
//		return err
//	}
//
// Reload 并发安全，解析失败时保留旧配置。Unmarshal 使用 mapstructure 弱类型转换，
// 字符串 "30s" 可解码为 time.Duration。
package xconf

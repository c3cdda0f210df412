// Package xregistry 解析 IEEE OUI 注册表原始文本。
//
// # 文本格式
//
// 注册表是面向行的纯文本，每个条目以含 "(hex)" 标记的行开始：
//
//	30-23-03   (hex)		Belkin International Inc.
//	302303     (base 16)		Belkin International Inc.
//					12045 East Waterfront Drive
//					Playa Vista  CA  90094
//					US
//
// 第一、二行的字段以连续 2 个及以上空白字符分隔，且必须恰好 3 个字段。
// 其余行构成地址：逐行去除首尾空白，丢弃空行，以 "\n" 连接。
//
// # 解析流程
//
//   - [SplitEntries]：按 "(hex)" 行切分条目，首个元素是表头
//   - [ParseEntry]：把单个条目解析为 [Record]
//   - [ParseRegistry]：切分、丢弃表头、逐条解析
//
// # 畸形条目策略
//
// 默认跳过并报告：每个畸形条目通过 [OnMalformed] 钩子和日志报告，
// 不影响相邻条目。[WithStrict] 开启后遇到第一个畸形条目即中止，
// 返回 [*EntryError]。[ParseRegistryReport] 返回完整的 [Report]。
package xregistry

// Package xmac 提供 MAC 地址处理工具。
//
// xmac 基于 Go 标准库 [net] 构建，提供类型安全的 MAC 地址操作：
//
//   - 严格解析（冒号、短线、点、无分隔符）：[Parse]
//   - 宽松解析（每组 1~2 位十六进制，冒号或短线分隔）：[ParseLoose]
//   - 多格式输出（FormatColon, FormatDash, FormatDot, FormatBare 及对应 Upper 变体）
//   - 厂商前缀：[Addr.CanonicalPrefix]、[Addr.CompanyID]
//   - 地址属性判断（单播/多播、本地/全局管理、私有地址）
//   - JSON/Text 序列化支持
//
// # 快速示例
//
// 网络设备上报的 MAC 经常省略前导零（如 "0:1b:63:84:45:e6"），
// 使用 ParseLoose 解析并取出 OUI 查询键：
//
//	addr, err := xmac.ParseLoose("30:f3:3:3A:f3:01")
//	fmt.Println(addr.CanonicalPrefix())  // 30:F3:03
//	fmt.Println(addr.CompanyID())        // 30F303
//
// 私有地址（本地管理单播）没有注册厂商：
//
//	if addr.IsPrivate() {
//	    // 不查询 OUI 注册表
//	}
//
// # 设计决策
//
//   - 使用 [6]byte 固定数组而非 []byte 切片：值语义、可比较、栈分配
//   - 仅支持 EUI-48 (6字节)，不支持 EUI-64 (8字节)
//   - 零值表示无效地址，受 [net/netip.Addr] 零值语义启发；
//     [Parse] 与 [ParseLoose] 对全零 MAC 返回零值 Addr{}
//   - 前缀相关方法（CanonicalPrefix/CompanyID/IsPrivate）只看字节，不检查有效性：
//     全零地址的前缀 "00:00:00" 在 IEEE 注册表中是合法的分配块
//
// # 错误处理
//
// 预定义错误变量支持 errors.Is 判断：
//
//	addr, err := xmac.ParseLoose("30:23:03:3A:F3")
//	if errors.Is(err, xmac.ErrInvalidFormat) {
//	    // 格式错误
//	}
package xmac

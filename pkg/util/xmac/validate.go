package xmac

// IsUnicast 报告 a 是否为单播地址。
// 单播地址的第一字节最低位（bit 0）为 0。
// 无效地址返回 false。
func (a Addr) IsUnicast() bool {
	return a.IsValid() && (a.bytes[0]&0x01) == 0
}

// IsMulticast 报告 a 是否为多播地址。
// 多播地址的第一字节最低位（bit 0）为 1，广播地址也属于多播。
func (a Addr) IsMulticast() bool {
	return a.IsValid() && (a.bytes[0]&0x01) == 1
}

// IsBroadcast 报告 a 是否为广播地址（ff:ff:ff:ff:ff:ff）。
func (a Addr) IsBroadcast() bool {
	return a == Addr{bytes: [6]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff}}
}

// IsZero 报告 a 是否为全零地址（与零值 Addr{} 相同）。
func (a Addr) IsZero() bool {
	return a == Addr{}
}

// IsLocallyAdministered 报告 a 是否为本地管理地址（LAA）。
// LAA 的第一字节次低位（bit 1）为 1。
// 无效地址返回 false。
func (a Addr) IsLocallyAdministered() bool {
	return a.IsValid() && (a.bytes[0]&0x02) == 0x02
}

// IsUniversallyAdministered 报告 a 是否为全球唯一地址（UAA）。
func (a Addr) IsUniversallyAdministered() bool {
	return a.IsValid() && (a.bytes[0]&0x02) == 0
}

// IsPrivate 报告 a 是否为私有地址。
//
// 判定规则：第一字节的第二个十六进制字符为 2、6、A、E 之一，
// 等价于第一字节低两位为 10（本地管理 + 单播）。
// 私有地址不属于任何注册厂商，查询时不访问 OUI 注册表。
func (a Addr) IsPrivate() bool {
	return a.bytes[0]&0x03 == 0x02
}

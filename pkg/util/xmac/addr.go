package xmac

import "net"

// Addr 表示 48 位 MAC 地址（EUI-48/MAC-48）。
//
// Addr 是不可变值类型：
//   - 零值表示无效地址，IsValid() 返回 false
//   - 可直接比较（==）和用作 map key
//   - 并发安全，无需加锁
//
// 使用 [Parse]、[ParseLoose] 或 [MustParse] 创建地址。
type Addr struct {
	bytes [6]byte
}

// AddrFrom6 从 6 字节数组创建 MAC 地址。
func AddrFrom6(b [6]byte) Addr {
	return Addr{bytes: b}
}

// Bytes 返回 MAC 地址的字节表示（长度始终为 6）。
// 返回副本，修改不影响原值。
func (a Addr) Bytes() [6]byte {
	return a.bytes
}

// IsValid 报告 a 是否为有效的非零 MAC 地址。
// 零值 Addr{} 返回 false。
func (a Addr) IsValid() bool {
	return a != Addr{}
}

// Compare 比较两个 MAC 地址的字节顺序。
// 返回值：-1 (a < b), 0 (a == b), 1 (a > b)。
func (a Addr) Compare(b Addr) int {
	for i := range 6 {
		if a.bytes[i] < b.bytes[i] {
			return -1
		}
		if a.bytes[i] > b.bytes[i] {
			return 1
		}
	}
	return 0
}

// OUI 返回组织唯一标识符（Organizationally Unique Identifier）。
// OUI 是 MAC 地址的前 3 字节，由 IEEE 分配给设备制造商。
// 与 [Addr.CanonicalPrefix] 一致，零值地址返回 [3]byte{}。
func (a Addr) OUI() [3]byte {
	return [3]byte{a.bytes[0], a.bytes[1], a.bytes[2]}
}

// NIC 返回网络接口控制器标识（后 3 字节），由制造商分配。
func (a Addr) NIC() [3]byte {
	return [3]byte{a.bytes[3], a.bytes[4], a.bytes[5]}
}

// HardwareAddr 返回 [net.HardwareAddr] 表示。
// 无效地址返回 nil。
func (a Addr) HardwareAddr() net.HardwareAddr {
	if !a.IsValid() {
		return nil
	}
	hw := make(net.HardwareAddr, 6)
	copy(hw, a.bytes[:])
	return hw
}

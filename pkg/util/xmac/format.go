package xmac

// Format 定义 MAC 地址的格式化风格。
type Format uint8

const (
	// FormatColon 使用冒号分隔，小写：aa:bb:cc:dd:ee:ff
	FormatColon Format = iota
	// FormatDash 使用短线分隔，小写：aa-bb-cc-dd-ee-ff
	FormatDash
	// FormatDot 使用点分隔（Cisco 风格），小写：aabb.ccdd.eeff
	FormatDot
	// FormatBare 无分隔符，小写：aabbccddeeff
	FormatBare
	// FormatColonUpper 使用冒号分隔，大写：AA:BB:CC:DD:EE:FF
	FormatColonUpper
	// FormatDashUpper 使用短线分隔，大写：AA-BB-CC-DD-EE-FF
	FormatDashUpper
)

const (
	hexLower = "0123456789abcdef"
	hexUpper = "0123456789ABCDEF"
)

// String 返回默认格式（小写冒号）的字符串表示。
// 无效地址返回空字符串。
func (a Addr) String() string {
	if !a.IsValid() {
		return ""
	}
	return a.FormatString(FormatColon)
}

// FormatString 按指定格式返回 MAC 地址字符串。
// 无效地址返回空字符串，未知格式按 FormatColon 处理。
func (a Addr) FormatString(f Format) string {
	if !a.IsValid() {
		return ""
	}

	switch f {
	case FormatDash:
		return formatWithSep(a.bytes[:], '-', hexLower)
	case FormatDot:
		return formatDot(a.bytes, hexLower)
	case FormatBare:
		return formatBare(a.bytes[:], hexLower)
	case FormatColonUpper:
		return formatWithSep(a.bytes[:], ':', hexUpper)
	case FormatDashUpper:
		return formatWithSep(a.bytes[:], '-', hexUpper)
	default:
		return formatWithSep(a.bytes[:], ':', hexLower)
	}
}

// CanonicalPrefix 返回前 3 字节的大写冒号格式（如 "30:23:03"），
// 即 OUI 注册表的查询键。后 3 字节不参与厂商解析。
func (a Addr) CanonicalPrefix() string {
	return formatWithSep(a.bytes[:3], ':', hexUpper)
}

// CompanyID 返回前 3 字节的大写无分隔格式（如 "302303"），
// 与 IEEE 注册表中 "(base 16)" 列一致。
func (a Addr) CompanyID() string {
	return formatBare(a.bytes[:3], hexUpper)
}

// formatWithSep 以 sep 分隔输出 b 的每个字节。
func formatWithSep(b []byte, sep byte, hex string) string {
	if len(b) == 0 {
		return ""
	}
	buf := make([]byte, 0, len(b)*3-1)
	for i, v := range b {
		if i > 0 {
			buf = append(buf, sep)
		}
		buf = append(buf, hex[v>>4], hex[v&0x0f])
	}
	return string(buf)
}

// formatDot 格式化为点分隔格式（xxxx.xxxx.xxxx）。
func formatDot(b [6]byte, hex string) string {
	var buf [14]byte
	n := 0
	for i, v := range b {
		if i == 2 || i == 4 {
			buf[n] = '.'
			n++
		}
		buf[n] = hex[v>>4]
		buf[n+1] = hex[v&0x0f]
		n += 2
	}
	return string(buf[:])
}

// formatBare 格式化为无分隔符格式。
func formatBare(b []byte, hex string) string {
	buf := make([]byte, 0, len(b)*2)
	for _, v := range b {
		buf = append(buf, hex[v>>4], hex[v&0x0f])
	}
	return string(buf)
}

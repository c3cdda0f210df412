package xmac

import (
	"fmt"
	"net"
	"strings"
)

// Parse 严格解析 MAC 地址字符串。
//
// 支持的格式：
//   - 冒号分隔：aa:bb:cc:dd:ee:ff, AA:BB:CC:DD:EE:FF
//   - 短线分隔：aa-bb-cc-dd-ee-ff, AA-BB-CC-DD-EE-FF
//   - 点分隔：aabb.ccdd.eeff, AABB.CCDD.EEFF
//   - 无分隔：aabbccddeeff, AABBCCDDEEFF
//
// 输入会自动去除首尾空白。大小写不敏感。
// 每组必须是 2 位十六进制；省略前导零的输入请使用 [ParseLoose]。
func Parse(s string) (Addr, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Addr{}, ErrEmpty
	}

	if len(s) == 12 && !strings.ContainsAny(s, ":-.") {
		return parseNoSeparator(s)
	}

	if len(s) == 17 {
		sep := s[2]
		if sep == ':' || sep == '-' {
			return parseWithSeparator(s, sep)
		}
	}

	if len(s) == 14 && s[4] == '.' && s[9] == '.' {
		return parseDot(s)
	}

	return parseStdlib(s)
}

// MustParse 类似 [Parse]，但解析失败时 panic。
// 仅用于包级常量初始化或测试。
func MustParse(s string) Addr {
	addr, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("xmac.MustParse(%q): %v", s, err))
	}
	return addr
}

// ParseLoose 宽松解析 MAC 地址字符串。
//
// 输入必须恰好是 6 组 1~2 位十六进制数字，以 ':' 或 '-' 分隔，
// 同一地址内只能使用一种分隔符。不去除空白，不允许任何额外字符。
// 单个数字的组视为省略了前导零（"3" 等价于 "03"）。
//
// 失败时返回 [ErrEmpty] 或包装 [ErrInvalidFormat] 的错误。
func ParseLoose(s string) (Addr, error) {
	if s == "" {
		return Addr{}, ErrEmpty
	}

	var (
		addr Addr
		sep  byte
		pos  int
	)
	for i := range 6 {
		if i > 0 {
			if pos >= len(s) {
				return Addr{}, fmt.Errorf("%w: expected 6 groups, got %d", ErrInvalidFormat, i)
			}
			c := s[pos]
			if c != ':' && c != '-' {
				return Addr{}, fmt.Errorf("%w: unexpected %q at position %d", ErrInvalidFormat, c, pos)
			}
			if sep == 0 {
				sep = c
			} else if c != sep {
				return Addr{}, fmt.Errorf("%w: inconsistent separators", ErrInvalidFormat)
			}
			pos++
		}

		start := pos
		v := 0
		for pos < len(s) && pos-start < 2 {
			h := hexValue(s[pos])
			if h < 0 {
				break
			}
			v = v<<4 | h
			pos++
		}
		if pos == start {
			return Addr{}, fmt.Errorf("%w: invalid hex at position %d", ErrInvalidFormat, pos)
		}
		addr.bytes[i] = byte(v)
	}
	if pos != len(s) {
		return Addr{}, fmt.Errorf("%w: trailing characters at position %d", ErrInvalidFormat, pos)
	}
	return addr, nil
}

// MustParseLoose 类似 [ParseLoose]，但解析失败时 panic。
func MustParseLoose(s string) Addr {
	addr, err := ParseLoose(s)
	if err != nil {
		panic(fmt.Sprintf("xmac.MustParseLoose(%q): %v", s, err))
	}
	return addr
}

// NormalizePairs 为长度为 1 的分组补齐前导零。
//
// 按 ':' 和 '-' 切分，分隔符原样保留；长度已为 2 的分组以及空分组不做修改。
// 不做格式校验，适用于日志展示等场景：
//
//	xmac.NormalizePairs("30:23:3:3A:F3")  // "30:23:03:3A:F3"
func NormalizePairs(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 6)
	start := 0
	for i := 0; i <= len(s); i++ {
		if i < len(s) && s[i] != ':' && s[i] != '-' {
			continue
		}
		if i-start == 1 {
			b.WriteByte('0')
		}
		b.WriteString(s[start:i])
		if i < len(s) {
			b.WriteByte(s[i])
		}
		start = i + 1
	}
	return b.String()
}

// FormatPrefix 宽松解析 s 并返回大写冒号分隔的厂商前缀（如 "30:F3:03"）。
func FormatPrefix(s string) (string, error) {
	addr, err := ParseLoose(s)
	if err != nil {
		return "", err
	}
	return addr.CanonicalPrefix(), nil
}

// ParseBytes 从字节切片创建 MAC 地址。
// 切片长度必须为 6。
func ParseBytes(b []byte) (Addr, error) {
	if len(b) != 6 {
		return Addr{}, fmt.Errorf("%w: expected 6 bytes, got %d", ErrInvalidLength, len(b))
	}
	var addr Addr
	copy(addr.bytes[:], b)
	return addr, nil
}

// parseWithSeparator 解析 17 字符的冒号/短线分隔格式（xx:xx:xx:xx:xx:xx）。
func parseWithSeparator(s string, sep byte) (Addr, error) {
	if s[5] != sep || s[8] != sep || s[11] != sep || s[14] != sep {
		return Addr{}, fmt.Errorf("%w: inconsistent separators", ErrInvalidFormat)
	}

	var addr Addr
	for i := range 6 {
		offset := i * 3
		b, err := parseHexByte(s[offset], s[offset+1])
		if err != nil {
			return Addr{}, fmt.Errorf("%w: invalid hex at position %d", ErrInvalidFormat, offset)
		}
		addr.bytes[i] = b
	}
	return addr, nil
}

// parseDot 解析 14 字符的点分隔格式（xxxx.xxxx.xxxx，Cisco 风格）。
func parseDot(s string) (Addr, error) {
	offsets := [6]int{0, 2, 5, 7, 10, 12}
	var addr Addr
	for i, off := range offsets {
		b, err := parseHexByte(s[off], s[off+1])
		if err != nil {
			return Addr{}, fmt.Errorf("%w: invalid hex at position %d", ErrInvalidFormat, off)
		}
		addr.bytes[i] = b
	}
	return addr, nil
}

// parseNoSeparator 解析无分隔符的 12 字符十六进制字符串。
func parseNoSeparator(s string) (Addr, error) {
	var addr Addr
	for i := range 6 {
		b, err := parseHexByte(s[i*2], s[i*2+1])
		if err != nil {
			return Addr{}, fmt.Errorf("%w: invalid hex at position %d", ErrInvalidFormat, i*2)
		}
		addr.bytes[i] = b
	}
	return addr, nil
}

// parseStdlib 使用标准库 [net.ParseMAC] 解析不常见格式。
func parseStdlib(s string) (Addr, error) {
	hw, err := net.ParseMAC(s)
	if err != nil {
		return Addr{}, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}
	// net.ParseMAC 支持 EUI-64，这里只接受 EUI-48
	if len(hw) != 6 {
		return Addr{}, fmt.Errorf("%w: expected 6 bytes, got %d", ErrInvalidLength, len(hw))
	}
	var addr Addr
	copy(addr.bytes[:], hw)
	return addr, nil
}

// parseHexByte 解析两个十六进制字符为一个字节。
func parseHexByte(high, low byte) (byte, error) {
	h := hexValue(high)
	l := hexValue(low)
	if h < 0 || l < 0 {
		return 0, ErrInvalidFormat
	}
	return byte(h<<4 | l), nil
}

// hexValue 返回十六进制字符的数值，无效字符返回 -1。
func hexValue(c byte) int {
	switch {
	case '0' <= c && c <= '9':
		return int(c - '0')
	case 'a' <= c && c <= 'f':
		return int(c - 'a' + 10)
	case 'A' <= c && c <= 'F':
		return int(c - 'A' + 10)
	default:
		return -1
	}
}

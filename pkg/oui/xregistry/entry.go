package xregistry

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	base16Marker = "(base 16)"
	headerFields = 3
)

// fieldSep 匹配首两行的字段分隔：连续 2 个及以上空白字符。
var fieldSep = regexp.MustCompile(`\s{2,}`)

// ParseEntry 把单个条目解析为 [Record]。
//
// 第一行 "<AA-BB-CC>  (hex)  <组织>"，第二行 "<AABBCC>  (base 16)  <组织>"，
// 其余行为地址。首两行任一行不能切分为恰好 3 个字段、缺少第二行、
// 或前缀与 company_id 不一致时，返回包装 [ErrMalformedEntry] 的错误。
func ParseEntry(entry string) (Record, error) {
	lines := strings.Split(strings.ReplaceAll(entry, "\r\n", "\n"), "\n")
	if len(lines) < 2 {
		return Record{}, fmt.Errorf("%w: missing %s line", ErrMalformedEntry, base16Marker)
	}

	hexLine, err := splitHeader(lines[0], hexMarker)
	if err != nil {
		return Record{}, err
	}
	baseLine, err := splitHeader(lines[1], base16Marker)
	if err != nil {
		return Record{}, err
	}

	mac := strings.ToUpper(strings.ReplaceAll(hexLine[0], "-", ":"))
	companyID := strings.ToUpper(baseLine[0])
	if err := checkPrefix(mac, companyID); err != nil {
		return Record{}, err
	}

	return Record{
		MAC:          mac,
		CompanyID:    companyID,
		Organization: hexLine[2],
		Address:      joinAddress(lines[2:]),
	}, nil
}

// splitHeader 按 fieldSep 切分首两行之一，要求恰好 3 个字段且中间字段为 marker。
func splitHeader(line, marker string) ([]string, error) {
	fields := fieldSep.Split(strings.TrimSpace(line), -1)
	if len(fields) != headerFields {
		return nil, fmt.Errorf("%w: want %d fields, got %d in %q",
			ErrMalformedEntry, headerFields, len(fields), line)
	}
	if fields[1] != marker {
		return nil, fmt.Errorf("%w: want %s marker in %q", ErrMalformedEntry, marker, line)
	}
	return fields, nil
}

// checkPrefix 校验 mac 为 XX:XX:XX，company_id 为 6 位十六进制，且两者一致。
func checkPrefix(mac, companyID string) error {
	if len(companyID) != 6 || !isHex(companyID) {
		return fmt.Errorf("%w: invalid company_id %q", ErrMalformedEntry, companyID)
	}
	want := companyID[0:2] + ":" + companyID[2:4] + ":" + companyID[4:6]
	if mac != want {
		return fmt.Errorf("%w: prefix %q does not match company_id %q", ErrMalformedEntry, mac, companyID)
	}
	return nil
}

// joinAddress 去除每行首尾空白、丢弃空行后以 "\n" 连接。
func joinAddress(lines []string) string {
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

func isHex(s string) bool {
	for i := range len(s) {
		c := s[i]
		if !('0' <= c && c <= '9' || 'A' <= c && c <= 'F' || 'a' <= c && c <= 'f') {
			return false
		}
	}
	return true
}

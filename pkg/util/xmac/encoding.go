package xmac

import (
	"encoding/json"
	"fmt"
)

// MarshalText 实现 [encoding.TextMarshaler]。
// 输出小写冒号格式，无效地址输出空字节切片。
func (a Addr) MarshalText() ([]byte, error) {
	if !a.IsValid() {
		return []byte{}, nil
	}
	return []byte(a.String()), nil
}

// UnmarshalText 实现 [encoding.TextUnmarshaler]。
// 先按 [Parse] 严格解析，失败时回退到 [ParseLoose]。空输入设置为零值。
func (a *Addr) UnmarshalText(text []byte) error {
	if a == nil {
		return ErrNilReceiver
	}
	if len(text) == 0 {
		*a = Addr{}
		return nil
	}
	parsed, err := parseAny(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// MarshalJSON 实现 [json.Marshaler]。
// 无效地址输出空字符串（""）。
func (a Addr) MarshalJSON() ([]byte, error) {
	s := a.String()
	buf := make([]byte, 0, len(s)+2)
	buf = append(buf, '"')
	buf = append(buf, s...)
	buf = append(buf, '"')
	return buf, nil
}

// UnmarshalJSON 实现 [json.Unmarshaler]。
// 空字符串或 null 设置为零值。
func (a *Addr) UnmarshalJSON(data []byte) error {
	if a == nil {
		return ErrNilReceiver
	}
	if string(data) == "null" {
		*a = Addr{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}
	if s == "" {
		*a = Addr{}
		return nil
	}
	parsed, err := parseAny(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

func parseAny(s string) (Addr, error) {
	addr, err := Parse(s)
	if err == nil {
		return addr, nil
	}
	if loose, looseErr := ParseLoose(s); looseErr == nil {
		return loose, nil
	}
	return Addr{}, err
}

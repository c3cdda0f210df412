package xmac

import (
	"strings"
	"testing"
)

func FuzzParseLoose(f *testing.F) {
	seeds := []string{
		"30:23:03:3A:F3:55",
		"30:f3:3:3A:f3:01",
		"a-b-c-d-e-f",
		"30:23:03:3A:F3",
		"30:23-03:3A:F3:55",
		"",
		":::::",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, s string) {
		addr, err := ParseLoose(s)
		if err != nil {
			return
		}
		// 成功解析的输入只由十六进制字符和单一分隔符组成
		if strings.ContainsAny(s, ":") && strings.ContainsAny(s, "-") {
			t.Fatalf("ParseLoose(%q) accepted mixed separators", s)
		}
		prefix := addr.CanonicalPrefix()
		if len(prefix) != 8 || prefix != strings.ToUpper(prefix) {
			t.Fatalf("CanonicalPrefix() = %q for %q", prefix, s)
		}
		if strings.ReplaceAll(prefix, ":", "") != addr.CompanyID() {
			t.Fatalf("CompanyID() %q does not match prefix %q", addr.CompanyID(), prefix)
		}
		again, err := ParseLoose(strings.ToUpper(NormalizePairs(s)))
		if err != nil || again != addr {
			t.Fatalf("normalized %q did not round-trip: %v, %v", s, again, err)
		}
	})
}

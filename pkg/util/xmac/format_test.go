package xmac

import "testing"

func TestAddr_FormatString(t *testing.T) {
	addr := Addr{bytes: [6]byte{0xaa, 0xbb, 0xcc, 0xdd, 0xee, 0xff}}

	tests := []struct {
		name   string
		format Format
		want   string
	}{
		{"colon", FormatColon, "aa:bb:cc:dd:ee:ff"},
		{"dash", FormatDash, "aa-bb-cc-dd-ee-ff"},
		{"dot", FormatDot, "aabb.ccdd.eeff"},
		{"bare", FormatBare, "aabbccddeeff"},
		{"colon_upper", FormatColonUpper, "AA:BB:CC:DD:EE:FF"},
		{"dash_upper", FormatDashUpper, "AA-BB-CC-DD-EE-FF"},
		{"unknown_format", Format(255), "aa:bb:cc:dd:ee:ff"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := addr.FormatString(tt.format); got != tt.want {
				t.Errorf("FormatString(%v) = %v, want %v", tt.format, got, tt.want)
			}
		})
	}

	t.Run("invalid_addr", func(t *testing.T) {
		if got := (Addr{}).FormatString(FormatColonUpper); got != "" {
			t.Errorf("zero.FormatString() = %q, want empty", got)
		}
	})
}

func TestAddr_CanonicalPrefix(t *testing.T) {
	tests := []struct {
		input      string
		wantPrefix string
		wantID     string
	}{
		{"30:23:03:3A:F3:55", "30:23:03", "302303"},
		{"30:f3:3:3A:f3:01", "30:F3:03", "30F303"},
		{"a-b-c-d-e-f", "0A:0B:0C", "0A0B0C"},
		{"0:0:0:0:0:0", "00:00:00", "000000"},
	}
	for _, tt := range tests {
		addr := MustParseLoose(tt.input)
		if got := addr.CanonicalPrefix(); got != tt.wantPrefix {
			t.Errorf("%q.CanonicalPrefix() = %q, want %q", tt.input, got, tt.wantPrefix)
		}
		if got := addr.CompanyID(); got != tt.wantID {
			t.Errorf("%q.CompanyID() = %q, want %q", tt.input, got, tt.wantID)
		}
	}
}

func TestFormatAllBytes(t *testing.T) {
	for i := 1; i <= 0xff; i++ {
		b := byte(i)
		addr := Addr{bytes: [6]byte{b, b, b, b, b, b}}

		parsed, err := ParseLoose(addr.FormatString(FormatColonUpper))
		if err != nil {
			t.Fatalf("ParseLoose(%q) error = %v", addr.FormatString(FormatColonUpper), err)
		}
		if parsed != addr {
			t.Errorf("round-trip failed for byte %02x: %v != %v", i, parsed, addr)
		}
		if got, want := len(addr.CanonicalPrefix()), 8; got != want {
			t.Errorf("len(CanonicalPrefix()) = %d, want %d", got, want)
		}
	}
}

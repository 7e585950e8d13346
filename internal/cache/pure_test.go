package cache

import "testing"

func TestHashIP(t *testing.T) {
	t.Parallel()

	t.Run("deterministic", func(t *testing.T) {
		t.Parallel()
		if hashIP("192.168.1.100") != hashIP("192.168.1.100") {
			t.Error("same IP must hash to the same bucket key")
		}
	})

	t.Run("sixteen hex chars", func(t *testing.T) {
		t.Parallel()
		for _, ip := range []string{"192.168.1.1", "127.0.0.1", "::1", "2001:0db8:85a3:0000:0000:8a2e:0370:7334", ""} {
			if got := hashIP(ip); len(got) != 16 {
				t.Errorf("hashIP(%q) length = %d, want 16", ip, len(got))
			}
		}
	})

	t.Run("distinct inputs diverge", func(t *testing.T) {
		t.Parallel()
		pairs := [][2]string{
			{"192.168.1.1", "192.168.1.2"},
			{"127.0.0.1", "::1"},
			{"8.8.8.8", "192.168.1.1"},
		}
		for _, pair := range pairs {
			if hashIP(pair[0]) == hashIP(pair[1]) {
				t.Errorf("hashIP collision between %q and %q", pair[0], pair[1])
			}
		}
	})
}

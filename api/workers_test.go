package api

import "testing"

func TestExpandAddressSpecInfersForm(t *testing.T) {
	cases := []struct {
		spec string
		want int
	}{
		{"10.0.0.0/30", 2},
		{"10.0.0.1-3", 3},
		{"10.0.0.1", 1},
	}
	for _, tc := range cases {
		t.Run(tc.spec, func(t *testing.T) {
			addrs, err := expandAddressSpec(tc.spec)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(addrs) != tc.want {
				t.Fatalf("got %d addresses, want %d", len(addrs), tc.want)
			}
		})
	}
}

func TestExpandAddressSpecRejectsBadInput(t *testing.T) {
	for _, spec := range []string{"", "bogus", "10.0.0.0/99", "10.0.0.9-1"} {
		t.Run(spec, func(t *testing.T) {
			if _, err := expandAddressSpec(spec); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

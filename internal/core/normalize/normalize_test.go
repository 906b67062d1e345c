package normalize

import "testing"

func TestKey_Table(t *testing.T) {
	tests := []struct {
		name string
		in   string
		out  string
	}{
		{"identity ascii", "whole milk", "whole milk"},
		{"utf8 repair drops invalid bytes", string([]byte{0xff, 'm', 'i', 'l', 'k', 0x80, ' ', 'x'}), "milk x"},
		{"case fold", "Whole MILK", "whole milk"},
		{"remove zero-widths", "oat\u200Bmi\u200Dlk", "oatmilk"},
		{"remove combining marks", "cafe\u0301 au lait", "cafe au lait"},
		{"precomposed accents", "Cr\u00e8me Fra\u00eeche", "creme fraiche"},
		{"width fold fullwidth", "\uFF2D\uFF29\uFF2C\uFF2B 1L", "milk 1l"},
		{"nfkd ligature", "\uFB01g jam", "fig jam"},
		{"collapse whitespace", "  organic \t bananas \n bunch ", "organic bananas bunch"},
		{"controls dropped", "egg\x00s\x7f", "eggs"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Key(tt.in); got != tt.out {
				t.Fatalf("Key(%q) = %q, want %q", tt.in, got, tt.out)
			}
		})
	}
}

func TestKey_Idempotent(t *testing.T) {
	for _, s := range []string{"Cr\u00e8me Fra\u00eeche", "\uFF2D\uFF29\uFF2C\uFF2B", "Oat  Milk"} {
		k := Key(s)
		if Key(k) != k {
			t.Fatalf("Key not idempotent for %q: %q -> %q", s, k, Key(k))
		}
	}
}

func TestTitle_KeepsCase(t *testing.T) {
	if got := Title("  Organic\tBananas,  Bunch\n"); got != "Organic Bananas, Bunch" {
		t.Fatalf("Title = %q", got)
	}
	if got := Title(""); got != "" {
		t.Fatalf("Title(empty) = %q", got)
	}
}

func TestSameItem(t *testing.T) {
	if !SameItem("Whole Milk", "whole  milk") {
		t.Fatalf("expected same item")
	}
	if SameItem("Whole Milk", "Skim Milk") {
		t.Fatalf("expected different items")
	}
}

func TestSanitize(t *testing.T) {
	cases := []struct{ in, want string }{
		{"plain title", "plain title"},
		{"Oat\tMilk\n1L", "Oat Milk 1L"},
		{"Eggs\x01 \u00a0Dozen", "Eggs  Dozen"},
		{"bad\xffbyte\u0085end", "badbyte end"},
	}
	for _, c := range cases {
		if got := Sanitize(c.in); got != c.want {
			t.Fatalf("Sanitize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

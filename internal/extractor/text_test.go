package extractor

import "testing"

func TestExtractDigits(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"￥2,990", "2990"},
		{"2990円(税込)", "2990"},
		{"", ""},
		{"SOLD OUT", ""},
		{"2990", "2990"},
	}
	for _, tt := range tests {
		if got := ExtractDigits(tt.in); got != tt.want {
			t.Errorf("ExtractDigits(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExtractDigitsIdempotent(t *testing.T) {
	once := ExtractDigits("￥12,345(税込)")
	if twice := ExtractDigits(once); twice != once {
		t.Errorf("second pass changed %q to %q", once, twice)
	}
}

func TestParsePrice(t *testing.T) {
	if p := parsePrice("￥5,990"); p == nil || *p != 5990 {
		t.Errorf("parsePrice = %v, want 5990", p)
	}
	if p := parsePrice("価格未定"); p != nil {
		t.Errorf("parsePrice without digits = %v, want nil", p)
	}
}

func TestTrimFullWidthParens(t *testing.T) {
	if got := trimFullWidthParens("（12）"); got != "12" {
		t.Errorf("got %q", got)
	}
	if got := trimFullWidthParens(" (7) "); got != "7" {
		t.Errorf("got %q", got)
	}
}

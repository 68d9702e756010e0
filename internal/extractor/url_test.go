package extractor

import "testing"

func TestCanonicalProductURL(t *testing.T) {
	tests := []struct {
		name string
		href string
		want string
	}{
		{
			"shop gid and did rebuilt",
			"/shop/nanouniverse/goods/detail?gid=12345&did=67890",
			"https://zozo.jp/shop/nanouniverse/goods-sale/12345/?did=67890",
		},
		{
			"missing did falls back to base resolution",
			"/shop/nanouniverse/goods/detail?gid=12345&rid=1061",
			"https://zozo.jp/shop/nanouniverse/goods/detail?gid=12345&rid=1061",
		},
		{
			"absolute href rebuilt",
			"https://zozo.jp/shop/beams/goods/detail?gid=777&did=888",
			"https://zozo.jp/shop/beams/goods-sale/777/?did=888",
		},
		{
			"no gid falls back to base resolution",
			"/shop/beams/goods/22222/",
			"https://zozo.jp/shop/beams/goods/22222/",
		},
		{
			"relative non-shop path",
			"/category/tops/?page=2",
			"https://zozo.jp/category/tops/?page=2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CanonicalProductURL("zozo.jp", tt.href)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCanonicalProductURLRespectsHost(t *testing.T) {
	got, err := CanonicalProductURL("staging.zozo.example", "/shop/acme/goods/detail?gid=1&did=2")
	if err != nil {
		t.Fatal(err)
	}
	if want := "https://staging.zozo.example/shop/acme/goods-sale/1/?did=2"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

package query

import "testing"

func TestResolvePagination(t *testing.T) {
	tests := []struct {
		name      string
		raw       map[string]any
		wantPage  int
		wantLimit int
		wantSkip  int
	}{
		{name: "defaults", raw: map[string]any{}, wantPage: 1, wantLimit: 50, wantSkip: 0},
		{name: "explicit", raw: map[string]any{"page": "2", "limit": "10"}, wantPage: 2, wantLimit: 10, wantSkip: 10},
		{name: "page one has no skip", raw: map[string]any{"page": "1", "limit": "77"}, wantPage: 1, wantLimit: 77, wantSkip: 0},
		{name: "non numeric", raw: map[string]any{"page": "abc", "limit": "ten"}, wantPage: 1, wantLimit: 50, wantSkip: 0},
		{name: "empty", raw: map[string]any{"page": "", "limit": " "}, wantPage: 1, wantLimit: 50, wantSkip: 0},
		{name: "zero", raw: map[string]any{"page": "0", "limit": "0"}, wantPage: 1, wantLimit: 50, wantSkip: 0},
		{name: "fractional", raw: map[string]any{"page": "2.5"}, wantPage: 1, wantLimit: 50, wantSkip: 0},
		{name: "repeated", raw: map[string]any{"page": []string{"1", "2"}}, wantPage: 1, wantLimit: 50, wantSkip: 0},
		{name: "clamped", raw: map[string]any{"page": "3", "limit": "1000"}, wantPage: 3, wantLimit: 100, wantSkip: 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ResolvePagination(tt.raw, 50, 100)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.Page != tt.wantPage || p.Limit != tt.wantLimit || p.Skip() != tt.wantSkip {
				t.Errorf("got page=%d limit=%d skip=%d, want page=%d limit=%d skip=%d",
					p.Page, p.Limit, p.Skip(), tt.wantPage, tt.wantLimit, tt.wantSkip)
			}
		})
	}
}

func TestResolvePagination_Negative(t *testing.T) {
	for _, raw := range []map[string]any{{"page": "-1"}, {"limit": "-5"}} {
		_, err := ResolvePagination(raw, 50, 100)
		assertBadRequest(t, err)
	}
}

func TestResolvePagination_PageOutOfRange(t *testing.T) {
	_, err := ResolvePagination(map[string]any{"page": "9223372036854775807", "limit": "2"}, 50, 100)
	assertBadRequest(t, err)

	p, err := ResolvePagination(map[string]any{"page": "4611686018427387904", "limit": "2"}, 50, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Skip() < 0 {
		t.Errorf("Skip() = %d, want non-negative", p.Skip())
	}
}

func TestSkipIsDerived(t *testing.T) {
	for page := 1; page <= 5; page++ {
		for limit := 1; limit <= 5; limit++ {
			p := Pagination{Page: page, Limit: limit}
			if p.Skip() != (page-1)*limit {
				t.Fatalf("skip for page=%d limit=%d = %d", page, limit, p.Skip())
			}
		}
	}
}

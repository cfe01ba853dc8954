package query

import (
	"net/url"
	"reflect"
	"testing"
)

func TestParseValues(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  map[string]any
	}{
		{
			name:  "empty",
			query: "",
			want:  map[string]any{},
		},
		{
			name:  "flat keys",
			query: "title=Shirt&page=2",
			want:  map[string]any{"title": "Shirt", "page": "2"},
		},
		{
			name:  "bracket operators",
			query: "price[gte]=50&price[lt]=100",
			want:  map[string]any{"price": map[string]any{"gte": "50", "lt": "100"}},
		},
		{
			name:  "repeated keys",
			query: "colors=red&colors=blue",
			want:  map[string]any{"colors": []string{"red", "blue"}},
		},
		{
			name:  "empty brackets append",
			query: "colors[]=red&colors[]=blue",
			want:  map[string]any{"colors": []string{"red", "blue"}},
		},
		{
			name:  "unbalanced bracket kept verbatim",
			query: "price[gte=50",
			want:  map[string]any{"price[gte": "50"},
		},
		{
			name:  "nested object wins over scalar",
			query: "price=5&price[gte]=4",
			want:  map[string]any{"price": map[string]any{"gte": "4"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatalf("bad test query: %v", err)
			}
			got := ParseValues(values)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseValues(%q) = %#v, want %#v", tt.query, got, tt.want)
			}
		})
	}
}

func TestSplitKey_DepthLimit(t *testing.T) {
	key := "a[b][c][d][e][f][g]"
	got := splitKey(key)
	if len(got) != 1 || got[0] != key {
		t.Errorf("expected over-deep key to stay flat, got %v", got)
	}
}

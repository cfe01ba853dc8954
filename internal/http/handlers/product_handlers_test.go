package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rogerio-castellano/catalog-api/internal/query"
)

func decode[T any](t *testing.T, body *strings.Reader) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(body).Decode(&v); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return v
}

func TestCreateProductHandler_Valid(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()

	w := sendJSON(r, http.MethodPost, "/products", validProductRequest("Red Shoes", 60), true)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d: %s", w.Code, w.Body.String())
	}

	resp := decode[dataResponse](t, strings.NewReader(w.Body.String()))
	if resp.Data["slug"] != "red-shoes" {
		t.Errorf("expected slug red-shoes, got %v", resp.Data["slug"])
	}
	if resp.Data["id"] == "" || resp.Data["id"] == nil {
		t.Error("expected an id")
	}
	category, ok := resp.Data["category"].(map[string]any)
	if !ok || category["name"] != "Shoes" || len(category) != 1 {
		t.Errorf("expected category {name: Shoes}, got %v", resp.Data["category"])
	}
	if _, ok := resp.Data["category_id"]; ok {
		t.Error("category id must not be exposed")
	}
}

func TestCreateProductHandler_Invalid(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()

	discounted := validProductRequest("Red Shoes", 60)
	tooHigh := 80.0
	discounted.PriceAfterDiscount = &tooHigh

	badCategory := validProductRequest("Red Shoes", 60)
	badCategory.Category = "shoes"

	tests := []struct {
		name          string
		payload       any
		expectedPaths []string
	}{
		{"empty body", map[string]any{}, []string{"title", "description", "quantity", "price", "image_cover", "category"}},
		{"short title", validProductRequest("ab", 60), []string{"title"}},
		{"negative price", validProductRequest("Red Shoes", -1), []string{"price"}},
		{"discount above price", discounted, []string{"price_after_discount"}},
		{"malformed category", badCategory, []string{"category"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := sendJSON(r, http.MethodPost, "/products", tt.payload, true)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
			}

			resp := decode[validationResponse](t, strings.NewReader(w.Body.String()))
			paths := resp.paths()
			if len(paths) != len(tt.expectedPaths) {
				t.Errorf("expected errors on %v, got %+v", tt.expectedPaths, resp.Errors)
			}
			for _, p := range tt.expectedPaths {
				if !paths[p] {
					t.Errorf("expected an error on %q, got %+v", p, resp.Errors)
				}
			}
			for _, e := range resp.Errors {
				if e.Type != "field" || e.Location != "body" || e.Msg == "" {
					t.Errorf("malformed error entry %+v", e)
				}
			}
		})
	}

	list := decode[listResponse](t, strings.NewReader(get(r, "/products").Body.String()))
	if list.Results != 0 {
		t.Errorf("rejected requests must not reach the store, found %d products", list.Results)
	}
}

func TestPrivateRoutesRequireToken(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()
	p := addProduct("Red Shoes", 60)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/products"},
		{http.MethodPut, "/products/" + p.ID},
		{http.MethodDelete, "/products/" + p.ID},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			w := sendJSON(r, tt.method, tt.path, validProductRequest("Red Shoes", 60), false)
			if w.Code != http.StatusUnauthorized {
				t.Errorf("expected 401, got %d", w.Code)
			}
		})
	}
}

func TestGetProductsHandler_Empty(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()

	w := get(r, "/products")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := strings.TrimSpace(w.Body.String()); got != `{"results":0,"page":1,"data":[]}` {
		t.Errorf("unexpected body %s", got)
	}
}

func TestGetProductsHandler_FilterAndPaginate(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()
	for price := 40; price < 65; price++ {
		addProduct(fmt.Sprintf("Product %d", price), float64(price))
	}

	w := get(r, "/products?price[gte]=50&page=2&limit=10")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	resp := decode[listResponse](t, strings.NewReader(w.Body.String()))
	if resp.Page != 2 {
		t.Errorf("expected page 2, got %d", resp.Page)
	}
	if resp.Results != 5 || len(resp.Data) != 5 {
		t.Fatalf("expected 5 results, got %d (%d items)", resp.Results, len(resp.Data))
	}
	if resp.Data[0]["price"] != 60.0 {
		t.Errorf("expected the second page to start at price 60, got %v", resp.Data[0]["price"])
	}
	for _, item := range resp.Data {
		if item["price"].(float64) < 50 {
			t.Errorf("price %v does not satisfy the filter", item["price"])
		}
	}
}

func TestGetProductsHandler_SortAndFields(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()
	addProduct("Blue Shoes", 40)
	addProduct("Gold Watch", 500)
	addProduct("Red Shoes", 60)

	w := get(r, "/products?sort=-price&fields=title")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	resp := decode[listResponse](t, strings.NewReader(w.Body.String()))
	want := []string{"Gold Watch", "Red Shoes", "Blue Shoes"}
	if len(resp.Data) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(resp.Data))
	}
	for i, title := range want {
		item := resp.Data[i]
		if item["title"] != title {
			t.Errorf("position %d: expected %s, got %v", i, title, item["title"])
		}
		if len(item) != 2 || item["id"] == nil {
			t.Errorf("expected only id and title, got %v", item)
		}
	}
}

func TestGetProductsHandler_BadQuery(t *testing.T) {
	r := newRouter()

	tests := []struct {
		name  string
		query string
	}{
		{"unknown field", "secret=1"},
		{"unknown operator", "price[regex]=1"},
		{"range on text", "title[gt]=a"},
		{"non numeric price", "price=cheap"},
		{"negative page", "page=-1"},
		{"page out of range", "page=9223372036854775807&limit=2"},
		{"not a number", "price[gte]=NaN"},
		{"infinite price", "price=Inf"},
		{"unknown sort", "sort=password"},
		{"unknown selection", "fields=password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(r, "/products?"+tt.query)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
			resp := decode[errorResponse](t, strings.NewReader(w.Body.String()))
			if resp.StatusCode != http.StatusBadRequest || resp.Message == "" {
				t.Errorf("unexpected error body %+v", resp)
			}
		})
	}
}

func TestGetProductsHandler_LimitIsClamped(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()
	for i := 0; i < 105; i++ {
		addProduct(fmt.Sprintf("Product %d", i), 10)
	}

	w := get(r, "/products?limit=1000")
	resp := decode[listResponse](t, strings.NewReader(w.Body.String()))
	if resp.Results != query.MaxLimit {
		t.Errorf("expected limit to be clamped to %d, got %d", query.MaxLimit, resp.Results)
	}
}

func TestGetProductByIDHandler(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()
	p := addProduct("Red Shoes", 60)

	t.Run("found", func(t *testing.T) {
		w := get(r, "/products/"+p.ID)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		resp := decode[dataResponse](t, strings.NewReader(w.Body.String()))
		if resp.Data["id"] != p.ID || resp.Data["title"] != "Red Shoes" {
			t.Errorf("unexpected product %v", resp.Data)
		}
		if c := resp.Data["category"].(map[string]any); c["name"] != "Shoes" {
			t.Errorf("expected populated category, got %v", c)
		}
	})

	t.Run("missing", func(t *testing.T) {
		id := uuid.NewString()
		w := get(r, "/products/"+id)
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
		resp := decode[errorResponse](t, strings.NewReader(w.Body.String()))
		if resp.Message != "no product for this id "+id || resp.StatusCode != http.StatusNotFound {
			t.Errorf("unexpected error body %+v", resp)
		}
	})

	t.Run("malformed id", func(t *testing.T) {
		w := get(r, "/products/42")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		resp := decode[validationResponse](t, strings.NewReader(w.Body.String()))
		if len(resp.Errors) != 1 || resp.Errors[0].Path != "id" || resp.Errors[0].Location != "params" {
			t.Errorf("unexpected errors %+v", resp.Errors)
		}
	})
}

func TestUpdateProductHandler(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()

	created := sendJSON(r, http.MethodPost, "/products", validProductRequest("Red Shoes", 60), true)
	id := decode[dataResponse](t, strings.NewReader(created.Body.String())).Data["id"].(string)

	t.Run("without title keeps slug", func(t *testing.T) {
		w := sendJSON(r, http.MethodPut, "/products/"+id, map[string]any{"price": 75}, true)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		resp := decode[dataResponse](t, strings.NewReader(w.Body.String()))
		if resp.Data["price"] != 75.0 || resp.Data["slug"] != "red-shoes" || resp.Data["title"] != "Red Shoes" {
			t.Errorf("unexpected product %v", resp.Data)
		}
	})

	t.Run("new title renews slug", func(t *testing.T) {
		w := sendJSON(r, http.MethodPut, "/products/"+id, map[string]any{"title": "Blue Running Shoes"}, true)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		resp := decode[dataResponse](t, strings.NewReader(w.Body.String()))
		if resp.Data["slug"] != "blue-running-shoes" {
			t.Errorf("expected slug blue-running-shoes, got %v", resp.Data["slug"])
		}
		if resp.Data["price"] != 75.0 {
			t.Errorf("expected price to be untouched, got %v", resp.Data["price"])
		}
	})

	t.Run("invalid field", func(t *testing.T) {
		w := sendJSON(r, http.MethodPut, "/products/"+id, map[string]any{"ratings_average": 9}, true)
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})

	t.Run("discount above stored price", func(t *testing.T) {
		w := sendJSON(r, http.MethodPut, "/products/"+id, map[string]any{"price_after_discount": 999}, true)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("discount below stored price", func(t *testing.T) {
		w := sendJSON(r, http.MethodPut, "/products/"+id, map[string]any{"price_after_discount": 50}, true)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("price below stored discount", func(t *testing.T) {
		w := sendJSON(r, http.MethodPut, "/products/"+id, map[string]any{"price": 40}, true)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("missing", func(t *testing.T) {
		missing := uuid.NewString()
		w := sendJSON(r, http.MethodPut, "/products/"+missing, map[string]any{"sold": 1}, true)
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
		resp := decode[errorResponse](t, strings.NewReader(w.Body.String()))
		if resp.Message != "no product for this id "+missing {
			t.Errorf("unexpected message %q", resp.Message)
		}
	})
}

func TestDeleteProductHandler(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()
	p := addProduct("Red Shoes", 60)

	w := sendJSON(r, http.MethodDelete, "/products/"+p.ID, nil, true)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Errorf("expected empty body, got %q", w.Body.String())
	}

	if w := get(r, "/products/"+p.ID); w.Code != http.StatusNotFound {
		t.Errorf("expected deleted product to be gone, got %d", w.Code)
	}
	if w := sendJSON(r, http.MethodDelete, "/products/"+p.ID, nil, true); w.Code != http.StatusNotFound {
		t.Errorf("expected second delete to be 404, got %d", w.Code)
	}
}

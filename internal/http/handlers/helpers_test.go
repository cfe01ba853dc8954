package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/rogerio-castellano/catalog-api/internal/auth"
	handler "github.com/rogerio-castellano/catalog-api/internal/http/handlers"
	"github.com/rogerio-castellano/catalog-api/internal/http/router"
	"github.com/rogerio-castellano/catalog-api/internal/models"
	"github.com/rogerio-castellano/catalog-api/internal/query"
	"github.com/rogerio-castellano/catalog-api/internal/repo"
	"golang.org/x/crypto/bcrypt"
)

const testDescription = "Comfortable everyday product for tests"

var (
	token       string
	productRepo *repo.InMemoryProductRepository
	shoes       models.Category
	issuer      = auth.NewIssuer("test-secret", time.Minute)
)

func init() {
	setupTestRepos("secret")

	var err error
	token, err = generateToken(newRouter(), "admin", "secret")
	if err != nil {
		panic(fmt.Sprintf("error generating token: %v", err))
	}
}

func setupTestRepos(password string) {
	productRepo = repo.NewInMemoryProductRepository()
	shoes = productRepo.AddCategory("Shoes")
	handler.SetProductRepo(productRepo)
	handler.SetComposer(query.NewComposer(query.DefaultLimit, query.MaxLimit))
	handler.SetIssuer(issuer)

	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	handler.SetAdmin(handler.Admin{Username: "admin", PasswordHash: string(hash)})
}

func newRouter() http.Handler {
	return router.NewRouter(router.Options{Issuer: issuer})
}

func clearAllProducts() {
	productRepo.Clear()
}

func generateToken(r http.Handler, username, password string) (string, error) {
	payload := handler.UserLogin{Username: username, Password: password}
	body, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp handler.LoginResult
	err := json.NewDecoder(w.Body).Decode(&resp)
	if err != nil {
		return "", fmt.Errorf("token decoding failed: %v", err)
	}
	return resp.Token, nil
}

func sendJSON(r http.Handler, method, path string, payload any, withToken bool) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		_ = json.NewEncoder(&body).Encode(payload)
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if withToken {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func validProductRequest(title string, price float64) handler.ProductRequest {
	quantity := 10
	return handler.ProductRequest{
		Title:       title,
		Description: testDescription,
		Quantity:    &quantity,
		Price:       &price,
		Colors:      []string{"red"},
		ImageCover:  "cover.png",
		Category:    shoes.ID,
	}
}

func addProduct(title string, price float64) models.Product {
	p, err := productRepo.Create(context.Background(), models.Product{
		Title:       title,
		Slug:        title,
		Description: testDescription,
		Quantity:    10,
		Price:       price,
		Colors:      []string{},
		Images:      []string{},
		CategoryID:  shoes.ID,
	})
	if err != nil {
		panic(err)
	}
	return p
}

type listResponse struct {
	Results int              `json:"results"`
	Page    int              `json:"page"`
	Data    []map[string]any `json:"data"`
}

type dataResponse struct {
	Data map[string]any `json:"data"`
}

type errorResponse struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
}

type validationResponse struct {
	Errors []struct {
		Type     string `json:"type"`
		Msg      string `json:"msg"`
		Path     string `json:"path"`
		Location string `json:"location"`
	} `json:"errors"`
}

func (v validationResponse) paths() map[string]bool {
	out := map[string]bool{}
	for _, e := range v.Errors {
		out[e.Path] = true
	}
	return out
}

package handlers

import (
	"github.com/rogerio-castellano/catalog-api/internal/auth"
	"github.com/rogerio-castellano/catalog-api/internal/query"
	repo "github.com/rogerio-castellano/catalog-api/internal/repo"
)

// Admin holds the credentials accepted by the login handler.
type Admin struct {
	Username     string
	PasswordHash string
}

var (
	productRepo repo.ProductRepository
	composer    = query.NewComposer(query.DefaultLimit, query.MaxLimit)
	issuer      *auth.Issuer
	admin       Admin
)

func SetProductRepo(r repo.ProductRepository) {
	productRepo = r
}

func SetComposer(c *query.Composer) {
	composer = c
}

func SetIssuer(i *auth.Issuer) {
	issuer = i
}

func SetAdmin(a Admin) {
	admin = a
}

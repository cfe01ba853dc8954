package handlers

import (
	"fmt"
	"net/http"

	"github.com/rogerio-castellano/catalog-api/internal/apperr"
	"golang.org/x/crypto/bcrypt"
)

// LoginHandler godoc
// @Summary Log in and return a JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body UserLogin true "Username and password"
// @Success 200 {object} LoginResult
// @Failure 400 {object} validation.Response
// @Failure 401 {object} apperr.Error
// @Router /login [post]
func LoginHandler(w http.ResponseWriter, r *http.Request) error {
	var creds UserLogin
	if err := readJSON(w, r, &creds); err != nil {
		return apperr.BadRequest("%s", err.Error())
	}

	if admin.Username == "" || admin.PasswordHash == "" || creds.Username != admin.Username {
		return apperr.Unauthorized("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(creds.Password)); err != nil {
		return apperr.Unauthorized("invalid credentials")
	}

	token, err := issuer.GenerateToken(admin.Username, "admin")
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}
	return writeJSON(w, http.StatusOK, LoginResult{Token: token})
}

// HealthHandler godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} HealthResult
// @Router /healthz [get]
func HealthHandler(w http.ResponseWriter, r *http.Request) error {
	return writeJSON(w, http.StatusOK, HealthResult{Status: "ok"})
}

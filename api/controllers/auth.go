package controllers

import (
	"net/http"
	"time"

	"github.com/novamart/orderhub-backend/api/responses"
	"github.com/novamart/orderhub-backend/api/validators"
	internalauth "github.com/novamart/orderhub-backend/internal/auth"
	pkgauth "github.com/novamart/orderhub-backend/pkg/auth"
	"github.com/novamart/orderhub-backend/pkg/config"
	"github.com/novamart/orderhub-backend/pkg/envelope"
	pkgerrors "github.com/novamart/orderhub-backend/pkg/errors"
	"github.com/novamart/orderhub-backend/pkg/logger"
)

// Login validates credentials and mints an access token.
func Login(svc internalauth.Service, jwtCfg config.JWTConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req internalauth.LoginRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.Validate(r.Context(), req.Username, req.Password)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodePersistence, err, "validate credentials"))
			return
		}
		if user == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "Invalid username or password"))
			return
		}

		token, err := pkgauth.MintAccessToken(jwtCfg, time.Now(), pkgauth.AccessTokenPayload{
			UserID:   user.ID,
			Username: user.Username,
			Role:     user.Role,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint token"))
			return
		}

		responses.WriteEnvelope(w, envelope.OkMsg(map[string]any{
			"token": token,
			"user":  user,
		}, "Login successful"))
	}
}

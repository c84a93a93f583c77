package controllers

import (
	"net/http"

	"github.com/novamart/orderhub-backend/api/responses"
	"github.com/novamart/orderhub-backend/pkg/config"
	"github.com/novamart/orderhub-backend/pkg/db"
	"github.com/novamart/orderhub-backend/pkg/envelope"
	"github.com/novamart/orderhub-backend/pkg/logger"
	"github.com/novamart/orderhub-backend/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-OrderHub-Env", cfg.App.Env)
		responses.WriteOk(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the hard dependencies before reporting ready.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-OrderHub-Env", cfg.App.Env)

		checks := map[string]string{}
		healthy := true

		if dbP != nil {
			if err := dbP.Ping(r.Context()); err != nil {
				checks["db"] = "down"
				healthy = false
				if logg != nil {
					logg.Error(r.Context(), "health.db", err)
				}
			} else {
				checks["db"] = "up"
			}
		}
		if redisP != nil {
			if err := redisP.Ping(r.Context()); err != nil {
				checks["redis"] = "down"
				healthy = false
				if logg != nil {
					logg.Error(r.Context(), "health.redis", err)
				}
			} else {
				checks["redis"] = "up"
			}
		}

		if !healthy {
			responses.WriteEnvelope(w, envelope.Fail(500, "dependencies unavailable"))
			return
		}
		responses.WriteOk(w, checks)
	}
}

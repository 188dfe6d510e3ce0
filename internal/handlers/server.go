package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Hopetizzy/Abisam-properties/internal/auth"
	"github.com/Hopetizzy/Abisam-properties/internal/cache"
	"github.com/Hopetizzy/Abisam-properties/internal/catalog"
	"github.com/Hopetizzy/Abisam-properties/internal/config"
	"github.com/Hopetizzy/Abisam-properties/internal/db"
	"github.com/Hopetizzy/Abisam-properties/internal/middleware"
	"github.com/Hopetizzy/Abisam-properties/internal/validation"
	"github.com/Hopetizzy/Abisam-properties/internal/whatsapp"
)

type Server struct {
	Cfg         *config.Config
	Cols        *db.Collections
	Val         *validation.Validator
	Log         *slog.Logger
	Cache       cache.Cache
	Catalog     *catalog.Holder
	CatalogRepo catalog.Repository
	Links       *whatsapp.Builder
}

func (s *Server) logWithRequest(r *http.Request) *slog.Logger {
	if r == nil {
		return s.Log
	}
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		return s.Log.With(slog.String("request_id", id))
	}
	return s.Log
}

func (s *Server) jwtManager() auth.Manager {
	return auth.Manager{
		Secret:     []byte(s.Cfg.JWTSecret),
		AccessTTL:  time.Duration(s.Cfg.AccessTTLMinutes) * time.Minute,
		RefreshTTL: time.Duration(s.Cfg.RefreshTTLMinutes) * time.Minute,
		Issuer:     "abisam-backend",
	}
}

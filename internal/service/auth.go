package service

import (
	"github.com/clerk/clerk-sdk-go/v2"
	"github.com/deppfellow/agro-backend/internal/server"
)

// AuthService configures the Clerk SDK. Session tokens are then verified by
// the auth middleware, and the active organization becomes the tenant.
type AuthService struct {
	server *server.Server
}

func NewAuthService(s *server.Server) *AuthService {
	clerk.SetKey(s.Config.Auth.SecretKey)
	return &AuthService{
		server: s,
	}
}

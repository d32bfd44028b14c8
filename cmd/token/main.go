// Command token mints an access token for an identity supplied on the
// command line. Identities come from the external auth provider; this is
// for operators and local testing.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"strings"

	"github.com/cmlabs-hris/hrops-backend-go/internal/config"
	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hrops-backend-go/internal/service/identity"
	serviceAuth "github.com/cmlabs-hris/hrops-backend-go/internal/service/auth"
)

func main() {
	var (
		userID      = flag.String("user-id", "", "user id claim")
		email       = flag.String("email", "", "email claim")
		name        = flag.String("name", "", "display name claim")
		role        = flag.String("role", string(user.RoleStaff), "role claim")
		permissions = flag.String("permissions", "", "comma separated explicit permissions")
	)
	flag.Parse()

	cfg, err := config.LoadJWT()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	req := auth.IssueTokenRequest{
		UserID: *userID,
		Email:  *email,
		Name:   *name,
		Role:   *role,
	}
	for _, p := range strings.Split(*permissions, ",") {
		if p = strings.TrimSpace(p); p != "" {
			req.Permissions = append(req.Permissions, p)
		}
	}

	// IssueToken never resolves employees
	svc := serviceAuth.NewAuthService(
		jwt.NewJWTService(cfg.Secret, cfg.AccessExpiration),
		user.NewPolicyGate(nil),
		identity.NewResolverWith(),
	)

	resp, err := svc.IssueToken(context.Background(), req)
	if err != nil {
		log.Fatalf("failed to issue token: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(resp); err != nil {
		log.Fatalf("failed to write token: %v", err)
	}
}

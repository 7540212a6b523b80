package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/clerk/clerk-sdk-go/v2"
	clerkhttp "github.com/clerk/clerk-sdk-go/v2/http"
	"github.com/labstack/echo/v4"

	"github.com/FatihBc/fsweb-s13g2-node-api-project-2/internal/errs"
	"github.com/FatihBc/fsweb-s13g2-node-api-project-2/internal/locale"
	"github.com/FatihBc/fsweb-s13g2-node-api-project-2/internal/server"
)

// AuthMiddleware guards write routes with Clerk session tokens when
// authentication is enabled in the config.
type AuthMiddleware struct {
	server *server.Server
}

func NewAuthMiddleware(s *server.Server) *AuthMiddleware {
	return &AuthMiddleware{
		server: s,
	}
}

// Optional returns RequireAuth when authentication is enabled and a
// pass-through middleware otherwise.
func (auth *AuthMiddleware) Optional() echo.MiddlewareFunc {
	if !auth.server.Config.Auth.Enabled {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}
	return auth.RequireAuth
}

// RequireAuth verifies the bearer token with Clerk and stores the session's
// user id and role in the echo context. Missing or invalid tokens get a 401
// in the errs.HTTPError shape.
func (auth *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		failure := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			body := errs.NewUnauthorizedError(Text(c, locale.AuthenticationMissing), false)

			w.Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w.WriteHeader(http.StatusUnauthorized)

			if err := json.NewEncoder(w).Encode(body); err != nil {
				GetLogger(c).Error().
					Err(err).
					Str("function", "RequireAuth").
					Dur("duration", time.Since(start)).
					Msg("failed to write JSON response")
				return
			}

			GetLogger(c).Warn().
				Str("function", "RequireAuth").
				Dur("duration", time.Since(start)).
				Msg("rejected request without a valid session token")
		})

		verified := func(c echo.Context) error {
			claims, ok := clerk.SessionClaimsFromContext(c.Request().Context())
			if !ok {
				GetLogger(c).Error().
					Str("function", "RequireAuth").
					Msg("could not get session claims from context")
				return errs.NewUnauthorizedError(Text(c, locale.AuthenticationMissing), false)
			}

			c.Set(UserIDKey, claims.Subject)
			c.Set(UserRoleKey, claims.ActiveOrganizationRole)

			GetLogger(c).Debug().
				Str("function", "RequireAuth").
				Str("user_id", claims.Subject).
				Msg("user authenticated successfully")

			return next(c)
		}

		return echo.WrapMiddleware(
			clerkhttp.WithHeaderAuthorization(
				clerkhttp.AuthorizationFailureHandler(failure),
			),
		)(verified)(c)
	}
}

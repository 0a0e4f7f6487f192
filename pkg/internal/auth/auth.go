package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/inkroot/inkroot/pkg/internal/models"
	"github.com/spf13/viper"
)

const CookieAccessToken = "access_token"

// Claims is the token payload handed over by the identity provider. The
// profile fields are used to provision a local account mirror on first sight.
type Claims struct {
	Fullname   string `json:"fullname"`
	Email      string `json:"email"`
	ProfileImg string `json:"profile_img"`

	jwt.RegisteredClaims
}

// NewToken signs a session token for the given account. Used by the dev
// tooling and tests; production tokens come from the identity provider.
func NewToken(user models.Account, duration time.Duration) (string, error) {
	claims := Claims{
		Fullname:   user.Fullname,
		Email:      user.Email,
		ProfileImg: user.ProfileImg,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(duration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(viper.GetString("security.jwt_secret")))
}

// ReadToken picks the session token out of the request, preferring the
// authorization header over the session cookie.
func ReadToken(c *fiber.Ctx) (string, error) {
	if rawHeader := c.Get(fiber.HeaderAuthorization); len(rawHeader) > 0 {
		token := strings.TrimSpace(strings.TrimPrefix(rawHeader, "Bearer"))
		if len(token) > 0 {
			return token, nil
		}
	}
	if rawCookie := c.Cookies(CookieAccessToken); len(rawCookie) > 0 {
		return rawCookie, nil
	}

	return "", fmt.Errorf("no token found in request")
}

// Authenticate verifies the token signature and returns its claims.
func Authenticate(tokenString string) (Claims, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(viper.GetString("security.jwt_secret")), nil
	})
	if err != nil {
		return claims, err
	}
	if !token.Valid {
		return claims, fmt.Errorf("invalid token")
	}

	return claims, nil
}

func EnsureAuthenticated(c *fiber.Ctx) error {
	if _, ok := c.Locals("user").(models.Account); !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
	}

	return nil
}

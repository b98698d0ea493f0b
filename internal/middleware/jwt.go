package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"glpidashboard/internal/models/dto"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
)

func VerifyToken(token, secret string) (*jwt.Token, error) {

	tokenVerify, err := jwt.Parse(token, func(newToken *jwt.Token) (any, error) {
		if _, isValid := newToken.Method.(*jwt.SigningMethodHMAC); !isValid {
			return nil, fmt.Errorf("unexpected signing method: %v", newToken.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		err = errors.New("failed to verify token: " + err.Error())
		return nil, err
	}
	return tokenVerify, nil
}

func DecodeTokenJWT(token, secret string) (jwt.MapClaims, error) {

	tokenVerify, err := VerifyToken(token, secret)

	if err != nil {
		err = errors.New("failed to decode token " + err.Error())
		return nil, err
	}

	claims, isOk := tokenVerify.Claims.(jwt.MapClaims)

	if isOk && tokenVerify.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}

// Auth requires a valid bearer token signed with secret. An empty secret
// turns authentication off.
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" || c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		token := c.GetHeader("Authorization")
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewAuthErrorResponse(c, "Token JWT não informado"))
			return
		}

		parts := strings.Split(token, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewAuthErrorResponse(c, "Formato do header Authorization inválido"))
			return
		}

		claims, err := DecodeTokenJWT(parts[1], secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewAuthErrorResponse(c, "Token de autorização inválido ou expirado"))
			return
		}

		c.Set("currentUser", claims)
		c.Next()
	}
}

package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/julienschmidt/httprouter"
)

type contextKey string

const userIDKey contextKey = "id"

// Claims carries the opaque user identity. Tokens are minted by the auth
// service; this server only verifies them.
type Claims struct {
	Id uint
	jwt.StandardClaims
}

// Validate gates a route behind a verified bearer token and hands the user
// id to the handler through the request context.
func (s *Server) Validate(h httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		header := r.Header.Get("Authorization")
		authHeader := strings.Split(header, " ")
		if len(authHeader) != 2 {
			s.Response(
				w, r,
				s.Error(http.StatusUnauthorized, "not authenticated", "Validate", header),
				http.StatusUnauthorized,
			)
			return
		}

		claims := &Claims{}
		parsed, err := jwt.ParseWithClaims(authHeader[1], claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(s.Cfg.AccessKey), nil
		})
		if err != nil || !parsed.Valid {
			s.Response(
				w, r,
				s.Error(http.StatusUnauthorized, "not authenticated or login expired", "Validate", authHeader[1]),
				http.StatusUnauthorized,
			)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, claims.Id)
		h(w, r.WithContext(ctx), p)
	}
}

// SignToken issues an HS256 token for the given user. The deployed system
// gets tokens from the auth service; this keeps local runs and tests going.
func (s *Server) SignToken(userID uint, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Id: userID,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(ttl).Unix(),
			Issuer:    "text-recitation",
		},
	})
	return token.SignedString([]byte(s.Cfg.AccessKey))
}

func requesterID(r *http.Request) uint {
	id, _ := r.Context().Value(userIDKey).(uint)
	return id
}

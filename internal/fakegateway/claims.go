package fakegateway

import (
	"context"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
)

func withClaims(r *http.Request, claims *jwt.RegisteredClaims) context.Context {
	return context.WithValue(r.Context(), ctxKey{}, claims)
}

func claimsFrom(r *http.Request) *jwt.RegisteredClaims {
	claims, _ := r.Context().Value(ctxKey{}).(*jwt.RegisteredClaims)
	if claims == nil {
		return &jwt.RegisteredClaims{}
	}
	return claims
}

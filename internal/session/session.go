// Package session binds a browsing session to the cart and reads the identity
// the upstream auth proxy established. Authentication itself happens outside
// this service; we trust the forwarded headers.
package session

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gofrs/uuid"

	"goldenbites/internal/apperror"
	"goldenbites/internal/order"
)

const (
	cookieName = "gb_session"

	headerUserID   = "X-User-ID"
	headerUserRole = "X-User-Role"
)

type ctxKey int

const sessionIDKey ctxKey = 0

// Middleware guarantees every request carries a session ID, minting a cookie
// on first contact.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := ""
		if c, err := r.Cookie(cookieName); err == nil && c.Value != "" {
			id = c.Value
		}
		if id == "" {
			sid, err := uuid.NewV4()
			if err != nil {
				http.Error(w, "failed to start session", http.StatusInternalServerError)
				return
			}
			id = sid.String()
			http.SetCookie(w, &http.Cookie{
				Name:     cookieName,
				Value:    id,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), sessionIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ID returns the request's session ID. Empty only when Middleware is missing.
func ID(r *http.Request) string {
	id, _ := r.Context().Value(sessionIDKey).(string)
	return id
}

// Identity reads the authenticated actor from the trusted headers.
func Identity(r *http.Request) (order.Actor, error) {
	rawID := r.Header.Get(headerUserID)
	if rawID == "" {
		return order.Actor{}, apperror.New(apperror.KindAuthorization, "authentication required")
	}
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || id <= 0 {
		return order.Actor{}, apperror.New(apperror.KindAuthorization, "invalid identity")
	}

	role := r.Header.Get(headerUserRole)
	switch role {
	case order.RoleShop, order.RoleCustomer:
	default:
		return order.Actor{}, apperror.New(apperror.KindAuthorization, "invalid role")
	}

	return order.Actor{ID: id, Role: role}, nil
}

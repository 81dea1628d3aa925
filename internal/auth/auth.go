// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package auth determines the user making a request.
package auth

import (
	"context"
	"net/http"

	"github.com/curioswitch/go-usegcp/middleware/firebaseauth"
)

type userIDKey struct{}

// WithUserID returns a context for requests made by userID.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// UserID returns the user of the request, or "" if there is none.
func UserID(ctx context.Context) string {
	uid, _ := ctx.Value(userIDKey{}).(string)
	return uid
}

// NewMiddleware returns middleware setting the user of requests. With useFirebase, the user
// is the UID of the token verified by firebaseauth middleware, which must run first.
// Otherwise, every request is made by defaultUserID. Requests without a user are rejected.
func NewMiddleware(useFirebase bool, defaultUserID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			uid := defaultUserID
			if useFirebase {
				uid = ""
				if tok := firebaseauth.TokenFromContext(r.Context()); tok != nil {
					uid = tok.UID
				}
			}
			if uid == "" {
				http.Error(w, "unauthenticated", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), uid)))
		})
	}
}

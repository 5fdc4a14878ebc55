package middleware

import "net/http"

// Middleware is a function that wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// Chain applies middleware in order: the first middleware is the outermost wrapper.
func Chain(handler http.Handler, mw ...Middleware) http.Handler {
	return Stack(mw...)(handler)
}

// Stack composes mw into a single Middleware, first outermost.
func Stack(mw ...Middleware) Middleware {
	return func(handler http.Handler) http.Handler {
		for i := len(mw) - 1; i >= 0; i-- {
			if mw[i] != nil {
				handler = mw[i](handler)
			}
		}
		return handler
	}
}

package middleware

import (
	"net/http"
	"strconv"
	"strings"
)

// FormCORS describes the CORS headers a form endpoint sends. The landing
// page forms answer preflights more loosely than the POST itself.
type FormCORS struct {
	// PreflightOrigin is sent on OPTIONS responses ("*" allows any origin).
	PreflightOrigin string
	// Origin is sent on other responses.
	Origin string
	// EchoOrigin sends the request's Origin header instead of Origin when present.
	EchoOrigin bool
	// AdvertiseOnResponse repeats the allowed methods/headers on non-preflight responses.
	AdvertiseOnResponse bool
	Methods             string
	Headers             string
	MaxAge              int
}

// CORS applies a FormCORS policy. OPTIONS requests get the preflight headers
// and are then passed on so the route can answer them.
func CORS(policy FormCORS) func(http.Handler) http.Handler {
	if policy.Methods == "" {
		policy.Methods = "POST, OPTIONS"
	}
	if policy.Headers == "" {
		policy.Headers = "Content-Type"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			if r.Method == http.MethodOptions {
				h.Set("Access-Control-Allow-Origin", policy.PreflightOrigin)
				h.Set("Access-Control-Allow-Methods", policy.Methods)
				h.Set("Access-Control-Allow-Headers", policy.Headers)
				if policy.MaxAge > 0 {
					h.Set("Access-Control-Max-Age", strconv.Itoa(policy.MaxAge))
				}
				next.ServeHTTP(w, r)
				return
			}

			origin := policy.Origin
			if policy.EchoOrigin {
				if reqOrigin := strings.TrimSpace(r.Header.Get("Origin")); reqOrigin != "" {
					origin = reqOrigin
					h.Add("Vary", "Origin")
				}
			}
			if origin != "" {
				h.Set("Access-Control-Allow-Origin", origin)
			}
			if policy.AdvertiseOnResponse {
				h.Set("Access-Control-Allow-Methods", policy.Methods)
				h.Set("Access-Control-Allow-Headers", policy.Headers)
			}
			next.ServeHTTP(w, r)
		})
	}
}

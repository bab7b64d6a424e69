package middleware

import (
	"net/http"
)

// APIContentSecurityPolicy forbids every resource type. Responses are JSON or
// uploaded files, neither of which should load anything.
const APIContentSecurityPolicy = "default-src 'none'; frame-ancestors 'none'"

// SecurityHeadersWithCSP adds hardening headers to every response.
// HSTS is only sent when isHTTPS is set, CSP only when csp is non-empty.
func SecurityHeadersWithCSP(isHTTPS bool, csp string) func(http.Handler) http.Handler {
	static := map[string]string{
		"X-Frame-Options":        "DENY",
		"X-Content-Type-Options": "nosniff",
		"Referrer-Policy":        "no-referrer",
		"Permissions-Policy":     "camera=(), microphone=(), geolocation=(), payment=()",
	}
	if csp != "" {
		static["Content-Security-Policy"] = csp
	}
	if isHTTPS {
		static["Strict-Transport-Security"] = "max-age=31536000; includeSubDomains"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			headers := w.Header()
			for k, v := range static {
				headers.Set(k, v)
			}
			next.ServeHTTP(w, r)
		})
	}
}

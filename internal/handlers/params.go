package handlers

import "net/http"

// getParam returns a path or query parameter value regardless of whether
// the router stores it with a leading colon or not. It also supports the
// standard net/http PathValue API available in recent Go versions.
func getParam(r *http.Request, name string) string {
	if r == nil {
		return ""
	}

	if val := r.URL.Query().Get(":" + name); val != "" {
		return val
	}

	if val := r.URL.Query().Get(name); val != "" {
		return val
	}

	return r.PathValue(name)
}

// customerID returns the authenticated customer's id placed in the request
// context by the JWT middleware.
func customerID(r *http.Request) string {
	id, _ := r.Context().Value("customer_id").(string)
	return id
}

// accountID returns the authenticated portal account id from the request
// context.
func accountID(r *http.Request) string {
	id, _ := r.Context().Value("account_id").(string)
	return id
}

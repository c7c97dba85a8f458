package health

import (
	"encoding/json"
	"net/http"
)

// Response is the payload for the health endpoint.
type Response struct {
	Status   string `json:"status"`
	Function string `json:"function"`
	Version  string `json:"version"`
}

// Handler reports liveness along with the deployed function name and build version.
func Handler(function, version string) http.HandlerFunc {
	payload := Response{Status: "healthy", Function: function, Version: version}
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(payload)
	}
}

package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
)

// A local stand-in for the country directory and the search provider.
// Point COUNTRIES_API_URL at http://localhost:8081/v3.1/all and
// SEARCH_API_URL at http://localhost:8081/search.
func main() {
	http.HandleFunc("/v3.1/all", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]interface{}{
			{"name": map[string]interface{}{"common": "Nigeria", "official": "Federal Republic of Nigeria"}},
			{"name": map[string]interface{}{"common": "Ghana", "official": "Republic of Ghana"}},
			{"name": map[string]interface{}{"common": "Canada", "official": "Canada"}},
		})
	})

	http.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("api_key") == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]interface{}{"error": "Invalid API key."})
			return
		}

		switch q.Get("engine") {
		case "google_jobs":
			writeJSON(w, http.StatusOK, map[string]interface{}{
				"jobs_results": []map[string]interface{}{
					{"title": "Backend Engineer", "company_name": "Acme", "location": "Lagos, Nigeria", "via": "LinkedIn"},
				},
			})
		case "google_news":
			writeJSON(w, http.StatusOK, map[string]interface{}{
				"news_results": []map[string]interface{}{
					{"position": 1, "title": "Mock headline", "source": map[string]interface{}{"name": "Mock Times"}, "link": "https://example.org/news/1"},
				},
			})
		default:
			writeJSON(w, http.StatusOK, map[string]interface{}{
				"search_information": map[string]interface{}{"total_results": 2},
				"organic_results": []map[string]interface{}{
					{"source": "Example", "link": "https://example.org/a", "favicon": "https://example.org/favicon.ico", "snippet": "Fully funded " + q.Get("q"), "date": "Mar 1, 2024"},
					{"source": "Example", "link": "https://example.org/b", "snippet": "Apply now"},
				},
			})
		}
	})

	slog.Info("Mock provider server running on :8081")
	if err := http.ListenAndServe(":8081", nil); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

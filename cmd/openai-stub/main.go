// openai-stub is a tiny OpenAI-compatible server returning a canned poem.
// Point gopoem at it with --llm.base for offline runs and integration tests.
package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strings"
)

type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func main() {
	model := os.Getenv("MODEL_ID")
	if strings.TrimSpace(model) == "" {
		model = "test-model"
	}
	addr := os.Getenv("ADDR")
	if strings.TrimSpace(addr) == "" {
		addr = ":8081"
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/models", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"id": model, "object": "model"}},
		})
	})
	mux.HandleFunc("/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		var req chatRequest
		_ = json.NewDecoder(r.Body).Decode(&req)

		// Echo the date from the user prompt back into the canned poem so
		// cache keys and output stay distinguishable per request.
		date := "today"
		if len(req.Messages) >= 2 {
			user := req.Messages[1].Content
			if i := strings.Index(user, "about the date "); i >= 0 {
				rest := user[i+len("about the date "):]
				if j := strings.Index(rest, ". "); j > 0 {
					date = rest[:j]
				}
			}
		}
		content := "A stanza for " + date + ",\nwritten by a stub, not a muse;\n" +
			"it rhymes with nothing, costs no tokens,\nand is only meant for local use."

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": content}},
			},
			"usage": map[string]int{"prompt_tokens": 42, "completion_tokens": 24, "total_tokens": 66},
		})
	})

	log.Printf("openai-stub listening on %s (model=%s)", addr, model)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatal(err)
	}
}

package ollama

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClient_Generate(t *testing.T) {
	t.Run("non streaming", func(t *testing.T) {
		var received GenerateRequest
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/generate", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
			fmt.Fprint(w, `{"model":"llama3","response":"[{\"id\":1,\"quantity\":2}]","done":true}`)
		}))
		defer server.Close()

		c := NewClient(server.URL + "/")
		out, err := c.Generate(context.Background(), GenerateRequest{
			Model:  "llama3",
			Prompt: "allocate",
			Options: Options{
				Temperature: 0.6,
				Stop:        []string{"```"},
			},
		}, nil)
		require.NoError(t, err)
		require.Equal(t, `[{"id":1,"quantity":2}]`, out)
		require.False(t, received.Stream)
		require.Equal(t, "llama3", received.Model)
		require.Equal(t, []string{"```"}, received.Options.Stop)
	})

	t.Run("streaming", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			req := GenerateRequest{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			require.True(t, req.Stream)
			fmt.Fprintln(w, `{"response":"Hello","done":false}`)
			fmt.Fprintln(w, ``)
			fmt.Fprintln(w, `{"response":" there","done":false}`)
			fmt.Fprintln(w, `{"response":"","done":true}`)
		}))
		defer server.Close()

		chunks := []string{}
		out, err := NewClient(server.URL).Generate(context.Background(), GenerateRequest{Model: "llama3"}, func(s string) {
			chunks = append(chunks, s)
		})
		require.NoError(t, err)
		require.Equal(t, "Hello there", out)
		require.Equal(t, []string{"Hello", " there"}, chunks)
	})

	t.Run("empty response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"response":"  ","done":true}`)
		}))
		defer server.Close()

		_, err := NewClient(server.URL).Generate(context.Background(), GenerateRequest{}, nil)
		require.ErrorIs(t, err, ErrEmptyResponse)
	})

	t.Run("error status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"error":"model 'llama9' not found"}`)
		}))
		defer server.Close()

		_, err := NewClient(server.URL).Generate(context.Background(), GenerateRequest{Model: "llama9"}, nil)
		require.ErrorContains(t, err, "model 'llama9' not found")
	})
}

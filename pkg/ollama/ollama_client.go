package ollama

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

var ErrEmptyResponse = errors.New("empty response from model")

type Client struct {
	HttpClient *http.Client
	BaseUrl    string
}

func NewClient(baseUrl string) Client {
	return Client{
		HttpClient: &http.Client{},
		BaseUrl:    strings.TrimSuffix(baseUrl, "/"),
	}
}

type Options struct {
	NumPredict    int      `json:"num_predict,omitempty"`
	Temperature   float64  `json:"temperature"`
	TopP          float64  `json:"top_p,omitempty"`
	TopK          int      `json:"top_k,omitempty"`
	RepeatPenalty float64  `json:"repeat_penalty,omitempty"`
	Stop          []string `json:"stop,omitempty"`
}

type GenerateRequest struct {
	Model   string  `json:"model"`
	Prompt  string  `json:"prompt"`
	Stream  bool    `json:"stream"`
	Options Options `json:"options"`
}

type GenerateResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
	Error    string `json:"error,omitempty"`
}

// Generate calls /api/generate. If onChunk is set the response is
// streamed and onChunk is called with every piece as it arrives; the
// returned string is always the full text.
func (c Client) Generate(ctx context.Context, req GenerateRequest, onChunk func(string)) (string, error) {
	req.Stream = onChunk != nil

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal generate request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseUrl+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	response, err := c.HttpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to call ollama: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		responseBytes, err := io.ReadAll(response.Body)
		if err != nil {
			return "", fmt.Errorf("received status code %d and failed to read body: %w", response.StatusCode, err)
		}
		errJson := GenerateResponse{}
		if err := json.Unmarshal(responseBytes, &errJson); err == nil && errJson.Error != "" {
			return "", fmt.Errorf("failed with status code %d: %s", response.StatusCode, errJson.Error)
		}
		return "", fmt.Errorf("failed with status code %d: %s", response.StatusCode, string(responseBytes))
	}

	var out string
	if req.Stream {
		out, err = readStream(response.Body, onChunk)
	} else {
		out, err = readSingle(response.Body)
	}
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(out) == "" {
		return "", ErrEmptyResponse
	}
	return out, nil
}

func readSingle(r io.Reader) (string, error) {
	responseJson := GenerateResponse{}
	if err := json.NewDecoder(r).Decode(&responseJson); err != nil {
		return "", fmt.Errorf("failed to decode generate response: %w", err)
	}
	if responseJson.Error != "" {
		return "", fmt.Errorf("ollama error: %s", responseJson.Error)
	}
	return responseJson.Response, nil
}

// the streaming body is newline delimited json, one chunk per line
func readStream(r io.Reader, onChunk func(string)) (string, error) {
	var sb strings.Builder
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		chunk := GenerateResponse{}
		if err := json.Unmarshal(line, &chunk); err != nil {
			return "", fmt.Errorf("failed to decode stream chunk: %w", err)
		}
		if chunk.Error != "" {
			return "", fmt.Errorf("ollama error: %s", chunk.Error)
		}
		if chunk.Response != "" {
			sb.WriteString(chunk.Response)
			onChunk(chunk.Response)
		}
		if chunk.Done {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("failed to read stream: %w", err)
	}

	return sb.String(), nil
}

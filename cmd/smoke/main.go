// Command smoke walks a running server through the draft lifecycle:
// open, stage an image, save blocks, commit, then read the public page.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"time"

	"blog-publishing-be/internal/config"

	"github.com/fatih/color"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

// A 1x1 transparent PNG.
var samplePNG = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d, 0x49, 0x48, 0x44, 0x52,
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01, 0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4,
	0x89, 0x00, 0x00, 0x00, 0x0d, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49, 0x45, 0x4e, 0x44, 0xae,
	0x42, 0x60, 0x82,
}

var (
	baseURL string
	token   string
)

func adminToken(secret string) (string, error) {
	if t := os.Getenv("ADMIN_TOKEN"); t != "" {
		return t, nil
	}
	claims := jwt.MapClaims{
		"user_id": uuid.NewString(),
		"role":    "admin",
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func send(method, path, contentType string, body io.Reader) (*envelope, int, error) {
	req, err := http.NewRequest(method, baseURL+path, body)
	if err != nil {
		return nil, 0, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("decode response: %w", err)
	}
	return &env, resp.StatusCode, nil
}

func sendJSON(method, path string, payload any) (*envelope, int, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, 0, err
		}
		body = bytes.NewReader(data)
	}
	return send(method, path, "application/json", body)
}

func must(step string, env *envelope, status int, err error, target any) {
	if err != nil {
		color.Red("[%s] failed: %v", step, err)
		os.Exit(1)
	}
	if !env.Success {
		color.Red("[%s] status %d: %s %s", step, status, env.Message, string(env.Errors))
		os.Exit(1)
	}
	color.Green("[%s] status %d", step, status)
	if target != nil {
		if err := json.Unmarshal(env.Data, target); err != nil {
			color.Red("[%s] unexpected payload: %v", step, err)
			os.Exit(1)
		}
	}
}

func main() {
	cfg := config.Load()
	baseURL = cfg.App.BaseURL + "/api"

	var err error
	token, err = adminToken(cfg.App.JwtSecret)
	if err != nil {
		color.Red("Failed to build admin token: %v", err)
		os.Exit(1)
	}

	color.Cyan("Starting draft lifecycle smoke test against %s\n", baseURL)

	color.Yellow("\n1. Open draft")
	var draft struct {
		Id string `json:"id"`
	}
	env, status, err := sendJSON(http.MethodPost, "/draft/v1", map[string]any{})
	must("open", env, status, err, &draft)

	color.Yellow("\n2. Stage image")
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, _ := w.CreateFormFile("file", "pixel.png")
	_, _ = part.Write(samplePNG)
	_ = w.Close()
	var staged struct {
		TemporaryId string `json:"temporary_id"`
	}
	env, status, err = send(http.MethodPost, "/draft/v1/"+draft.Id+"/assets", w.FormDataContentType(), &buf)
	must("stage", env, status, err, &staged)

	color.Yellow("\n3. Save blocks")
	doc := map[string]any{
		"blocks": []map[string]any{
			{"type": "header", "data": map[string]any{"text": "Smoke test", "level": 2}},
			{"type": "paragraph", "data": map[string]any{"text": "Written by <b>cmd/smoke</b>."}},
			{"type": "image", "data": map[string]any{
				"file":    map[string]any{"tempId": staged.TemporaryId, "name": "pixel.png"},
				"caption": "a single pixel",
			}},
		},
	}
	env, status, err = sendJSON(http.MethodPut, "/draft/v1/"+draft.Id+"/blocks", doc)
	must("set blocks", env, status, err, nil)

	color.Yellow("\n4. Commit")
	var committed struct {
		Slug     string `json:"slug"`
		Uploaded []struct {
			Url string `json:"url"`
		} `json:"uploaded"`
	}
	env, status, err = sendJSON(http.MethodPost, "/draft/v1/"+draft.Id+"/commit", map[string]any{
		"title":        "Smoke test " + time.Now().Format("20060102-150405"),
		"is_published": true,
	})
	must("commit", env, status, err, &committed)
	for _, u := range committed.Uploaded {
		color.White("  uploaded %s", u.Url)
	}

	color.Yellow("\n5. Read public page")
	var page struct {
		Html string `json:"html"`
	}
	env, status, err = sendJSON(http.MethodGet, "/public/post/v1/"+committed.Slug, nil)
	must("public", env, status, err, &page)
	fmt.Println(page.Html)

	color.Cyan("\nDone: /posts/%s", committed.Slug)
}

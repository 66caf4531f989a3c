package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/fatih/color"
)

// Walks a running server through the document lifecycle:
// go run ./scripts/smoke_api.go [base url]

var baseURL = "http://localhost:3000/api"

func prettyPrint(body []byte) {
	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		fmt.Println(string(body))
		return
	}
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

func sendRequest(method, path string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+path, bodyReader)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func step(title, method, path string, body interface{}, wantStatus int) map[string]interface{} {
	color.Yellow("\n%s", title)
	resp, raw, err := sendRequest(method, path, body)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	if resp.StatusCode != wantStatus {
		color.Red("Status: %s (want %d)", resp.Status, wantStatus)
		prettyPrint(raw)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	prettyPrint(raw)

	var parsed map[string]interface{}
	_ = json.Unmarshal(raw, &parsed)
	return parsed
}

func main() {
	if len(os.Args) > 1 {
		baseURL = os.Args[1]
	}
	color.Cyan("🚀 Starting document sync smoke test against %s\n", baseURL)

	subjects := step("1. List subjects", "GET", "/subject/v1", nil, http.StatusOK)
	data, _ := subjects["data"].(map[string]interface{})
	subject, _ := data["default_subject_id"].(string)
	if subject == "" {
		color.Red("No subjects, run the seeder first")
		os.Exit(1)
	}

	subjectPath := "/subject/v1/" + url.PathEscape(subject) + "/subtopics"
	step("2. Add subtopic", "POST", subjectPath, map[string]string{"name": "Smoke Tests"}, http.StatusCreated)
	step("3. List subtopics", "GET", subjectPath, nil, http.StatusOK)

	created := step("4. Create document", "POST", "/document/v1", map[string]interface{}{
		"title":        "Smoke test document",
		"content_html": `<h1>Heading</h1><p class="ql-align-center">Body <script>alert(1)</script></p>`,
		"subject_id":   subject,
		"subtopic_id":  "Smoke Tests",
	}, http.StatusCreated)
	doc, _ := created["data"].(map[string]interface{})
	id, _ := doc["id"].(string)

	query := "?subject_id=" + url.QueryEscape(subject) + "&subtopic_id=" + url.QueryEscape("Smoke Tests")
	step("5. List subtopic documents", "GET", "/document/v1"+query, nil, http.StatusOK)

	step("6. Render previews", "POST", "/render/v1/preview", map[string]interface{}{
		"title":        "Smoke test document",
		"content_html": doc["content_html"],
	}, http.StatusOK)

	step("7. Empty content is rejected", "PUT", "/document/v1/"+id, map[string]interface{}{
		"title":        "Smoke test document",
		"content_html": "<p><br></p>",
	}, http.StatusBadRequest)

	step("8. Delete document", "DELETE", "/document/v1/"+id, nil, http.StatusOK)
	step("9. Deleted document is gone", "GET", "/document/v1/"+id, nil, http.StatusNotFound)
	step("10. Dashboard", "GET", "/dashboard/v1/stats", nil, http.StatusOK)

	color.Green("\n✅ Smoke test passed")
}

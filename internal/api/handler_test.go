package api

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestHealthEndpoint(t *testing.T) {
	app := NewApp()

	req := httptest.NewRequest("GET", "/api/health", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	var result map[string]string
	if err := json.Unmarshal(body, &result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if result["status"] != "ok" {
		t.Errorf("expected status=ok, got %q", result["status"])
	}
	if result["engine"] != "fiber" {
		t.Errorf("expected engine=fiber, got %q", result["engine"])
	}
}

func TestAnalyseRequiresFile(t *testing.T) {
	app := NewApp()

	req := httptest.NewRequest("POST", "/api/analyse", nil)
	req.Header.Set("Content-Type", "multipart/form-data; boundary=----test")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	if resp.StatusCode == fiber.StatusOK {
		t.Error("expected non-200 for missing file")
	}
}

func TestAnalyseRejectsNonPDF(t *testing.T) {
	app := NewApp()

	resp, err := app.Test(uploadRequest(t, "statement.txt", []byte("hello")))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}

// An unreadable PDF is not a request error: the analyser answers success
// with zero transactions and a diagnostic log.
func TestAnalyseUnreadableDocumentYieldsEmptyResult(t *testing.T) {
	app := NewApp()

	resp, err := app.Test(uploadRequest(t, "statement.pdf", []byte("not really a pdf")), -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	var result AnalyseResponse
	if err := json.Unmarshal(body, &result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !result.Success {
		t.Error("expected success=true")
	}
	if result.Transactions == nil {
		t.Error("transactions must be an empty array, never null")
	}
	if len(result.Transactions) != 0 {
		t.Errorf("expected no transactions, got %d", len(result.Transactions))
	}
	if len(result.Logs) == 0 {
		t.Error("expected a diagnostic log")
	}
}

func uploadRequest(t *testing.T, filename string, content []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("building form: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("writing form file: %v", err)
	}
	mw.Close()

	req := httptest.NewRequest("POST", "/api/analyse", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

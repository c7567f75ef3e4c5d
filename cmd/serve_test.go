package cmd

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewServeHandlerServesSessionTable(t *testing.T) {
	t.Parallel()

	handler := newServeHandler(newTestSession(t))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", res.Code)
	}
	body := res.Body.String()
	if !strings.Contains(body, "<title>Позиции продуктов</title>") {
		t.Fatalf("expected configured title, got:\n%s", body)
	}
	if strings.Index(body, "Milk") > strings.Index(body, "Bread") {
		t.Fatalf("expected rows in price per kg order, got:\n%s", body)
	}
}

func TestNewServeHandlerSearch(t *testing.T) {
	t.Parallel()

	handler := newServeHandler(newTestSession(t))

	req := httptest.NewRequest(http.MethodGet, "/api/records?q=bread", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", res.Code)
	}
	if !strings.Contains(res.Body.String(), `"count":1`) {
		t.Fatalf("unexpected response: %s", res.Body.String())
	}
}

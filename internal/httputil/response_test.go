package httputil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWriteSuccess_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteSuccess(rec, http.StatusCreated, map[string]string{"id": "1"}, "Created")

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q, want application/json", ct)
	}

	var envelope map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}

	// The envelope's statusCode mirrors the HTTP status.
	if envelope["statusCode"] != float64(201) {
		t.Errorf("statusCode = %v, want 201", envelope["statusCode"])
	}
	if envelope["success"] != true {
		t.Errorf("success = %v, want true", envelope["success"])
	}
	if envelope["message"] != "Created" {
		t.Errorf("message = %v, want Created", envelope["message"])
	}
	if _, ok := envelope["data"]; !ok {
		t.Error("envelope missing data field")
	}
}

func TestWriteError_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteError(rec, http.StatusBadRequest, "Invalid input")

	var envelope map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}

	if envelope["success"] != false {
		t.Errorf("success = %v, want false", envelope["success"])
	}
	if envelope["statusCode"] != float64(400) {
		t.Errorf("statusCode = %v, want 400", envelope["statusCode"])
	}

	// Errors is always present, even when empty.
	errs, ok := envelope["errors"].([]interface{})
	if !ok {
		t.Fatalf("errors = %v, want an array", envelope["errors"])
	}
	if len(errs) != 0 {
		t.Errorf("errors = %v, want empty", errs)
	}
}

func TestSetAuthCookies_Policy(t *testing.T) {
	rec := httptest.NewRecorder()

	SetAuthCookies(rec, "access-token-value", "refresh-token-value", 900, 864000)

	cookies := rec.Result().Cookies()
	if len(cookies) != 2 {
		t.Fatalf("got %d cookies, want 2", len(cookies))
	}

	byName := map[string]*http.Cookie{}
	for _, c := range cookies {
		byName[c.Name] = c
	}

	access, ok := byName[AccessTokenCookie]
	if !ok {
		t.Fatalf("missing %s cookie", AccessTokenCookie)
	}
	refresh, ok := byName[RefreshTokenCookie]
	if !ok {
		t.Fatalf("missing %s cookie", RefreshTokenCookie)
	}

	for _, c := range []*http.Cookie{access, refresh} {
		if !c.HttpOnly {
			t.Errorf("%s cookie should be HttpOnly", c.Name)
		}
		if !c.Secure {
			t.Errorf("%s cookie should be Secure", c.Name)
		}
		if c.SameSite != http.SameSiteStrictMode {
			t.Errorf("%s cookie SameSite = %v, want Strict", c.Name, c.SameSite)
		}
	}

	if access.MaxAge != 900 {
		t.Errorf("access cookie MaxAge = %d, want 900", access.MaxAge)
	}
	if refresh.MaxAge != 864000 {
		t.Errorf("refresh cookie MaxAge = %d, want 864000", refresh.MaxAge)
	}
}

func TestClearAuthCookies(t *testing.T) {
	rec := httptest.NewRecorder()

	ClearAuthCookies(rec)

	for _, c := range rec.Result().Cookies() {
		if c.Value != "" || c.MaxAge >= 0 {
			t.Errorf("%s cookie = (%q, MaxAge=%d), want cleared", c.Name, c.Value, c.MaxAge)
		}
	}
}

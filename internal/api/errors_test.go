package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func errorServer(t *testing.T, status int, contentType, body string) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return New(srv.URL)
}

func asAPIError(t *testing.T, err error) *Error {
	t.Helper()
	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("expected *Error, got %T: %v", err, err)
	}
	return e
}

func TestNormalize_StructuredMessage(t *testing.T) {
	c := errorServer(t, http.StatusBadRequest, "application/json", `{"message":"titre obligatoire"}`)
	_, err := c.ListFormations(context.Background())
	e := asAPIError(t, err)
	if e.Kind != KindStructured || e.Message != "titre obligatoire" {
		t.Fatalf("unexpected normalization: %+v", e)
	}
}

func TestNormalize_StructuredErrorField(t *testing.T) {
	c := errorServer(t, http.StatusConflict, "application/json", `{"error":"email déjà utilisé"}`)
	_, err := c.ListFormations(context.Background())
	e := asAPIError(t, err)
	if e.Kind != KindStructured || e.Message != "email déjà utilisé" {
		t.Fatalf("unexpected normalization: %+v", e)
	}
}

func TestNormalize_MessageWinsOverError(t *testing.T) {
	c := errorServer(t, http.StatusBadRequest, "application/json", `{"error":"code","message":"lisible"}`)
	_, err := c.ListFormations(context.Background())
	e := asAPIError(t, err)
	if e.Message != "lisible" {
		t.Fatalf("expected message field to win, got %q", e.Message)
	}
}

func TestNormalize_PlainText(t *testing.T) {
	c := errorServer(t, http.StatusInternalServerError, "text/plain", "boom")
	_, err := c.ListFormations(context.Background())
	e := asAPIError(t, err)
	if e.Kind != KindPlainText || e.Message != "boom" {
		t.Fatalf("unexpected normalization: %+v", e)
	}
}

func TestNormalize_EmptyBody(t *testing.T) {
	c := errorServer(t, http.StatusBadGateway, "", "")
	_, err := c.ListFormations(context.Background())
	e := asAPIError(t, err)
	if e.Kind != KindUnknown || e.Message != "" {
		t.Fatalf("unexpected normalization: %+v", e)
	}
	if e.Status != http.StatusBadGateway {
		t.Fatalf("unexpected status: %d", e.Status)
	}
}

func TestNormalize_JSONWithoutKnownFields(t *testing.T) {
	c := errorServer(t, http.StatusBadRequest, "application/json", `{"detail":"nope"}`)
	_, err := c.ListFormations(context.Background())
	e := asAPIError(t, err)
	if e.Kind != KindUnknown {
		t.Fatalf("expected KindUnknown, got %+v", e)
	}
}

func TestUnauthenticated_MatchedByErrorsIs(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		c := errorServer(t, status, "", "")
		_, err := c.ListFormations(context.Background())
		if !errors.Is(err, ErrUnauthenticated) {
			t.Errorf("status %d should match ErrUnauthenticated", status)
		}
	}
	c := errorServer(t, http.StatusNotFound, "", "")
	_, err := c.ListFormations(context.Background())
	if errors.Is(err, ErrUnauthenticated) {
		t.Error("404 must not match ErrUnauthenticated")
	}
}

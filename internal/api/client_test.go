package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"gestion-formations/internal/models"
)

func staticToken(tok string) TokenSource {
	return func(context.Context) string { return tok }
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(srv.URL, WithTokenSource(staticToken("tok123")))
	if _, err := c.ListFormations(context.Background()); err != nil {
		t.Fatalf("list: %v", err)
	}
	if got != "Bearer tok123" {
		t.Fatalf("expected bearer header, got %q", got)
	}
}

func TestClient_AnonymousWithoutToken(t *testing.T) {
	var got string
	var present bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		_, present = r.Header["Authorization"]
		_ = json.NewEncoder(w).Encode(models.AuthResponse{Token: "t", Role: "UTILISATEUR"})
	}))
	defer srv.Close()

	c := New(srv.URL, WithTokenSource(staticToken("")))
	if _, err := c.Login(context.Background(), models.Credentials{Login: "u", Password: "p"}); err != nil {
		t.Fatalf("login: %v", err)
	}
	if present {
		t.Fatalf("expected no Authorization header, got %q", got)
	}
}

func TestClient_FormationRoundTrip(t *testing.T) {
	var stored models.Formation
	mux := http.NewServeMux()
	mux.HandleFunc("POST /formations", func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&stored); err != nil {
			t.Errorf("decode: %v", err)
		}
		stored.ID = 7
		stored.DateFin = "2025-06-04" // server derives the end date
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(stored)
	})
	mux.HandleFunc("GET /formations/7", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(stored)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(srv.URL)
	in := models.Formation{
		Titre: "X", Annee: 2025, Duree: 3, Budget: 100, Lieu: "Tunis",
		DateDebut: "2025-06-01",
		Domaine:   &models.Domaine{ID: 1},
		Formateur: &models.Formateur{ID: 2},
	}
	created, err := c.CreateFormation(context.Background(), in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := c.GetFormation(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Titre != "X" || got.Annee != 2025 || got.Duree != 3 || got.Budget != 100 || got.Lieu != "Tunis" || got.DateDebut != "2025-06-01" {
		t.Fatalf("round trip lost fields: %+v", got)
	}
	if got.Domaine == nil || got.Domaine.ID != 1 || got.Formateur == nil || got.Formateur.ID != 2 {
		t.Fatalf("round trip lost relations: %+v", got)
	}
	if got.ID != 7 || got.DateFin == "" {
		t.Fatalf("expected server-assigned id and derived dateFin: %+v", got)
	}
}

func TestClient_GetParticipant_IncludeFormations(t *testing.T) {
	var query string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		_ = json.NewEncoder(w).Encode(models.Participant{ID: 3})
	}))
	defer srv.Close()

	c := New(srv.URL)
	if _, err := c.GetParticipant(context.Background(), 3, true); err != nil {
		t.Fatalf("get: %v", err)
	}
	if query != "includeFormations=true" {
		t.Fatalf("unexpected query: %q", query)
	}
	if _, err := c.GetParticipant(context.Background(), 3, false); err != nil {
		t.Fatalf("get: %v", err)
	}
	if query != "" {
		t.Fatalf("expected no query, got %q", query)
	}
}

func TestClient_EnrollAndWithdrawPaths(t *testing.T) {
	type call struct{ method, path string }
	var calls []call
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, call{r.Method, r.URL.Path})
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New(srv.URL)
	if err := c.Enroll(context.Background(), 5, 9); err != nil {
		t.Fatalf("enroll: %v", err)
	}
	if err := c.Withdraw(context.Background(), 5, 9); err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	want := []call{
		{http.MethodPut, "/participants/5/formations/9"},
		{http.MethodDelete, "/participants/5/formations/9"},
	}
	if len(calls) != 2 || calls[0] != want[0] || calls[1] != want[1] {
		t.Fatalf("unexpected calls: %+v", calls)
	}
}

func TestClient_UpdateRolePath(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.Method + " " + r.URL.Path
		_ = json.NewEncoder(w).Encode(models.Utilisateur{ID: 4, Role: "RESPONSABLE"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	u, err := c.UpdateRole(context.Background(), 4, "RESPONSABLE")
	if err != nil {
		t.Fatalf("update role: %v", err)
	}
	if gotPath != "POST /utilisateurs/updateRole/4/RESPONSABLE" {
		t.Fatalf("unexpected request: %s", gotPath)
	}
	if u.Role != "RESPONSABLE" {
		t.Fatalf("unexpected role: %s", u.Role)
	}
}

func TestClient_UtilisateurLifecyclePaths(t *testing.T) {
	type call struct{ method, path string }
	var calls []call
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, call{r.Method, r.URL.Path})
		switch r.Method {
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		default:
			_ = json.NewEncoder(w).Encode(models.Utilisateur{ID: 3, Login: "bob", Role: "UTILISATEUR"})
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	ctx := context.Background()
	if _, err := c.CreateUtilisateur(ctx, models.Credentials{Login: "bob", Password: "pw"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := c.UpdateUtilisateur(ctx, 3, models.Utilisateur{ID: 3, Login: "bobby"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := c.DeleteUtilisateur(ctx, 3); err != nil {
		t.Fatalf("delete: %v", err)
	}
	want := []call{
		{http.MethodPost, "/utilisateurs"},
		{http.MethodPut, "/utilisateurs/3"},
		{http.MethodDelete, "/utilisateurs/3"},
	}
	if len(calls) != 3 || calls[0] != want[0] || calls[1] != want[1] || calls[2] != want[2] {
		t.Fatalf("unexpected calls: %+v", calls)
	}
}

func TestClient_StatisticsStopsAtFirstFailure(t *testing.T) {
	var paths []string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /statistic/formations", func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		_, _ = w.Write([]byte(`10`))
	})
	mux.HandleFunc("GET /statistic/participants", func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"stats down"}`))
	})
	mux.HandleFunc("GET /statistic/budget-par-domaine", func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		_, _ = w.Write([]byte(`[]`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(srv.URL)
	if _, err := c.Statistics(context.Background()); err == nil {
		t.Fatal("expected an error from the failing endpoint")
	}
	if len(paths) != 2 {
		t.Fatalf("expected the third endpoint to never be hit, got %v", paths)
	}
}

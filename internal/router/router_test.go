package router_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"animal-adoption/internal/router"
)

type page struct {
	Data []struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Breed string `json:"breed"`
	} `json:"data"`
	Page     int `json:"page"`
	LastPage int `json:"lastPage"`
	Total    int `json:"total"`
}

func TestHTTP_EndToEnd_CatalogAndAdoption(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{SeedEnabled: true}))
	defer ts.Close()

	// 1) Seed: 45 greyhounds + 1 beagle
	items := make([]map[string]any, 0, 46)
	for i := 0; i < 45; i++ {
		items = append(items, map[string]any{
			"name":   fmt.Sprintf("Dog %02d", i),
			"gender": "male",
			"size":   "large",
			"breed":  "Greyhound",
		})
	}
	items = append(items, map[string]any{
		"name":   "Luna",
		"age":    2,
		"gender": "female",
		"size":   "small",
		"breed":  "beagle",
		"traits": []string{"calm"},
	})
	{
		st, body := doReq(t, ts.URL, "POST", "/animals/seed", items)
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 seed, got %d body=%s", st, string(body))
		}
	}

	// 2) Paginación con filtro sin distinguir mayúsculas
	{
		p := getPage(t, ts.URL, "/animals?breed=gREYhouND&page=3")
		if len(p.Data) != 5 || p.Page != 3 || p.LastPage != 3 || p.Total != 45 {
			t.Fatalf("unexpected page 3: len=%d page=%d last=%d total=%d", len(p.Data), p.Page, p.LastPage, p.Total)
		}
		p = getPage(t, ts.URL, "/animals?breed=greyhound&page=4")
		if len(p.Data) != 0 || p.LastPage != 3 {
			t.Fatalf("expected empty page 4, got len=%d last=%d", len(p.Data), p.LastPage)
		}
	}

	// 3) Search por nombre, default page 1
	var lunaID string
	{
		p := getPage(t, ts.URL, "/animals?search=LUN")
		if len(p.Data) != 1 || p.Page != 1 || p.Data[0].Name != "Luna" {
			t.Fatalf("expected only Luna, got %+v", p)
		}
		lunaID = p.Data[0].ID
	}

	// 4) Opciones de filtro
	{
		st, body := doReq(t, ts.URL, "GET", "/animals/filters", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 filters, got %d body=%s", st, string(body))
		}
		var resp struct {
			Breeds []string `json:"breeds"`
		}
		_ = json.Unmarshal(body, &resp)
		if len(resp.Breeds) != 2 {
			t.Fatalf("expected 2 distinct breeds, got %v", resp.Breeds)
		}
	}

	// 5) Adopción de un animal inexistente: 404 y nada escrito
	adoptBody := map[string]any{
		"name":    "Ana Pérez",
		"email":   "ana@example.com",
		"phone":   "+5491122334455",
		"message": "Tengo patio grande y mucho tiempo.",
	}
	{
		st, body := doReq(t, ts.URL, "POST", "/adopt/does-not-exist", adoptBody)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 adopt missing animal, got %d body=%s", st, string(body))
		}
	}

	// 6) Adopción válida
	{
		st, body := doReq(t, ts.URL, "POST", "/adopt/"+lunaID, adoptBody)
		if st != http.StatusCreated {
			t.Fatalf("expected 201 adopt, got %d body=%s", st, string(body))
		}
		var resp struct {
			ID       string `json:"id"`
			AnimalID string `json:"animalId"`
			Email    string `json:"email"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.ID == "" || resp.AnimalID != lunaID || resp.Email != "ana@example.com" {
			t.Fatalf("unexpected adoption %s", string(body))
		}
	}

	// 7) Métricas reflejan una sola adopción
	{
		st, body := doReq(t, ts.URL, "GET", "/metrics", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 metrics, got %d", st)
		}
		if !strings.Contains(string(body), "adoption_adoptions_created_total 1") {
			t.Fatalf("expected one adoption in metrics, got:\n%s", string(body))
		}
	}
}

func TestHTTP_AnimalCRUD(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	id := createAnimal(t, ts.URL, map[string]any{
		"name":     "Rex",
		"gender":   "MALE",
		"size":     "Medium",
		"breed":    "Boxer",
		"photoUrl": "https://img.example.com/rex.jpg",
	})

	{
		st, body := doReq(t, ts.URL, "GET", "/animals/"+id, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get animal, got %d body=%s", st, string(body))
		}
		var resp map[string]any
		_ = json.Unmarshal(body, &resp)
		if resp["breed"] != "boxer" || resp["gender"] != "male" || resp["size"] != "medium" {
			t.Fatalf("expected lowercase enums, got %s", string(body))
		}
	}

	{
		st, body := doReq(t, ts.URL, "PATCH", "/animals/"+id, map[string]any{"isVaccinated": true})
		if st != http.StatusOK {
			t.Fatalf("expected 200 patch, got %d body=%s", st, string(body))
		}
		var resp map[string]any
		_ = json.Unmarshal(body, &resp)
		if resp["isVaccinated"] != true || resp["name"] != "Rex" {
			t.Fatalf("unexpected patched animal %s", string(body))
		}
	}

	{
		st, _ := doReq(t, ts.URL, "DELETE", "/animals/"+id, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 delete, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "GET", "/animals/"+id, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 after delete, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "PUT", "/animals/"+id, map[string]any{"name": "Ghost"})
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 update after delete, got %d", st)
		}
	}
}

func TestHTTP_SeedDisabled(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{SeedEnabled: false}))
	defer ts.Close()

	createAnimal(t, ts.URL, map[string]any{"name": "Rex", "gender": "male", "size": "large", "breed": "boxer"})

	st, _ := doReq(t, ts.URL, "POST", "/animals/seed", []map[string]any{})
	if st != http.StatusForbidden {
		t.Fatalf("expected 403 seed in production, got %d", st)
	}

	// body inválido: igual 403, el modo se chequea primero
	st, _ = doReq(t, ts.URL, "POST", "/animals/seed", map[string]any{"not": "a list"})
	if st != http.StatusForbidden {
		t.Fatalf("expected 403 seed with bad body in production, got %d", st)
	}
	st, _ = doReq(t, ts.URL, "POST", "/animals/seed", []map[string]any{{"name": ""}})
	if st != http.StatusForbidden {
		t.Fatalf("expected 403 seed with invalid items in production, got %d", st)
	}

	p := getPage(t, ts.URL, "/animals")
	if p.Total != 1 {
		t.Fatalf("expected catalog untouched, got total %d", p.Total)
	}
}

func TestHTTP_SearchIsMatchedAsGiven(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	createAnimal(t, ts.URL, map[string]any{"name": "Rex", "gender": "male", "size": "large", "breed": "boxer"})
	createAnimal(t, ts.URL, map[string]any{"name": "Rex Jr", "gender": "male", "size": "small", "breed": "boxer"})

	p := getPage(t, ts.URL, "/animals?search=rex")
	if p.Total != 2 {
		t.Fatalf("expected 2 matches for %q, got %d", "rex", p.Total)
	}

	// el espacio final forma parte del texto buscado
	p = getPage(t, ts.URL, "/animals?search=rex%20")
	if p.Total != 1 || p.Data[0].Name != "Rex Jr" {
		t.Fatalf("expected only Rex Jr for %q, got %+v", "rex ", p)
	}
}

func TestHTTP_HugePageIsEmpty(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	createAnimal(t, ts.URL, map[string]any{"name": "Rex", "gender": "male", "size": "large", "breed": "boxer"})

	p := getPage(t, ts.URL, "/animals?page=9223372036854775807")
	if len(p.Data) != 0 || p.LastPage != 1 || p.Total != 1 {
		t.Fatalf("expected empty page with lastPage 1, got len=%d last=%d total=%d", len(p.Data), p.LastPage, p.Total)
	}
}

func TestHTTP_ValidationErrors(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{SeedEnabled: true}))
	defer ts.Close()

	cases := []struct {
		name   string
		method string
		path   string
		body   any
	}{
		{"page not a number", "GET", "/animals?page=abc", nil},
		{"page below one", "GET", "/animals?page=0", nil},
		{"age not a number", "GET", "/animals?age=old", nil},
		{"create missing breed", "POST", "/animals", map[string]any{"name": "Rex", "gender": "male", "size": "large"}},
		{"create bad gender", "POST", "/animals", map[string]any{"name": "Rex", "gender": "robot", "size": "large", "breed": "pug"}},
		{"create unknown field", "POST", "/animals", map[string]any{"name": "Rex", "gender": "male", "size": "large", "breed": "pug", "owner": "x"}},
		{"seed invalid item", "POST", "/animals/seed", []map[string]any{{"name": "", "gender": "male", "size": "large", "breed": "pug"}}},
		{"adopt bad email", "POST", "/adopt/any", map[string]any{"name": "Ana", "email": "nope", "phone": "+5491122334455", "message": "Quiero adoptar ya"}},
		{"adopt unknown field", "POST", "/adopt/any", map[string]any{"name": "Ana", "email": "a@b.co", "phone": "+5491122334455", "message": "Quiero adoptar ya", "extra": true}},
		{"adopt short message", "POST", "/adopt/any", map[string]any{"name": "Ana", "email": "a@b.co", "phone": "+5491122334455", "message": "hola"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st, body := doReq(t, ts.URL, tc.method, tc.path, tc.body)
			if st != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d body=%s", st, string(body))
			}
		})
	}
}

func TestHTTP_HealthAndCORS(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{CORSOrigins: []string{"http://localhost:3001"}}))
	defer ts.Close()

	st, body := doReq(t, ts.URL, "GET", "/health", nil)
	if st != http.StatusOK || string(body) != "ok" {
		t.Fatalf("expected 200 ok, got %d %q", st, string(body))
	}

	req, _ := http.NewRequest("OPTIONS", ts.URL+"/animals", nil)
	req.Header.Set("Origin", "http://localhost:3001")
	req.Header.Set("Access-Control-Request-Method", "GET")
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("preflight: %v", err)
	}
	defer res.Body.Close()

	if got := res.Header.Get("Access-Control-Allow-Origin"); got != "http://localhost:3001" {
		t.Fatalf("expected allowed origin header, got %q", got)
	}
}

func createAnimal(t *testing.T, baseURL string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/animals", payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create animal, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create animal: missing id body=%s", string(body))
	}
	return resp.ID
}

func getPage(t *testing.T, baseURL, path string) page {
	t.Helper()

	st, body := doReq(t, baseURL, "GET", path, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 %s, got %d body=%s", path, st, string(body))
	}
	var p page
	if err := json.Unmarshal(body, &p); err != nil {
		t.Fatalf("decode page: %v", err)
	}
	return p
}

func doReq(t *testing.T, baseURL, method, path string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}

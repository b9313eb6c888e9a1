package profile

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestRouter() (*gin.Engine, *MemoryRepo) {
	gin.SetMode(gin.TestMode)
	repo := NewMemoryRepo()
	handler := NewHandler(&Service{Repo: repo})
	r := gin.New()
	api := r.Group("/api/v1")
	handler.RegisterRoutes(api)
	return r, repo
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestProfileGetBeforeCreate(t *testing.T) {
	r, _ := newTestRouter()
	resp := doJSON(t, r, http.MethodGet, "/api/v1/profile", nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestProfileCreateAndGet(t *testing.T) {
	r, _ := newTestRouter()

	resp := doJSON(t, r, http.MethodPost, "/api/v1/profile", Profile{
		FullName: "Jane Doe",
		Title:    "Backend Engineer",
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var created struct {
		ID      string `json:"id"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.ID == "" || created.Message != "Profile saved successfully" {
		t.Fatalf("unexpected response: %+v", created)
	}

	getResp := doJSON(t, r, http.MethodGet, "/api/v1/profile", nil)
	if getResp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", getResp.Code)
	}
	var got Profile
	if err := json.Unmarshal(getResp.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode profile: %v", err)
	}
	if got.FullName != "Jane Doe" || got.ID != created.ID {
		t.Fatalf("unexpected profile: %+v", got)
	}
}

func TestProfileCreateRequiresFullName(t *testing.T) {
	r, _ := newTestRouter()
	resp := doJSON(t, r, http.MethodPost, "/api/v1/profile", Profile{Title: "Engineer"})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestProfilePutRequiresExisting(t *testing.T) {
	r, _ := newTestRouter()
	resp := doJSON(t, r, http.MethodPut, "/api/v1/profile", Profile{FullName: "Jane"})
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestProfilePutReplaces(t *testing.T) {
	r, _ := newTestRouter()

	if resp := doJSON(t, r, http.MethodPost, "/api/v1/profile", Profile{FullName: "Jane"}); resp.Code != http.StatusCreated {
		t.Fatalf("create failed: %d", resp.Code)
	}
	resp := doJSON(t, r, http.MethodPut, "/api/v1/profile", Profile{FullName: "Janet"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	getResp := doJSON(t, r, http.MethodGet, "/api/v1/profile", nil)
	var got Profile
	if err := json.Unmarshal(getResp.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode profile: %v", err)
	}
	if got.FullName != "Janet" {
		t.Fatalf("expected replaced profile, got %q", got.FullName)
	}
}

func TestProfileInvalidJSON(t *testing.T) {
	r, _ := newTestRouter()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/profile", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

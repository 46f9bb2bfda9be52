package food

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/keylian15/le-garde-manger/internal"
	"github.com/keylian15/le-garde-manger/internal/model"
	"github.com/keylian15/le-garde-manger/internal/repository"
	"github.com/keylian15/le-garde-manger/pkg/middleware"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupFoodAPI(t *testing.T) (*gin.Engine, *internal.Deps) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(model.Food{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	d := &internal.Deps{
		DB:    db,
		Foods: repository.NewFoodStore(db),
	}

	router := gin.New()
	router.Use(middleware.NewRequestIDMiddleware())

	f := router.Group("/api/foods")
	{
		f.GET("", func(c *gin.Context) { List(c, d) })
		f.POST("", func(c *gin.Context) { Create(c, d) })
		f.PUT("/:id", func(c *gin.Context) { Update(c, d) })
		f.DELETE("/:id", func(c *gin.Context) { Delete(c, d) })
	}

	return router, d
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("failed to marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestFoodCreateAndList(t *testing.T) {
	router, _ := setupFoodAPI(t)

	w := doJSON(t, router, http.MethodPost, "/api/foods",
		gin.H{"name": "Carotte", "description": "Légume racine", "calories": 41, "type": "aliment"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want 201, body %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodGet, "/api/foods?q=carotte", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d, want 200", w.Code)
	}

	var foods []model.Food
	if err := json.Unmarshal(w.Body.Bytes(), &foods); err != nil {
		t.Fatalf("failed to decode list response: %v", err)
	}

	if len(foods) != 1 || foods[0].Name != "Carotte" {
		t.Fatalf("list = %+v, want the carotte", foods)
	}
}

func TestFoodCreateValidation(t *testing.T) {
	router, _ := setupFoodAPI(t)

	cases := []struct {
		name    string
		payload gin.H
		code    string
	}{
		{"missing name", gin.H{"type": "plat"}, "missing_fields"},
		{"bad type", gin.H{"name": "Objet volant", "type": "ovni"}, "invalid_type"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, router, http.MethodPost, "/api/foods", tc.payload)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}

			var body struct {
				Error string `json:"error"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}

			if body.Error != tc.code {
				t.Errorf("error = %q, want %q", body.Error, tc.code)
			}
		})
	}
}

func TestFoodListIgnoresUnknownTypeFilter(t *testing.T) {
	router, _ := setupFoodAPI(t)

	w := doJSON(t, router, http.MethodPost, "/api/foods", gin.H{"name": "Carotte", "type": "aliment"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want 201", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, "/api/foods?type=banana", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d, want 200", w.Code)
	}

	var foods []model.Food
	if err := json.Unmarshal(w.Body.Bytes(), &foods); err != nil {
		t.Fatalf("failed to decode list response: %v", err)
	}

	if len(foods) != 1 {
		t.Errorf("unknown type filter should be ignored, got %d foods", len(foods))
	}
}

func TestFoodUpdateEndpoint(t *testing.T) {
	router, d := setupFoodAPI(t)

	food := model.Food{Name: "Soupe", Calories: 50, Type: "plat"}
	if err := d.Foods.Create(t.Context(), &food); err != nil {
		t.Fatalf("failed to seed food: %v", err)
	}

	w := doJSON(t, router, http.MethodPut, "/api/foods/1",
		gin.H{"name": "Soupe à l'oignon", "calories": 65, "type": "plat"})
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d, want 200, body %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodPut, "/api/foods/999",
		gin.H{"name": "Fantôme", "type": "plat"})
	if w.Code != http.StatusNotFound {
		t.Errorf("update missing: status = %d, want 404", w.Code)
	}

	w = doJSON(t, router, http.MethodPut, "/api/foods/abc",
		gin.H{"name": "Soupe", "type": "plat"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("update bad id: status = %d, want 400", w.Code)
	}
}

func TestFoodDeleteEndpoint(t *testing.T) {
	router, d := setupFoodAPI(t)

	food := model.Food{Name: "Radis", Type: "aliment"}
	if err := d.Foods.Create(t.Context(), &food); err != nil {
		t.Fatalf("failed to seed food: %v", err)
	}

	w := doJSON(t, router, http.MethodDelete, "/api/foods/1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d, want 200", w.Code)
	}

	w = doJSON(t, router, http.MethodDelete, "/api/foods/1", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("second delete: status = %d, want 404", w.Code)
	}
}

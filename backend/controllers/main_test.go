package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"fitnessfiend/backend/config"
	"fitnessfiend/backend/routes"
	"fitnessfiend/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var (
	app *fiber.App
	db  *gorm.DB
	cfg *config.Config
)

func TestMain(m *testing.M) {
	setup()
	code := m.Run()
	os.Exit(code)
}

func setup() {
	cfg = &config.Config{
		JWTSecret:  "testsecret",
		ServerPort: "8080",
	}

	var err error
	db, err = gorm.Open(sqlite.Open("file:ctrltest?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		panic(err)
	}
	if err := utils.MigrateDB(db); err != nil {
		panic(err)
	}

	app = fiber.New()
	routes.SetupRoutes(app, db, cfg)
}

// jsonRequest собирает запрос с JSON телом и опциональным токеном
func jsonRequest(method, target string, body interface{}, token string) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("user_token", token)
	}
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("could not decode response body: %v", err)
	}
	return result
}

// registerUser создает аккаунт через API и возвращает его токен
func registerUser(t *testing.T, email, username string) string {
	t.Helper()
	req := jsonRequest("POST", "/create_account", map[string]string{
		"email":    email,
		"username": username,
		"password": "password123",
	}, "")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("create_account failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("create_account returned status %d", resp.StatusCode)
	}

	token, ok := decodeBody(t, resp)["token"].(string)
	if !ok || token == "" {
		t.Fatal("create_account returned no token")
	}
	return token
}

// internal/tests/helpers_test.go
package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/javajoker/jewelry-atelier/internal/config"
	"github.com/javajoker/jewelry-atelier/internal/database"
	"github.com/javajoker/jewelry-atelier/internal/i18n"
	"github.com/javajoker/jewelry-atelier/internal/router"
)

// apiSuite boots the full router over a temp catalog file with fake
// OpenAI and Tavily upstreams.
type apiSuite struct {
	suite.Suite
	router    *gin.Engine
	store     *database.FileProductStore
	cfg       *config.Config
	openAI    *httptest.Server
	tavily    *httptest.Server
	cancel    context.CancelFunc
	sessionID string
}

func (s *apiSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	s.Require().NoError(i18n.Initialize("en"))

	s.openAI = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Prompt string `json:"prompt"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		if strings.Contains(body.Prompt, "forbidden") {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":{"message":"Your request was rejected by the safety system"}}`))
			return
		}
		if strings.Contains(body.Prompt, "empty handed") {
			w.Write([]byte(`{"data":[]}`))
			return
		}
		w.Write([]byte(`{"data":[{"url":"https://oai.example/design.png","revised_prompt":"a revised prompt"}]}`))
	}))

	s.tavily = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
}

func (s *apiSuite) TearDownSuite() {
	s.openAI.Close()
	s.tavily.Close()
}

func (s *apiSuite) SetupTest() {
	s.boot(s.testConfig())
}

// boot builds a fresh router over an empty temp catalog.
func (s *apiSuite) boot(cfg *config.Config) {
	s.cfg = cfg
	s.store = database.NewFileProductStore(filepath.Join(s.T().TempDir(), "products.json"))

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.router = router.Initialize(ctx, s.store, s.cfg)
	s.sessionID = uuid.New().String()
}

func (s *apiSuite) TearDownTest() {
	s.cancel()
}

func (s *apiSuite) testConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		Server:      config.ServerConfig{UpstreamTimeout: 5},
		Catalog:     config.CatalogConfig{Driver: "file"},
		OpenAI: config.OpenAIConfig{
			APIKey:     "sk-test",
			BaseURL:    s.openAI.URL,
			ImageModel: "dall-e-3",
		},
		Search: config.SearchConfig{
			TavilyAPIKey:  "tvly-test",
			TavilyBaseURL: s.tavily.URL,
		},
		Hosting: config.HostingConfig{Provider: "cloudinary", Folder: "jewelry-designs"},
		Payment: config.PaymentConfig{Currency: "usd", TaxRate: 0.08, ShippingFlat: 15},
		JWT:     config.JWTConfig{SecretKey: "test-secret", AdminTokenTTL: 1},
		I18n:    config.I18nConfig{DefaultLocale: "en"},
		CORS:    config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
		RateLimit: config.RateLimitConfig{
			RequestsPerSecond:    1000,
			Burst:                1000,
			GenerationsPerMinute: 1000,
			GenerationBurst:      1000,
		},
		Session: config.SessionConfig{TTLMinutes: 60},
	}
}

type apiResponse struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data"`
	Message string                 `json:"message"`
	Error   string                 `json:"error"`
	Code    string                 `json:"code"`
}

func (s *apiSuite) request(method, path string, body interface{}, headers ...string) (*httptest.ResponseRecorder, apiResponse) {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Session-ID", s.sessionID)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var resp apiResponse
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func (s *apiSuite) productIDs() []string {
	w, resp := s.request(http.MethodGet, "/api/products", nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var ids []string
	for _, p := range resp.Data["products"].([]interface{}) {
		ids = append(ids, p.(map[string]interface{})["id"].(string))
	}
	return ids
}

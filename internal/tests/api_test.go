// internal/tests/api_test.go
package tests

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/bookxchange/backend/internal/config"
	"github.com/bookxchange/backend/internal/i18n"
	"github.com/bookxchange/backend/internal/router"
	"github.com/bookxchange/backend/internal/services"
	"github.com/bookxchange/backend/internal/testutil"
	"github.com/bookxchange/backend/internal/utils"
)

const testSecret = "api-test-secret"

type APITestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
	alice  string
	bob    string
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Meta json.RawMessage `json:"meta"`
}

func testConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		Server:      config.ServerConfig{MaxBodyMB: 50},
		Auth:        config.AuthConfig{Provider: "jwt", JWTSecret: testSecret},
		Listings:    config.ListingConfig{MaxImageKB: 64, DefaultCollege: "Test College"},
		RateLimit:   config.RateLimitConfig{RequestsPerSecond: 1000, Burst: 1000},
		CORS:        config.CORSConfig{AllowedOrigins: []string{"*"}},
		I18n:        config.I18nConfig{DefaultLocale: "en"},
	}
}

func (suite *APITestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	suite.Require().NoError(i18n.Initialize())

	var err error
	suite.alice, err = utils.GenerateJWT(testSecret, "alice", "alice@example.edu", 1)
	suite.Require().NoError(err)
	suite.bob, err = utils.GenerateJWT(testSecret, "bob", "bob@example.edu", 1)
	suite.Require().NoError(err)
}

func (suite *APITestSuite) SetupTest() {
	suite.db = testutil.NewTestDB(suite.T())
	log, _ := testutil.NewLogger()
	suite.router = router.Initialize(suite.db, testConfig(), services.NewJWTVerifier(testSecret), log)
}

func (suite *APITestSuite) do(method, path, token string, body interface{}) (int, envelope) {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewBuffer(jsonData)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	var response envelope
	if w.Body.Len() > 0 {
		suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response), w.Body.String())
	}
	return w.Code, response
}

func (suite *APITestSuite) decode(raw json.RawMessage, v interface{}) {
	suite.Require().NoError(json.Unmarshal(raw, v))
}

func (suite *APITestSuite) createProfile(token string) {
	code, _ := suite.do(http.MethodPost, "/api/profile", token, map[string]interface{}{
		"profile_name":  "Student",
		"branch":        "Computer Science",
		"academic_year": "2nd",
		"phone_number":  "9000000000",
	})
	suite.Require().Equal(http.StatusOK, code)
}

func (suite *APITestSuite) createListing(token, title string, images int) string {
	imgs := make([]string, images)
	for i := range imgs {
		imgs[i] = testutil.PNG
	}

	code, resp := suite.do(http.MethodPost, "/api/exchange-books", token, map[string]interface{}{
		"title":     title,
		"author":    "Some Author",
		"condition": "Good",
		"images":    imgs,
	})
	suite.Require().Equal(http.StatusCreated, code)

	var listing struct {
		ID string `json:"id"`
	}
	suite.decode(resp.Data, &listing)
	return listing.ID
}

func (suite *APITestSuite) TestHealth() {
	code, _ := suite.do(http.MethodGet, "/health", "", nil)
	suite.Equal(http.StatusOK, code)
}

func (suite *APITestSuite) TestRequiresToken() {
	code, resp := suite.do(http.MethodGet, "/api/favorites", "", nil)
	suite.Equal(http.StatusUnauthorized, code)
	suite.False(resp.Success)

	forged, err := utils.GenerateJWT("wrong-secret", "alice", "", 1)
	suite.Require().NoError(err)
	code, _ = suite.do(http.MethodGet, "/api/favorites", forged, nil)
	suite.Equal(http.StatusUnauthorized, code)
}

func (suite *APITestSuite) TestProfileLifecycle() {
	code, _ := suite.do(http.MethodGet, "/api/profile", suite.alice, nil)
	suite.Equal(http.StatusNotFound, code)

	suite.createProfile(suite.alice)

	code, resp := suite.do(http.MethodGet, "/api/profile", suite.alice, nil)
	suite.Require().Equal(http.StatusOK, code)
	var profile map[string]interface{}
	suite.decode(resp.Data, &profile)
	suite.Equal("alice@example.edu", profile["email"])
	suite.Equal("Test College", profile["college_name"])

	code, resp = suite.do(http.MethodGet, "/api/profile/alice", suite.bob, nil)
	suite.Require().Equal(http.StatusOK, code)
	var public map[string]interface{}
	suite.decode(resp.Data, &public)
	suite.NotContains(public, "email")
	suite.NotContains(public, "phone_number")

	code, _ = suite.do(http.MethodDelete, "/api/profile/picture", suite.alice, nil)
	suite.Equal(http.StatusOK, code)

	code, resp = suite.do(http.MethodPost, "/api/profile", suite.alice, map[string]interface{}{
		"profile_name": "Student", "branch": "Astrology", "academic_year": "2nd", "phone_number": "1",
	})
	suite.Equal(http.StatusBadRequest, code)
	suite.Equal("VALIDATION_ERROR", resp.Error.Code)
}

func (suite *APITestSuite) TestCreateListingRequiresProfile() {
	code, resp := suite.do(http.MethodPost, "/api/exchange-books", suite.alice, map[string]interface{}{
		"title": "Dune", "author": "Herbert", "condition": "Good", "images": []string{testutil.PNG},
	})
	suite.Equal(http.StatusNotFound, code)
	suite.Equal("PROFILE_REQUIRED", resp.Error.Code)
	suite.Equal("Please complete your profile first", resp.Error.Message)
}

func (suite *APITestSuite) TestCreateListingValidation() {
	suite.createProfile(suite.alice)

	code, _ := suite.do(http.MethodPost, "/api/exchange-books", suite.alice, map[string]interface{}{
		"title": "Dune", "author": "Herbert", "condition": "Good",
		"images": []string{testutil.PNG, testutil.PNG, testutil.PNG, testutil.PNG},
	})
	suite.Equal(http.StatusBadRequest, code)

	code, _ = suite.do(http.MethodPost, "/api/exchange-books", suite.alice, map[string]interface{}{
		"title": "Dune", "author": "Herbert", "condition": "Good", "images": []string{},
	})
	suite.Equal(http.StatusBadRequest, code)
}

func (suite *APITestSuite) TestListingEndpoints() {
	suite.createProfile(suite.alice)
	suite.createProfile(suite.bob)

	own := suite.createListing(suite.alice, "Mine", 1)
	theirs := suite.createListing(suite.bob, "Theirs", 2)

	code, resp := suite.do(http.MethodGet, "/api/find-books", suite.alice, nil)
	suite.Require().Equal(http.StatusOK, code)
	var found []map[string]interface{}
	suite.decode(resp.Data, &found)
	suite.Require().Len(found, 1)
	suite.Equal(theirs, found[0]["id"])

	code, resp = suite.do(http.MethodGet, "/api/exchange-books", suite.alice, nil)
	suite.Require().Equal(http.StatusOK, code)
	var mine []map[string]interface{}
	suite.decode(resp.Data, &mine)
	suite.Require().Len(mine, 1)
	suite.Equal(own, mine[0]["id"])

	code, _ = suite.do(http.MethodDelete, "/api/exchange-books/"+theirs, suite.alice, nil)
	suite.Equal(http.StatusNotFound, code)

	code, _ = suite.do(http.MethodDelete, "/api/exchange-books/"+theirs+"/images/0", suite.bob, nil)
	suite.Equal(http.StatusOK, code)
	code, _ = suite.do(http.MethodDelete, "/api/exchange-books/"+theirs+"/images/0", suite.bob, nil)
	suite.Equal(http.StatusBadRequest, code)
	code, _ = suite.do(http.MethodDelete, "/api/exchange-books/"+theirs+"/images/abc", suite.bob, nil)
	suite.Equal(http.StatusBadRequest, code)

	code, _ = suite.do(http.MethodPut, "/api/exchange-books/"+theirs+"/availability", suite.alice, map[string]bool{"is_available": false})
	suite.Equal(http.StatusNotFound, code)
	code, _ = suite.do(http.MethodPut, "/api/exchange-books/"+theirs+"/availability", suite.bob, map[string]bool{"is_available": false})
	suite.Equal(http.StatusOK, code)

	code, resp = suite.do(http.MethodGet, "/api/find-books", suite.alice, nil)
	suite.Require().Equal(http.StatusOK, code)
	suite.decode(resp.Data, &found)
	suite.Empty(found)

	code, _ = suite.do(http.MethodDelete, "/api/exchange-books/"+own, suite.alice, nil)
	suite.Equal(http.StatusOK, code)
	code, _ = suite.do(http.MethodGet, "/api/exchange-books/"+own, suite.alice, nil)
	suite.Equal(http.StatusNotFound, code)
}

func (suite *APITestSuite) TestSearchIsPaginated() {
	suite.createProfile(suite.alice)
	suite.createProfile(suite.bob)
	for _, title := range []string{"Physics I", "Physics II", "Chemistry"} {
		suite.createListing(suite.bob, title, 1)
	}

	code, resp := suite.do(http.MethodGet, "/api/find-books/search?search=PHYSICS&limit=1&page=2", suite.alice, nil)
	suite.Require().Equal(http.StatusOK, code)

	var found []map[string]interface{}
	suite.decode(resp.Data, &found)
	suite.Require().Len(found, 1)
	suite.Contains([]interface{}{"Physics I", "Physics II"}, found[0]["title"])

	var meta struct {
		Pagination struct {
			Total      int64 `json:"total"`
			TotalPages int   `json:"total_pages"`
		} `json:"pagination"`
	}
	suite.decode(resp.Meta, &meta)
	suite.Equal(int64(2), meta.Pagination.Total)
	suite.Equal(2, meta.Pagination.TotalPages)

	code, _ = suite.do(http.MethodGet, "/api/find-books/search?condition=Mint", suite.alice, nil)
	suite.Equal(http.StatusBadRequest, code)
}

func (suite *APITestSuite) TestFavoritesFlow() {
	suite.createProfile(suite.alice)
	suite.createProfile(suite.bob)
	x := suite.createListing(suite.bob, "X", 2)
	y := suite.createListing(suite.bob, "Y", 1)

	code, _ := suite.do(http.MethodPost, "/api/favorites", suite.alice, map[string]string{"bookId": x})
	suite.Require().Equal(http.StatusOK, code)
	code, _ = suite.do(http.MethodPost, "/api/favorites", suite.alice, map[string]string{"bookId": y})
	suite.Require().Equal(http.StatusOK, code)

	code, resp := suite.do(http.MethodPost, "/api/favorites", suite.alice, map[string]string{"bookId": x})
	suite.Equal(http.StatusConflict, code)
	suite.Equal("Book already in favorites", resp.Error.Message)

	code, _ = suite.do(http.MethodPost, "/api/favorites", suite.alice, map[string]string{"bookId": "missing"})
	suite.Equal(http.StatusNotFound, code)
	code, _ = suite.do(http.MethodPost, "/api/favorites", suite.alice, map[string]string{})
	suite.Equal(http.StatusBadRequest, code)

	code, _ = suite.do(http.MethodDelete, "/api/exchange-books/"+x, suite.bob, nil)
	suite.Require().Equal(http.StatusOK, code)

	code, resp = suite.do(http.MethodGet, "/api/favorites", suite.alice, nil)
	suite.Require().Equal(http.StatusOK, code)
	var favorites []map[string]interface{}
	suite.decode(resp.Data, &favorites)
	suite.Require().Len(favorites, 2)
	suite.Equal(x, favorites[0]["book_id"])
	suite.Equal(y, favorites[1]["book_id"])
	suite.NotContains(favorites[0], "user_id")

	code, resp = suite.do(http.MethodGet, "/api/favorites/check/"+x, suite.alice, nil)
	suite.Require().Equal(http.StatusOK, code)
	var check map[string]bool
	suite.decode(resp.Data, &check)
	suite.True(check["isFavorited"])

	code, _ = suite.do(http.MethodDelete, "/api/favorites/"+x, suite.alice, nil)
	suite.Equal(http.StatusOK, code)
	code, _ = suite.do(http.MethodDelete, "/api/favorites/"+x, suite.alice, nil)
	suite.Equal(http.StatusOK, code)

	code, resp = suite.do(http.MethodGet, "/api/favorites/check/"+x, suite.alice, nil)
	suite.Require().Equal(http.StatusOK, code)
	suite.decode(resp.Data, &check)
	suite.False(check["isFavorited"])
}

func (suite *APITestSuite) TestFavoritesUnknownUser() {
	code, resp := suite.do(http.MethodGet, "/api/favorites", suite.alice, nil)
	suite.Equal(http.StatusNotFound, code)
	suite.Equal("User not found", resp.Error.Message)
}

func (suite *APITestSuite) TestHindiMessages() {
	req := httptest.NewRequest(http.MethodGet, "/api/favorites", nil)
	req.Header.Set("Accept-Language", "hi-IN,hi;q=0.9")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
	assert.NotContains(suite.T(), w.Body.String(), "Authentication required")
}

func (suite *APITestSuite) TestDevTokenIsAccepted() {
	code, resp := suite.do(http.MethodPost, "/dev/token", "", map[string]string{
		"user_id": "carol", "email": "carol@example.edu",
	})
	suite.Require().Equal(http.StatusOK, code)

	var issued struct {
		Token string `json:"token"`
	}
	suite.decode(resp.Data, &issued)
	suite.Require().NotEmpty(issued.Token)

	suite.createProfile(issued.Token)

	code, _ = suite.do(http.MethodPost, "/dev/token", "", map[string]string{"user_id": " "})
	suite.Equal(http.StatusBadRequest, code)
}

func (suite *APITestSuite) TestMeta() {
	code, resp := suite.do(http.MethodGet, "/api/meta", suite.alice, nil)
	suite.Require().Equal(http.StatusOK, code)

	var meta struct {
		Conditions []string `json:"conditions"`
		Languages  []string `json:"languages"`
	}
	suite.decode(resp.Data, &meta)
	suite.Equal([]string{"Excellent", "Good", "Fair", "Poor"}, meta.Conditions)
	suite.ElementsMatch([]string{"en", "hi"}, meta.Languages)
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}

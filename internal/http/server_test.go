package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	skyhttp "github.com/RudreshNarwal/skyvern/internal/http"
	"github.com/RudreshNarwal/skyvern/internal/service"
	"github.com/RudreshNarwal/skyvern/pkg/models"
	"github.com/RudreshNarwal/skyvern/pkg/storage"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := service.NewObserverService(storage.NewMockStore())
	return skyhttp.NewRouter(svc)
}

func TestHealth(t *testing.T) {
	router := newTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateCruise(t *testing.T) {
	router := newTestRouter()

	body := `{"user_prompt": "find the cheapest flight", "url": "https://example.com"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/cruises", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Organization-ID", "org_1")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var cruise models.ObserverCruise
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &cruise))
	assert.NotEmpty(t, cruise.ObserverCruiseID)
	assert.Equal(t, models.CreatedCruiseStatus, cruise.Status)
	if assert.NotNil(t, cruise.OrganizationID) {
		assert.Equal(t, "org_1", *cruise.OrganizationID)
	}

	// the created cruise is retrievable for the same organization
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/cruises/"+cruise.ObserverCruiseID, nil)
	req.Header.Set("X-Organization-ID", "org_1")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateCruiseRejectsBadRequests(t *testing.T) {
	router := newTestRouter()

	cases := map[string]string{
		"MissingPrompt": `{"url": "https://example.com"}`,
		"BadURL":        `{"user_prompt": "p", "url": "ftp://example.com"}`,
		"NotJSON":       `prompt=hello`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/cruises", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestGetCruiseNotFound(t *testing.T) {
	router := newTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/cruises/oc_missing", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListThoughtsEmpty(t *testing.T) {
	router := newTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/cruises/oc_x/thoughts", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

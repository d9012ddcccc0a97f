package ioc

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"tierbench/internal/router"
)

func TestDisabledStoreHandlersAnswerUnavailable(t *testing.T) {
	engine := router.NewEngine(nil, nil,
		InitRelationalHandler(nil, nil),
		InitDocumentHandler(nil, nil),
		InitGraphHandler(nil, nil),
	)
	for _, path := range []string{"/api/v1/animals", "/api/v1/mongo/branches", "/api/v1/graph/animals/branch/1"} {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code, path)
	}
}

package helpers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePage(t *testing.T) {
	cases := []struct {
		name     string
		query    string
		page     int
		pageSize int
	}{
		{"дефолты", "", 1, 20},
		{"обычный запрос", "page=3&pageSize=50", 3, 50},
		{"нулевая страница зажимается", "page=0&pageSize=10", 1, 10},
		{"отрицательная страница зажимается", "page=-5", 1, 20},
		{"слишком большой pageSize откатывается к дефолту", "pageSize=1000", 1, 20},
		{"мусор игнорируется", "page=abc&pageSize=xyz", 1, 20},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/?"+tc.query, nil)
			page, pageSize := ParsePage(r)
			assert.Equal(t, tc.page, page)
			assert.Equal(t, tc.pageSize, pageSize)
		})
	}
}

func TestErrorEnvelope(t *testing.T) {
	w := httptest.NewRecorder()
	Error(w, http.StatusForbidden, "доступ запрещён")

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"доступ запрещён"}`, w.Body.String())
}

func TestListEnvelope(t *testing.T) {
	w := httptest.NewRecorder()
	JSON(w, http.StatusOK, List{Items: []string{"a"}, Total: 1, Page: 1, PageSize: 20})

	assert.JSONEq(t, `{"items":["a"],"total":1,"page":1,"pageSize":20}`, w.Body.String())
}

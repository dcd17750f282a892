package content

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ipv4-bazaar/internal/content"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func get(t *testing.T, kind string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/content/"+kind, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("kind")
	c.SetParamValues(kind)
	require.NoError(t, ListHandler()(c))
	return rec
}

func TestListHandler(t *testing.T) {
	for _, kind := range content.Kinds() {
		rec := get(t, string(kind))
		require.Equal(t, http.StatusOK, rec.Code, kind)
		var items []map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
		require.NotEmpty(t, items, kind)
	}

	rec := get(t, "pricing")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListHandlerMilestonesOrdered(t *testing.T) {
	rec := get(t, string(content.KindMilestones))
	var items []content.Milestone
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	for i := 1; i < len(items); i++ {
		require.LessOrEqual(t, items[i-1].Order, items[i].Order)
	}
}

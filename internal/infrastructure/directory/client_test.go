package directory_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Empleados-api/internal/infrastructure/directory"
)

const samplePayload = `{
  "users": [
    {
      "id": 1,
      "firstName": "Emily",
      "lastName": "Johnson",
      "email": "emily.johnson@x.dummyjson.com",
      "image": "https://dummyjson.com/icon/emilys/128",
      "company": {"title": "Sales Manager", "department": "Human Resources", "name": "Dooley, Kozey and Cronin"}
    },
    {
      "id": 2,
      "firstName": "Michael",
      "lastName": "Williams",
      "email": "michael.williams@x.dummyjson.com",
      "image": "",
      "company": {"title": "Support Specialist", "department": "Support", "name": "Spinka - Dickinson"}
    }
  ],
  "total": 208
}`

func TestFetchPage_MapeaLaRespuesta(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users", r.URL.Path)
		gotQuery = map[string]string{
			"limit": r.URL.Query().Get("limit"),
			"skip":  r.URL.Query().Get("skip"),
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(samplePayload))
	}))
	defer srv.Close()

	client := directory.NewClient(srv.URL)
	page, err := client.FetchPage(context.Background(), 3, 10)
	require.NoError(t, err)

	assert.Equal(t, "10", gotQuery["limit"])
	assert.Equal(t, "20", gotQuery["skip"], "skip = (page-1)*limit")

	assert.Equal(t, 208, page.Total)
	require.Len(t, page.Users, 2)
	assert.Equal(t, int64(1), page.Users[0].ID)
	assert.Equal(t, "Emily", page.Users[0].FirstName)
	assert.Equal(t, "Sales Manager", page.Users[0].Company.Title)
	assert.Equal(t, "Dooley, Kozey and Cronin", page.Users[0].Company.Name)
	assert.True(t, page.Users[0].Status, "el estado laboral llega determinista en true")
	assert.True(t, page.Users[1].Status)
}

func TestFetchPage_PaginaMenorQueUno(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "0", r.URL.Query().Get("skip"), "páginas inválidas se normalizan a la primera")
		_, _ = w.Write([]byte(`{"users": [], "total": 0}`))
	}))
	defer srv.Close()

	_, err := directory.NewClient(srv.URL).FetchPage(context.Background(), 0, 10)
	require.NoError(t, err)
}

func TestFetchPage_ErrorHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := directory.NewClient(srv.URL).FetchPage(context.Background(), 1, 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 500")
}

func TestFetchPage_RespuestaIlegible(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>no soy json</html>"))
	}))
	defer srv.Close()

	_, err := directory.NewClient(srv.URL).FetchPage(context.Background(), 1, 10)
	require.Error(t, err)
}

func TestFetchPage_ContextoCancelado(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := directory.NewClient(srv.URL).FetchPage(ctx, 1, 10)
	require.Error(t, err, "sin timeout propio, la cancelación llega por el context")
}

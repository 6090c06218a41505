package commands

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/apidesc/apierrors"
	"github.com/erraggy/apidesc/catalog"
)

// catalogStub records saved interfaces.
type catalogStub struct {
	mu    sync.Mutex
	saved []catalog.Interface
}

func (s *catalogStub) server(t *testing.T) *httptest.Server {
	t.Helper()
	reply := func(w http.ResponseWriter, data any) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"errcode": 0, "errmsg": "ok", "data": data})
	}
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+catalog.PathProjectInfo, func(w http.ResponseWriter, _ *http.Request) {
		reply(w, catalog.Project{ID: 7, Name: "shop"})
	})
	mux.HandleFunc("GET "+catalog.PathCategoryMenu, func(w http.ResponseWriter, _ *http.Request) {
		reply(w, []catalog.Category{{ID: 3, Name: catalog.DefaultCategory, ProjectID: 7}})
	})
	mux.HandleFunc("POST "+catalog.PathSaveInterface, func(w http.ResponseWriter, r *http.Request) {
		var iface catalog.Interface
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&iface))
		s.mu.Lock()
		s.saved = append(s.saved, iface)
		s.mu.Unlock()
		reply(w, []catalog.SaveResult{{ID: 1, Path: iface.Path}})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestSetupPublishFlags(t *testing.T) {
	_, flags := SetupPublishFlags()
	assert.Equal(t, catalog.StatusUndone, flags.Status)
	assert.Equal(t, catalog.DefaultTimeout, flags.Timeout)
	assert.False(t, flags.DryRun)
}

func TestHandlePublish_Args(t *testing.T) {
	assert.NoError(t, HandlePublish([]string{"--help"}))
	assert.Error(t, HandlePublish([]string{"A", "B"}))
	assert.Error(t, HandlePublish([]string{"-status", "finished"}))
}

func TestHandlePublish_DryRun(t *testing.T) {
	buf := captureStdout(t)
	require.NoError(t, HandlePublish(shopArgs("-dry-run", "OrderController.Create")))

	var entries []catalog.Interface
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "POST", entries[0].Method)
	assert.Equal(t, "/orders", entries[0].Path)
	assert.Equal(t, catalog.BodyTypeJSON, entries[0].ReqBodyType)
}

func TestHandlePublish_MissingCatalog(t *testing.T) {
	t.Setenv("APIDESC_CATALOG_URL", "")
	t.Setenv("APIDESC_CATALOG_TOKEN", "")
	err := HandlePublish(shopArgs("OrderController"))
	assert.ErrorIs(t, err, apierrors.ErrConfig)
}

func TestHandlePublish(t *testing.T) {
	stub := &catalogStub{}
	srv := stub.server(t)

	require.NoError(t, HandlePublish(shopArgs("-url", srv.URL, "-token", "tok", "OrderController")))

	stub.mu.Lock()
	defer stub.mu.Unlock()
	require.Len(t, stub.saved, 3)
	for _, iface := range stub.saved {
		assert.Equal(t, 3, iface.CatID)
		assert.Equal(t, "tok", iface.Token)
		assert.Equal(t, catalog.StatusUndone, iface.Status)
	}
	assert.Equal(t, "/orders/{id}", stub.saved[0].Path)
}

func TestHandlePublish_InvalidURL(t *testing.T) {
	err := HandlePublish(shopArgs("-url", "not a url", "-token", "tok", "OrderController"))
	assert.ErrorIs(t, err, apierrors.ErrConfig)
}

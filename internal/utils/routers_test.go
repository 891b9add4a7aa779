package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRouterDispatchesWithPathVars(t *testing.T) {
	var gotDeploymentId string

	routes := []Route{
		{
			Name:    "GET_DEPLOYMENT",
			Method:  http.MethodGet,
			Pattern: "/deployments/{deploymentId}",
			HandlerFunc: func(w http.ResponseWriter, r *http.Request) {
				gotDeploymentId = ExtractPathVar(r, "deploymentId")
			},
		},
	}

	server := httptest.NewServer(NewRouter("/deployer", routes))
	defer server.Close()

	resp, err := http.Get(server.URL + "/deployer/deployments/dataset-viewer")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "dataset-viewer", gotDeploymentId)
}

func TestNewRouterFiltersMethods(t *testing.T) {
	routes := []Route{
		{
			Name:        "REGISTER_DEPLOYMENT",
			Method:      http.MethodPost,
			Pattern:     "/deployments",
			HandlerFunc: func(w http.ResponseWriter, r *http.Request) {},
		},
	}

	server := httptest.NewServer(NewRouter("/deployer", routes))
	defer server.Close()

	resp, err := http.Get(server.URL + "/deployer/deployments")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestNewRouterMethodlessRouteServesAll(t *testing.T) {
	routes := []Route{
		{
			Name:        "WEB",
			Pattern:     "/web/{deploymentId}",
			HandlerFunc: func(w http.ResponseWriter, r *http.Request) {},
		},
	}

	server := httptest.NewServer(NewRouter("/deployer", routes))
	defer server.Close()

	for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodDelete} {
		req, err := http.NewRequest(method, server.URL+"/deployer/web/dataset-viewer", nil)
		require.NoError(t, err)

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode, method)
	}
}

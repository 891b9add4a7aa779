package deployer

import (
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/claimhawk/dataset-viewer-deployment/internal/utils"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

var (
	webClient = &http.Client{Timeout: 120 * time.Second}
)

// webHandler is the platform's reverse proxy surface: it wakes the
// deployment if needed and forwards the request to its instance.
func webHandler(w http.ResponseWriter, r *http.Request) {
	deploymentId := utils.ExtractPathVar(r, deploymentIdPathVar)

	d, ok := getDeployment(deploymentId)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	inst, err := ensureAwake(d)
	if err != nil {
		log.Error(err)
		w.WriteHeader(http.StatusBadGateway)

		return
	}

	if !inst.acquireInput() {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	defer inst.releaseInput()

	forwardToInstance(w, r, inst)
}

func forwardToInstance(w http.ResponseWriter, r *http.Request, inst *Instance) {
	restPath := mux.Vars(r)[restPathVar]

	instanceURL := url.URL{
		Scheme:   "http",
		Host:     hostIP + ":" + inst.HostPort,
		Path:     "/" + restPath,
		RawQuery: r.URL.RawQuery,
	}

	request, err := http.NewRequestWithContext(r.Context(), r.Method, instanceURL.String(), r.Body)
	if err != nil {
		log.Error(err)
		w.WriteHeader(http.StatusInternalServerError)

		return
	}

	request.Header = r.Header.Clone()

	resp, err := webClient.Do(request)
	if err != nil {
		log.Error(err)
		w.WriteHeader(http.StatusBadGateway)

		return
	}

	for name, values := range resp.Header {
		for _, value := range values {
			w.Header().Add(name, value)
		}
	}

	w.WriteHeader(resp.StatusCode)

	_, err = io.Copy(w, resp.Body)
	if err != nil {
		log.Warn(err)
	}

	err = resp.Body.Close()
	if err != nil {
		log.Warn(err)
	}
}

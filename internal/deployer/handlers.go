package deployer

import (
	"context"
	"net/http"
	"sync"

	api "github.com/claimhawk/dataset-viewer-deployment/api/deployer"
	"github.com/claimhawk/dataset-viewer-deployment/internal/descriptor"
	"github.com/claimhawk/dataset-viewer-deployment/internal/utils"
	"github.com/claimhawk/dataset-viewer-deployment/internal/volume"
	json "github.com/goccy/go-json"
	log "github.com/sirupsen/logrus"
)

func registerDeploymentHandler(w http.ResponseWriter, r *http.Request) {
	log.Debug("handling register deployment")

	var deploymentDTO api.RegisterDeploymentRequestBody

	err := json.NewDecoder(r.Body).Decode(&deploymentDTO)
	if err != nil {
		log.Error(err)
		w.WriteHeader(http.StatusBadRequest)

		return
	}

	if deploymentDTO.DeploymentId == "" || len(deploymentDTO.DescriptorYAMLBytes) == 0 {
		log.Errorf("invalid deployment: %v", deploymentDTO)
		w.WriteHeader(http.StatusBadRequest)

		return
	}

	app, err := descriptor.Parse(deploymentDTO.DescriptorYAMLBytes)
	if err != nil {
		log.Error(err)
		w.WriteHeader(http.StatusBadRequest)

		return
	}

	if app.Name != deploymentDTO.DeploymentId {
		log.Errorf("descriptor name %s does not match deployment id %s", app.Name, deploymentDTO.DeploymentId)
		w.WriteHeader(http.StatusBadRequest)

		return
	}

	_, ok := getDeployment(deploymentDTO.DeploymentId)
	if ok {
		w.WriteHeader(http.StatusConflict)
		return
	}

	// the volume binding must exist before the deployment unit can start
	binding, err := volume.Resolve(app.Volume, volumesRoot)
	if err != nil {
		log.Error(err)
		w.WriteHeader(http.StatusNotFound)

		return
	}

	// build failures are deploy-time errors, not runtime ones; the build
	// must not be canceled by a disconnecting client
	imageTag, err := imageBuilder.Build(context.Background(), app)
	if err != nil {
		log.Error(err)
		w.WriteHeader(http.StatusInternalServerError)

		return
	}

	d := &Deployment{
		DeploymentId:    deploymentDTO.DeploymentId,
		App:             app,
		Image:           imageTag,
		Binding:         binding,
		Static:          deploymentDTO.Static,
		LastState:       api.StateAsleep,
		Lock:            &sync.RWMutex{},
		stopIdleChecker: make(chan struct{}),
	}

	// a concurrent registration of the same id may have won the race
	// while the image was building
	if !storeDeployment(d) {
		w.WriteHeader(http.StatusConflict)
		return
	}

	go d.runIdleChecker()

	log.Infof("registered deployment %s with image %s", deploymentDTO.DeploymentId, imageTag)

	utils.SendJSONReplyOK(w, statusDTO(d))
}

func deleteDeploymentHandler(w http.ResponseWriter, r *http.Request) {
	log.Debug("handling delete deployment")

	deploymentId := utils.ExtractPathVar(r, deploymentIdPathVar)

	d, ok := takeDeployment(deploymentId)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	close(d.stopIdleChecker)

	d.Lock.Lock()
	stopInstanceLocked(d)
	d.Lock.Unlock()

	log.Infof("deleted deployment %s", deploymentId)
}

func getDeploymentsHandler(w http.ResponseWriter, _ *http.Request) {
	var deploymentIds api.GetDeploymentsResponseBody

	deployments.Range(func(key, _ interface{}) bool {
		deploymentIds = append(deploymentIds, key.(string))
		return true
	})

	utils.SendJSONReplyOK(w, deploymentIds)
}

func getDeploymentStatusHandler(w http.ResponseWriter, r *http.Request) {
	deploymentId := utils.ExtractPathVar(r, deploymentIdPathVar)

	d, ok := getDeployment(deploymentId)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	utils.SendJSONReplyOK(w, statusDTO(d))
}

func statusDTO(d *Deployment) api.DeploymentStatusDTO {
	d.Lock.RLock()
	defer d.Lock.RUnlock()

	status := api.DeploymentStatusDTO{
		DeploymentId: d.DeploymentId,
		Image:        d.Image,
		VolumeName:   d.App.Volume.Name,
		URL:          d.App.WebURL(),
		State:        d.LastState,
	}

	if d.Instance != nil {
		status.InstanceId = d.Instance.InstanceId
	}

	return status
}

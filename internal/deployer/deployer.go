package deployer

import (
	"sync"

	"github.com/claimhawk/dataset-viewer-deployment/internal/image"
	"github.com/claimhawk/dataset-viewer-deployment/internal/volume"
	"github.com/docker/docker/client"
	log "github.com/sirupsen/logrus"
)

var (
	deployments sync.Map

	dockerClient *client.Client
	imageBuilder *image.Builder
	volumesRoot  string
)

// InitServer sets up the docker client, the image builder and the volumes
// root. Must run before serving routes.
func InitServer() {
	var err error

	dockerClient, err = client.NewEnvClient()
	if err != nil {
		log.Error("unable to create docker client")
		panic(err)
	}

	imageBuilder, err = image.NewBuilder()
	if err != nil {
		panic(err)
	}

	volumesRoot = volume.Root()

	log.Infof("volumes root: %s", volumesRoot)
}

func getDeployment(deploymentId string) (*Deployment, bool) {
	value, ok := deployments.Load(deploymentId)
	if !ok {
		return nil, false
	}

	return value.(*Deployment), true
}

// storeDeployment registers d, returning false if the id is already taken.
func storeDeployment(d *Deployment) bool {
	_, loaded := deployments.LoadOrStore(d.DeploymentId, d)
	return !loaded
}

// takeDeployment removes the deployment from the table, so exactly one
// caller gets to tear it down.
func takeDeployment(deploymentId string) (*Deployment, bool) {
	value, ok := deployments.LoadAndDelete(deploymentId)
	if !ok {
		return nil, false
	}

	return value.(*Deployment), true
}

package deployer

import (
	"sync"
	"time"

	"github.com/claimhawk/dataset-viewer-deployment/internal/descriptor"
	"github.com/claimhawk/dataset-viewer-deployment/internal/volume"
)

// Deployment is one registered deployment unit: a built image, a volume
// binding and at most one running instance at a time.
type Deployment struct {
	DeploymentId string
	App          *descriptor.App
	Image        string
	Binding      *volume.Binding
	Static       bool

	Instance  *Instance
	LastState string
	Lock      *sync.RWMutex

	// serializes cold starts; never held while holding Lock, so status
	// reads stay responsive during a start
	startLock sync.Mutex

	stopIdleChecker chan struct{}
}

// Instance is a running container serving one deployment.
type Instance struct {
	InstanceId  string
	ContainerId string
	HostPort    string
	LastUsed    time.Time

	// bounds concurrently accepted inputs per instance
	inputsSem chan struct{}
}

func newInstance(instanceId, containerId, hostPort string, maxConcurrentInputs int) *Instance {
	return &Instance{
		InstanceId:  instanceId,
		ContainerId: containerId,
		HostPort:    hostPort,
		LastUsed:    time.Now(),
		inputsSem:   make(chan struct{}, maxConcurrentInputs),
	}
}

func (i *Instance) acquireInput() bool {
	select {
	case i.inputsSem <- struct{}{}:
		return true
	default:
		return false
	}
}

func (i *Instance) releaseInput() {
	<-i.inputsSem
}

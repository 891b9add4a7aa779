package deployer

import (
	"context"
	"fmt"
	"strconv"
	"time"

	api "github.com/claimhawk/dataset-viewer-deployment/api/deployer"
	"github.com/claimhawk/dataset-viewer-deployment/internal/instance"
	"github.com/claimhawk/dataset-viewer-deployment/internal/utils"
	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/strslice"
	"github.com/docker/go-connections/nat"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	stopContainerTimeout = 10

	idleCheckInterval = 30 * time.Second

	hostIP = "127.0.0.1"
)

var (
	stopContainerTimeoutVar = stopContainerTimeout * time.Second
)

// ensureAwake returns the deployment's instance, cold-starting one if the
// deployment is asleep. The caller must not hold the deployment lock.
func ensureAwake(d *Deployment) (*Instance, error) {
	d.startLock.Lock()
	defer d.startLock.Unlock()

	d.Lock.Lock()

	if d.Instance != nil {
		d.Instance.LastUsed = time.Now()
		inst := d.Instance
		d.Lock.Unlock()

		return inst, nil
	}

	log.Infof("cold starting %s", d.DeploymentId)

	d.LastState = api.StateStarting
	d.Lock.Unlock()

	inst, err := coldStartInstance(d)

	d.Lock.Lock()
	defer d.Lock.Unlock()

	if err != nil {
		d.LastState = api.StateUnhealthy
		return nil, err
	}

	d.Instance = inst
	d.LastState = api.StateReady

	return inst, nil
}

func coldStartInstance(d *Deployment) (*Instance, error) {
	app := d.App

	// the instance must serve a fresh snapshot of the volume; a failed
	// refresh is a startup fault
	err := d.Binding.Reload()
	if err != nil {
		return nil, errors.Wrapf(err, "refreshing volume for %s", d.DeploymentId)
	}

	instanceId := d.DeploymentId + "-" + utils.RandomString(10)

	containerPort, err := nat.NewPort(utils.TCP, strconv.Itoa(app.Server.Port))
	if err != nil {
		return nil, errors.Wrap(err, "building container port")
	}

	portBindings := nat.PortMap{
		containerPort: []nat.PortBinding{
			{HostIP: hostIP, HostPort: ""},
		},
	}

	envVars := []string{
		utils.DeploymentEnvVarName + "=" + d.DeploymentId,
		utils.InstanceEnvVarName + "=" + instanceId,
		fmt.Sprintf("PORT=%d", app.Server.Port),
		"HOSTNAME=" + app.Server.Host,
	}

	for name, value := range app.Server.Env {
		envVars = append(envVars, name+"="+value)
	}

	containerConfig := container.Config{
		Cmd:          strslice.StrSlice(app.Server.Command),
		Env:          envVars,
		Image:        d.Image,
		WorkingDir:   app.Server.WorkingDir,
		ExposedPorts: nat.PortSet{containerPort: struct{}{}},
	}

	hostConfig := container.HostConfig{
		NetworkMode:  "bridge",
		PortBindings: portBindings,
		Binds: []string{
			d.Binding.HostPath() + ":" + app.Volume.MountPath,
		},
		Resources: container.Resources{
			Memory:   int64(app.Resources.MemoryMB) * 1024 * 1024,
			NanoCPUs: int64(app.Resources.CPUs) * 1e9,
		},
	}

	cont, err := dockerClient.ContainerCreate(context.Background(), &containerConfig, &hostConfig, nil, instanceId)
	if err != nil {
		return nil, errors.Wrapf(err, "creating container for %s", d.DeploymentId)
	}

	err = dockerClient.ContainerStart(context.Background(), cont.ID, types.ContainerStartOptions{})
	if err != nil {
		removeContainer(cont.ID)
		return nil, errors.Wrapf(err, "starting container for %s", d.DeploymentId)
	}

	hostPort, err := boundHostPort(cont.ID, containerPort)
	if err != nil {
		removeContainer(cont.ID)
		return nil, err
	}

	hostPortNum, err := strconv.Atoi(hostPort)
	if err != nil {
		removeContainer(cont.ID)
		return nil, errors.Wrapf(err, "parsing bound host port %s", hostPort)
	}

	err = instance.WaitReady(hostIP, hostPortNum, instance.StartupTimeout(app.Server))
	if err != nil {
		removeContainer(cont.ID)
		return nil, errors.Wrapf(err, "instance %s unhealthy", instanceId)
	}

	log.Infof("container %s started for instance %s on host port %s", cont.ID, instanceId, hostPort)

	return newInstance(instanceId, cont.ID, hostPort, app.Resources.MaxConcurrentInputs), nil
}

func boundHostPort(containerId string, containerPort nat.Port) (string, error) {
	inspected, err := dockerClient.ContainerInspect(context.Background(), containerId)
	if err != nil {
		return "", errors.Wrapf(err, "inspecting container %s", containerId)
	}

	bindings := inspected.NetworkSettings.Ports[containerPort]
	if len(bindings) == 0 {
		return "", errors.Errorf("container %s has no binding for port %s", containerId, containerPort)
	}

	return bindings[0].HostPort, nil
}

// stopInstanceLocked stops and removes the deployment's container. The
// caller must hold the deployment lock.
func stopInstanceLocked(d *Deployment) {
	if d.Instance == nil {
		return
	}

	log.Debugf("stopping instance %s (container %s)", d.Instance.InstanceId, d.Instance.ContainerId)

	err := dockerClient.ContainerStop(context.Background(), d.Instance.ContainerId, &stopContainerTimeoutVar)
	if err != nil {
		log.Warnf("error stopping container %s: %s", d.Instance.ContainerId, err)
	}

	removeContainer(d.Instance.ContainerId)

	d.Instance = nil
}

func removeContainer(containerId string) {
	err := dockerClient.ContainerRemove(context.Background(), containerId, types.ContainerRemoveOptions{Force: true})
	if err != nil {
		log.Warnf("error removing container %s: %s", containerId, err)
	}
}

// runIdleChecker puts the deployment's instance to sleep once it has been
// idle past the declared timeout. The next proxied request cold-starts it
// again.
func (d *Deployment) runIdleChecker() {
	ticker := time.NewTicker(idleCheckInterval)
	defer ticker.Stop()

	idleTimeout := time.Duration(d.App.Resources.IdleTimeoutSeconds) * time.Second

	for {
		select {
		case <-ticker.C:
			d.sleepIfIdle(idleTimeout)
		case <-d.stopIdleChecker:
			return
		}
	}
}

// sleepIfIdle stops the instance once it has been idle past the timeout.
// Static deployments stay up regardless of idle time.
func (d *Deployment) sleepIfIdle(idleTimeout time.Duration) bool {
	d.Lock.Lock()
	defer d.Lock.Unlock()

	if d.Static || d.Instance == nil || time.Since(d.Instance.LastUsed) <= idleTimeout {
		return false
	}

	log.Infof("%s idle for over %s, going to sleep", d.DeploymentId, idleTimeout)

	stopInstanceLocked(d)
	d.LastState = api.StateAsleep

	return true
}

package deployer

import (
	"fmt"
)

// Paths
const (
	PrefixPath = "/deployer"

	DeploymentsPath      = "/deployments"
	DeploymentPath       = "/deployments/%s"
	DeploymentStatusPath = "/deployments/%s/status"

	WebPath = "/web/%s"
)

func GetDeploymentsPath() string {
	return PrefixPath + DeploymentsPath
}

func GetDeploymentPath(deploymentId string) string {
	return PrefixPath + fmt.Sprintf(DeploymentPath, deploymentId)
}

func GetDeploymentStatusPath(deploymentId string) string {
	return PrefixPath + fmt.Sprintf(DeploymentStatusPath, deploymentId)
}

func GetWebPath(deploymentId string) string {
	return PrefixPath + fmt.Sprintf(WebPath, deploymentId)
}

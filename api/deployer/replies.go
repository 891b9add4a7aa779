package deployer

type (
	GetDeploymentsResponseBody      = []string
	GetDeploymentStatusResponseBody = DeploymentStatusDTO
)

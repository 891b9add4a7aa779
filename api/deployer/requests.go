package deployer

type (
	RegisterDeploymentRequestBody = DeploymentDTO
)

package utils

const (
	DeploymentEnvVarName = "DEPLOYMENT_ID"
	InstanceEnvVarName   = "INSTANCE_ID"
)

const (
	TCP string = "tcp"
)

package deployer

type (
	// DeploymentDTO carries a deployment registration: the identifier plus
	// the raw descriptor the daemon parses, builds and runs.
	DeploymentDTO struct {
		DeploymentId        string
		Static              bool
		DescriptorYAMLBytes []byte
	}

	// DeploymentStatusDTO describes the state of one deployment unit and its
	// (at most one) instance.
	DeploymentStatusDTO struct {
		DeploymentId string
		Image        string
		VolumeName   string
		URL          string
		InstanceId   string
		State        string
	}
)

// Instance states
const (
	StateAsleep    = "asleep"
	StateStarting  = "starting"
	StateReady     = "ready"
	StateUnhealthy = "unhealthy"
)

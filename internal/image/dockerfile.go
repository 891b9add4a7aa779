package image

import (
	"fmt"
	"strings"

	"github.com/claimhawk/dataset-viewer-deployment/internal/descriptor"
)

const (
	DockerfileName = "Dockerfile"
)

// RenderDockerfile turns an image spec into a Dockerfile. The rendering is
// deterministic: the same spec always yields the same bytes, so rebuilding
// from the same source tree gives a functionally equivalent image.
func RenderDockerfile(spec descriptor.ImageSpec) string {
	var b strings.Builder

	fmt.Fprintf(&b, "FROM %s\n", spec.Base)

	if len(spec.AptPackages) > 0 {
		fmt.Fprintf(&b,
			"RUN apt-get update && apt-get install -y --no-install-recommends %s && rm -rf /var/lib/apt/lists/*\n",
			strings.Join(spec.AptPackages, " "))
	}

	for _, command := range spec.SetupCommands {
		fmt.Fprintf(&b, "RUN %s\n", command)
	}

	dest := spec.Copy.Dest
	if dest == "" {
		dest = "/app"
	}

	fmt.Fprintf(&b, "COPY . %s\n", dest)
	fmt.Fprintf(&b, "WORKDIR %s\n", dest)

	for _, command := range spec.BuildCommands {
		fmt.Fprintf(&b, "RUN %s\n", command)
	}

	return b.String()
}

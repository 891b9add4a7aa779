package image

import (
	"strings"
	"testing"

	"github.com/claimhawk/dataset-viewer-deployment/internal/descriptor"
	"github.com/stretchr/testify/assert"
)

func datasetViewerImageSpec() descriptor.ImageSpec {
	return descriptor.ImageSpec{
		Base:          "debian:bookworm-slim",
		AptPackages:   []string{"nodejs", "npm", "curl", "git"},
		SetupCommands: []string{"npm install -g npm@latest"},
		Copy: descriptor.CopySpec{
			Src:    ".",
			Dest:   "/app",
			Ignore: []string{".next", "node_modules", ".git", "deployments"},
		},
		BuildCommands: []string{"npm ci --legacy-peer-deps", "npm run build"},
	}
}

func TestRenderDockerfile(t *testing.T) {
	dockerfile := RenderDockerfile(datasetViewerImageSpec())

	lines := strings.Split(strings.TrimSpace(dockerfile), "\n")

	assert.Equal(t, "FROM debian:bookworm-slim", lines[0])
	assert.Contains(t, lines[1], "apt-get install -y --no-install-recommends nodejs npm curl git")
	assert.Equal(t, "RUN npm install -g npm@latest", lines[2])
	assert.Equal(t, "COPY . /app", lines[3])
	assert.Equal(t, "WORKDIR /app", lines[4])
	assert.Equal(t, "RUN npm ci --legacy-peer-deps", lines[5])
	assert.Equal(t, "RUN npm run build", lines[6])
}

func TestRenderDockerfileIsDeterministic(t *testing.T) {
	spec := datasetViewerImageSpec()

	assert.Equal(t, RenderDockerfile(spec), RenderDockerfile(spec))
}

func TestRenderDockerfileDefaultsDest(t *testing.T) {
	spec := descriptor.ImageSpec{Base: "debian:bookworm-slim"}

	dockerfile := RenderDockerfile(spec)

	assert.Contains(t, dockerfile, "COPY . /app\n")
	assert.NotContains(t, dockerfile, "apt-get")
}

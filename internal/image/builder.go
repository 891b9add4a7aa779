package image

import (
	"context"
	"fmt"
	"io"

	"github.com/claimhawk/dataset-viewer-deployment/internal/descriptor"
	"github.com/docker/docker/api/types"
	"github.com/docker/docker/client"
	json "github.com/goccy/go-json"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Builder struct {
	dockerClient *client.Client
}

func NewBuilder() (*Builder, error) {
	dockerClient, err := client.NewEnvClient()
	if err != nil {
		return nil, errors.Wrap(err, "creating docker client")
	}

	return &Builder{dockerClient: dockerClient}, nil
}

// ImageTag is the reference the built image is tagged with.
func ImageTag(org, appName string) string {
	return fmt.Sprintf("%s/%s:latest", org, appName)
}

// Build renders the Dockerfile for the app's image spec, packs the build
// context and runs the docker build. A failing install or build step aborts
// with an error; nothing here retries.
func (b *Builder) Build(ctx context.Context, app *descriptor.App) (string, error) {
	tag := ImageTag(app.Org, app.Name)

	dockerfile := RenderDockerfile(app.Image)

	srcDir := app.Image.Copy.Src
	if srcDir == "" {
		srcDir = "."
	}

	buildContext, err := BuildContext(srcDir, dockerfile, app.Image.Copy.Ignore)
	if err != nil {
		return "", err
	}

	log.Infof("building image %s from %s", tag, srcDir)

	resp, err := b.dockerClient.ImageBuild(ctx, buildContext, types.ImageBuildOptions{
		Tags:       []string{tag},
		Dockerfile: DockerfileName,
		Remove:     true,
	})
	if err != nil {
		return "", errors.Wrapf(err, "building image %s", tag)
	}

	err = drainBuildOutput(resp.Body)
	if err != nil {
		return "", errors.Wrapf(err, "build of image %s failed", tag)
	}

	log.Infof("built image %s", tag)

	return tag, nil
}

// buildMessage is one json line of the docker build output stream.
type buildMessage struct {
	Stream string `json:"stream"`
	Error  string `json:"error"`
}

func drainBuildOutput(body io.ReadCloser) error {
	defer func() {
		err := body.Close()
		if err != nil {
			log.Warn(err)
		}
	}()

	decoder := json.NewDecoder(body)

	for {
		var msg buildMessage

		err := decoder.Decode(&msg)
		if err == io.EOF {
			return nil
		}

		if err != nil {
			return errors.Wrap(err, "reading build output")
		}

		if msg.Error != "" {
			return errors.New(msg.Error)
		}

		if msg.Stream != "" {
			log.Debug(msg.Stream)
		}
	}
}

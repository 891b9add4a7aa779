package deployer

import (
	"net/http"

	api "github.com/claimhawk/dataset-viewer-deployment/api/deployer"
	"github.com/claimhawk/dataset-viewer-deployment/internal/utils"
)

const (
	Port = 50002

	LocalHostAddr = "127.0.0.1"
)

type Client struct {
	*utils.GenericClient

	// registration waits for the image build, which runs for minutes; it
	// must not ride the default request timeout
	buildClient *http.Client
}

func NewDeployerClient(addr string, port int) *Client {
	return &Client{
		GenericClient: utils.NewGenericClient(addr, port),
		buildClient:   &http.Client{},
	}
}

func (c *Client) RegisterDeployment(deploymentId string, static bool, descriptorYAMLBytes []byte) (status int) {
	reqBody := api.RegisterDeploymentRequestBody{
		DeploymentId:        deploymentId,
		Static:              static,
		DescriptorYAMLBytes: descriptorYAMLBytes,
	}

	path := api.GetDeploymentsPath()
	req := utils.BuildRequest(http.MethodPost, c.GetHostPort(), path, reqBody)

	status, _ = utils.DoRequest(c.buildClient, req, nil)

	return
}

func (c *Client) DeleteDeployment(deploymentId string) (status int) {
	path := api.GetDeploymentPath(deploymentId)
	req := utils.BuildRequest(http.MethodDelete, c.GetHostPort(), path, nil)

	status, _ = utils.DoRequest(c.Client, req, nil)

	return
}

func (c *Client) GetDeployments() (deploymentIds []string, status int) {
	path := api.GetDeploymentsPath()
	req := utils.BuildRequest(http.MethodGet, c.GetHostPort(), path, nil)

	var resp api.GetDeploymentsResponseBody
	status, _ = utils.DoRequest(c.Client, req, &resp)
	deploymentIds = resp

	return
}

func (c *Client) GetDeploymentStatus(deploymentId string) (deploymentStatus api.DeploymentStatusDTO, status int) {
	path := api.GetDeploymentStatusPath(deploymentId)
	req := utils.BuildRequest(http.MethodGet, c.GetHostPort(), path, nil)

	var resp api.GetDeploymentStatusResponseBody
	status, _ = utils.DoRequest(c.Client, req, &resp)
	deploymentStatus = resp

	return
}

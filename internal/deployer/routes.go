package deployer

import (
	"fmt"
	"net/http"

	"github.com/claimhawk/dataset-viewer-deployment/api/deployer"
	"github.com/claimhawk/dataset-viewer-deployment/internal/utils"
)

// Route names
const (
	getDeploymentsName      = "GET_DEPLOYMENTS"
	registerDeploymentName  = "REGISTER_DEPLOYMENT"
	deleteDeploymentName    = "DELETE_DEPLOYMENT"
	getDeploymentStatusName = "GET_DEPLOYMENT_STATUS"
	webName                 = "WEB"
	webRestName             = "WEB_REST"
)

// Path variables
const (
	deploymentIdPathVar = "deploymentId"
	restPathVar         = "rest"
)

var (
	_deploymentIdPathVarFormatted = fmt.Sprintf(utils.PathVarFormat, deploymentIdPathVar)

	deploymentsRoute      = deployer.DeploymentsPath
	deploymentRoute       = fmt.Sprintf(deployer.DeploymentPath, _deploymentIdPathVarFormatted)
	deploymentStatusRoute = fmt.Sprintf(deployer.DeploymentStatusPath, _deploymentIdPathVarFormatted)
	webRoute              = fmt.Sprintf(deployer.WebPath, _deploymentIdPathVarFormatted)
	webRestRoute          = webRoute + fmt.Sprintf("/{%s:.*}", restPathVar)
)

var Routes = []utils.Route{
	{
		Name:        registerDeploymentName,
		Method:      http.MethodPost,
		Pattern:     deploymentsRoute,
		HandlerFunc: registerDeploymentHandler,
	},

	{
		Name:        getDeploymentsName,
		Method:      http.MethodGet,
		Pattern:     deploymentsRoute,
		HandlerFunc: getDeploymentsHandler,
	},

	{
		Name:        deleteDeploymentName,
		Method:      http.MethodDelete,
		Pattern:     deploymentRoute,
		HandlerFunc: deleteDeploymentHandler,
	},

	{
		Name:        getDeploymentStatusName,
		Method:      http.MethodGet,
		Pattern:     deploymentStatusRoute,
		HandlerFunc: getDeploymentStatusHandler,
	},

	{
		Name:        webName,
		Pattern:     webRoute,
		HandlerFunc: webHandler,
	},

	{
		Name:        webRestName,
		Pattern:     webRestRoute,
		HandlerFunc: webHandler,
	},
}

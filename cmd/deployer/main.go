package main

import (
	deployerAPI "github.com/claimhawk/dataset-viewer-deployment/api/deployer"
	internal "github.com/claimhawk/dataset-viewer-deployment/internal/deployer"
	"github.com/claimhawk/dataset-viewer-deployment/internal/utils"
	"github.com/claimhawk/dataset-viewer-deployment/pkg/deployer"
)

const (
	serviceName = "DEPLOYER"
)

func main() {
	internal.InitServer()
	utils.StartServer(serviceName, deployer.Port, deployerAPI.PrefixPath, internal.Routes)
}

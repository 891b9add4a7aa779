package main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/claimhawk/dataset-viewer-deployment/internal/descriptor"
	"github.com/claimhawk/dataset-viewer-deployment/internal/instance"
	"github.com/claimhawk/dataset-viewer-deployment/internal/volume"
	"github.com/claimhawk/dataset-viewer-deployment/pkg/deployer"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var (
	deployerClient = deployer.NewDeployerClient(deployer.LocalHostAddr, deployer.Port)
)

func main() {
	debug := flag.Bool("d", false, "add debug logs")
	flag.Parse()

	if *debug {
		log.SetLevel(log.DebugLevel)
	}

	app := &cli.App{
		Commands: []*cli.Command{
			{
				Name:    "deploy",
				Aliases: []string{"a"},
				Usage:   "build and register a deployment",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "static",
						Usage: "deployment never gets garbage collected",
					},
				},
				Action: func(c *cli.Context) error {
					if c.Args().Len() != 1 {
						log.Fatal("deploy: descriptor_yaml_file")
					}

					deploy(c.Args().First(), c.Bool("static"))

					return nil
				},
			},
			{
				Name:    "serve",
				Aliases: []string{"s"},
				Usage:   "run the entry procedure locally for testing",
				Action: func(c *cli.Context) error {
					if c.Args().Len() != 1 {
						log.Fatal("serve: descriptor_yaml_file")
					}

					serve(c.Args().First())

					return nil
				},
			},
			{
				Name:    "info",
				Aliases: []string{"i"},
				Usage:   "print deployment name, volume and public URL",
				Action: func(c *cli.Context) error {
					if c.Args().Len() != 1 {
						log.Fatal("info: descriptor_yaml_file")
					}

					info(c.Args().First())

					return nil
				},
			},
			{
				Name:    "del",
				Aliases: []string{"d"},
				Usage:   "delete a deployment",
				Action: func(c *cli.Context) error {
					if c.Args().Len() != 1 {
						log.Fatal("del: deployment_name")
					}

					deleteDeployment(c.Args().First())

					return nil
				},
			},
			{
				Name:    "ls",
				Aliases: []string{"l"},
				Usage:   "list deployments",
				Action: func(_ *cli.Context) error {
					listDeployments()
					return nil
				},
			},
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}

func loadDescriptor(filename string) (*descriptor.App, []byte) {
	fileBytes, err := ioutil.ReadFile(filename)
	if err != nil {
		log.Fatal("error reading file: ", err)
	}

	app, err := descriptor.Parse(fileBytes)
	if err != nil {
		log.Fatal("invalid descriptor: ", err)
	}

	return app, fileBytes
}

func deploy(filename string, static bool) {
	app, fileBytes := loadDescriptor(filename)

	status := deployerClient.RegisterDeployment(app.Name, static, fileBytes)
	if status != http.StatusOK {
		log.Fatalf("got status %d from deployer", status)
	}

	deploymentStatus, status := deployerClient.GetDeploymentStatus(app.Name)
	if status != http.StatusOK {
		log.Fatalf("got status %d from deployer", status)
	}

	log.Infof("deployed %s (image %s)", deploymentStatus.DeploymentId, deploymentStatus.Image)
	log.Infof("access at: %s", deploymentStatus.URL)
}

func serve(filename string) {
	app, _ := loadDescriptor(filename)

	binding, err := volume.Attach(app.Volume)
	if err != nil {
		log.Fatal(err)
	}

	entry := instance.NewEntry(app, binding)

	err = entry.Run()
	if err != nil {
		log.Fatal(err)
	}

	log.Infof("%s serving on port %d, ctrl-c to stop", app.Name, app.Server.Port)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
}

func info(filename string) {
	app, _ := loadDescriptor(filename)

	fmt.Printf("Deployment: %s\n", app.Name)
	fmt.Printf("Volume: %s\n", app.Volume.Name)
	fmt.Printf("Access at: %s\n", app.WebURL())
}

func deleteDeployment(deploymentId string) {
	status := deployerClient.DeleteDeployment(deploymentId)
	if status != http.StatusOK {
		log.Fatalf("got status %d from deployer", status)
	}
}

func listDeployments() {
	deploymentIds, status := deployerClient.GetDeployments()
	if status != http.StatusOK {
		log.Fatalf("got status %d from deployer", status)
	}

	for _, deploymentId := range deploymentIds {
		fmt.Println(deploymentId)
	}
}

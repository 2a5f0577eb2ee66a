package main

import (
	"os"

	"github.com/df07/photon/cmd"
	"github.com/df07/photon/pkg/log"
	"github.com/urfave/cli"
)

func newApp() *cli.App {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "photon"
	app.Usage = "render scenes in the terminal using path tracing"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a scene",
			Description: `
Render a built-in preset or a JSON scene file with Monte Carlo path tracing
and print it to the terminal. Width and height count terminal cells; the
pixel resolution depends on the output mode.`,
			ArgsUsage: " ",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "scene, s",
					Value: "showcase",
					Usage: "preset name or path to a .json scene file",
				},
				cli.IntFlag{
					Name:  "width, W",
					Value: 120,
					Usage: "output width in terminal cells",
				},
				cli.IntFlag{
					Name:  "height, H",
					Value: 60,
					Usage: "output height in terminal cells",
				},
				cli.IntFlag{
					Name:  "spp",
					Value: 32,
					Usage: "samples per pixel",
				},
				cli.IntFlag{
					Name:  "bounces",
					Value: 12,
					Usage: "maximum scatter events per path",
				},
				cli.StringFlag{
					Name:  "mode, m",
					Value: "halfblock",
					Usage: "terminal output mode: braille, truecolor, halfblock or ascii",
				},
				cli.StringFlag{
					Name:  "tonemap",
					Value: "none",
					Usage: "tone mapping operator: none, reinhard or aces",
				},
				cli.BoolFlag{
					Name:  "no-gamma",
					Usage: "output linear radiance without gamma correction",
				},
				cli.StringFlag{
					Name:  "out, o",
					Usage: "also save the image to this .png or .ppm file",
				},
				cli.BoolFlag{
					Name:  "no-display",
					Usage: "skip terminal output",
				},
				cli.BoolFlag{
					Name:  "no-progress",
					Usage: "do not draw the progress bar on stderr",
				},
				cli.IntFlag{
					Name:  "seed",
					Value: 42,
					Usage: "random seed for scene generation and sampling",
				},
				cli.IntFlag{
					Name:  "workers",
					Value: 0,
					Usage: "number of render workers (0 = one per CPU)",
				},
				cli.IntFlag{
					Name:  "tile-size",
					Value: 16,
					Usage: "tile edge length in pixels",
				},
			},
			Action: cmd.RenderScene,
		},
		{
			Name:  "list-scenes",
			Usage: "list built-in scene presets",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "seed",
					Value: 42,
					Usage: "random seed for scene generation",
				},
			},
			Action: cmd.ListScenes,
		},
		{
			Name:  "serve",
			Usage: "serve progressive renders over HTTP",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "port, p",
					Value: 8080,
					Usage: "port to listen on",
				},
			},
			Action: cmd.Serve,
		},
	}

	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.New("photon").Error(err)
		os.Exit(1)
	}
}

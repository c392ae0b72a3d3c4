package poller

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kr/pretty"
	"github.com/transitpanel/transitpanel/pkg/providers"
	"github.com/transitpanel/transitpanel/pkg/transit"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "poller",
		Usage: "Poll the configured transit providers",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run a headless poller (state in redis, events on the queue)",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "config",
						Usage: "path to the panel configuration file",
					},
				},
				Action: func(c *cli.Context) error {
					panelPoller, err := Bootstrap(c.String("config"))
					if err != nil {
						return err
					}

					go panelPoller.Run()

					signals := make(chan os.Signal, 1)
					signal.Notify(signals, syscall.SIGINT)
					defer signal.Stop(signals)

					<-signals // wait for signal
					go func() {
						<-signals // hard exit on second signal (in case shutdown gets stuck)
						os.Exit(1)
					}()

					return nil
				},
			},
			{
				Name:      "test",
				Usage:     "parse a local fixture through a provider adapter",
				ArgsUsage: "FILE",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "type",
						Usage:    "stop type of the fixture (bus, metro, rer, rail, navitia, traffic, velib)",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "destination",
						Usage: "destination filter for rail fixtures",
					},
				},
				Action: func(c *cli.Context) error {
					payload, err := os.ReadFile(c.Args().First())
					if err != nil {
						return err
					}

					stop := transit.StopConfig{
						Type:        transit.StopType(c.String("type")),
						Station:     "fixture",
						Destination: c.String("destination"),
					}
					if stop.Type == transit.StopTypeRail {
						stop.UIC = &transit.UICCodes{Station: "fixture"}
					}

					registry := providers.NewRegistry(providers.NewDirectory(nil))

					adapter := registry.For(stop.Type)
					if adapter == nil {
						return fmt.Errorf("unknown stop type %q", c.String("type"))
					}

					update, err := adapter.Parse(stop, payload, time.Now())
					if err != nil {
						return err
					}

					pretty.Println(update)

					return nil
				},
			},
		},
	}
}

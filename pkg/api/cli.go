package api

import (
	"github.com/transitpanel/transitpanel/pkg/config"
	"github.com/transitpanel/transitpanel/pkg/panel"
	"github.com/transitpanel/transitpanel/pkg/poller"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web",
		Usage: "Serve the rendered panel and the state API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run the poller and the web server together",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Value: ":8080",
						Usage: "listen target for the web server",
					},
					&cli.StringFlag{
						Name:  "config",
						Usage: "path to the panel configuration file",
					},
				},
				Action: func(c *cli.Context) error {
					panelPoller, err := poller.Bootstrap(c.String("config"))
					if err != nil {
						return err
					}

					go panelPoller.Run()

					display := config.Config.Display

					server := Server{
						Store:  panelPoller.Store,
						Poller: panelPoller,
						Renderer: panel.Renderer{
							Stops:    config.Config.Stops,
							Registry: panelPoller.Registry,
							Catalog:  panel.NewCatalog(display.Translations),
							Options: panel.Options{
								MaximumEntries:           display.MaximumEntries,
								MaxLettersForDestination: display.MaxLettersForDestination,
								MaxLettersForTime:        display.MaxLettersForTime,
								ConcatenateArrivals:      display.ConcatenateArrivals,
								ConvertToWaitingTime:     display.ConvertToWaitingTime,
								UpdateInterval:           config.Config.UpdateInterval.Duration(),
								OldUpdateThreshold:       display.OldUpdateThreshold.Duration(),
								OldThreshold:             display.OldThreshold,
								OldUpdateOpacity:         display.OldUpdateOpacity,
								ShowLastUpdateTime:       display.ShowLastUpdateTime,
								ShowSecondsToNext:        display.ShowSecondsToNext,
							},
						},
					}

					return server.Setup(c.String("listen"))
				},
			},
		},
	}
}

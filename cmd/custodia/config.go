package main

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"
)

var daemonURLFlag = cli.StringFlag{
	Name:  "daemon_url",
	Usage: "custodiad daemon base url",
	Value: "http://localhost:9945",
}

var configCmd = cli.Command{
	Name:   "config",
	Usage:  "Print local configuration of the custodia CLI",
	Action: configAction,
	Subcommands: []*cli.Command{
		{
			Name:   "set",
			Usage:  "set a <key> <value> in the local state",
			Action: configSetAction,
		},
		{
			Name:   "init",
			Usage:  "initialize the local state with flags",
			Action: configInitAction,
			Flags: []cli.Flag{
				&daemonURLFlag,
			},
		},
	},
}

func configAction(ctx *cli.Context) error {
	state, err := getState()
	if err != nil {
		return err
	}

	for key, value := range state {
		fmt.Println(key + ": " + value)
	}

	return nil
}

func configInitAction(c *cli.Context) error {
	return setState(map[string]string{
		"daemon_url": c.String("daemon_url"),
	})
}

func configSetAction(c *cli.Context) error {
	if c.NArg() < 2 {
		return errors.New("key and value are missing")
	}

	key := c.Args().Get(0)
	value := c.Args().Get(1)

	if err := setState(map[string]string{key: value}); err != nil {
		return err
	}

	fmt.Printf("%s %s has been set\n", key, value)

	return nil
}

func getDaemonURL() (string, error) {
	state, err := getState()
	if err != nil {
		return "", err
	}
	daemonURL, ok := state["daemon_url"]
	if !ok {
		return "", errors.New("set daemon url with `config set daemon_url`")
	}
	return daemonURL, nil
}

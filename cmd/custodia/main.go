package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/urfave/cli/v2"
)

var (
	custodiaDataDir = btcutil.AppDataDir("custodia-operator", false)
	statePath       = path.Join(custodiaDataDir, "state.json")
)

func main() {
	app := cli.NewApp()

	app.Version = "0.0.1"
	app.Name = "custodia operator CLI"
	app.Usage = "Command line interface for custodiad daemon operators"
	app.Commands = append(
		app.Commands,
		&configCmd,
		&tenant,
		&wallet,
		&vault,
		&webhook,
		&stats,
		&faucet,
	)

	err := app.Run(os.Args)
	if err != nil {
		fatal(err)
	}
}

func getState() (map[string]string, error) {
	data := map[string]string{}

	file, err := os.ReadFile(statePath)
	if err != nil {
		return nil, errors.New("get config state error: try 'config init'")
	}
	json.Unmarshal(file, &data)

	return data, nil
}

func setState(data map[string]string) error {
	if _, err := os.Stat(custodiaDataDir); os.IsNotExist(err) {
		os.Mkdir(custodiaDataDir, os.ModeDir|0755)
	}

	file, err := os.OpenFile(statePath, os.O_RDONLY|os.O_CREATE, 0644)
	if err != nil {
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}

	currentData, _ := getState()
	mergedData := merge(currentData, data)

	jsonString, err := json.Marshal(mergedData)
	if err != nil {
		return err
	}
	if err := os.WriteFile(statePath, jsonString, 0755); err != nil {
		return fmt.Errorf("writing to file: %w", err)
	}

	return nil
}

func merge(maps ...map[string]string) map[string]string {
	merge := make(map[string]string, 0)
	for _, m := range maps {
		for k, v := range m {
			merge[k] = v
		}
	}
	return merge
}

func printRespJSON(resp []byte) {
	if len(resp) == 0 {
		fmt.Println("ok")
		return
	}

	var indented json.RawMessage = resp
	out, err := json.MarshalIndent(indented, "", "  ")
	if err != nil {
		fmt.Println(string(resp))
		return
	}
	fmt.Println(string(out))
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "[custodia] %v\n", err)
	os.Exit(1)
}

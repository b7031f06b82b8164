// Command process-users adds or deletes the users listed in a
// "username,password,fullname,phone" file.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/yeremiapane/resteasy/config"
	"github.com/yeremiapane/resteasy/importer"
	"github.com/yeremiapane/resteasy/utils"
)

func main() {
	action := flag.String("a", importer.ActionAdd, "action to apply to each user: add or del")
	configFile := flag.String("c", "", "configuration (dotenv) file")
	inputFile := flag.String("i", "", "input (CSV) file")
	flag.Parse()

	if err := run(*action, *configFile, *inputFile); err != nil {
		fmt.Fprintf(os.Stderr, "process-users: %v\n", err)
		os.Exit(1)
	}
}

func run(action, configFile, inputFile string) error {
	if configFile == "" {
		return errors.New("config file must be specified")
	}
	if inputFile == "" {
		return errors.New("input file must be specified")
	}

	utils.InitLogger()
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	utils.SetLevel(cfg.LogLevel)

	store, err := importer.OpenStore(cfg)
	if err != nil {
		return err
	}
	f, err := os.Open(inputFile)
	if err != nil {
		return err
	}
	defer f.Close()

	stats, err := importer.New(store, cfg.MaxQuantity).ImportUsers(f, action)
	if err != nil {
		return err
	}
	utils.InfoLogger.Printf("%d users processed, %d skipped", stats.Done, stats.Skipped)
	return nil
}

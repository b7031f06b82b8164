// Command process-vendor adds a vendor, its admin and its menu from a
// ';'-separated file.
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
	configFile := flag.String("c", "", "configuration (dotenv) file")
	inputFile := flag.String("i", "", "input file")
	flag.Parse()

	if err := run(*configFile, *inputFile); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to add vendor: %v\n", err)
		os.Exit(1)
	}
}

func run(configFile, inputFile string) error {
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

	_, err = importer.New(store, cfg.MaxQuantity).ImportVendor(f)
	return err
}

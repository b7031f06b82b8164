// Command process-orders places the "item,vendor,quantity" lines of a file
// as one order for a user.
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
	inputFile := flag.String("i", "", "input (CSV) file")
	user := flag.String("u", "", "user placing the order")
	flag.Parse()

	if err := run(*configFile, *inputFile, *user); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to process order: %v\n", err)
		os.Exit(1)
	}
}

func run(configFile, inputFile, user string) error {
	switch {
	case configFile == "":
		return errors.New("config file must be specified")
	case inputFile == "":
		return errors.New("input file must be specified")
	case user == "":
		return errors.New("user must be specified")
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

	_, err = importer.New(store, cfg.MaxQuantity).ImportOrders(f, user)
	return err
}

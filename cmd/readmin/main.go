// Command readmin is the vendor admin app: log in and review the orders
// placed against your restaurant.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/yeremiapane/resteasy/cli"
	"github.com/yeremiapane/resteasy/client"
	"github.com/yeremiapane/resteasy/config"
	"github.com/yeremiapane/resteasy/utils"
)

func main() {
	configFile := flag.String("c", "", "configuration (dotenv) file (default ./.env)")
	flag.Parse()

	if err := run(*configFile); err != nil {
		fmt.Fprintf(os.Stderr, "%s: error: %v\n", os.Args[0], err)
		os.Exit(1)
	}
}

func run(configFile string) error {
	utils.InitLogger()
	var files []string
	if configFile != "" {
		files = append(files, configFile)
	}
	cfg, err := config.Load(files...)
	if err != nil {
		return err
	}

	fd := int(os.Stdin.Fd())
	if err := cli.CheckTTY(fd); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	api := client.New(cfg.APIURL, cfg.HTTPTimeout)
	if err := api.Ping(ctx); err != nil {
		return fmt.Errorf("cannot contact server at %s; exiting", cfg.APIURL)
	}

	s := cli.NewSession(ctx, os.Stdin, os.Stdout, cfg.MaxQuantity)
	s.UseTerminal(fd)
	return cli.NewAdmin(api, s).Run()
}

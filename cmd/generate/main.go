package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"orderdata/config"
	"orderdata/generator"
	"orderdata/logger"

	log "github.com/sirupsen/logrus"
)

func main() {
	email := flag.String("email", "", "identity token, used as the generation seed")
	orders := flag.Int("orders", 8000, "number of orders to generate")
	days := flag.Int("days", 150, "date range, the last N days")
	out := flag.String("out", "data", "output directory")
	confPath := flag.String("config", "config.yaml", "path to the runtime config")
	flag.Parse()
	if *email == "" {
		fmt.Fprintln(os.Stderr, "the -email flag is required")
		flag.Usage()
		os.Exit(1)
	}

	conf := config.ParseConfig(*confPath)
	logger.SetupLogging(conf)

	stream := generator.NewStream(*email)
	params := generator.Params{
		Orders: *orders,
		Days:   *days,
		Now:    time.Now().UTC().Truncate(time.Second),
	}
	ds := generator.Generate(stream, params, conf)
	if err := generator.WriteCSV(ds, *out); err != nil {
		log.Errorln(err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("Generated %v sellers, %v orders, %v items into %v/\n", len(ds.Sellers), len(ds.Orders), len(ds.Items), *out)
}

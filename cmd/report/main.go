package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"orderdata/config"
	"orderdata/logger"
	"orderdata/report/aggregate"
	"orderdata/report/checks"
	"orderdata/report/database"
	"orderdata/report/excel"
	"orderdata/report/resolver"

	log "github.com/sirupsen/logrus"
)

func main() {
	days := flag.Int("days", 90, "trailing day window for the report")
	out := flag.String("out", "excel/Report.xlsx", "path of the report workbook")
	dbPath := flag.String("db", ":memory:", "sqlite file path or ':memory:'")
	dataDir := flag.String("data", "data", "directory with the generated csv files")
	confPath := flag.String("config", "config.yaml", "path to the runtime config")
	flag.Parse()

	conf := config.ParseConfig(*confPath)
	logger.SetupLogging(conf)

	if err := run(conf, *days, *dataDir, *dbPath, *out); err != nil {
		log.Errorln(err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("Report saved to %v\n", *out)
}

// run keeps all the failure paths in one place so the database handle is
// released no matter where the pipeline stops.
func run(conf config.Config, days int, dataDir, dbPath, out string) error {
	db, err := database.NewSqliteDatabase(dbPath, conf.Database.CreateBatchSize, log.StandardLogger())
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Errorln(err)
		}
	}()

	if err := db.InitTables(); err != nil {
		return err
	}
	if err := db.LoadCSV(dataDir); err != nil {
		return err
	}

	sellers, err := db.FetchSellers()
	if err != nil {
		return err
	}
	orders, err := db.FetchOrders()
	if err != nil {
		return err
	}
	items, err := db.FetchItems()
	if err != nil {
		return err
	}

	rows, stats := resolver.Resolve(sellers, orders, items, days, time.Now().UTC())
	log.Infof("resolved %v rows from %v raw orders (%v duplicate groups, %v orders dropped, %v outside the window)",
		stats.Rows, stats.RawOrders, stats.DuplicateGroups, stats.DroppedOrders, stats.WindowFiltered)
	if len(rows) == 0 {
		log.Warnln("the window returned no rows, the report will contain empty sheets")
	}

	rep := excel.Report{
		Rows:    rows,
		Summary: aggregate.Summarize(rows),
		Margins: aggregate.MarginByChannel(rows),
		Funnel:  aggregate.BuildFunnel(rows),
		Checks:  checks.Run(rows),
	}
	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return excel.Build(rep, out)
}

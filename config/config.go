package config

import (
	"errors"
	"io/fs"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Generator struct {
		Sellers            int     `yaml:"sellers"`
		DuplicateExtIDRate float64 `yaml:"duplicateExtIdRate"`
		MissingSellerRate  float64 `yaml:"missingSellerRate"`
		BadQtyRate         float64 `yaml:"badQtyRate"`
		InvertedMarginRate float64 `yaml:"invertedMarginRate"`
	} `yaml:"generator"`
	Database struct {
		CreateBatchSize int `yaml:"createBatchSize"`
	} `yaml:"database"`
	Logging struct {
		LogPath  string `yaml:"logPath"`
		LogLevel string `yaml:"logLevel"` // possible options are: trace, debug, info, warn, error, fatal, panic
	} `yaml:"logging"`
}

func DefaultConfig() Config {
	var conf Config
	conf.Generator.Sellers = 30
	conf.Generator.DuplicateExtIDRate = 0.05
	conf.Generator.MissingSellerRate = 0.005
	conf.Generator.BadQtyRate = 0.01
	conf.Generator.InvertedMarginRate = 0.02
	conf.Database.CreateBatchSize = 500
	conf.Logging.LogLevel = "info"
	return conf
}

func ValidateConfig(conf Config) {
	if conf.Generator.Sellers <= 0 {
		log.Fatal("Wrong value for seller count: must be >0!")
	}
	rates := []float64{
		conf.Generator.DuplicateExtIDRate,
		conf.Generator.MissingSellerRate,
		conf.Generator.BadQtyRate,
		conf.Generator.InvertedMarginRate,
	}
	for _, r := range rates {
		if r < 0 || r >= 1 {
			log.Fatal("All defect rates must be within [0, 1)!")
		}
	}
	if conf.Database.CreateBatchSize <= 0 {
		log.Fatal("Wrong value for database creation batch size: must be >0!")
	}
}

// ParseConfig reads the yaml config at path. A missing file is fine, the
// defaults describe the standard dataset shape.
func ParseConfig(path string) Config {
	conf := DefaultConfig()
	file, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return conf
	} else if err != nil {
		log.Fatal("cant read config " + err.Error())
	}
	err = yaml.Unmarshal(file, &conf)
	if err != nil {
		log.Fatal("cant unmarshall config " + err.Error())
	}
	ValidateConfig(conf)
	return conf
}

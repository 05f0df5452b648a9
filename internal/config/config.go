package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

type StorageType string

const (
	PostgresStorage StorageType = "postgres"
	MemoryStorage   StorageType = "memory"
)

type Application struct {
	Listen   string      `koanf:"listen"`
	Storage  StorageType `koanf:"storage"`
	Database Database    `koanf:"db"`
	Layout   Layout      `koanf:"layout"`
	Seed     Seed        `koanf:"seed"`
}

type Database struct {
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
}

// Layout holds the presentation constants of the week grid.
type Layout struct {
	StandardHourHeight float64 `koanf:"standardhourheight"`
	CompactHourHeight  float64 `koanf:"compacthourheight"`
	Unit               string  `koanf:"unit"`
	WeekFirstDay       string  `koanf:"weekfirstday"`
	// Timezone is an IANA name or "Local".
	Timezone string `koanf:"timezone"`
	// CacheSize is the number of computed weeks kept in memory.
	CacheSize int `koanf:"cachesize"`
}

type Seed struct {
	Path string `koanf:"path"`
}

func Defaults() Application {
	return Application{
		Listen:  ":8181",
		Storage: PostgresStorage,
		Database: Database{
			Host:   "localhost",
			Port:   5432,
			User:   "weekgrid",
			Pass:   "",
			Name:   "weekgrid",
			Schema: "weekgrid",
		},
		Layout: Layout{
			StandardHourHeight: 4,
			CompactHourHeight:  2,
			Unit:               "rem",
			WeekFirstDay:       "sunday",
			Timezone:           "Local",
			CacheSize:          32,
		},
	}
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Defaults(), "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: "WEEKGRID_",
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "WEEKGRID_")), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	return app, nil
}

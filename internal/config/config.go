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

type Application struct {
	Host       string     `koanf:"host"`
	Listen     string     `koanf:"listen"`
	Frontend   Frontend   `koanf:"frontend"`
	Auth       Auth       `koanf:"auth"`
	Google     Google     `koanf:"google"`
	Exchange   Exchange   `koanf:"exchange"`
	Investment Investment `koanf:"investment"`
	SMTP       SMTP       `koanf:"smtp"`
	Database   Database   `koanf:"db"`
}

type Frontend struct {
	Enabled bool `koanf:"enabled"`
}

type Auth struct {
	JWTSecret     string `koanf:"jwtsecret"`
	TokenTTLHours int    `koanf:"tokenttlhours"`
}

type Google struct {
	ClientId     string `koanf:"clientid"`
	ClientSecret string `koanf:"clientsecret"`
}

type Exchange struct {
	RateApiURL string `koanf:"rateapiurl"`
	CBRURL     string `koanf:"cbrurl"`
	FeePercent string `koanf:"feepercent"`
}

type Investment struct {
	YahooURL     string `koanf:"yahoourl"`
	CoinGeckoURL string `koanf:"coingeckourl"`
}

type SMTP struct {
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Sender string `koanf:"sender"`
}

type Database struct {
	Path string `koanf:"path"`
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Application{
		Host:   "http://localhost:3000",
		Listen: ":8181",
		Frontend: Frontend{
			Enabled: true,
		},
		Auth: Auth{
			TokenTTLHours: 24,
		},
		Exchange: Exchange{
			RateApiURL: "https://api.exchangerate-api.com/v4/latest",
			CBRURL:     "https://www.cbr.ru/scripts/XML_daily.asp",
			FeePercent: "2",
		},
		Investment: Investment{
			YahooURL:     "https://query1.finance.yahoo.com",
			CoinGeckoURL: "https://api.coingecko.com",
		},
		Database: Database{
			Path: "c2g.db",
		},
	}, "koanf"), nil)
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
		Prefix: "C2G_",
		TransformFunc: func(k, v string) (string, any) {
			// Transform the key.
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "C2G_")), "_", ".")
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

package main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"time"

	"github.com/dtungpka/MT6701/pkg/mt6701"

	yaml "gopkg.in/yaml.v2"
)

type config struct {
	Device               string  `yaml:"device"`
	Addr                 int     `yaml:"addr"`
	UpdateIntervalMillis int     `yaml:"update_interval_millis"`
	RPMThreshold         float64 `yaml:"rpm_threshold"`
	RPMFilterSize        int     `yaml:"rpm_filter_size"`
}

func main() {
	configFile := flag.String("config", "", "optional YAML config file")
	dummy := flag.Bool("dummy", false, "use a synthetic encoder instead of hardware")
	flag.Parse()

	cfg := config{
		Device: "/dev/i2c-1",
		Addr:   mt6701.DefaultAddr,
	}
	if *configFile != "" {
		raw, err := ioutil.ReadFile(*configFile)
		if err != nil {
			fmt.Println("Failed to read config", err)
			return
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			fmt.Println("Failed to parse config", err)
			return
		}
	}

	encCfg := mt6701.Config{
		UpdateInterval: time.Duration(cfg.UpdateIntervalMillis) * time.Millisecond,
		RPMThreshold:   cfg.RPMThreshold,
		RPMFilterSize:  cfg.RPMFilterSize,
	}

	var enc *mt6701.MT6701
	if *dummy {
		enc = mt6701.New(mt6701.Dummy(120), encCfg)
	} else {
		var err error
		enc, err = mt6701.NewI2C(cfg.Device, cfg.Addr, encCfg)
		if err != nil {
			fmt.Println("Failed to open encoder", err)
			return
		}
	}

	for range time.NewTicker(enc.UpdateInterval()).C {
		if err := enc.Poll(); err != nil {
			fmt.Println("Poll:", err)
			continue
		}
		fmt.Printf("count=%5d angle=%7.2fdeg turns=%8.3f rpm=%8.2f\n",
			enc.Count(), enc.AngleDegrees(), enc.Turns(), enc.RPM())
	}
}

package main

import (
	"flag"
	"log"
	"time"

	"github.com/dtungpka/MT6701/pkg/mt6701"
)

func main() {
	deviceFile := flag.String("device", "/dev/spidev0.0", "SPI device file")
	flag.Parse()

	dev, err := mt6701.OpenSSI(*deviceFile)
	if err != nil {
		log.Fatal("Failed to open encoder: ", err)
	}

	enc := mt6701.New(dev, mt6701.Config{})

	for range time.NewTicker(enc.UpdateInterval()).C {
		if err := enc.Poll(); err != nil {
			log.Println("Poll:", err)
			continue
		}
		s := dev.Status()
		log.Printf("count=%5d angle=%7.2fdeg turns=%8.3f rpm=%8.2f field=%v push=%v loss=%v",
			enc.Count(), enc.AngleDegrees(), enc.Turns(), enc.RPM(),
			s.Field, s.PushButton, s.TrackLoss)
	}
}

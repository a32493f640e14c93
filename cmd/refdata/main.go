// Command refdata rebuilds data/airports_info.json from the OurAirports
// coordinate dump (https://ourairports.com/data/airports.csv) and, optionally,
// an IATA/ICAO code list.
package main

import (
	"flag"
	"io"
	"log"
	"os"

	"github.com/Domenick1991/flightlog/internal/reference"
)

func main() {
	coordsPath := flag.String("coords", "airports.csv", "OurAirports airports.csv")
	iataPath := flag.String("iata", "", "optional IATA list (IATA, ICAO, Airport name, Country, City)")
	outPath := flag.String("out", "data/airports_info.json", "output file")
	flag.Parse()

	coords, err := os.Open(*coordsPath)
	if err != nil {
		log.Fatalf("open coordinates: %v", err)
	}
	defer coords.Close()

	var iata io.Reader
	if *iataPath != "" {
		f, err := os.Open(*iataPath)
		if err != nil {
			log.Fatalf("open iata list: %v", err)
		}
		defer f.Close()
		iata = f
	}

	airports, err := reference.BuildAirports(coords, iata)
	if err != nil {
		log.Fatalf("build airports: %v", err)
	}

	out, err := os.Create(*outPath)
	if err != nil {
		log.Fatalf("create %s: %v", *outPath, err)
	}
	if err := reference.EncodeAirports(out, airports); err != nil {
		out.Close()
		log.Fatalf("write airports: %v", err)
	}
	if err := out.Close(); err != nil {
		log.Fatalf("write airports: %v", err)
	}
	log.Printf("wrote %d airports to %s", len(airports), *outPath)
}

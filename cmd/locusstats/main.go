// locusstats summarizes the per-locus observations of a tab-separated table
// into a _percentiles.bed report of mean, variance and 5th/95th percentiles.
package main

import (
	"os"

	log "github.com/sirupsen/logrus"
)

func main() {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	if err := newRootCmd().Execute(); err != nil {
		log.Fatalln(err)
	}
}

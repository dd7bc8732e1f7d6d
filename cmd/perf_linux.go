//go:build linux

package cmd

import (
	perf "github.com/hodgesds/perf-utils"
	log "github.com/sirupsen/logrus"
)

func measure(f func() error) error {
	var (
		ferr error
		ran  bool
	)
	pv, err := perf.CPUInstructions(func() error {
		ran = true
		ferr = f()
		return ferr
	})
	if ferr != nil {
		return ferr
	}
	if err != nil {
		log.WithError(err).Warn("perf counters unavailable")
		if !ran {
			return f()
		}
		return nil
	}
	log.WithFields(log.Fields{
		"instructions": pv.Value,
		"enabledNs":    pv.TimeEnabled,
	}).Info("write performance")
	return nil
}

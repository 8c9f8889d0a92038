package stats

import (
	"bufio"
	"context"
	"os"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

const megabyte = 1 << 20

// EnableMemoryStatistics starts a goroutine that periodically logs
// runtime figures of the daemon process. On shutdown it dumps the
// prometheus default registry, which carries the HTTP and custody
// metrics alongside the runtime collectors, to dumpPath.
func EnableMemoryStatistics(
	ctx context.Context, interval time.Duration, dumpPath string,
) {
	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				logRuntimeStatistics()
			case <-ctx.Done():
				if err := dumpMetrics(dumpPath); err != nil {
					log.WithError(err).Warn("failed to dump metrics")
				}
				return
			}
		}
	}()
}

func logRuntimeStatistics() {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	log.WithFields(log.Fields{
		"heap_mb":    toMegabytes(memStats.HeapAlloc),
		"total_mb":   toMegabytes(memStats.TotalAlloc),
		"mallocs":    memStats.Mallocs,
		"frees":      memStats.Frees,
		"goroutines": runtime.NumGoroutine(),
	}).Info("runtime statistics")
}

func toMegabytes(bytes uint64) float64 {
	return float64(bytes) / megabyte
}

func dumpMetrics(path string) error {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return err
	}
	defer file.Close()

	metricFamilies, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return err
	}

	writer := bufio.NewWriter(file)
	for _, family := range metricFamilies {
		if _, err := writer.WriteString(family.String() + "\n"); err != nil {
			return err
		}
	}
	return writer.Flush()
}

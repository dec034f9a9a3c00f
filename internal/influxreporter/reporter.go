// Package influxreporter writes one point per finalized import run to
// InfluxDB. Reporting is best effort: a write failure is logged and never
// fails an import.
package influxreporter

import (
	"fmt"

	influxdb "github.com/influxdata/influxdb/client/v2"
	"k8s.io/klog"

	"github.com/ledgerfeed/ledgerfeed/internal/model"
	"github.com/ledgerfeed/ledgerfeed/pkg/config"
)

const measurement = "import_runs"

type Reporter struct {
	client   influxdb.Client
	database string
}

// New connects to influx and makes sure the stats database exists.
func New(secrets config.InfluxSecrets, database string) (*Reporter, error) {
	client, err := influxdb.NewHTTPClient(influxdb.HTTPConfig{
		Addr:     secrets.InfluxEndpoint,
		Username: secrets.InfluxUsername,
		Password: secrets.InfluxPassword,
	})
	if err != nil {
		return nil, fmt.Errorf("creating influx client: %w", err)
	}

	q := influxdb.NewQuery("CREATE DATABASE "+database, "", "")
	if response, err := client.Query(q); err != nil {
		return nil, fmt.Errorf("creating influx database: %w", err)
	} else if response.Error() != nil {
		return nil, fmt.Errorf("creating influx database: %w", response.Error())
	}

	return &Reporter{client: client, database: database}, nil
}

// Report writes the run's counters and duration.
func (r *Reporter) Report(run *model.ImportRun) {
	bp, err := influxdb.NewBatchPoints(influxdb.BatchPointsConfig{Database: r.database})
	if err != nil {
		klog.Errorf("Failed to build influx batch: %v", err)
		return
	}

	tags := map[string]string{
		"profile": run.Profile,
		"outcome": string(run.Outcome),
	}
	fields := map[string]interface{}{
		"rows_seen":      run.RowsSeen,
		"rows_imported":  run.RowsImported,
		"rows_duplicate": run.RowsDuplicate,
		"rows_invalid":   run.RowsInvalid,
		"duration_ms":    run.CompletedAt.Sub(run.StartedAt).Milliseconds(),
		"source_file":    run.SourceFile,
	}

	point, err := influxdb.NewPoint(measurement, tags, fields, run.CompletedAt)
	if err != nil {
		klog.Errorf("Failed to build influx point: %v", err)
		return
	}
	bp.AddPoint(point)

	if err := r.client.Write(bp); err != nil {
		klog.Errorf("Failed to write import run %s to influx: %v", run.ID, err)
	}
}

// Close releases the underlying HTTP client.
func (r *Reporter) Close() error {
	return r.client.Close()
}

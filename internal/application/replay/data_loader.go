package replay

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/penwyp/go-geo-replay/internal/core/model"
	"github.com/penwyp/go-geo-replay/internal/data/parser"
	"github.com/penwyp/go-geo-replay/internal/observability"
	"github.com/penwyp/go-geo-replay/internal/util"
)

// ErrIngestion marks any failure while loading the session inputs. Callers
// match it with errors.Is; the wrapped cause names the failing input.
var ErrIngestion = errors.New("ingestion failed")

// LoadedData bundles the three ingested inputs of a session.
type LoadedData struct {
	Records  *parser.RecordSet
	Events   *parser.EventSeries
	Boundary *model.BoundaryInfo
}

// LoadAll ingests the record, execution, and boundary files concurrently.
// Ingestion is all-or-nothing: any failed input fails the whole load and no
// partial session is started. metrics may be nil.
func LoadAll(cfg *Config, metrics *observability.Metrics) (*LoadedData, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	var (
		wg   sync.WaitGroup
		data LoadedData
		errs [3]error
	)

	started := time.Now()
	wg.Add(3)
	go func() {
		defer wg.Done()
		data.Records, errs[0] = parser.ParseRecordFile(cfg.DataFile, cfg.DateProperty, loc)
	}()
	go func() {
		defer wg.Done()
		data.Events, errs[1] = parser.ParseExecutionFile(cfg.ExecFile, loc)
	}()
	go func() {
		defer wg.Done()
		data.Boundary, errs[2] = parser.ParseBoundaryFile(cfg.BoundaryFile)
	}()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrIngestion, err)
		}
	}
	if len(data.Records.Records) == 0 {
		return nil, fmt.Errorf("%w: %s contains no usable records", ErrIngestion, cfg.DataFile)
	}

	if metrics != nil {
		metrics.RecordsIngested.Add(float64(len(data.Records.Records)))
		metrics.RecordsRejected.Add(float64(data.Records.Rejected))
		metrics.EventsIngested.Add(float64(len(data.Events.Events)))
		metrics.EventsRejected.Add(float64(data.Events.Rejected))
	}

	util.LogInfof("Ingested %d records, %d events, boundary %q in %v",
		len(data.Records.Records), len(data.Events.Events), data.Boundary.Name,
		time.Since(started).Round(time.Millisecond))

	return &data, nil
}

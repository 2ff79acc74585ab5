// Package agents fans a per-agent stats request out across an agent list.
//
// The aggregator owns no data of its own: the inventory and the per-agent
// stats accessor are external collaborators behind narrow interfaces, so
// callers can back them with a database, an API client, or fixtures.
package agents

import (
	"encoding/json"
	"log/slog"

	"github.com/hostsentry/hostsentry-stats/internal/platform"
)

// Payload is one agent's component stats as returned by the accessor.
type Payload map[string]any

// Inventory lists the agent IDs the platform knows about.
type Inventory interface {
	KnownAgents() (map[string]struct{}, error)
}

// StatsFetcher retrieves one agent's stats for a component. Known failure
// conditions surface as platform errors; anything else is unexpected.
type StatsFetcher interface {
	FetchAgentStats(agentID, component string) (Payload, error)
}

// Failure pairs an agent ID with the platform error that excluded it from
// the batch.
type Failure struct {
	AgentID string
	Err     error
}

// MarshalJSON renders the failure with the error message flattened, since
// error values alone do not serialize.
func (f Failure) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		AgentID string `json:"agent_id"`
		Error   string `json:"error"`
	}{AgentID: f.AgentID, Error: f.Err.Error()})
}

// Recorder receives batch outcomes for instrumentation. Implemented by
// metrics.Collector; nil disables recording.
type Recorder interface {
	RecordAgentBatch(succeeded, failed int)
}

// Aggregator partitions a batch of agent IDs into successes and per-agent
// failures.
type Aggregator struct {
	inventory Inventory
	fetcher   StatsFetcher
	logger    *slog.Logger
	recorder  Recorder
}

// NewAggregator creates an Aggregator. logger and recorder may be nil.
func NewAggregator(inventory Inventory, fetcher StatsFetcher, logger *slog.Logger, recorder Recorder) *Aggregator {
	return &Aggregator{
		inventory: inventory,
		fetcher:   fetcher,
		logger:    logger,
		recorder:  recorder,
	}
}

// ComponentStats fetches component stats for every agent in agentIDs.
//
// IDs missing from the inventory fail with a resource-not-found error;
// platform errors from the fetcher fail just that agent. Both outputs keep
// the input order, and every input ID lands in exactly one of them. An
// error that is not part of the platform family aborts the whole batch:
// those are bugs or infrastructure faults, not per-agent conditions.
func (a *Aggregator) ComponentStats(agentIDs []string, component string) (failed []Failure, affected []Payload, err error) {
	known, err := a.inventory.KnownAgents()
	if err != nil {
		return nil, nil, err
	}

	for _, id := range agentIDs {
		payload, fetchErr := a.fetchOne(known, id, component)
		if fetchErr == nil {
			affected = append(affected, payload)
			continue
		}
		if !platform.IsPlatformError(fetchErr) {
			return nil, nil, fetchErr
		}
		if a.logger != nil {
			a.logger.Debug("agent_stats_failed",
				"agent_id", id,
				"component", component,
				"kind", platform.KindOf(fetchErr).String(),
			)
		}
		failed = append(failed, Failure{AgentID: id, Err: fetchErr})
	}

	if a.recorder != nil {
		a.recorder.RecordAgentBatch(len(affected), len(failed))
	}
	return failed, affected, nil
}

func (a *Aggregator) fetchOne(known map[string]struct{}, id, component string) (Payload, error) {
	if _, ok := known[id]; !ok {
		return nil, platform.ResourceNotFound(id)
	}
	return a.fetcher.FetchAgentStats(id, component)
}

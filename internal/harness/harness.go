package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/roach88/gradebook/internal/persist"
	"github.com/roach88/gradebook/internal/record"
	"github.com/roach88/gradebook/internal/store"
)

// Harness executes scenario steps against one store.
type Harness struct {
	store  *store.Store
	logger *slog.Logger
}

// Run executes a scenario and returns the result.
//
// Each scenario runs against a fresh store. Expectation mismatches are
// collected in Result.Errors; the returned error is reserved for problems
// that stop execution (bad setup, failed reload).
//
// Execution flow:
// 1. Create an empty store and add the setup records
// 2. Execute each step, appending one trace event
// 3. Check the step's expect clause against the event
// 4. Check the final clause against the store
func Run(scenario *Scenario) (*Result, error) {
	h := &Harness{
		store:  store.New(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)), // Suppress logs in tests
	}
	ctx := context.Background()

	for i, seed := range scenario.Setup {
		if _, err := h.store.Add(seed.ID, seed.Name, seed.Grades); err != nil {
			return nil, fmt.Errorf("setup[%d]: %w", i, err)
		}
	}

	result := NewResult()
	for i, step := range scenario.Steps {
		event, err := h.execute(ctx, step)
		if err != nil {
			return nil, fmt.Errorf("steps[%d] (%s): %w", i, step.Op, err)
		}
		event.Seq = int64(i + 1)
		result.Trace = append(result.Trace, event)

		if step.Expect != nil {
			for _, msg := range checkEvent(step.Expect, event) {
				result.AddError(fmt.Sprintf("steps[%d] (%s): %s", i, step.Op, msg))
			}
		}
	}

	if scenario.Final != nil {
		final := TraceEvent{IDs: idsOf(h.store.All()), Size: h.store.Len()}
		for _, msg := range checkEvent(scenario.Final, final) {
			result.AddError("final: " + msg)
		}
	}

	return result, nil
}

// execute runs one step and describes what happened.
func (h *Harness) execute(ctx context.Context, step Step) (TraceEvent, error) {
	event := TraceEvent{Op: step.Op, Args: formatArgs(step)}
	h.logger.Debug("executing step", "op", step.Op, "args", event.Args)

	switch step.Op {
	case OpAdd:
		r, err := h.store.Add(*step.ID, step.Name, step.Grades)
		switch {
		case store.IsDuplicateKey(err):
			event.Outcome = OutcomeDuplicateKey
		case err != nil:
			return event, err
		default:
			event.Outcome = OutcomeOK
			event.Record = &r
		}

	case OpUpdate:
		if !h.store.Update(*step.ID, step.Name, step.Grades) {
			event.Outcome = OutcomeNotFound
			break
		}
		r, _ := h.store.Get(*step.ID)
		event.Outcome = OutcomeOK
		event.Record = &r

	case OpRemove:
		h.store.Remove(*step.ID)
		event.Outcome = OutcomeOK

	case OpGet:
		event.setFound(h.store.Get(*step.ID))

	case OpFindOrdered:
		event.setFound(h.store.FindOrdered(*step.ID))

	case OpLookup:
		event.setFound(h.store.LookupName(step.Name))

	case OpFind:
		event.Outcome = OutcomeOK
		event.IDs = idsOf(h.store.FindByName(*step.Query))

	case OpList:
		c := store.ByID
		if step.Sort != "" {
			parsed, err := store.ParseCriterion(step.Sort)
			if err != nil {
				return event, err
			}
			c = parsed
		}
		event.Outcome = OutcomeOK
		event.IDs = idsOf(h.store.OrderedView(c))

	case OpReload:
		if err := h.reload(ctx, step.Format); err != nil {
			return event, err
		}
		event.Outcome = OutcomeOK

	default:
		return event, fmt.Errorf("unknown op %q", step.Op)
	}

	event.Size = h.store.Len()
	return event, nil
}

// setFound fills the outcome from a (record, ok) lookup result.
func (e *TraceEvent) setFound(r record.Record, ok bool) {
	if !ok {
		e.Outcome = OutcomeNotFound
		return
	}
	e.Outcome = OutcomeFound
	e.Record = &r
}

// reload saves the store in the given format and replaces it with what
// loads back, exercising the full persistence round trip.
func (h *Harness) reload(ctx context.Context, format string) error {
	ext := map[string]string{"": ".json", "json": ".json", "yaml": ".yaml", "sqlite": ".db"}[format]

	dir, err := os.MkdirTemp("", "gradebook-harness-*")
	if err != nil {
		return fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "snapshot"+ext)
	if err := persist.Save(ctx, h.store, path); err != nil {
		return err
	}
	loaded, err := persist.Load(ctx, path)
	if err != nil {
		return err
	}
	h.store = loaded
	return nil
}

// checkEvent compares an event with an expectation and returns mismatches.
func checkEvent(want *Expect, got TraceEvent) []string {
	var errs []string

	if want.Outcome != "" && want.Outcome != got.Outcome {
		errs = append(errs, fmt.Sprintf("outcome = %s, want %s", got.Outcome, want.Outcome))
	}

	if want.Name != nil || want.Average != nil {
		if got.Record == nil {
			errs = append(errs, "no record returned")
		} else {
			if want.Name != nil && *want.Name != got.Record.Name {
				errs = append(errs, fmt.Sprintf("name = %q, want %q", got.Record.Name, *want.Name))
			}
			if want.Average != nil && *want.Average != got.Record.Average {
				errs = append(errs, fmt.Sprintf("average = %v, want %v", got.Record.Average, *want.Average))
			}
		}
	}

	if want.IDs != nil && !slices.Equal(want.IDs, got.IDs) {
		errs = append(errs, fmt.Sprintf("ids = %v, want %v", got.IDs, want.IDs))
	}

	if want.Size != nil && *want.Size != got.Size {
		errs = append(errs, fmt.Sprintf("size = %d, want %d", got.Size, *want.Size))
	}

	return errs
}

func idsOf(recs []record.Record) []int {
	out := make([]int, len(recs))
	for i, r := range recs {
		out[i] = r.ID
	}
	return out
}

package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/baldidon/transfermarkt-api/internal/config"
	"github.com/baldidon/transfermarkt-api/internal/extraction"
	"github.com/baldidon/transfermarkt-api/internal/managers"
	"github.com/baldidon/transfermarkt-api/pkg/models"
	"github.com/rs/zerolog/log"
)

// Profiler extracts one manager profile.
type Profiler interface {
	Profile(ctx context.Context, req managers.ProfileRequest) (*managers.ProfileResult, error)
}

// Pool manages a pool of worker goroutines extracting profiles. Every job is
// an independent extraction; a failure is reported in its Result and does not
// stop the others.
type Pool struct {
	Config    *config.WorkerConfig
	Service   Profiler
	Jobs      chan string
	Results   chan models.Result
	WaitGroup *sync.WaitGroup
}

// NewPool creates a new worker pool sized for n jobs
func NewPool(cfg *config.WorkerConfig, svc Profiler, n int) *Pool {
	return &Pool{
		Config:    cfg,
		Service:   svc,
		Jobs:      make(chan string, n),
		Results:   make(chan models.Result, n),
		WaitGroup: &sync.WaitGroup{},
	}
}

// Start starts the workers. Results is closed once every worker has exited,
// either because Jobs was closed and drained or because ctx was canceled.
func (p *Pool) Start(ctx context.Context) {
	// A nil channel never fires, which disables rate limiting.
	var tick <-chan time.Time
	var ticker *time.Ticker
	if p.Config.RateLimit > 0 {
		ticker = time.NewTicker(p.Config.RateLimit)
		tick = ticker.C
	}

	workers := p.Config.Count
	if workers < 1 {
		workers = 1
	}
	for w := 1; w <= workers; w++ {
		p.WaitGroup.Add(1)
		go p.worker(ctx, w, tick)
	}

	go func() {
		p.WaitGroup.Wait()
		if ticker != nil {
			ticker.Stop()
		}
		close(p.Results)
	}()
}

// worker processes ids from the jobs channel and sends results to the results channel
func (p *Pool) worker(ctx context.Context, id int, tick <-chan time.Time) {
	defer p.WaitGroup.Done()

	for managerID := range p.Jobs {
		if tick != nil {
			select {
			case <-tick:
			case <-ctx.Done():
				return
			}
		}
		if ctx.Err() != nil {
			return
		}

		log.Debug().Int("worker", id).Str("id", managerID).Msg("extracting profile")
		p.Results <- p.run(ctx, managerID)
	}
}

func (p *Pool) run(ctx context.Context, id string) models.Result {
	start := time.Now()
	profile, err := p.Service.Profile(ctx, managers.ProfileRequest{ID: id})

	result := models.Result{
		ID:        id,
		Profile:   profile,
		Duration:  time.Since(start),
		Timestamp: start,
	}
	if err != nil {
		result.Err = err.Error()
		result.NotFound = errors.Is(err, extraction.ErrNotFound)
		log.Warn().Err(err).Str("id", id).Msg("profile extraction failed")
	}
	return result
}

// AddJobs adds ids to the jobs channel and closes it
func (p *Pool) AddJobs(ids []string) {
	for _, id := range ids {
		p.Jobs <- id
	}
	close(p.Jobs) // Close the jobs channel to signal workers that no more jobs are coming
}

// Run extracts every id and returns the results in input order.
func Run(ctx context.Context, cfg *config.WorkerConfig, svc Profiler, ids []string) []models.Result {
	p := NewPool(cfg, svc, len(ids))
	p.Start(ctx)
	p.AddJobs(ids)

	byID := make(map[string][]models.Result, len(ids))
	for r := range p.Results {
		byID[r.ID] = append(byID[r.ID], r)
	}

	out := make([]models.Result, 0, len(ids))
	for _, id := range ids {
		rs := byID[id]
		if len(rs) == 0 {
			msg := "not processed"
			if err := context.Cause(ctx); err != nil {
				msg = err.Error()
			}
			out = append(out, models.Result{ID: id, Err: msg})
			continue
		}
		out = append(out, rs[0])
		byID[id] = rs[1:]
	}
	return out
}

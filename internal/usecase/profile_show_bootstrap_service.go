package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/hr-profile/internal/platform/logging"
)

const (
	defaultBootstrapWorkers = 4
	maxBootstrapUsers       = 1000
)

type BootstrapProfileShowInput struct {
	UserIDs    []string
	MaxWorkers int
}

type BootstrapProfileShowResult struct {
	Requested   int                           `json:"requested"`
	Created     int                           `json:"created"`
	Existing    int                           `json:"existing"`
	Failed      int                           `json:"failed"`
	WorkerCount int                           `json:"worker_count"`
	Failures    []BootstrapProfileShowFailure `json:"failures"`
}

type BootstrapProfileShowFailure struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

type profileShowDefaulter interface {
	EnsureDefault(ctx context.Context, userID string) (bool, error)
}

// ProfileShowBootstrapService backfills default visibility rows for many
// users at once on a bounded worker pool.
type ProfileShowBootstrapService struct {
	defaulter profileShowDefaulter
	workers   int
	logger    *logging.Logger
}

func NewProfileShowBootstrapService(defaulter profileShowDefaulter, workers int, logger *logging.Logger) *ProfileShowBootstrapService {
	if workers <= 0 {
		workers = defaultBootstrapWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &ProfileShowBootstrapService{
		defaulter: defaulter,
		workers:   workers,
		logger:    logger,
	}
}

func (s *ProfileShowBootstrapService) Run(ctx context.Context, input BootstrapProfileShowInput) (result BootstrapProfileShowResult, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProfileShowBootstrapService.Run", "")
	defer func() { endSpan(span, err) }()

	userIDs, err := normalizeBootstrapUserIDs(input.UserIDs)
	if err != nil {
		return BootstrapProfileShowResult{}, err
	}

	workerCount := s.workers
	if input.MaxWorkers > 0 && input.MaxWorkers < workerCount {
		workerCount = input.MaxWorkers
	}
	if workerCount > len(userIDs) {
		workerCount = len(userIDs)
	}

	result = BootstrapProfileShowResult{
		Requested:   len(userIDs),
		WorkerCount: workerCount,
		Failures:    make([]BootstrapProfileShowFailure, 0),
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return BootstrapProfileShowResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var createdCount atomic.Int32
	var existingCount atomic.Int32
	var failuresMu sync.Mutex

	var workers sync.WaitGroup
	for _, userID := range userIDs {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			created, err := s.defaulter.EnsureDefault(ctx, userID)
			if err != nil {
				s.logger.WarnContext(ctx, "bootstrap profile show failed", "user_id", userID, "error", err)
				failuresMu.Lock()
				result.Failures = append(result.Failures, BootstrapProfileShowFailure{UserID: userID, Message: err.Error()})
				failuresMu.Unlock()
				return
			}
			if created {
				createdCount.Add(1)
			} else {
				existingCount.Add(1)
			}
		}); err != nil {
			workers.Done()
			workers.Wait()
			return BootstrapProfileShowResult{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}
	workers.Wait()

	sort.Slice(result.Failures, func(i, j int) bool {
		return result.Failures[i].UserID < result.Failures[j].UserID
	})
	result.Created = int(createdCount.Load())
	result.Existing = int(existingCount.Load())
	result.Failed = len(result.Failures)

	s.logger.InfoContext(ctx, "profile show bootstrap finished",
		"requested", result.Requested,
		"created", result.Created,
		"existing", result.Existing,
		"failed", result.Failed,
	)
	return result, nil
}

func normalizeBootstrapUserIDs(raw []string) ([]string, error) {
	out := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, userID := range raw {
		userID = strings.TrimSpace(userID)
		if userID == "" {
			return nil, fmt.Errorf("%w: user_ids cannot contain blank values", ErrInvalidInput)
		}
		if _, ok := seen[userID]; ok {
			continue
		}
		seen[userID] = struct{}{}
		out = append(out, userID)
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("%w: user_ids is required", ErrInvalidInput)
	}
	if len(out) > maxBootstrapUsers {
		return nil, fmt.Errorf("%w: at most %d user_ids per request", ErrInvalidInput, maxBootstrapUsers)
	}
	return out, nil
}

package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/zenchantlive/marketnews/app/cfg"
	"github.com/zenchantlive/marketnews/app/news"
)

var _ TaskSchedulerInterface = (*Scheduler)(nil)

type Scheduler struct {
	aggregator  NewsAggregator
	cache       ResultCache
	store       ArticleStore
	interval    time.Duration
	maxAge      time.Duration
	opts        news.Options
	workerCount int
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	taskQueue   chan TaskInterface
}

func NewScheduler(aggregator NewsAggregator, cache ResultCache, store ArticleStore) TaskSchedulerInterface {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := cfg.Get()

	return &Scheduler{
		aggregator: aggregator,
		cache:      cache,
		store:      store,
		interval:   time.Duration(cfg.RefreshInterval) * time.Second,
		maxAge:     time.Duration(cfg.MaxAgeHours) * time.Hour,
		opts: news.Options{
			MaxArticlesPerFeed:  cfg.MaxArticlesPerFeed,
			MaxTotalArticles:    cfg.MaxTotalArticles,
			MaxAgeHours:         cfg.MaxAgeHours,
			EnableDeduplication: true,
		},
		workerCount: cfg.WorkerCount,
		ctx:         ctx,
		cancel:      cancel,
		taskQueue:   make(chan TaskInterface, 100),
	}
}

func (s *Scheduler) Start() {
	s.seedCache()

	for i := 0; i < s.workerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.enqueueTasks()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.enqueueTasks()
			}
		}
	}()
}

// seedCache warms the result cache from persisted articles so requests
// arriving before the first refresh completes have something to serve. The
// immediately enqueued refresh replaces the seed with live data.
func (s *Scheduler) seedCache() {
	articles, err := s.store.GetRecent(s.opts.MaxTotalArticles)
	if err != nil {
		slog.Warn("Failed to seed result cache from storage", "error", err)
		return
	}
	if len(articles) == 0 {
		return
	}

	s.cache.Store(articles)
	slog.Info("Result cache seeded from storage", "articles", len(articles))
}

func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	close(s.taskQueue)
}

func (s *Scheduler) EnqueueTask(task TaskInterface) error {
	select {
	case s.taskQueue <- task:
		return nil
	case <-s.ctx.Done():
		return s.ctx.Err()
	default:
		return fmt.Errorf("task queue is full")
	}
}

func (s *Scheduler) enqueueTasks() {
	refreshTask := NewRefreshNewsTask(s.opts, s.aggregator, s.cache, s.store)
	if err := s.EnqueueTask(refreshTask); err != nil {
		slog.Warn("Failed to enqueue RefreshNewsTask", "error", err)
	}

	pruneTask := NewPruneArticlesTask(s.maxAge, s.store)
	if err := s.EnqueueTask(pruneTask); err != nil {
		slog.Warn("Failed to enqueue PruneArticlesTask", "error", err)
	}
}

func (s *Scheduler) worker(id int) {
	defer s.wg.Done()

	for {
		select {
		case task, ok := <-s.taskQueue:
			if !ok {
				return
			}
			s.executeTask(id, task)

		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Scheduler) executeTask(workerID int, task TaskInterface) {
	task.Start()

	taskCtx, cancel := context.WithTimeout(s.ctx, 5*time.Minute)
	defer cancel()

	err := task.Execute(taskCtx)

	if err != nil {
		slog.Error("Worker task execution failed", "worker_id", workerID, "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "error", err)

		if task.CanRetry() {
			task.IncrementRetryCount()
			retryDelay := time.Duration(1<<uint(task.GetRetryCount()-1)) * time.Second
			if retryDelay > 30*time.Second {
				retryDelay = 30 * time.Second
			}

			slog.Warn("Task retry scheduled", "type", string(task.GetType()), "retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(), "delay", retryDelay.String())

			go func() {
				time.Sleep(retryDelay)
				select {
				case <-s.ctx.Done():
					slog.Debug("Scheduler stopped, skipping task retry", "type", string(task.GetType()), "id", task.GetID())
					return
				default:
					if retryErr := s.EnqueueTask(task); retryErr != nil {
						slog.Error("Failed to re-enqueue task for retry", "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "error", retryErr)
					}
				}
			}()
		} else {
			slog.Error("Task failed after maximum retries", "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(), "last_error", err)
		}
	}
}

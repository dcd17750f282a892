package worker

import (
	"errors"
	"log/slog"
	"sync"
)

// Task 是交給背景 worker 執行的一段工作，例如寄送驗證信
type Task func()

var ErrStopped = errors.New("worker pool stopped")

// Pool 以固定數量的 goroutine 執行 Task
type Pool interface {
	Submit(Task) error
	Stop()
}

// NewPool 建立 n 個 worker 的 pool，queue 為等待中工作的緩衝大小。
// n<=0 時預設為 1；task panic 時只記錄錯誤，worker 繼續服務。
func NewPool(n, queue int, logger *slog.Logger) Pool {
	if n <= 0 {
		n = 1
	}
	if queue < 0 {
		queue = 0
	}
	if logger == nil {
		logger = slog.Default()
	}
	p := &pool{jobs: make(chan Task, queue), logger: logger}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				p.run(job)
			}
		}()
	}
	return p
}

type pool struct {
	mu      sync.RWMutex
	stopped bool
	jobs    chan Task
	wg      sync.WaitGroup
	logger  *slog.Logger
}

func (p *pool) run(job Task) {
	if job == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("worker task panicked", "panic", r)
		}
	}()
	job()
}

// Submit 排入一個工作；Stop 之後呼叫會回傳 ErrStopped
func (p *pool) Submit(t Task) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		return ErrStopped
	}
	p.jobs <- t
	return nil
}

// Stop 停止接收新工作並等待佇列中的工作完成，可重複呼叫
func (p *pool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.jobs)
	p.mu.Unlock()
	p.wg.Wait()
}

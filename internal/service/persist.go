package service

import (
	"log"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kondate-ai/backend/internal/models"
	"github.com/kondate-ai/backend/internal/types"
)

// RecipeWriter persists detailed recipes off the request path. Writes
// go through a buffered queue serviced by a single worker; a failed
// write is logged and never reaches the caller.
type RecipeWriter struct {
	db    *gorm.DB
	queue chan *types.RecipeDetail
	wg    sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// NewRecipeWriter starts the background worker with the given queue depth.
func NewRecipeWriter(db *gorm.DB, buffer int) *RecipeWriter {
	if buffer <= 0 {
		buffer = 64
	}
	w := &RecipeWriter{
		db:    db,
		queue: make(chan *types.RecipeDetail, buffer),
	}
	w.wg.Add(1)
	go w.run()
	return w
}

func (w *RecipeWriter) run() {
	defer w.wg.Done()
	for detail := range w.queue {
		record := models.FromDetail(detail)
		err := w.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).Create(record).Error
		if err != nil {
			log.Printf("[RecipeWriter] failed to save recipe %s: %v", detail.ID, err)
			continue
		}
		log.Printf("[RecipeWriter] recipe saved: %s", detail.ID)
	}
}

// Enqueue hands a sanitized detail record to the background worker.
// When the queue is full, or the writer is already closed, the write
// is dropped with a log line rather than blocking a generation
// pipeline. Late arrivals after Close are expected: streaming sessions
// and image generation outlive the request that started them.
func (w *RecipeWriter) Enqueue(detail *types.RecipeDetail) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		log.Printf("[RecipeWriter] writer closed, dropping write for recipe %s", detail.ID)
		return
	}
	select {
	case w.queue <- detail:
	default:
		log.Printf("[RecipeWriter] queue full, dropping write for recipe %s", detail.ID)
	}
}

// Close drains the queue and stops the worker. Safe to call more than
// once; Enqueue calls racing with Close are dropped, not panicked.
func (w *RecipeWriter) Close() {
	w.mu.Lock()
	if !w.closed {
		w.closed = true
		close(w.queue)
	}
	w.mu.Unlock()
	w.wg.Wait()
}

package history

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// writeTimeout bounds each background insert so a stuck database does
// not wedge the consumer goroutine.
const writeTimeout = 10 * time.Second

// Writer persists records off the request path. Enqueue never blocks:
// records go onto a bounded channel drained by a single goroutine, so
// writes land in FIFO order. When the buffer is full the record is
// dropped and logged; grading responses never wait on storage.
type Writer struct {
	store  *Store
	logger *zap.Logger

	ch   chan Record
	done chan struct{}
	once sync.Once
}

func NewWriter(store *Store, buffer int, logger *zap.Logger) *Writer {
	if buffer <= 0 {
		buffer = 64
	}
	w := &Writer{
		store:  store,
		logger: logger,
		ch:     make(chan Record, buffer),
		done:   make(chan struct{}),
	}
	go w.run()
	return w
}

// Enqueue hands a record to the background writer. Returns false if
// the buffer was full and the record was dropped.
func (w *Writer) Enqueue(r Record) bool {
	select {
	case w.ch <- r:
		return true
	default:
		w.logger.Warn("history buffer full, dropping record",
			zap.String("user_id", r.UserID),
			zap.String("subject_id", r.SubjectID))
		return false
	}
}

// Close stops accepting records, drains what is queued, and waits for
// the consumer to finish.
func (w *Writer) Close() {
	w.once.Do(func() { close(w.ch) })
	<-w.done
}

func (w *Writer) run() {
	defer close(w.done)
	for r := range w.ch {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		if err := w.store.Append(ctx, r); err != nil {
			w.logger.Error("persisting interaction failed",
				zap.String("user_id", r.UserID),
				zap.String("subject_id", r.SubjectID),
				zap.Error(err))
		}
		cancel()
	}
}

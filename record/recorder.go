package record

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/brensch/gridsnake/game"
)

type gameWriteRequest struct {
	gameID string
	rows   []TurnRow
}

// Recorder buffers the snapshots of the current game and hands each
// finished game to a background writer.
//
// Observe must be called from the goroutine that drives the game loop.
type Recorder struct {
	outDir string
	logger *slog.Logger
	now    func() time.Time

	gameID string
	rows   []TurnRow

	writeReqs  chan gameWriteRequest
	writerDone chan struct{}

	mu      sync.Mutex
	written []string
}

func NewRecorder(outDir string, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	r := &Recorder{
		outDir:     outDir,
		logger:     logger,
		now:        time.Now,
		writeReqs:  make(chan gameWriteRequest, 16),
		writerDone: make(chan struct{}),
	}
	go func() {
		r.writerLoop()
		close(r.writerDone)
	}()
	return r
}

// Observe records one published snapshot. A turn-0 snapshot starts a new
// game; a game-over snapshot finishes the current one.
func (r *Recorder) Observe(s game.Snapshot) {
	if s.Turn == 0 && !s.GameOver {
		r.finish("abandoned")
		r.gameID = uuid.NewString()
	}
	if r.gameID == "" {
		r.gameID = uuid.NewString()
	}

	r.rows = append(r.rows, RowFromSnapshot(r.gameID, s, r.now()))

	if s.GameOver {
		r.finish("game_over")
	}
}

func (r *Recorder) finish(reason string) {
	if len(r.rows) == 0 {
		return
	}
	r.logger.Debug("queueing game trace", "game_id", r.gameID, "rows", len(r.rows), "reason", reason)
	r.writeReqs <- gameWriteRequest{gameID: r.gameID, rows: r.rows}
	r.rows = nil
	r.gameID = ""
}

func (r *Recorder) writerLoop() {
	for req := range r.writeReqs {
		path, err := WriteGameParquetAtomic(r.outDir, req.gameID, req.rows)
		if err != nil {
			r.logger.Error("game trace write failed", "game_id", req.gameID, "rows", len(req.rows), "err", err)
			continue
		}
		r.logger.Info("game trace written", "game_id", req.gameID, "rows", len(req.rows), "path", path)

		r.mu.Lock()
		r.written = append(r.written, path)
		r.mu.Unlock()
	}
}

// Written lists the files written so far.
func (r *Recorder) Written() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.written...)
}

// Close writes any unfinished game and waits for pending writes.
func (r *Recorder) Close() error {
	r.finish("shutdown")
	close(r.writeReqs)
	<-r.writerDone
	return nil
}

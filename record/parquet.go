// Package record writes a turn-by-turn trace of each finished game to
// Parquet so games can be replayed or inspected offline.
package record

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"

	"github.com/brensch/gridsnake/game"
)

// SchemaVersion is stored in every file's key/value metadata.
const SchemaVersion = "gridsnake_turn_v1"

// TurnRow is the state of one game after one transition.
type TurnRow struct {
	GameID  string `parquet:"game_id,dict" json:"game_id"`
	Turn    int32  `parquet:"turn" json:"turn"`
	TimeNs  int64  `parquet:"time_ns" json:"time_ns"`
	Heading string `parquet:"heading,dict" json:"heading"`

	// Head first.
	BodyX []int32 `parquet:"body_x" json:"body_x"`
	BodyY []int32 `parquet:"body_y" json:"body_y"`

	// -1,-1 when the board had no free cell.
	FoodX int32 `parquet:"food_x" json:"food_x"`
	FoodY int32 `parquet:"food_y" json:"food_y"`

	Score    int32 `parquet:"score" json:"score"`
	GameOver bool  `parquet:"game_over" json:"game_over"`
}

// RowFromSnapshot flattens a snapshot into a row.
func RowFromSnapshot(gameID string, s game.Snapshot, at time.Time) TurnRow {
	row := TurnRow{
		GameID:   gameID,
		Turn:     int32(s.Turn),
		TimeNs:   at.UnixNano(),
		Heading:  s.Heading.String(),
		BodyX:    make([]int32, len(s.Snake)),
		BodyY:    make([]int32, len(s.Snake)),
		FoodX:    int32(s.Food.X),
		FoodY:    int32(s.Food.Y),
		Score:    int32(s.Score),
		GameOver: s.GameOver,
	}
	for i, p := range s.Snake {
		row.BodyX[i] = int32(p.X)
		row.BodyY[i] = int32(p.Y)
	}
	return row
}

// Body rebuilds the snake from a row.
func (r TurnRow) Body() []game.Point {
	body := make([]game.Point, len(r.BodyX))
	for i := range r.BodyX {
		body[i] = game.Point{X: int(r.BodyX[i]), Y: int(r.BodyY[i])}
	}
	return body
}

// WriteGameParquetAtomic writes rows into outDir/tmp and then renames the
// file into outDir, so readers never observe a partial file.
func WriteGameParquetAtomic(outDir string, gameID string, rows []TurnRow) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	tmpDir := filepath.Join(outDir, "tmp")
	if err := os.MkdirAll(tmpDir, 0o755); err != nil {
		return "", fmt.Errorf("create tmp dir: %w", err)
	}

	name := fmt.Sprintf("game_%s_%d.parquet", gameID, time.Now().UnixNano())
	finalPath := filepath.Join(outDir, name)
	tmpPath := filepath.Join(tmpDir, name+".tmp")
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", SchemaVersion),
	); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("write parquet: %w", err)
	}

	if err := os.Rename(tmpPath, finalPath); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("rename parquet: %w", err)
	}

	return finalPath, nil
}

// ReadGame loads every row of a recorded game.
func ReadGame(path string) ([]TurnRow, error) {
	rows, err := parquet.ReadFile[TurnRow](path)
	if err != nil {
		return nil, fmt.Errorf("read parquet %s: %w", path, err)
	}
	return rows, nil
}

package projection

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"
)

// Cache memoizes engine results by input value in cache.db. The engine is
// deterministic, so a hit is exactly the result a fresh computation would
// produce. Entries are ephemeral: a miss is never an error and the sweep job
// evicts entries older than the configured TTL.
type Cache struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewCache creates a new projection cache backed by cache.db
func NewCache(db *sql.DB, log zerolog.Logger) *Cache {
	return &Cache{
		db:  db,
		log: log.With().Str("repository", "projection_cache").Logger(),
	}
}

// Key derives the cache key for an input tuple: sha256 over the
// msgpack-encoded inputs. Struct encoding is field-ordered, so identical
// inputs always hash identically.
func Key(in Inputs) (string, error) {
	encoded, err := msgpack.Marshal(in)
	if err != nil {
		return "", fmt.Errorf("failed to encode projection inputs: %w", err)
	}
	sum := sha256.Sum256(encoded)
	return hex.EncodeToString(sum[:]), nil
}

// Get retrieves a cached result by key.
// Returns nil on a miss (not an error).
func (c *Cache) Get(key string) (*Result, error) {
	var blob []byte
	err := c.db.QueryRow("SELECT result FROM projection_cache WHERE input_hash = ?", key).Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read projection cache: %w", err)
	}

	var result Result
	if err := msgpack.Unmarshal(blob, &result); err != nil {
		// A corrupt entry is recomputed, not surfaced
		c.log.Warn().Err(err).Str("key", key).Msg("Failed to decode cached projection, evicting")
		_, _ = c.db.Exec("DELETE FROM projection_cache WHERE input_hash = ?", key)
		return nil, nil
	}
	return &result, nil
}

// Put stores a result under the given key, replacing any previous entry.
func (c *Cache) Put(key string, result Result) error {
	blob, err := msgpack.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode projection result: %w", err)
	}

	_, err = c.db.Exec(`
		INSERT INTO projection_cache (input_hash, result, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT(input_hash) DO UPDATE SET
			result = excluded.result,
			created_at = excluded.created_at
	`, key, blob, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to write projection cache: %w", err)
	}
	return nil
}

// SweepOlderThan deletes entries created before the cutoff and returns how
// many were removed.
func (c *Cache) SweepOlderThan(cutoff time.Time) (int64, error) {
	res, err := c.db.Exec("DELETE FROM projection_cache WHERE created_at < ?", cutoff.Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to sweep projection cache: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return removed, nil
}

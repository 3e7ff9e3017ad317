// Package audit is the append-only, hash-stamped record of every decision the
// system emits. Rows are never updated or deleted; each one carries a
// truncated SHA-256 fingerprint of the full decision text so tampering with a
// stored decision is detectable by re-hashing.
package audit

import (
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"fmt"
	"os"
	"sync"
	"time"

	"commerce_agent/internal/models"
)

// DefaultRecentLimit is how many entries Recent returns when the caller
// doesn't say otherwise.
const DefaultRecentLimit = 10

// fingerprintLen is the number of hex characters kept from the digest.
const fingerprintLen = 16

var header = []string{"timestamp", "agent_name", "product_id", "action", "reasoning_fingerprint", "verification_status"}

// Log appends decision records to a CSV file. A single mutex serializes every
// open-append-close cycle, and reads share the same mutex so they always see
// whole rows.
type Log struct {
	path string
	mu   sync.Mutex
}

// New creates a Log writing to path. The file itself is created lazily on the
// first append (or by Init).
func New(path string) *Log {
	return &Log{path: path}
}

// Init makes sure the backing file exists with a header row. Calling it on an
// existing log is a no-op: it never rewrites the header or touches existing
// entries.
func (l *Log) Init() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.ensureHeaderLocked()
}

// LogEvent computes the fingerprint of reasoningText, appends one row and
// returns the fingerprint. The append is a single exclusive
// open-append-close cycle.
func (l *Log) LogEvent(agentName, productID, action, reasoningText string) (string, error) {
	fingerprint := Fingerprint(reasoningText)

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.ensureHeaderLocked(); err != nil {
		return "", fmt.Errorf("audit log init: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return "", fmt.Errorf("audit log open: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	row := []string{
		time.Now().UTC().Format(time.RFC3339),
		agentName,
		productID,
		action,
		fingerprint,
		"VERIFIED",
	}
	if err := w.Write(row); err != nil {
		return "", fmt.Errorf("audit log append: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("audit log flush: %w", err)
	}

	return fingerprint, nil
}

// Recent returns the last n entries, newest first. It never returns an error:
// a missing, empty or unreadable log comes back as an empty slice, because
// audit visibility is best-effort display while audit writes are not.
func (l *Log) Recent(n int) []models.AuditEntry {
	if n <= 0 {
		n = DefaultRecentLimit
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.Open(l.path)
	if err != nil {
		return []models.AuditEntry{}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil || len(rows) < 2 {
		return []models.AuditEntry{}
	}

	// Skip the header, keep the tail, reverse to newest-first.
	data := rows[1:]
	if len(data) > n {
		data = data[len(data)-n:]
	}
	out := make([]models.AuditEntry, 0, len(data))
	for i := len(data) - 1; i >= 0; i-- {
		row := data[i]
		if len(row) < 6 {
			continue // partial tail from a concurrent append; never surface it
		}
		out = append(out, models.AuditEntry{
			Timestamp:            row[0],
			AgentName:            row[1],
			ProductID:            row[2],
			Action:               row[3],
			ReasoningFingerprint: row[4],
			VerificationStatus:   row[5],
		})
	}
	return out
}

// Fingerprint returns the first 16 hex characters of the SHA-256 digest of
// the raw text. Stable across runs: re-hashing a stored decision text must
// reproduce the logged value.
func Fingerprint(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])[:fingerprintLen]
}

func (l *Log) ensureHeaderLocked() error {
	if _, err := os.Stat(l.path); err == nil {
		return nil // already initialized; never rewrite
	} else if !os.IsNotExist(err) {
		return err
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0644)
	if err != nil {
		if os.IsExist(err) {
			return nil // lost a race with another writer; header is there
		}
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

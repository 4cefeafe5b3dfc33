// Package session tracks recent conversion runs so their scenes can be
// fetched again without re-translating the source document.
package session

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dangunter/idaes-model-conn/internal/models"
)

// MaxConversions limits retained conversions to prevent memory exhaustion
const MaxConversions = 50

// ConversionMaxAge is how long to keep conversion results before cleanup
const ConversionMaxAge = 30 * time.Minute

// Manager holds completed and failed conversion runs.
type Manager struct {
	mu          sync.RWMutex
	conversions map[string]*conversionState
}

// conversionState pairs a record with its translated scene.
type conversionState struct {
	record       *models.ConversionRecord
	scene        *models.Scene
	lastAccessed time.Time
}

// NewManager creates a new conversion manager.
func NewManager() *Manager {
	return &Manager{
		conversions: make(map[string]*conversionState),
	}
}

// Add records a successful conversion and returns its record.
func (m *Manager) Add(fileID, fileName string, scene *models.Scene, took time.Duration) *models.ConversionRecord {
	record := &models.ConversionRecord{
		ID:               uuid.New().String(),
		FileID:           fileID,
		FileName:         fileName,
		Status:           models.ConversionStatusComplete,
		ElementCount:     len(scene.Elements),
		BlobCount:        len(scene.Files),
		ProcessingTimeMs: took.Milliseconds(),
		CreatedAt:        time.Now(),
	}
	m.put(record, scene)
	return record
}

// AddFailed records a failed conversion and returns its record.
func (m *Manager) AddFailed(fileID, fileName string, convErr error) *models.ConversionRecord {
	record := &models.ConversionRecord{
		ID:        uuid.New().String(),
		FileID:    fileID,
		FileName:  fileName,
		Status:    models.ConversionStatusError,
		Error:     convErr.Error(),
		CreatedAt: time.Now(),
	}
	m.put(record, nil)
	return record
}

func (m *Manager) put(record *models.ConversionRecord, scene *models.Scene) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.evictOldestLocked()
	m.conversions[record.ID] = &conversionState{
		record:       record,
		scene:        scene,
		lastAccessed: time.Now(),
	}
}

// evictOldestLocked removes the oldest conversions when at capacity.
// Caller must hold the write lock.
func (m *Manager) evictOldestLocked() {
	for len(m.conversions) >= MaxConversions {
		var oldestID string
		var oldest time.Time
		for id, state := range m.conversions {
			if oldestID == "" || state.record.CreatedAt.Before(oldest) {
				oldestID = id
				oldest = state.record.CreatedAt
			}
		}
		delete(m.conversions, oldestID)
		fmt.Printf("[Manager] Evicted old conversion %s to free memory\n", oldestID[:8])
	}
}

// Get returns a conversion record by ID.
func (m *Manager) Get(id string) (*models.ConversionRecord, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, ok := m.conversions[id]
	if !ok {
		return nil, false
	}
	state.lastAccessed = time.Now()
	return state.record, true
}

// Scene returns the translated scene for a completed conversion.
func (m *Manager) Scene(id string) (*models.Scene, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, ok := m.conversions[id]
	if !ok || state.scene == nil {
		return nil, false
	}
	state.lastAccessed = time.Now()
	return state.scene, true
}

// List returns the most recent conversion records, newest first.
func (m *Manager) List(limit int) []*models.ConversionRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*models.ConversionRecord, 0, len(m.conversions))
	for _, state := range m.conversions {
		records = append(records, state.record)
	}

	// Sort by creation time desc
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})

	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records
}

// CleanupOldConversions removes conversions older than maxAge that have not
// been accessed recently.
func (m *Manager) CleanupOldConversions(maxAge time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	for id, state := range m.conversions {
		if state.lastAccessed.Before(cutoff) {
			delete(m.conversions, id)
			fmt.Printf("[Manager] Cleaned up aged conversion %s (last accessed: %s ago)\n",
				id[:8], time.Since(state.lastAccessed).Round(time.Second))
		}
	}
}

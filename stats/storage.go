package stats

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// MonthlyStats aggregates analyzer usage for one month.
type MonthlyStats struct {
	Analyses          int       `json:"analyses"`
	FetchErrors       int       `json:"fetch_errors"`
	CacheHits         int       `json:"cache_hits"`
	CacheMisses       int       `json:"cache_misses"`
	TotalFetchSeconds float64   `json:"total_fetch_seconds"`
	LastUpdated       time.Time `json:"last_updated"`
}

// AverageFetchSeconds returns the mean page fetch time for the month.
func (m MonthlyStats) AverageFetchSeconds() float64 {
	if m.Analyses == 0 {
		return 0
	}
	return m.TotalFetchSeconds / float64(m.Analyses)
}

// Storage persists monthly usage statistics to a JSON file. Writes go
// through a temporary file and rename so a crash never leaves a partial
// file behind.
type Storage struct {
	mutex       sync.RWMutex
	stats       map[string]*MonthlyStats // key: "YYYY-MM"
	filePath    string
	lastWrite   time.Time
	writeBuffer chan struct{}
	done        chan struct{}
	closeOnce   sync.Once
}

// NewStorage creates a statistics store under dataDir, loading any
// previously persisted state.
func NewStorage(dataDir string) (*Storage, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	s := &Storage{
		stats:       make(map[string]*MonthlyStats),
		filePath:    filepath.Join(dataDir, "stats.json"),
		writeBuffer: make(chan struct{}, 1),
		done:        make(chan struct{}),
	}

	if err := s.load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading stats: %w", err)
	}

	go s.backgroundWriter()

	return s, nil
}

func (s *Storage) load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	return json.Unmarshal(data, &s.stats)
}

func (s *Storage) save() error {
	s.mutex.RLock()
	data, err := json.Marshal(s.stats)
	s.mutex.RUnlock()
	if err != nil {
		return fmt.Errorf("marshaling stats: %w", err)
	}

	tempFile := s.filePath + ".tmp"
	if err := os.WriteFile(tempFile, data, 0644); err != nil {
		return fmt.Errorf("writing temporary file: %w", err)
	}
	if err := os.Rename(tempFile, s.filePath); err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("renaming temporary file: %w", err)
	}
	return nil
}

func (s *Storage) backgroundWriter() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.writeBuffer:
			s.save()
		case <-ticker.C:
			s.save()
		case <-s.done:
			s.save()
			return
		}
	}
}

func currentMonth() string {
	return time.Now().Format("2006-01")
}

// requestWrite signals the background writer; a pending request is enough.
func (s *Storage) requestWrite() {
	select {
	case s.writeBuffer <- struct{}{}:
	default:
	}
}

func (s *Storage) currentLocked() *MonthlyStats {
	month := currentMonth()
	m, exists := s.stats[month]
	if !exists {
		m = &MonthlyStats{}
		s.stats[month] = m
	}
	return m
}

// RecordAnalysis counts one completed analysis and its fetch time.
func (s *Storage) RecordAnalysis(fetchSeconds float64) {
	s.mutex.Lock()
	m := s.currentLocked()
	m.Analyses++
	m.TotalFetchSeconds += fetchSeconds
	m.LastUpdated = time.Now()
	s.maybeRequestWriteLocked()
	s.mutex.Unlock()
}

// RecordFetchError counts one failed page fetch.
func (s *Storage) RecordFetchError() {
	s.mutex.Lock()
	m := s.currentLocked()
	m.FetchErrors++
	m.LastUpdated = time.Now()
	s.maybeRequestWriteLocked()
	s.mutex.Unlock()
}

// RecordCacheHit counts one report served from cache.
func (s *Storage) RecordCacheHit() {
	s.mutex.Lock()
	s.currentLocked().CacheHits++
	s.mutex.Unlock()
}

// RecordCacheMiss counts one report that had to be computed.
func (s *Storage) RecordCacheMiss() {
	s.mutex.Lock()
	s.currentLocked().CacheMisses++
	s.mutex.Unlock()
}

func (s *Storage) maybeRequestWriteLocked() {
	if time.Since(s.lastWrite) > time.Minute {
		s.requestWrite()
		s.lastWrite = time.Now()
	}
}

// GetCurrentStats returns a copy of this month's statistics.
func (s *Storage) GetCurrentStats() MonthlyStats {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if m, exists := s.stats[currentMonth()]; exists {
		return *m
	}
	return MonthlyStats{}
}

// GetMonthlyStats returns statistics for a "YYYY-MM" month key.
func (s *Storage) GetMonthlyStats(yearMonth string) (MonthlyStats, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if m, exists := s.stats[yearMonth]; exists {
		return *m, true
	}
	return MonthlyStats{}, false
}

// GetAllMonths returns all recorded month keys, newest first.
func (s *Storage) GetAllMonths() []string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	months := make([]string, 0, len(s.stats))
	for month := range s.stats {
		months = append(months, month)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))
	return months
}

// Cleanup drops everything except the current and previous month.
func (s *Storage) Cleanup() {
	now := time.Now()
	current := now.Format("2006-01")
	previous := now.AddDate(0, -1, 0).Format("2006-01")

	s.mutex.Lock()
	for key := range s.stats {
		if key != current && key != previous {
			delete(s.stats, key)
		}
	}
	s.mutex.Unlock()

	s.requestWrite()
}

// Shutdown stops the background writer after a final flush.
func (s *Storage) Shutdown() error {
	s.closeOnce.Do(func() {
		close(s.done)
	})
	return s.save()
}

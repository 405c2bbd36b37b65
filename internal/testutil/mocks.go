package testutil

import (
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Abdualzizsm/telegram-bot/internal/models"
	"github.com/Abdualzizsm/telegram-bot/internal/logging"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   logging.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t logging.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t logging.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t logging.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t logging.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t logging.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t logging.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// CountLevel returns how many entries were logged at the given level.
func (m *MockLogger) CountLevel(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.Logs {
		if e.Level == level {
			n++
		}
	}
	return n
}

// MockTransport implements the Telegram API slices used by the router and
// the orchestrator, recording every outbound payload.
type MockTransport struct {
	mu        sync.Mutex
	Sent      []tgbotapi.Chattable
	Requested []tgbotapi.Chattable

	// SendErr, when set, decides per-payload whether Send fails.
	SendErr func(c tgbotapi.Chattable) error

	nextMessageID int
}

func (m *MockTransport) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SendErr != nil {
		if err := m.SendErr(c); err != nil {
			return tgbotapi.Message{}, err
		}
	}
	m.Sent = append(m.Sent, c)
	m.nextMessageID++
	return tgbotapi.Message{MessageID: m.nextMessageID}, nil
}

func (m *MockTransport) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requested = append(m.Requested, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

// SentMessages returns the text payloads sent so far.
func (m *MockTransport) SentMessages() []tgbotapi.MessageConfig {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []tgbotapi.MessageConfig
	for _, c := range m.Sent {
		if msg, ok := c.(tgbotapi.MessageConfig); ok {
			out = append(out, msg)
		}
	}
	return out
}

// RequestedEdits returns the message edits requested so far.
func (m *MockTransport) RequestedEdits() []tgbotapi.EditMessageTextConfig {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []tgbotapi.EditMessageTextConfig
	for _, c := range m.Requested {
		if edit, ok := c.(tgbotapi.EditMessageTextConfig); ok {
			out = append(out, edit)
		}
	}
	return out
}

// MockLedgerStore implements services.LedgerStore in memory with injectable
// failures.
type MockLedgerStore struct {
	mu        sync.Mutex
	Saved     *models.Ledger
	SaveCalls int
	SaveFn    func(fileName string, l *models.Ledger) error
	LoadFn    func(fileName string) (*models.Ledger, error)
}

func (m *MockLedgerStore) SaveToFile(fileName string, l *models.Ledger) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveFn != nil {
		if err := m.SaveFn(fileName, l); err != nil {
			return err
		}
	}
	m.SaveCalls++
	m.Saved = l
	return nil
}

func (m *MockLedgerStore) LoadFromFile(fileName string) (*models.Ledger, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadFn != nil {
		return m.LoadFn(fileName)
	}
	return models.NewLedger(), nil
}

// MockMetrics implements providers.MetricsProviderInterface and counts calls.
type MockMetrics struct {
	mu              sync.Mutex
	Downloads       map[string]int // key: source:outcome
	BroadcastSent   int
	BroadcastFailed int
	Active          int
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{Downloads: make(map[string]int)}
}

func (m *MockMetrics) IncDownloads(source, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Downloads[source+":"+outcome]++
}
func (m *MockMetrics) ObserveDownloadDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncActiveDownloads() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Active++
}
func (m *MockMetrics) DecActiveDownloads() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Active--
}
func (m *MockMetrics) IncBroadcastSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.BroadcastSent++
}
func (m *MockMetrics) IncBroadcastFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.BroadcastFailed++
}
func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration)       {}
func (m *MockMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits()                                    {}
func (m *MockMetrics) IncCacheMisses()                                  {}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

func (m *MockCache) Del(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Data, key)
}

// MockCompressor implements interfaces.CompressorInterface with injectable
// behavior. Default is identity.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() {}

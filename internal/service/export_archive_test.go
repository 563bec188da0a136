package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type exportStoreStub struct {
	mu    sync.Mutex
	saved map[string][]byte
}

func (s *exportStoreStub) Save(filename string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saved == nil {
		s.saved = make(map[string][]byte)
	}
	s.saved[filename] = data
	return filename, nil
}

func (s *exportStoreStub) CleanupOlderThan(ttl time.Duration) ([]string, error) {
	return nil, nil
}

func (s *exportStoreStub) get(filename string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.saved[filename]
	return data, ok
}

func TestExportArchiveSubmitWritesCopy(t *testing.T) {
	store := &exportStoreStub{}
	archive := NewExportArchive(store, time.Hour, zap.NewNop())
	archive.Start(context.Background())
	defer archive.Stop()

	archive.Submit(ExportFile{Filename: "historico-2024-03-15.csv", Content: []byte("Turma\n")})

	assert.Eventually(t, func() bool {
		data, ok := store.get("historico-2024-03-15.csv")
		return ok && string(data) == "Turma\n"
	}, time.Second, 10*time.Millisecond)
}

func TestExportArchiveSubmitBeforeStartOnlyLogs(t *testing.T) {
	archive := NewExportArchive(&exportStoreStub{}, time.Hour, zap.NewNop())
	// queue not started; must not panic or block
	archive.Submit(ExportFile{Filename: "historico.csv", Content: []byte("x")})
}

func TestExportArchiveNilReceiver(t *testing.T) {
	var archive *ExportArchive
	archive.Submit(ExportFile{Filename: "historico.csv"})
}

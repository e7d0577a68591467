package file

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"k8s.io/klog/v2"

	"github.com/predatorx7/thoth/pkg/broker"
	"github.com/predatorx7/thoth/pkg/model"
)

// Subscriber appends every received record to <OutputDir>/app_<app>.log as
// one JSON object per line.
type Subscriber struct {
	Broker    broker.Subscriber
	OutputDir string
	mu        sync.Mutex
}

func NewSubscriber(b broker.Subscriber, outDir string) *Subscriber {
	return &Subscriber{
		Broker:    b,
		OutputDir: outDir,
	}
}

func (s *Subscriber) Start(ctx context.Context) error {
	klog.V(0).Infof("Starting file subscriber (dir: %s)", s.OutputDir)
	ch, err := s.Broker.Subscribe(ctx)
	if err != nil {
		return fmt.Errorf("failed to subscribe: %w", err)
	}

	if err := os.MkdirAll(s.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case batch := <-ch:
			s.processBatch(batch)
		}
	}
}

func (s *Subscriber) processBatch(batch []model.Record) {
	grouped := make(map[string][]model.Record)
	for _, record := range batch {
		grouped[FileName(record.App)] = append(grouped[FileName(record.App)], record)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for name, records := range grouped {
		filename := filepath.Join(s.OutputDir, name)
		f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			klog.Errorf("Error opening file %s: %v", filename, err)
			continue
		}

		writeRecords(f, filename, records)
		if err := f.Close(); err != nil {
			klog.Errorf("Error closing file %s: %v", filename, err)
		}
	}
}

// writeRecords writes records to w as JSON lines and returns how many were
// written. Failed records are logged and skipped.
func writeRecords(w io.Writer, filename string, records []model.Record) int {
	written := 0
	for _, record := range records {
		data, err := json.Marshal(record)
		if err != nil {
			klog.Errorf("Error encoding record %s: %v", record.ID, err)
			continue
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			klog.Errorf("Error writing record %s to %s: %v", record.ID, filename, err)
			continue
		}
		written++
	}
	return written
}

// FileName maps an app name to the log file it is written to. Path
// separators and dots are replaced so an app name cannot escape OutputDir.
func FileName(app string) string {
	if app == "" {
		app = "unknown_app"
	}
	safe := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', '.', ':':
			return '_'
		}
		return r
	}, app)
	return fmt.Sprintf("app_%s.log", safe)
}

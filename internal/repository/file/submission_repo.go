// Package file persists accepted submissions as a single JSON array on
// disk, newest first. The file is owned exclusively by this repository;
// all access is serialized by a mutex and writes go through a temp file
// plus rename so a crash mid-write cannot corrupt the log.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go-tutoring-backend/internal/domain"
	"go-tutoring-backend/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SubmissionRepository struct {
	path string
	mu   sync.Mutex
}

func NewSubmissionRepository(path string) *SubmissionRepository {
	return &SubmissionRepository{path: path}
}

// Save appends req as a new record at the head of the log and returns the
// stored record. Derived fields (id, createdAt, status, schemaVersion) are
// filled in here.
func (r *SubmissionRepository) Save(_ context.Context, req domain.ContactRequest, ip string) (*domain.StoredSubmission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load()
	if err != nil {
		return nil, err
	}

	rec := domain.StoredSubmission{
		ID:            uuid.NewString(),
		SchemaVersion: domain.SubmissionSchemaVersion,
		Name:          req.Name,
		Furigana:      req.Furigana,
		Phone:         req.Phone,
		Email:         req.Email,
		InquiryType:   req.InquiryType,
		Message:       req.Message,
		IP:            ip,
		Status:        domain.StatusNew,
		CreatedAt:     time.Now().UTC(),
	}

	records = append([]domain.StoredSubmission{rec}, records...)

	if err := r.write(records); err != nil {
		return nil, err
	}
	return &rec, nil
}

// List returns the full log, newest first.
func (r *SubmissionRepository) List(_ context.Context) ([]domain.StoredSubmission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

// UpdateStatus advances the lifecycle status of one record.
func (r *SubmissionRepository) UpdateStatus(_ context.Context, id, status string) (*domain.StoredSubmission, error) {
	if !domain.ValidStatus(status) {
		return nil, fmt.Errorf("invalid status %q", status)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load()
	if err != nil {
		return nil, err
	}

	for i := range records {
		if records[i].ID == id {
			records[i].Status = status
			if err := r.write(records); err != nil {
				return nil, err
			}
			return &records[i], nil
		}
	}
	return nil, domain.ErrSubmissionNotFound
}

// load reads the log. A missing file is an empty log; an unparsable file is
// treated the same way (logged, not fatal) so a corrupt log never blocks
// new submissions.
func (r *SubmissionRepository) load() ([]domain.StoredSubmission, error) {
	data, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return []domain.StoredSubmission{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read submission log: %w", err)
	}

	var records []domain.StoredSubmission
	if err := json.Unmarshal(data, &records); err != nil {
		logger.Log.Warn("submission log unparsable, starting empty",
			zap.String("path", r.path),
			zap.Error(err))
		return []domain.StoredSubmission{}, nil
	}

	// Records written before the schemaVersion field existed load as 0.
	for i := range records {
		if records[i].SchemaVersion == 0 {
			records[i].SchemaVersion = 1
		}
	}
	return records, nil
}

func (r *SubmissionRepository) write(records []domain.StoredSubmission) error {
	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create submission log directory: %w", err)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode submission log: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".submissions-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp submission log: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write submission log: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to flush submission log: %w", err)
	}

	if err := os.Rename(tmpName, r.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace submission log: %w", err)
	}
	return nil
}

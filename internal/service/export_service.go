package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"finance-api/internal/domain"
	"finance-api/internal/repository"
	"finance-api/internal/storage"
)

// ExportConfig says where exports are written.
type ExportConfig struct {
	Bucket    string
	KeyPrefix string
	URLExpiry time.Duration
}

// ExportService archives transaction snapshots in object storage.
type ExportService interface {
	Export(ctx context.Context, requestedBy string) (*domain.Export, error)
	List(ctx context.Context) ([]domain.Export, error)
}

type exportService struct {
	transactions repository.TransactionRepository
	store        storage.Service
	cfg          ExportConfig
	now          func() time.Time
}

func NewExportService(transactions repository.TransactionRepository, store storage.Service, cfg ExportConfig) ExportService {
	if cfg.URLExpiry <= 0 {
		cfg.URLExpiry = 15 * time.Minute
	}
	cfg.KeyPrefix = strings.Trim(cfg.KeyPrefix, "/")
	return &exportService{
		transactions: transactions,
		store:        store,
		cfg:          cfg,
		now:          time.Now,
	}
}

type exportDocument struct {
	ExportedAt   time.Time      `json:"exportedAt"`
	ExportedBy   string         `json:"exportedBy"`
	Count        int            `json:"count"`
	Transactions []exportRecord `json:"transactions"`
}

type exportRecord struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	CategoryID  int64     `json:"categoryId"`
	TransDate   int64     `json:"transDate"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (s *exportService) Export(ctx context.Context, requestedBy string) (*domain.Export, error) {
	txs, err := s.transactions.List(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	doc := exportDocument{
		ExportedAt:   now,
		ExportedBy:   requestedBy,
		Count:        len(txs),
		Transactions: make([]exportRecord, len(txs)),
	}
	for i, tx := range txs {
		doc.Transactions[i] = exportRecord{
			ID:          tx.ID,
			Name:        tx.Name,
			Description: tx.Description,
			Amount:      tx.Amount,
			CategoryID:  tx.CategoryID,
			TransDate:   tx.TransDate,
			CreatedAt:   tx.CreatedAt,
			UpdatedAt:   tx.UpdatedAt,
		}
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}

	key := path.Join(s.cfg.KeyPrefix, now.Format("2006/01/02"), fmt.Sprintf("transactions-%s.json", uuid.NewString()))
	location, err := s.store.PutObject(ctx, bytes.NewReader(payload), storage.PutOptions{
		Bucket:      s.cfg.Bucket,
		Key:         key,
		ContentType: "application/json",
	})
	if err != nil {
		return nil, fmt.Errorf("store export: %w", err)
	}

	return &domain.Export{
		Key:          key,
		Location:     location,
		Size:         int64(len(payload)),
		LastModified: &now,
	}, nil
}

// List returns archived exports, newest first, each with a short-lived download URL.
func (s *exportService) List(ctx context.Context) ([]domain.Export, error) {
	prefix := s.cfg.KeyPrefix
	if prefix != "" {
		prefix += "/"
	}
	objects, err := s.store.ListObjects(ctx, s.cfg.Bucket, prefix)
	if err != nil {
		return nil, err
	}

	exports := make([]domain.Export, 0, len(objects))
	for _, obj := range objects {
		url, err := s.store.GetObjectURL(ctx, s.cfg.Bucket, obj.Key, s.cfg.URLExpiry)
		if err != nil {
			return nil, err
		}
		exports = append(exports, domain.Export{
			Key:          obj.Key,
			Location:     fmt.Sprintf("s3://%s/%s", s.cfg.Bucket, obj.Key),
			Size:         obj.Size,
			LastModified: obj.LastModified,
			URL:          url,
		})
	}

	sort.SliceStable(exports, func(i, j int) bool {
		a, b := exports[i].LastModified, exports[j].LastModified
		if a != nil && b != nil && !a.Equal(*b) {
			return a.After(*b)
		}
		return exports[i].Key > exports[j].Key
	})
	return exports, nil
}

// Package store persists tree snapshots through gorm.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nuid"
	"github.com/rs/zerolog"
	"github.com/rskv-p/treekit/bintree"
	"github.com/rskv-p/treekit/codec"
	"github.com/rskv-p/treekit/config"
	"github.com/rskv-p/treekit/constant"
	"github.com/rskv-p/treekit/pkg/x_db"
	"github.com/rskv-p/treekit/pkg/x_log"
	"github.com/rskv-p/treekit/tree"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//---------------------
// Model
//---------------------

// Snapshot is one stored tree with its precomputed shape.
type Snapshot struct {
	ID        string    `gorm:"primaryKey;size:32" json:"id"`
	Name      string    `gorm:"index" json:"name"`
	Kind      string    `gorm:"size:16" json:"kind"`
	Payload   string    `gorm:"type:text" json:"payload,omitempty"`
	Nodes     int       `json:"nodes"`
	Height    int       `json:"height"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

//---------------------
// Store
//---------------------

// Store reads and writes snapshots.
type Store struct {
	db  *gorm.DB
	log zerolog.Logger

	// mu serializes read-modify-write of binary snapshots.
	mu sync.Mutex
}

// Open connects to the configured database and migrates the schema.
func Open(cfg config.DBConfig) (*Store, error) {
	level := "warn"
	if cfg.Debug {
		level = "info"
	}

	logger := x_log.New("store")
	db, err := x_db.Open(x_db.Config{
		Type:     x_db.DbType(cfg.Dialect),
		DSN:      cfg.DSN,
		LogLevel: level,
	}, logger)
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&Snapshot{}); err != nil {
		return nil, fmt.Errorf("migrate snapshots: %w", err)
	}

	logger.Debug().Str("dialect", cfg.Dialect).Msg("store opened")
	return &Store{db: db, log: logger}, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

//---------------------
// Save
//---------------------

// SaveTree stores a general tree under name.
func (s *Store) SaveTree(ctx context.Context, name string, t *tree.Node[int]) (*Snapshot, error) {
	if t == nil {
		return nil, constant.ErrEmptyTree
	}
	payload, err := codec.EncodeTree(t)
	if err != nil {
		return nil, err
	}
	return s.create(ctx, &Snapshot{
		Name:    name,
		Kind:    constant.KindTree,
		Payload: string(payload),
		Nodes:   tree.Count(t),
		Height:  tree.Height(t),
	})
}

// SaveBinary stores a binary tree under name. An empty tree is allowed.
func (s *Store) SaveBinary(ctx context.Context, name string, t *bintree.Node[int]) (*Snapshot, error) {
	snap, err := binarySnapshot(t)
	if err != nil {
		return nil, err
	}
	snap.Name = name
	return s.create(ctx, snap)
}

// UpdateBinary replaces the payload of an existing binary snapshot.
func (s *Store) UpdateBinary(ctx context.Context, id string, t *bintree.Node[int]) (*Snapshot, error) {
	return s.ModifyBinary(ctx, id, func(*bintree.Node[int]) *bintree.Node[int] { return t })
}

// InsertBinary inserts values into the BST stored under id and saves it.
// Concurrent inserts into the same snapshot are applied one after another.
func (s *Store) InsertBinary(ctx context.Context, id string, values ...int) (*Snapshot, error) {
	return s.ModifyBinary(ctx, id, func(b *bintree.Node[int]) *bintree.Node[int] {
		for _, v := range values {
			b = bintree.Insert(b, v)
		}
		return b
	})
}

// ModifyBinary loads the binary tree under id, applies fn and saves the
// result in one transaction. On postgres the row is locked FOR UPDATE.
func (s *Store) ModifyBinary(ctx context.Context, id string, fn func(*bintree.Node[int]) *bintree.Node[int]) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out *Snapshot
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx
		if tx.Dialector.Name() == string(x_db.DbPostgres) {
			q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var snap Snapshot
		err := q.First(&snap, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %s", constant.ErrTreeNotFound, id)
		}
		if err != nil {
			return fmt.Errorf("get snapshot %s: %w", id, err)
		}
		if snap.Kind != constant.KindBinary {
			return fmt.Errorf("%w: %s is %s", constant.ErrKindMismatch, id, snap.Kind)
		}

		cur, err := codec.DecodeBinary[int]([]byte(snap.Payload))
		if err != nil {
			return err
		}
		next, err := binarySnapshot(fn(cur))
		if err != nil {
			return err
		}
		snap.Payload, snap.Nodes, snap.Height = next.Payload, next.Nodes, next.Height

		if err := tx.Save(&snap).Error; err != nil {
			return fmt.Errorf("update snapshot %s: %w", id, err)
		}
		out = &snap
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func binarySnapshot(t *bintree.Node[int]) (*Snapshot, error) {
	payload, err := codec.EncodeBinary(t)
	if err != nil {
		return nil, err
	}
	return &Snapshot{
		Kind:    constant.KindBinary,
		Payload: string(payload),
		Nodes:   bintree.Count(t),
		Height:  bintree.Height(t),
	}, nil
}

func (s *Store) create(ctx context.Context, snap *Snapshot) (*Snapshot, error) {
	snap.ID = nuid.Next()
	if err := s.db.WithContext(ctx).Create(snap).Error; err != nil {
		return nil, fmt.Errorf("create snapshot: %w", err)
	}
	s.log.Info().Str("id", snap.ID).Str("kind", snap.Kind).Int("nodes", snap.Nodes).Msg("snapshot saved")
	return snap, nil
}

//---------------------
// Load
//---------------------

// Get returns the snapshot row for id.
func (s *Store) Get(ctx context.Context, id string) (*Snapshot, error) {
	var snap Snapshot
	err := s.db.WithContext(ctx).First(&snap, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", constant.ErrTreeNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get snapshot %s: %w", id, err)
	}
	return &snap, nil
}

// LoadTree decodes the general tree stored under id.
func (s *Store) LoadTree(ctx context.Context, id string) (*tree.Node[int], *Snapshot, error) {
	snap, err := s.kind(ctx, id, constant.KindTree)
	if err != nil {
		return nil, nil, err
	}
	t, err := codec.DecodeTree[int]([]byte(snap.Payload))
	if err != nil {
		return nil, nil, err
	}
	return t, snap, nil
}

// LoadBinary decodes the binary tree stored under id.
func (s *Store) LoadBinary(ctx context.Context, id string) (*bintree.Node[int], *Snapshot, error) {
	snap, err := s.kind(ctx, id, constant.KindBinary)
	if err != nil {
		return nil, nil, err
	}
	t, err := codec.DecodeBinary[int]([]byte(snap.Payload))
	if err != nil {
		return nil, nil, err
	}
	return t, snap, nil
}

func (s *Store) kind(ctx context.Context, id, kind string) (*Snapshot, error) {
	snap, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if snap.Kind != kind {
		return nil, fmt.Errorf("%w: %s is %s", constant.ErrKindMismatch, id, snap.Kind)
	}
	return snap, nil
}

//---------------------
// List & delete
//---------------------

// List returns every snapshot, newest first. Payloads are omitted.
func (s *Store) List(ctx context.Context) ([]Snapshot, error) {
	var out []Snapshot
	err := s.db.WithContext(ctx).
		Omit("payload").
		Order("created_at desc").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	return out, nil
}

// Delete removes the snapshot id.
func (s *Store) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&Snapshot{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete snapshot %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", constant.ErrTreeNotFound, id)
	}
	s.log.Info().Str("id", id).Msg("snapshot deleted")
	return nil
}

package storage

import (
	"encoding/json"
	"errors"
	"sync/atomic"

	"github.com/dgraph-io/badger/v4"

	"github.com/ambernet/go-amber/internal/util/logger"
)

var log = logger.Logger("storage")

// ============================================================================
//                              DB - BadgerDB 实例
// ============================================================================

// DB BadgerDB 数据库
type DB struct {
	db     *badger.DB
	closed atomic.Bool
}

// Open 打开数据库
func Open(cfg Config) (*DB, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := badger.DefaultOptions(cfg.Path).
		WithSyncWrites(cfg.SyncWrites).
		WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	log.Debug("storage opened", "path", cfg.Path)
	return &DB{db: db}, nil
}

// Close 关闭数据库
func (d *DB) Close() error {
	if d.closed.Swap(true) {
		return nil
	}
	return d.db.Close()
}

// Scope 返回带键前缀隔离的视图
func (d *DB) Scope(prefix string) *Store {
	return &Store{db: d, prefix: []byte(prefix)}
}

// ============================================================================
//                              Store - 前缀隔离视图
// ============================================================================

// Store 数据库的前缀隔离视图
//
// 所有键在读写前拼接前缀，扫描结果回调时剥除前缀。
type Store struct {
	db     *DB
	prefix []byte
}

func (s *Store) key(key []byte) []byte {
	full := make([]byte, 0, len(s.prefix)+len(key))
	full = append(full, s.prefix...)
	return append(full, key...)
}

// Get 读取键对应的值
func (s *Store) Get(key []byte) ([]byte, error) {
	if s.db.closed.Load() {
		return nil, ErrDBClosed
	}

	var value []byte
	err := s.db.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(s.key(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrKeyNotFound
	}
	return value, err
}

// Put 写入键值对
func (s *Store) Put(key, value []byte) error {
	if s.db.closed.Load() {
		return ErrDBClosed
	}
	return s.db.db.Update(func(txn *badger.Txn) error {
		return txn.Set(s.key(key), value)
	})
}

// Delete 删除键
func (s *Store) Delete(key []byte) error {
	if s.db.closed.Load() {
		return ErrDBClosed
	}
	return s.db.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(s.key(key))
	})
}

// Has 检查键是否存在
func (s *Store) Has(key []byte) (bool, error) {
	_, err := s.Get(key)
	if errors.Is(err, ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// GetJSON 读取并反序列化 JSON 值
func (s *Store) GetJSON(key []byte, v any) error {
	data, err := s.Get(key)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// PutJSON 序列化为 JSON 并写入
func (s *Store) PutJSON(key []byte, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.Put(key, data)
}

// PrefixScan 按子前缀顺序遍历，回调返回 false 时停止
//
// 遍历顺序是键的字节序。
func (s *Store) PrefixScan(subPrefix []byte, fn func(key, value []byte) bool) error {
	if s.db.closed.Load() {
		return ErrDBClosed
	}

	full := s.key(subPrefix)
	return s.db.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = full
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			value, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			key := item.Key()[len(s.prefix):]
			if !fn(key, value) {
				return nil
			}
		}
		return nil
	})
}

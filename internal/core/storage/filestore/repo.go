package filestore

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"time"

	"github.com/benbjohnson/clock"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/ambernet/go-amber/internal/core/storage"
	"github.com/ambernet/go-amber/internal/util/logger"
	"github.com/ambernet/go-amber/pkg/types"
)

var log = logger.Logger("filestore")

// Config 仓库配置
type Config struct {
	// BlockCacheSize 块存在性 LRU 缓存条目数
	BlockCacheSize int
}

// DefaultConfig 默认仓库配置
func DefaultConfig() Config {
	return Config{BlockCacheSize: 4096}
}

// persistedFile 持久化的发布文件格式
type persistedFile struct {
	FileName    string `json:"file_name"`
	BlockSize   int64  `json:"block_size"`
	Property    string `json:"property,omitempty"`
	CreatedTime int64  `json:"created_time"`
	UpdatedTime int64  `json:"updated_time"`
}

// ============================================================================
//                              Repo 实现
// ============================================================================

// Repo 发布文件与哈希树条目仓库
//
// 键格式:
//   - f/{root}: JSON 序列化的 persistedFile
//   - l/{root}{depth BE}{index BE}: 块哈希原始字节
//   - x/{root}{block}: 空值，块存在性索引
type Repo struct {
	files  *storage.Store
	layers *storage.Store
	blocks *storage.Store

	clock clock.Clock
	cache *lru.Cache[[2 * types.HashSize]byte, struct{}]
}

// NewRepo 创建仓库
func NewRepo(db *storage.DB, clk clock.Clock, cfg Config) (*Repo, error) {
	if cfg.BlockCacheSize <= 0 {
		cfg = DefaultConfig()
	}

	cache, err := lru.New[[2 * types.HashSize]byte, struct{}](cfg.BlockCacheSize)
	if err != nil {
		return nil, err
	}

	return &Repo{
		files:  db.Scope("f/"),
		layers: db.Scope("l/"),
		blocks: db.Scope("x/"),
		clock:  clk,
		cache:  cache,
	}, nil
}

// layerKey 条目键：根哈希 + 大端层数 + 大端位置
//
// 字节序遍历同一根下的条目即按 (层数, 位置) 升序。
func layerKey(root types.Hash, depth, index uint32) []byte {
	key := make([]byte, types.HashSize+8)
	copy(key, root.Bytes())
	binary.BigEndian.PutUint32(key[types.HashSize:], depth)
	binary.BigEndian.PutUint32(key[types.HashSize+4:], index)
	return key
}

// blockKey 块存在性索引键：根哈希 + 块哈希
func blockKey(root, block types.Hash) [2 * types.HashSize]byte {
	var key [2 * types.HashSize]byte
	copy(key[:], root.Bytes())
	copy(key[types.HashSize:], block.Bytes())
	return key
}

// ============================================================================
//                              发布文件操作
// ============================================================================

// UpsertFile 写入或更新发布文件
//
// 已存在的记录保留创建时间，只推进更新时间；时间戳取自注入的时钟。
// 返回实际落库的记录。
func (r *Repo) UpsertFile(file types.PublishedFile) (types.PublishedFile, error) {
	now := r.clock.Now()

	var existing persistedFile
	err := r.files.GetJSON(file.RootHash.Bytes(), &existing)
	switch {
	case err == nil:
		file.CreatedTime = time.Unix(0, existing.CreatedTime)
	case errors.Is(err, storage.ErrKeyNotFound):
		file.CreatedTime = now
	default:
		return types.PublishedFile{}, err
	}
	file.UpdatedTime = now

	persisted := persistedFile{
		FileName:    file.FileName,
		BlockSize:   file.BlockSize,
		Property:    file.Property,
		CreatedTime: file.CreatedTime.UnixNano(),
		UpdatedTime: file.UpdatedTime.UnixNano(),
	}
	if err := r.files.PutJSON(file.RootHash.Bytes(), persisted); err != nil {
		return types.PublishedFile{}, err
	}

	log.Debug("file upserted", "root", file.RootHash, "name", file.FileName)
	return file, nil
}

// FileExists 检查发布文件是否存在
func (r *Repo) FileExists(root types.Hash) (bool, error) {
	return r.files.Has(root.Bytes())
}

// PublishedFiles 返回全部发布文件
func (r *Repo) PublishedFiles() ([]types.PublishedFile, error) {
	var files []types.PublishedFile
	var scanErr error

	err := r.files.PrefixScan(nil, func(key, value []byte) bool {
		root, err := types.HashFromBytes(key)
		if err != nil {
			scanErr = err
			return false
		}

		var p persistedFile
		if err := json.Unmarshal(value, &p); err != nil {
			scanErr = err
			return false
		}

		files = append(files, types.PublishedFile{
			RootHash:    root,
			FileName:    p.FileName,
			BlockSize:   p.BlockSize,
			Property:    p.Property,
			CreatedTime: time.Unix(0, p.CreatedTime),
			UpdatedTime: time.Unix(0, p.UpdatedTime),
		})
		return true
	})
	if err != nil {
		return nil, err
	}
	return files, scanErr
}

// ============================================================================
//                              哈希树条目操作
// ============================================================================

// PutMerkleLayer 写入一条哈希树条目
//
// 四元组唯一：重复写入同一条目返回 ErrDuplicateLayer；
// 同一树位置已有不同块哈希返回 ErrLayerConflict。
func (r *Repo) PutMerkleLayer(layer types.MerkleLayer) error {
	if err := layer.Validate(); err != nil {
		return err
	}

	key := layerKey(layer.RootHash, layer.Depth, layer.Index)

	existing, err := r.layers.Get(key)
	switch {
	case err == nil:
		if hash, err := types.HashFromBytes(existing); err == nil && hash.Equal(layer.BlockHash) {
			return ErrDuplicateLayer
		}
		return ErrLayerConflict
	case errors.Is(err, storage.ErrKeyNotFound):
	default:
		return err
	}

	if err := r.layers.Put(key, layer.BlockHash.Bytes()); err != nil {
		return err
	}

	bk := blockKey(layer.RootHash, layer.BlockHash)
	if err := r.blocks.Put(bk[:], nil); err != nil {
		return err
	}
	r.cache.Add(bk, struct{}{})
	return nil
}

// MerkleLayers 返回指定根哈希的全部条目，按 (层数, 位置) 升序
func (r *Repo) MerkleLayers(root types.Hash) ([]types.MerkleLayer, error) {
	var layers []types.MerkleLayer
	var scanErr error

	err := r.layers.PrefixScan(root.Bytes(), func(key, value []byte) bool {
		if len(key) != types.HashSize+8 {
			return true
		}

		block, err := types.HashFromBytes(value)
		if err != nil {
			scanErr = err
			return false
		}

		layers = append(layers, types.MerkleLayer{
			RootHash:  root,
			BlockHash: block,
			Depth:     binary.BigEndian.Uint32(key[types.HashSize:]),
			Index:     binary.BigEndian.Uint32(key[types.HashSize+4:]),
		})
		return true
	})
	if err != nil {
		return nil, err
	}
	return layers, scanErr
}

// BlockExists 检查块是否属于指定根哈希的树
//
// 条目只增不删，命中可以安全缓存。
func (r *Repo) BlockExists(root, block types.Hash) (bool, error) {
	key := blockKey(root, block)
	if _, ok := r.cache.Get(key); ok {
		return true, nil
	}

	exists, err := r.blocks.Has(key[:])
	if err != nil {
		return false, err
	}
	if exists {
		r.cache.Add(key, struct{}{})
	}
	return exists, nil
}

package store

import (
	"path/filepath"
	"sync"

	"github.com/SMEDTEC/2sanbusinesscase/internal/model"
)

// Repository 持久化适配器：整集合读写，无局部更新。
// Load 返回 (nil, nil) 表示存储尚不存在；解析失败返回错误，
// 由 ProjectStore 在加载边界降级为种子数据。
type Repository interface {
	Load() ([]*model.Project, error)
	Save(projects []*model.Project) error
}

// FileRepository 单 JSON 文档存储：data/projects.json，原子写
type FileRepository struct {
	path string
}

// NewFileRepository 创建文件存储
func NewFileRepository(dataDir string) *FileRepository {
	return &FileRepository{path: filepath.Join(dataDir, "projects.json")}
}

// Load 读取集合；文件不存在视为空存储
func (r *FileRepository) Load() ([]*model.Project, error) {
	if !fileExists(r.path) {
		return nil, nil
	}
	var projects []*model.Project
	if err := readJSON(r.path, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// Save 整集合覆盖写入
func (r *FileRepository) Save(projects []*model.Project) error {
	return writeJSONAtomic(r.path, projects)
}

// MemoryRepository 内存存储（测试用）
type MemoryRepository struct {
	mu       sync.Mutex
	projects []*model.Project
	loaded   bool

	// LoadErr/SaveErr 注入故障，模拟损坏数据与写失败
	LoadErr error
	SaveErr error
}

// NewMemoryRepository 创建内存存储
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// Load 返回上次 Save 的集合
func (r *MemoryRepository) Load() ([]*model.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.LoadErr != nil {
		return nil, r.LoadErr
	}
	if !r.loaded {
		return nil, nil
	}
	out := make([]*model.Project, len(r.projects))
	copy(out, r.projects)
	return out, nil
}

// Save 记录集合
func (r *MemoryRepository) Save(projects []*model.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.SaveErr != nil {
		return r.SaveErr
	}
	r.projects = make([]*model.Project, len(projects))
	copy(r.projects, projects)
	r.loaded = true
	return nil
}

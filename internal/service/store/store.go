// Package store 项目集合的唯一归属方：所有变更经由
// Sanitize + Project + Recalculate 漏斗后整集合持久化。
// 表现层拿到的都是可丢弃的副本。
package store

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/SMEDTEC/2sanbusinesscase/internal/model"
	"github.com/SMEDTEC/2sanbusinesscase/internal/service/calculator"
	"github.com/SMEDTEC/2sanbusinesscase/internal/service/sanitizer"
)

// ErrNotFound 目标项目不存在
var ErrNotFound = errors.New("project not found")

// ProjectStore 项目存储
type ProjectStore struct {
	mu       sync.Mutex
	repo     Repository
	projects []*model.Project
}

// NewProjectStore 创建项目存储（调用方随后应执行 Load）
func NewProjectStore(repo Repository) *ProjectStore {
	return &ProjectStore{repo: repo, projects: []*model.Project{}}
}

// prepare 变更漏斗：规整、重推投影、重算汇总。
// 投影永远在这里重新推导，存储或请求体里带来的投影一律不作数。
func prepare(p *model.Project) *model.Project {
	out := sanitizer.SanitizeProject(p)
	out.CommercialModel = calculator.Project(out.CommercialModel)
	return calculator.Recalculate(out)
}

// Load 从持久化层加载集合。存储为空或数据损坏时回退到示例项目，
// 规整重算后写回。损坏数据不会越过这道边界。
func (s *ProjectStore) Load() []*model.Project {
	s.mu.Lock()
	defer s.mu.Unlock()

	loaded, err := s.repo.Load()
	if err != nil {
		log.Printf("读取项目数据失败，回退到示例项目: %v", err)
		loaded = nil
	}
	if len(loaded) == 0 {
		loaded = model.SeedProjects()
	}

	next := make([]*model.Project, 0, len(loaded))
	for _, p := range loaded {
		if p == nil {
			continue
		}
		next = append(next, prepare(p))
	}

	// 加载阶段的写回失败只记录，不阻断启动
	if err := s.repo.Save(next); err != nil {
		log.Printf("项目数据写回失败: %v", err)
	}

	s.projects = next
	return s.snapshotLocked()
}

// Add 在默认项目模板之上合并草稿（缺省字段由 SanitizeProject 补齐），
// 分配 id = max(现有 id)+1（空集合为 1），持久化成功后提交。
func (s *ProjectStore) Add(draft *model.Project) (*model.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := prepare(draft)
	p.ID = s.nextIDLocked()

	next := make([]*model.Project, len(s.projects), len(s.projects)+1)
	copy(next, s.projects)
	next = append(next, p)

	if err := s.repo.Save(next); err != nil {
		return nil, fmt.Errorf("保存项目数据失败: %w", err)
	}
	s.projects = next
	return p.Clone(), nil
}

// Update 整体替换同 id 的项目。持久化失败时内存集合保持不变，
// 调用方的草稿因此不会丢。
func (s *ProjectStore) Update(p *model.Project) (*model.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := s.indexOfLocked(p.ID)
	if index < 0 {
		return nil, ErrNotFound
	}

	prepared := prepare(p)
	next := make([]*model.Project, len(s.projects))
	copy(next, s.projects)
	next[index] = prepared

	if err := s.repo.Save(next); err != nil {
		return nil, fmt.Errorf("保存项目数据失败: %w", err)
	}
	s.projects = next
	return prepared.Clone(), nil
}

// Remove 按 id 删除
func (s *ProjectStore) Remove(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := s.indexOfLocked(id)
	if index < 0 {
		return ErrNotFound
	}

	next := make([]*model.Project, 0, len(s.projects)-1)
	for _, p := range s.projects {
		if p.ID == id {
			continue
		}
		next = append(next, p)
	}

	if err := s.repo.Save(next); err != nil {
		return fmt.Errorf("保存项目数据失败: %w", err)
	}
	s.projects = next
	return nil
}

// Get 按 id 查找，返回独立副本
func (s *ProjectStore) Get(id int) (*model.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := s.indexOfLocked(id)
	if index < 0 {
		return nil, ErrNotFound
	}
	return s.projects[index].Clone(), nil
}

// List 返回全部项目的独立副本
func (s *ProjectStore) List() []*model.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Count 项目数量
func (s *ProjectStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.projects)
}

func (s *ProjectStore) nextIDLocked() int {
	maxID := 0
	for _, p := range s.projects {
		if p.ID > maxID {
			maxID = p.ID
		}
	}
	return maxID + 1
}

func (s *ProjectStore) indexOfLocked(id int) int {
	for i, p := range s.projects {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (s *ProjectStore) snapshotLocked() []*model.Project {
	out := make([]*model.Project, 0, len(s.projects))
	for _, p := range s.projects {
		out = append(out, p.Clone())
	}
	return out
}

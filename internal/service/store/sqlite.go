package store

import (
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/SMEDTEC/2sanbusinesscase/internal/model"
)

//go:embed schema.sql
var schemaFS embed.FS

// StorageKey 集合的固定存储键，沿用浏览器版的 localStorage 键名
const StorageKey = "2sanBusinessCaseProjects"

// SQLiteRepository SQLite 键值存储适配器
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository 打开（或创建）数据库并初始化表结构
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("创建数据目录失败: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("打开数据库失败: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接失败: %w", err)
	}

	// SQLite 建议单连接
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	repo := &SQLiteRepository{db: db}
	if err := repo.initSchema(); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) initSchema() error {
	schemaSQL, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("读取 schema.sql 失败: %w", err)
	}
	if _, err := r.db.Exec(string(schemaSQL)); err != nil {
		return fmt.Errorf("初始化表结构失败: %w", err)
	}
	return nil
}

// Load 读取固定键下的集合；键不存在视为空存储
func (r *SQLiteRepository) Load() ([]*model.Project, error) {
	var raw string
	err := r.db.QueryRow(`SELECT value FROM kv_store WHERE key = ?`, StorageKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var projects []*model.Project
	if err := json.Unmarshal([]byte(raw), &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// Save 整集合覆盖写入固定键
func (r *SQLiteRepository) Save(projects []*model.Project) error {
	data, err := json.Marshal(projects)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(`
		INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, StorageKey, string(data))
	return err
}

// Close 关闭数据库连接
func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

package store

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// readJSON 读取并反序列化单个 JSON 文档
func readJSON(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

// writeJSONAtomic 先写临时文件再重命名，避免写一半的文档落盘。
// 输出带缩进并以换行结尾，方便直接查看数据文件。
func writeJSONAtomic(path string, v interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// fileExists 仅区分"存在"与"不存在"，其他 stat 错误留给后续读取暴露
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
)

// OutputManager 把窗口汇总追加写入 CSV
type OutputManager struct {
	path          string
	file          *os.File
	headerWritten bool
}

// NewOutputManager 创建 CSV 输出
// path 为空时返回 nil（关闭输出），nil 的 OutputManager 上所有方法都是空操作
func NewOutputManager(path string) (*OutputManager, error) {
	if path == "" {
		return nil, nil
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating telemetry directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}

	return &OutputManager{path: path, file: f}, nil
}

// WriteTelemetry 追加一条记录，第一条记录前写表头
func (om *OutputManager) WriteTelemetry(stats WindowStats) error {
	if om == nil {
		return nil
	}

	records := []WindowStats{stats}

	if !om.headerWritten {
		if err := gocsv.Marshal(records, om.file); err != nil {
			return fmt.Errorf("writing telemetry: %w", err)
		}
		om.headerWritten = true
		return nil
	}

	if err := gocsv.MarshalWithoutHeaders(records, om.file); err != nil {
		return fmt.Errorf("writing telemetry: %w", err)
	}
	return nil
}

// Path 输出文件路径
func (om *OutputManager) Path() string {
	if om == nil {
		return ""
	}
	return om.path
}

// Close 关闭文件
func (om *OutputManager) Close() error {
	if om == nil || om.file == nil {
		return nil
	}
	return om.file.Close()
}

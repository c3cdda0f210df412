package xfile

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteAtomic 将 data 写入 path。
//
// 先写同目录临时文件、fsync、chmod，再 rename 覆盖目标，
// 并发读者只会看到完整的旧内容或新内容。父目录不存在时自动创建。
// 失败时临时文件被删除，目标文件保持原样。
func WriteAtomic(path string, data []byte, perm os.FileMode) (err error) {
	if err := EnsureDir(path); err != nil {
		return fmt.Errorf("xfile: ensure dir for %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("xfile: create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("xfile: write %s: %w", tmp.Name(), err)
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("xfile: sync %s: %w", tmp.Name(), err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("xfile: close %s: %w", tmp.Name(), err)
	}
	if err = os.Chmod(tmp.Name(), perm); err != nil {
		return fmt.Errorf("xfile: chmod %s: %w", tmp.Name(), err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("xfile: rename to %s: %w", path, err)
	}
	return nil
}

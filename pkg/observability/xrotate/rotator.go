package xrotate

import "io"

var _ io.WriteCloser = (Rotator)(nil)

// Rotator 可轮转的日志输出目标，实现 [io.WriteCloser]，并发安全。
//
// Close 之后 Write 与 Rotate 返回 [ErrClosed]，重复 Close 同样返回 [ErrClosed]。
type Rotator interface {
	Write(p []byte) (n int, err error)
	Close() error
	// Rotate 立即将当前文件改名为备份并打开新文件。
	Rotate() error
}

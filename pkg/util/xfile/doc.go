// Package xfile 提供缓存与日志文件用到的文件系统工具。
//
//   - [SanitizePath]：路径格式净化（空路径、空字节、目录路径、相对路径穿越）
//   - [EnsureDir]、[EnsureDirWithPerm]：创建文件的父目录
//   - [WriteAtomic]：临时文件 + rename 的原子写入
//
// 错误变量支持 [errors.Is] 判断：
//
//	if _, err := xfile.SanitizePath(name); errors.Is(err, xfile.ErrPathTraversal) {
//	    // 拒绝
//	}
//
// 本包处理文件系统路径，不做 URL 解码。
package xfile

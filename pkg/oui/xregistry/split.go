package xregistry

import "strings"

// hexMarker 标记条目首行。
const hexMarker = "(hex)"

// splitter 是条目切分状态机：lines 为输入行，pos 为扫描位置，buf 为当前条目。
type splitter struct {
	lines   []string
	pos     int
	buf     strings.Builder
	pending bool
	entries []string
}

// SplitEntries 把注册表原始文本切分为条目序列。
//
// 逐行累积到缓冲区；遇到含 "(hex)" 的行且缓冲区非空时，
// 把缓冲区（去除首尾空白）作为一个条目输出，并从同一行重新开始累积。
// 输入结束时输出最后的缓冲区。接受 "\r\n" 换行。
//
// 返回的首个元素是表头，不是厂商条目。
func SplitEntries(raw string) []string {
	s := &splitter{lines: strings.Split(raw, "\n")}
	for s.pos < len(s.lines) {
		s.step()
	}
	if s.pending {
		s.flush()
	}
	return s.entries
}

// step 处理 pos 处的一行。遇到条目边界时只输出缓冲区，不前进 pos。
func (s *splitter) step() {
	line := strings.TrimSuffix(s.lines[s.pos], "\r")
	if s.pending && strings.Contains(line, hexMarker) {
		s.flush()
		return
	}
	s.buf.WriteString(line)
	s.buf.WriteByte('\n')
	s.pending = true
	s.pos++
}

func (s *splitter) flush() {
	s.entries = append(s.entries, strings.TrimSpace(s.buf.String()))
	s.buf.Reset()
	s.pending = false
}

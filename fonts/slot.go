package fonts

import "sync"

// Slot 保存当前生效的字体。后开始的加载优先：已安装序号更大的资源时，
// 较早开始但较晚完成的加载会被丢弃。
type Slot struct {
	mu    sync.RWMutex
	seq   int
	asset *Asset
}

// Install stores asset if seq is newer than the installed one and reports
// whether it did.
func (s *Slot) Install(seq int, asset *Asset) bool {
	if asset == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq <= s.seq {
		return false
	}
	s.seq = seq
	s.asset = asset
	return true
}

// Current returns the installed asset, or nil.
func (s *Slot) Current() *Asset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.asset
}

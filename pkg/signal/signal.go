// Package signal 提供资源变更通知用的观察者列表
//
// 一个 Signal 对应一种事件（例如纹理的 "changed"）。
// 订阅者以 target 作为身份标识，同一个 target 最多只保留一条连接，
// 因此反复 Connect 不会产生重复订阅。
//
// 与 ECS 其余部分一样，Signal 只在游戏主循环 goroutine 上使用，不加锁。
package signal

// connection 单条订阅
type connection struct {
	target any
	fn     func()
}

// Signal 观察者列表，零值可直接使用
type Signal struct {
	conns []connection
}

// Connect 以 target 为身份注册回调
//
// 参数：
//   - target: 订阅者身份，必须是可比较的值（通常是指针）
//   - fn: 事件触发时调用的回调
//
// 返回：
//   - bool: 新建连接返回 true；target 已连接时返回 false，原回调保持不变
func (s *Signal) Connect(target any, fn func()) bool {
	if fn == nil || s.IsConnected(target) {
		return false
	}
	s.conns = append(s.conns, connection{target: target, fn: fn})
	return true
}

// Disconnect 移除 target 的连接，未连接时返回 false
func (s *Signal) Disconnect(target any) bool {
	for i, c := range s.conns {
		if c.target == target {
			s.conns = append(s.conns[:i:i], s.conns[i+1:]...)
			return true
		}
	}
	return false
}

// IsConnected 检查 target 是否已连接
func (s *Signal) IsConnected(target any) bool {
	for _, c := range s.conns {
		if c.target == target {
			return true
		}
	}
	return false
}

// Count 当前连接数
func (s *Signal) Count() int {
	return len(s.conns)
}

// Emit 依次调用所有回调
// 遍历的是快照，回调内部 Connect/Disconnect 只影响下一次 Emit
func (s *Signal) Emit() {
	if len(s.conns) == 0 {
		return
	}
	snapshot := make([]connection, len(s.conns))
	copy(snapshot, s.conns)
	for _, c := range snapshot {
		c.fn()
	}
}

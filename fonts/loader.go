package fonts

import (
	"context"
	"fmt"
	"sync"

	"github.com/ByLCY/radialtext/glyphs"
)

// Loader 为每次加载分配递增的 UserFont_<n> 族名，并在后台解析字体。
type Loader struct {
	mu      sync.Mutex
	counter int
	opts    []glyphs.Option
}

// NewLoader returns a loader whose parsed fonts use opts.
func NewLoader(opts ...glyphs.Option) *Loader {
	return &Loader{opts: opts}
}

// Promise 是一次尚未完成的字体加载。
type Promise interface {
	// Seq is the order in which the load was started, starting at 1.
	Seq() int
	// Await blocks until the asset is ready or ctx is done.
	Await(ctx context.Context) (*Asset, error)
}

type promise struct {
	seq  int
	done chan struct{}

	asset *Asset
	err   error
}

func (p *promise) Seq() int { return p.seq }

func (p *promise) Await(ctx context.Context) (*Asset, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-p.done:
		return p.asset, p.err
	}
}

// Load 在后台构建字体资源。族名在调用时即确定，因此先开始的加载总是得到较小的编号。
// ctx 在解析开始前取消时放弃该次加载。
func (l *Loader) Load(ctx context.Context, name string, data []byte) Promise {
	l.mu.Lock()
	l.counter++
	seq := l.counter
	l.mu.Unlock()

	p := &promise{seq: seq, done: make(chan struct{})}
	family := fmt.Sprintf("UserFont_%d", seq)
	go func() {
		defer close(p.done)
		if len(data) == 0 {
			p.err = fmt.Errorf("字体 %s 没有数据: %w", name, ErrUnknownFont)
			return
		}
		if err := ctx.Err(); err != nil {
			p.err = err
			return
		}
		p.asset = NewAsset(family, name, data, l.opts...)
	}()
	return p
}

// LoadSource resolves src with Resolve and loads it.
func (l *Loader) LoadSource(ctx context.Context, src, baseDir string) (Promise, error) {
	name, data, err := Resolve(src, baseDir)
	if err != nil {
		return nil, err
	}
	return l.Load(ctx, name, data), nil
}

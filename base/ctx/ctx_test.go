package ctx

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type testsuite struct {
	suite.Suite
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

// doneBefore reports whether ctx was cancelled within the given wait.
func doneBefore(ctx context.Context, wait time.Duration) bool {
	select {
	case <-ctx.Done():
		return true
	case <-time.After(wait):
		return false
	}
}

func (ts *testsuite) TestWithValue() {
	ctx := WithValue(Background(), "symbol", "ART")
	ts.Equal("ART", ctx.Value("symbol"))
}

func (ts *testsuite) TestWithValues() {
	ctx := WithValues(Background(), map[string]interface{}{
		"symbol": "ART",
		"owner":  "0xseller",
	})
	ts.Equal("ART", ctx.Value("symbol"))
	ts.Equal("0xseller", ctx.Value("owner"))
}

func (ts *testsuite) TestWithCancel() {
	ctx, cancel := WithCancel(Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	ts.True(doneBefore(ctx, 100*time.Millisecond))
}

func (ts *testsuite) TestWithTimeout() {
	ctx, cancel := WithTimeout(Background(), 10*time.Millisecond)
	defer cancel()
	ts.True(doneBefore(ctx, 100*time.Millisecond))
	ts.Equal(context.DeadlineExceeded, ctx.Err())
}

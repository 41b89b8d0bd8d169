package ledger

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLedger(t *testing.T) {
	l := New(DefaultBalance, DefaultBet, nil)
	assert.Equal(t, 1000, l.Balance())
	assert.Equal(t, 10, l.BetValue())
	assert.Equal(t, []int{1000}, l.History())
}

func TestUpdateBalance(t *testing.T) {
	t.Run("credits and debits", func(t *testing.T) {
		l := New(1000, 10, nil)
		l.UpdateBalance(50)
		l.UpdateBalance(-25)
		l.UpdateBalance(100)
		assert.Equal(t, 1125, l.Balance())
		assert.Equal(t, []int{1000, 1050, 1025, 1125}, l.History())
	})

	t.Run("zero delta still records history", func(t *testing.T) {
		l := New(1000, 10, nil)
		l.UpdateBalance(0)
		assert.Equal(t, 1000, l.Balance())
		assert.Equal(t, []int{1000, 1000}, l.History())
	})

	t.Run("balance may go negative", func(t *testing.T) {
		l := New(100, 10, nil)
		l.UpdateBalance(-150)
		assert.Equal(t, -50, l.Balance())
	})
}

func TestReset(t *testing.T) {
	l := New(1000, 25, nil)
	l.UpdateBalance(100)
	l.Reset(500)
	assert.Equal(t, 500, l.Balance())
	assert.Equal(t, []int{500}, l.History())
	assert.Equal(t, 25, l.BetValue(), "reset keeps the bet")
}

func TestSetBetValue(t *testing.T) {
	l := New(1000, 10, nil)
	require.NoError(t, l.SetBetValue(50))
	assert.Equal(t, 50, l.BetValue())

	require.NoError(t, l.SetBetValue(0))
	assert.Equal(t, 0, l.BetValue())

	err := l.SetBetValue(-1)
	assert.ErrorIs(t, err, ErrNegativeBet)
	assert.Equal(t, 0, l.BetValue())
}

func TestHistoryIsCopy(t *testing.T) {
	l := New(1000, 10, nil)
	h := l.History()
	h[0] = 42
	assert.Equal(t, []int{1000}, l.History())
}

func TestConcurrentUpdates(t *testing.T) {
	l := New(0, 10, nil)
	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.UpdateBalance(2)
		}()
	}
	wg.Wait()
	assert.Equal(t, 100, l.Balance())
	assert.Len(t, l.History(), 51)
}

func TestWriteHistory(t *testing.T) {
	l := New(1000, 10, nil)
	l.UpdateBalance(10)
	l.UpdateBalance(-20)

	path := filepath.Join(t.TempDir(), "history.csv")
	require.NoError(t, l.WriteHistory(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "index,balance\n0,1000\n1,1010\n2,990\n", string(data))

	// Rewriting replaces the file and leaves no temp files behind
	l.UpdateBalance(5)
	require.NoError(t, l.WriteHistory(path))
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

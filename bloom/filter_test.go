package bloom

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestContainsInserted(t *testing.T) {
	f := New(1000, 0.001, 123, UpdateNone)

	elements := make([][]byte, 1000)
	for i := range elements {
		elements[i] = make([]byte, 32)
		_, err := rand.Read(elements[i])
		require.NoError(t, err)
		f.Add(elements[i])
	}

	for _, e := range elements {
		require.True(t, f.Contains(e))
	}
}

func TestFalsePositiveRateWithinBounds(t *testing.T) {
	f := New(1000, 0.001, 42, UpdateNone)

	inserted := make(map[string]bool, 1000)
	for i := 0; i < 1000; i++ {
		e := make([]byte, 32)
		_, err := rand.Read(e)
		require.NoError(t, err)
		inserted[string(e)] = true
		f.Add(e)
	}

	falsePositives := 0
	const trials = 10000
	for i := 0; i < trials; i++ {
		e := make([]byte, 32)
		_, err := rand.Read(e)
		require.NoError(t, err)
		if inserted[string(e)] {
			continue
		}
		if f.Contains(e) {
			falsePositives++
		}
	}

	rate := float64(falsePositives) / float64(trials)
	require.Less(t, rate, 0.01)
}

func TestAddCheckedEnforcesCap(t *testing.T) {
	f := New(10, 0.01, 0, UpdateNone)
	err := f.AddChecked(make([]byte, MaxFilterAddDataSize+1))
	require.Error(t, err)

	err = f.AddChecked(make([]byte, MaxFilterAddDataSize))
	require.NoError(t, err)
}

func TestLoadFromWireEnforcesCaps(t *testing.T) {
	_, err := LoadFromWire(make([]byte, MaxFilterBytes+1), 1, 0, UpdateNone)
	require.Error(t, err)

	_, err = LoadFromWire(make([]byte, 10), MaxHashFuncs+1, 0, UpdateNone)
	require.Error(t, err)

	f, err := LoadFromWire(make([]byte, 10), 5, 0, UpdateNone)
	require.NoError(t, err)
	require.Equal(t, uint32(5), f.HashFuncs())
}

func TestSizeClampedToAtLeastOneByte(t *testing.T) {
	f := New(1, 0.9999, 0, UpdateNone)
	require.GreaterOrEqual(t, len(f.Data()), 1)
}

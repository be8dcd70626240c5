package keyspace_test

import (
	"testing"

	"github.com/katalvlaran/trifid/keyspace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var abc = []rune("ABC")

// TestSize covers normal values and sentinel errors.
func TestSize(t *testing.T) {
	n, err := keyspace.Size(27, 3)
	require.NoError(t, err)
	assert.Equal(t, uint64(19683), n)

	n, err = keyspace.Size(27, 13)
	require.NoError(t, err)
	assert.Equal(t, uint64(4052555153018976267), n)

	_, err = keyspace.Size(27, 14)
	assert.ErrorIs(t, err, keyspace.ErrOverflow, "27^14 > 2^64")

	_, err = keyspace.Size(0, 3)
	assert.ErrorIs(t, err, keyspace.ErrEmptyAlphabet)

	_, err = keyspace.Size(27, 0)
	assert.ErrorIs(t, err, keyspace.ErrBadLength)
}

// TestSequentialKey_DigitOrder pins the least-significant-digit-first convention.
func TestSequentialKey_DigitOrder(t *testing.T) {
	tests := []struct {
		index uint64
		want  string
	}{
		{0, "AAA"},
		{1, "BAA"},
		{2, "CAA"},
		{3, "ABA"},
		{9, "AAB"},
		{26, "CCC"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, keyspace.SequentialKey(tt.index, abc, 3), "index %d", tt.index)
	}
}

// TestSequentialKey_Bijection enumerates the full space m^L and checks that
// every key is distinct, has length L, and maps back to its index.
func TestSequentialKey_Bijection(t *testing.T) {
	alphabet := []rune("ABCDEFGHIJKLMNOPQRSTUVWXYZ?")
	const length = 3

	total, err := keyspace.Size(len(alphabet), length)
	require.NoError(t, err)

	seen := make(map[string]struct{}, total)
	var i uint64
	for i = 0; i < total; i++ {
		key := keyspace.SequentialKey(i, alphabet, length)
		require.Len(t, []rune(key), length)
		_, dup := seen[key]
		require.False(t, dup, "duplicate key %q at index %d", key, i)
		seen[key] = struct{}{}

		back, err := keyspace.Index(key, alphabet)
		require.NoError(t, err)
		require.Equal(t, i, back)
	}
	assert.Len(t, seen, int(total))
}

// TestSequentialKey_Wraps checks that out-of-range indices wrap modulo m^L.
func TestSequentialKey_Wraps(t *testing.T) {
	assert.Equal(t, keyspace.SequentialKey(5, abc, 3), keyspace.SequentialKey(27+5, abc, 3))
	assert.Equal(t, keyspace.SequentialKey(0, abc, 2), keyspace.SequentialKey(9, abc, 2))
}

// TestSequentialKey_Degenerate returns "" for empty alphabets or non-positive lengths.
func TestSequentialKey_Degenerate(t *testing.T) {
	assert.Equal(t, "", keyspace.SequentialKey(3, nil, 3))
	assert.Equal(t, "", keyspace.SequentialKey(3, abc, 0))
}

// TestIndex_Errors covers the inverse mapping's sentinels.
func TestIndex_Errors(t *testing.T) {
	_, err := keyspace.Index("ABD", abc)
	assert.ErrorIs(t, err, keyspace.ErrForeignSymbol)

	_, err = keyspace.Index("", abc)
	assert.ErrorIs(t, err, keyspace.ErrBadLength)

	_, err = keyspace.Index("A", nil)
	assert.ErrorIs(t, err, keyspace.ErrEmptyAlphabet)
}

// TestRandomKey_Deterministic checks seeded determinism and symbol membership.
func TestRandomKey_Deterministic(t *testing.T) {
	a := keyspace.RandomKey(keyspace.NewRand(42), abc, 16)
	b := keyspace.RandomKey(keyspace.NewRand(42), abc, 16)
	assert.Equal(t, a, b)
	assert.Len(t, a, 16)
	for _, r := range a {
		assert.Contains(t, abc, r)
	}

	assert.Equal(t, "", keyspace.RandomKey(nil, nil, 4))
	assert.Len(t, keyspace.RandomKey(nil, abc, 4), 4, "nil rng falls back to the default stream")
}

// TestDeriveRand_IndependentStreams checks that sibling streams differ and
// that each stream is reproducible.
func TestDeriveRand_IndependentStreams(t *testing.T) {
	alphabet := []rune("ABCDEFGHIJKLMNOPQRSTUVWXYZ?")

	w0 := keyspace.RandomKey(keyspace.DeriveRand(9, 0), alphabet, 24)
	w1 := keyspace.RandomKey(keyspace.DeriveRand(9, 1), alphabet, 24)
	w0again := keyspace.RandomKey(keyspace.DeriveRand(9, 0), alphabet, 24)

	assert.NotEqual(t, w0, w1)
	assert.Equal(t, w0, w0again)
}

// TestFreshSeed checks that fresh seeds are usable and vary between draws.
func TestFreshSeed(t *testing.T) {
	seen := map[int64]bool{}
	for i := 0; i < 16; i++ {
		seed := keyspace.FreshSeed()
		assert.NotZero(t, seed)
		seen[seed] = true
	}
	assert.Greater(t, len(seen), 1)
}

// TestSources exercises both Source implementations.
func TestSources(t *testing.T) {
	var src keyspace.Source = keyspace.Sequential{Alphabet: abc, Length: 2}
	assert.Equal(t, "CA", src.Key(2))
	assert.Equal(t, "AB", src.Key(3))

	rnd := &keyspace.Random{Alphabet: abc, Length: 5}
	src = rnd
	k := src.Key(0)
	assert.Len(t, k, 5)
	assert.NotNil(t, rnd.Rand, "lazy default stream")
}

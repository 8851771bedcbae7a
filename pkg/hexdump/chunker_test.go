package hexdump

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seq(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i)
	}
	return b
}

func TestLineChunker(t *testing.T) {
	testCases := []struct {
		name         string
		input        []byte
		limit        uint32
		expectedLens []int
	}{
		{
			name:         "Empty Input",
			input:        []byte{},
			expectedLens: []int{0},
		},
		{
			name:         "Single Partial Window",
			input:        []byte("hello"),
			expectedLens: []int{5},
		},
		{
			name:         "Single Full Window",
			input:        seq(16),
			expectedLens: []int{16},
		},
		{
			name:         "Multiple Full Windows",
			input:        seq(32),
			expectedLens: []int{16, 16},
		},
		{
			name:         "Multiple Windows with Last Partial",
			input:        seq(35),
			expectedLens: []int{16, 16, 3},
		},
		{
			name:         "Limit Inside Second Window",
			input:        seq(35),
			limit:        20,
			expectedLens: []int{16, 4},
		},
		{
			name:         "Limit On Window Boundary",
			input:        seq(35),
			limit:        16,
			expectedLens: []int{16},
		},
		{
			name:         "Limit Beyond Input",
			input:        seq(7),
			limit:        100,
			expectedLens: []int{7},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			chunker := NewLineChunker(bytes.NewReader(tc.input), tc.limit)

			var lens []int
			joined := []byte{}
			var finalErr error
			for {
				w, err := chunker.Next()
				if err != nil {
					finalErr = err
					break
				}
				lens = append(lens, len(w))
				joined = append(joined, w...)
			}

			assert.Equal(t, io.EOF, finalErr)
			assert.Equal(t, tc.expectedLens, lens)

			want := tc.input
			if tc.limit > 0 && int(tc.limit) < len(want) {
				want = want[:tc.limit]
			}
			assert.Equal(t, want, joined)

			_, err := chunker.Next()
			assert.Equal(t, io.EOF, err, "chunker must stay exhausted")
		})
	}
}

func TestLineChunker_SmallReads(t *testing.T) {
	input := seq(40)
	chunker := NewLineChunker(iotest.OneByteReader(bytes.NewReader(input)), 0)

	var lens []int
	for {
		w, err := chunker.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		lens = append(lens, len(w))
	}
	assert.Equal(t, []int{16, 16, 8}, lens)
}

func TestLineChunker_PreviousWindowSurvives(t *testing.T) {
	input := append(bytes.Repeat([]byte{0xaa}, 16), bytes.Repeat([]byte{0xbb}, 16)...)
	chunker := NewLineChunker(bytes.NewReader(input), 0)

	first, err := chunker.Next()
	require.NoError(t, err)
	second, err := chunker.Next()
	require.NoError(t, err)

	assert.Equal(t, Window(bytes.Repeat([]byte{0xaa}, 16)), first)
	assert.Equal(t, Window(bytes.Repeat([]byte{0xbb}, 16)), second)
	assert.False(t, first.Equal(second))
}

func TestLineChunker_ReadError(t *testing.T) {
	errBoom := errors.New("boom")
	r := io.MultiReader(bytes.NewReader(seq(16)), iotest.ErrReader(errBoom))
	chunker := NewLineChunker(r, 0)

	w, err := chunker.Next()
	require.NoError(t, err)
	assert.Len(t, w, 16)

	_, err = chunker.Next()
	assert.ErrorIs(t, err, errBoom)
}

func TestWindowEqual(t *testing.T) {
	assert.True(t, Window{}.Equal(Window{}))
	assert.True(t, Window{1, 2}.Equal(Window{1, 2}))
	assert.False(t, Window{1, 2}.Equal(Window{1, 3}))
	assert.False(t, Window{1, 2}.Equal(Window{1, 2, 0}))
	assert.False(t, Window{0}.Equal(Window{}))
}

package cmd

import (
	"bytes"
	"compress/zlib"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zhengshuai-xiao/xdump/internal"
	"github.com/zhengshuai-xiao/xdump/internal/compression"
	"github.com/zhengshuai-xiao/xdump/pkg/hexdump"
)

func zlibBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var b bytes.Buffer
	w := zlib.NewWriter(&b)
	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return b.Bytes()
}

func writeInput(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.bin")
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := runApp(newApp(&out, &errOut), append([]string{"xdump"}, args...))
	return out.String(), err
}

func TestReorderOptions(t *testing.T) {
	app := newApp(nil, nil)
	testCases := []struct {
		name     string
		args     []string
		expected []string
	}{
		{"No args", []string{"xdump"}, []string{"xdump"}},
		{"File only", []string{"xdump", "a.bin"}, []string{"xdump", "--", "a.bin"}},
		{"Flag after file", []string{"xdump", "a.bin", "-n", "16"}, []string{"xdump", "-n", "16", "--", "a.bin"}},
		{"Flag with equals", []string{"xdump", "a.bin", "--length=5"}, []string{"xdump", "--length=5", "--", "a.bin"}},
		{"Bool flag", []string{"xdump", "-V"}, []string{"xdump", "-V"}},
		{"Stdin", []string{"xdump", "-", "--endian", "big"}, []string{"xdump", "--endian", "big", "--", "-"}},
		{"Double dash", []string{"xdump", "--", "-odd-name"}, []string{"xdump", "--", "-odd-name"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := reorderOptions(app, tc.args)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}

	_, err := reorderOptions(app, []string{"xdump", "a.bin", "-x"})
	assert.ErrorIs(t, err, errUnknownOption)

	_, err = reorderOptions(app, []string{"xdump", "a.bin", "-n"})
	assert.EqualError(t, err, "option -n requires value")
}

func TestIsFlag(t *testing.T) {
	flags := dumpFlags()

	ok, hasValue := isFlag(flags, "-n")
	assert.True(t, ok)
	assert.True(t, hasValue)

	ok, hasValue = isFlag(flags, "--length=4")
	assert.True(t, ok)
	assert.False(t, hasValue)

	ok, _ = isFlag(flags, "a.bin")
	assert.False(t, ok)

	ok, _ = isFlag(flags, "--nope")
	assert.False(t, ok)
}

func TestDumpCommand(t *testing.T) {
	zeros := writeInput(t, make([]byte, 32))
	pair := writeInput(t, []byte{0x34, 0x12})

	t.Run("Duplicate windows", func(t *testing.T) {
		out, err := run(t, zeros)
		require.NoError(t, err)
		assert.Equal(t, "00000000 0000 0000 0000 0000 0000 0000 0000 0000\n*\n00000020\n", out)
	})

	t.Run("Length after file", func(t *testing.T) {
		out, err := run(t, zeros, "-n", "5")
		require.NoError(t, err)
		assert.Equal(t, "00000000 0000 0000 0000\n00000005\n", out)
	})

	t.Run("Explicit byte order", func(t *testing.T) {
		out, err := run(t, "--endian", "little", pair)
		require.NoError(t, err)
		assert.Equal(t, "00000000 1234\n00000002\n", out)

		out, err = run(t, "--endian=big", pair)
		require.NoError(t, err)
		assert.Equal(t, "00000000 3412\n00000002\n", out)
	})

	t.Run("Decompress", func(t *testing.T) {
		out, err := run(t, "--decompress", "zlib", writeInput(t, zlibBytes(t, make([]byte, 32))))
		require.NoError(t, err)
		assert.Equal(t, "00000000 0000 0000 0000 0000 0000 0000 0000 0000\n*\n00000020\n", out)

		_, err = run(t, "--decompress", "snappy", pair)
		assert.ErrorIs(t, err, hexdump.ErrSourceUnavailable)
	})
}

func TestDumpCommandErrors(t *testing.T) {
	input := writeInput(t, []byte("abc"))

	testCases := []struct {
		name     string
		args     []string
		expected error
		code     int
	}{
		{"Invalid length", []string{"-n", "abc", input}, internal.ErrInvalidLength, 2},
		{"Negative length", []string{"-n", "-1", input}, internal.ErrInvalidLength, 2},
		{"Length overflows 32 bits", []string{"-n", "4294967296", input}, internal.ErrInvalidLength, 2},
		{"Two files", []string{input, input}, internal.ErrAmbiguousFile, 2},
		{"No file", []string{"-n", "4"}, internal.ErrNoFile, 2},
		{"Bad endian", []string{"--endian", "pdp", input}, internal.ErrInvalidEndian, 2},
		{"Unknown option", []string{"-q", input}, errUnknownOption, 2},
		{"Bad decompress", []string{"--decompress", "lz4", input}, compression.ErrInvalidCompressionType, 2},
		{"Missing file", []string{input + ".missing"}, hexdump.ErrSourceUnavailable, 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := run(t, tc.args...)
			assert.ErrorIs(t, err, tc.expected)
			assert.Equal(t, tc.code, ExitCode(err))
			assert.Empty(t, out)
		})
	}
}

func TestNoArgsPrintsUsage(t *testing.T) {
	out, err := run(t)
	require.NoError(t, err)
	assert.Contains(t, out, "xdump [-n LEN] FILE")
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 1, ExitCode(errors.New("read failed")))
	assert.Equal(t, 2, ExitCode(internal.ErrNoFile))
}

package lineio

import (
	"errors"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	factorial "github.com/easygolabs/FactorialCalculator"
)

func TestSource_Next(t *testing.T) {
	s := NewSource(strings.NewReader("5\r\nabc\n\n7"))

	var got []string
	for {
		line, err := s.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		got = append(got, line)
	}

	require.Equal(t, []string{"5", "abc", "", "7"}, got)
	require.NoError(t, s.Close())
}

func TestSource_LongLine(t *testing.T) {
	long := strings.Repeat("x", 70*1024)
	s := NewSource(strings.NewReader("3\n" + long + "\n4\n5\n"))

	var got []string
	for {
		line, err := s.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		got = append(got, line)
	}

	require.Equal(t, []string{"3", long, "4", "5"}, got)
}

func TestOpenSource_MissingFile(t *testing.T) {
	_, err := OpenSource(filepath.Join(t.TempDir(), "missing.txt"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestSink_WritesLines(t *testing.T) {
	var b strings.Builder
	s := NewSink(&b)

	require.NoError(t, s.Write(factorial.Result{Value: 5, Factorial: big.NewInt(120)}))
	require.NoError(t, s.Write(factorial.Result{Value: factorial.Invalid, Factorial: big.NewInt(1)}))
	require.Empty(t, b.String(), "output is buffered until Close")
	require.NoError(t, s.Close())

	require.Equal(t, "5 = 120\n"+factorial.InvalidMessage+"\n", b.String())
}

func TestCreateSink_TruncatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output.txt")
	require.NoError(t, os.WriteFile(path, []byte("stale content\n"), 0o600))

	s, err := CreateSink(path)
	require.NoError(t, err)
	require.NoError(t, s.Write(factorial.Result{Value: 3, Factorial: big.NewInt(6)}))
	require.NoError(t, s.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "3 = 6\n", string(data))
}

package runes

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeEncodeRoundTrip(t *testing.T) {
	text := "小明硕士毕业于中国科学院计算所"
	s := Decode([]byte(text))
	require.Equal(t, len([]rune(text)), s.Len())

	got := Encode(s, 0, s.Len())
	require.Equal(t, text, string(got))
}

func TestEncodeSubRange(t *testing.T) {
	s := Decode([]byte("小明硕士"))
	require.Equal(t, "小明", string(Encode(s, 0, 2)))
	require.Equal(t, "硕士", string(Encode(s, 2, 4)))
}

func TestDecodeMixedASCIIAndHan(t *testing.T) {
	s := Decode([]byte("abc中文123"))
	require.Equal(t, 8, s.Len())
	require.Equal(t, 'a', s.Runes[0].Codepoint)
	require.Equal(t, '中', s.Runes[3].Codepoint)
}

func TestDecodeInvalidUTF8Permissive(t *testing.T) {
	b := []byte{'a', 0xff, 'b'}
	s := Decode(b)
	require.Equal(t, 3, s.Len())
	require.Equal(t, byte(1), byte(s.Runes[1].ByteLength))
}

func TestCharCount(t *testing.T) {
	b := []byte("中国科学院")
	require.Equal(t, 2, CharCount(b, len([]byte("中国"))))
	require.Equal(t, 5, CharCount(b, len(b)))
}

func TestIsASCII(t *testing.T) {
	require.True(t, IsASCII('a'))
	require.False(t, IsASCII('中'))
}

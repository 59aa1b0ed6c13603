package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSourceDocument(t *testing.T) {
	t.Run("single object", func(t *testing.T) {
		docs, err := ParseSourceDocument([]byte(`{"question":"무릎이 아파요","answer":"휴식을 취하세요"}`), "외과")
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "외과", docs[0].Category)
		assert.Equal(t, "[질문]\n무릎이 아파요\n\n[답변]\n휴식을 취하세요", docs[0].Content)
	})

	t.Run("array of objects", func(t *testing.T) {
		data := `[
			{"question":"q1","answer":"a1"},
			{"question":"q2","answer":"a2"}
		]`
		docs, err := ParseSourceDocument([]byte(data), "내과")
		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, "[질문]\nq2\n\n[답변]\na2", docs[1].Content)
	})

	t.Run("strips BOM", func(t *testing.T) {
		data := "\ufeff" + `{"question":"q","answer":"a"}`
		docs, err := ParseSourceDocument([]byte(data), "내과")
		require.NoError(t, err)
		assert.Len(t, docs, 1)
	})

	t.Run("skips items missing question or answer", func(t *testing.T) {
		data := `[
			{"question":"q1","answer":"a1"},
			{"question":"q2"},
			{"answer":"a3"},
			{}
		]`
		docs, err := ParseSourceDocument([]byte(data), "내과")
		require.NoError(t, err)
		assert.Len(t, docs, 1)
	})

	t.Run("empty file yields nothing", func(t *testing.T) {
		docs, err := ParseSourceDocument([]byte("  \n"), "내과")
		require.NoError(t, err)
		assert.Empty(t, docs)
	})

	t.Run("invalid JSON errors", func(t *testing.T) {
		_, err := ParseSourceDocument([]byte(`{"question":`), "내과")
		assert.Error(t, err)
	})
}

func TestGuessCategory(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"TL_내과/file1.json", "내과"},
		{"TL_신경과신경외과/file2.json", "신경과"},
		{"TL_외과/sub/file3.json", "외과"},
		{"TL_피부과/file4.json", "피부과"},
		{"misc/file5.json", "일반의학"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, GuessCategory(tt.key))
		})
	}
}

func TestBuildContent(t *testing.T) {
	assert.Equal(t, "[질문]\nQ\n\n[답변]\nA", BuildContent("Q", "A"))
}

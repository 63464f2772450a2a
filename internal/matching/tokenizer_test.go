package matching

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"whitespace only", " \t\n ", nil},
		{"punctuation only", ",;/|!?", nil},
		{"delimiters", "Spring,JPA;Redis/Kafka|Docker", []string{"Docker", "JPA", "Kafka", "Redis", "Spring"}},
		{"collapses whitespace", "  Go   \t  gRPC\n", []string{"Go", "gRPC"}},
		{"control characters", "Go\x00Rust\x07", []string{"Go", "Rust"}},
		{"dedupes case-sensitively", "go Go go", []string{"Go", "go"}},
		{"non latin", "백엔드 개발자, 백엔드", []string{"개발자", "백엔드"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.in))
		})
	}
}

func TestTokenize_Idempotent(t *testing.T) {
	inputs := []string{
		"Spring Boot, JPA / MySQL | Redis",
		"백엔드 개발 (Java; Kotlin)",
		"  a  a  b\tc!!",
		"",
	}
	for _, in := range inputs {
		first := Tokenize(in)
		if len(first) == 0 {
			assert.Equal(t, []string{NoMatchToken}, Tokenize(AnyOf(in).TSQuery()))
			continue
		}
		for _, mode := range []Mode{MatchAny, MatchAll} {
			q := NewQuery(in, mode)
			assert.Equal(t, first, Tokenize(strings.Join(q.Tokens, " ")), "input %q", in)
			assert.Equal(t, first, Tokenize(q.TSQuery()), "input %q", in)
		}
	}
}

func TestFlattenCareer(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"empty", "", ""},
		{"object keys in order", `{"Spring": 36, "JPA": 12, "Redis": {"years": 2}}`, "Spring JPA Redis"},
		{"empty object", `{}`, ""},
		{"array of strings", `["Go", "Go", 3, "Kafka"]`, "Go Kafka"},
		{"json string", `"Backend"`, "Backend"},
		{"plain text", "Spring JPA", "Spring JPA"},
		{"number only", "42", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FlattenCareer(tt.raw))
		})
	}
}

func TestNewQuery_EmptyTextUsesPlaceholder(t *testing.T) {
	for _, mode := range []Mode{MatchAny, MatchAll} {
		q := NewQuery("  ;; ", mode)
		require.True(t, q.IsPlaceholder())
		assert.NotEmpty(t, q.TSQuery())
	}
	assert.False(t, AnyOf("Spring").IsPlaceholder())
}

func TestQuery_Render(t *testing.T) {
	or := AnyOf("Spring JPA")
	assert.Equal(t, "JPA | Spring", or.TSQuery())

	all := AllOf("Spring JPA")
	assert.Equal(t, "JPA & Spring", all.TSQuery())

	assert.Equal(t, NoMatchToken, Query{}.TSQuery())
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{"": MatchAny, "any": MatchAny, "ALL": MatchAll, " all ": MatchAll} {
		got, err := ParseMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseMode("some")
	assert.Error(t, err)
	assert.Equal(t, "all", MatchAll.String())
	assert.Equal(t, "any", MatchAny.String())
}

package expressionparser_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"ngdef-go/packages/compiler/src/expressionparser"
)

func humanizeTokens(tokens []*expressionparser.Token) []string {
	result := make([]string, 0, len(tokens))
	for _, token := range tokens {
		switch {
		case token.IsIdentifier():
			result = append(result, "ident:"+token.StrValue)
		case token.IsKeyword():
			result = append(result, "keyword:"+token.StrValue)
		case token.IsNumber():
			result = append(result, "number:"+token.String())
		case token.IsString():
			result = append(result, "string:"+token.StrValue)
		case token.IsError():
			result = append(result, "error")
		case token.Type == expressionparser.TokenTypeOperator:
			result = append(result, "op:"+token.StrValue)
		default:
			result = append(result, "char:"+token.StrValue)
		}
	}
	return result
}

func tokenize(input string) []string {
	return humanizeTokens(expressionparser.NewLexer().Tokenize(input))
}

func TestLexer(t *testing.T) {
	t.Run("should tokenize member accesses", func(t *testing.T) {
		expected := []string{"ident:a", "char:.", "ident:b", "char:.", "ident:c"}
		if diff := cmp.Diff(expected, tokenize("a.b.c")); diff != "" {
			t.Errorf("Tokenize() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should tokenize keywords", func(t *testing.T) {
		expected := []string{
			"keyword:null", "keyword:undefined", "keyword:true",
			"keyword:false", "keyword:this",
		}
		if diff := cmp.Diff(expected, tokenize("null undefined true false this")); diff != "" {
			t.Errorf("Tokenize() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should tokenize numbers", func(t *testing.T) {
		expected := []string{"number:1984", "number:1.23", "number:0.5", "number:100", "number:1000"}
		if diff := cmp.Diff(expected, tokenize("1984 1.23 .5 1e2 1_000")); diff != "" {
			t.Errorf("Tokenize() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should tokenize strings with escapes", func(t *testing.T) {
		expected := []string{"string:it's", "string:A", "string:a\nb"}
		if diff := cmp.Diff(expected, tokenize(`"it\'s" 'A' 'a\nb'`)); diff != "" {
			t.Errorf("Tokenize() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should tokenize operators", func(t *testing.T) {
		expected := []string{
			"ident:a", "op:&&", "ident:b", "op:||", "op:!", "ident:c",
			"op:===", "ident:d", "op:<=", "ident:e",
		}
		if diff := cmp.Diff(expected, tokenize("a && b || !c === d <= e")); diff != "" {
			t.Errorf("Tokenize() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should tokenize grouping characters", func(t *testing.T) {
		expected := []string{
			"char:(", "ident:a", "char:)", "char:[", "number:0", "char:]",
			"char:{", "char:}", "char:,", "char:;", "char::",
		}
		if diff := cmp.Diff(expected, tokenize("(a)[0]{},;:")); diff != "" {
			t.Errorf("Tokenize() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should produce an error token for an unterminated string", func(t *testing.T) {
		tokens := expressionparser.NewLexer().Tokenize("'abc")
		if len(tokens) != 1 || !tokens[0].IsError() {
			t.Fatalf("expected a single error token, got %v", humanizeTokens(tokens))
		}
	})

	t.Run("should recover after an unexpected character", func(t *testing.T) {
		expected := []string{"ident:a", "error", "ident:b"}
		if diff := cmp.Diff(expected, tokenize("a # b")); diff != "" {
			t.Errorf("Tokenize() mismatch (-want +got):\n%s", diff)
		}
	})
}

package minimumtree

import (
	"context"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"

	ft "github.com/shibukawa/ojformat/formattree"
	"github.com/shibukawa/ojformat/match"
	"github.com/shibukawa/ojformat/variables"
)

func sample(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

func TestConstructInputFormatTree(t *testing.T) {
	tests := []struct {
		name      string
		instances []string
		expected  ft.Node
	}{
		{
			name: "jagged rows",
			instances: []string{
				sample("3", "1 2", "3 4 1 2", "2 4 1"),
				sample("1", "2 0 8"),
			},
			expected: ft.NewSequence(
				ft.NewItem("a"), ft.Newline{},
				ft.NewLoop("i", "a", ft.NewSequence(
					ft.NewItem("b", "i"),
					ft.NewLoop("j", "b_i", ft.NewItem("c", "i", "j")),
					ft.Newline{},
				)),
			),
		},
		{
			name: "single sample with cases",
			instances: []string{
				sample("4", "6", "0 2 1 5 0 1", "3", "0 1 2", "4", "0 2 0 1", "6", "1 2 3 4 5 6"),
			},
			expected: ft.NewSequence(
				ft.NewItem("a"), ft.Newline{},
				ft.NewLoop("i", "a", ft.NewSequence(
					ft.NewItem("b", "i"), ft.Newline{},
					ft.NewLoop("j", "b_i", ft.NewItem("c", "i", "j")),
					ft.Newline{},
				)),
			),
		},
		{
			name: "negative values",
			instances: []string{
				sample("4", "2 -1 7 3", "2", "2 4 -3", "3 4 2"),
				sample("6", "-9 -10 -9 -6 -5 4", "3", "2 6 -9", "1 2 -10", "4 6 -3"),
				sample("1", "0", "2", "1 1 -1", "1 1 -1"),
			},
			expected: ft.NewSequence(
				ft.NewItem("a"), ft.Newline{},
				ft.NewLoop("i", "a", ft.NewItem("b", "i")),
				ft.Newline{},
				ft.NewItem("c"), ft.Newline{},
				ft.NewLoop("i", "c", ft.NewSequence(
					ft.NewItem("d", "i"), ft.NewItem("e", "i"), ft.NewItem("f", "i"), ft.Newline{},
				)),
			),
		},
		{
			name: "grid rows that look like integers",
			instances: []string{
				sample("2", "11", "11"),
				sample("4", "1111", "11#1", "1#11", "1111"),
				sample("10", "76##63##3#", "8445669721", "75#9542133", "3#285##445", "749632##89",
					"2458##9515", "5952578#77", "1#3#44196#", "4355#99#1#", "#298#63587"),
				sample("10", "4177143673", "7#########", "5#1716155#", "6#4#####5#", "2#3#597#6#",
					"6#9#8#3#5#", "5#2#899#9#", "1#6#####6#", "6#5359657#", "5#########"),
			},
			expected: ft.NewSequence(
				ft.NewItem("a"), ft.Newline{},
				ft.NewLoop("i", "a", ft.NewSequence(ft.NewItem("b", "i"), ft.Newline{})),
			),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := ConstructInputFormatTree(context.Background(), tt.instances, Options{})
			assert.NoError(t, err)
			assert.NotZero(t, tree)
			assert.Equal(t, tt.expected.String(), tree.String())
		})
	}
}

func TestConstructInputFormatTreeMultipleTestCases(t *testing.T) {
	instances := []string{
		sample("4", "6", "0 2 1 5 0 1", "3", "0 1 2", "4", "0 2 0 1", "6", "1 2 3 4 5 6"),
	}

	tree, err := ConstructInputFormatTree(context.Background(), instances, Options{MultipleTestCases: true})
	assert.NoError(t, err)

	expected := ft.NewSequence(
		ft.NewItem(TestCasesName), ft.Newline{},
		ft.NewLoop("i", TestCasesName, ft.NewSequence(
			ft.NewItem("a", "i"), ft.Newline{},
			ft.NewLoop("j", "a_i", ft.NewItem("b", "i", "j")),
			ft.Newline{},
		)),
	)
	assert.Equal(t, expected.String(), tree.String())
}

func TestConstructInputFormatTreeNotFound(t *testing.T) {
	t.Run("iteration limit", func(t *testing.T) {
		tree, err := ConstructInputFormatTree(context.Background(), []string{
			sample("3", "1 2", "3 4 1 2", "2 4 1"),
			sample("1", "2 0 8"),
		}, Options{IterationLimit: 1})
		assert.NoError(t, err)
		assert.Zero(t, tree)
	})

	t.Run("no instances", func(t *testing.T) {
		_, err := ConstructInputFormatTree(context.Background(), nil, Options{})
		assert.IsError(t, err, ErrNoInstances)
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := ConstructInputFormatTree(ctx, []string{sample("1")}, Options{})
		assert.IsError(t, err, context.Canceled)
	})
}

func yesNoInput(t *testing.T) (ft.Node, variables.Decls) {
	t.Helper()

	input := ft.NewSequence(
		ft.NewItem("N"), ft.Newline{},
		ft.NewLoop("i", "N", ft.NewItem("A", "i")),
		ft.Newline{},
	)

	decls, err := variables.ListDeclaredVariables(input)
	assert.NoError(t, err)

	decls[0] = decls[0].WithType(variables.IndexInt)
	decls[1] = decls[1].WithType(variables.ValueInt)

	return input, decls
}

func TestConstructOutputFormatTreeUsingInputFormat(t *testing.T) {
	input, decls := yesNoInput(t)

	tree, err := ConstructOutputFormatTreeUsingInputFormat(context.Background(), []match.Sample{
		{Input: sample("3", "1 2 3"), Output: sample("Yes", "No", "Yes")},
		{Input: sample("2", "5 5"), Output: sample("No", "No")},
	}, input, decls, Options{})
	assert.NoError(t, err)
	assert.NotZero(t, tree)

	expected := ft.NewLoop("i", "N", ft.NewSequence(ft.NewItem("a", "i"), ft.Newline{}))
	assert.Equal(t, expected.String(), tree.String())
}

func TestConstructOutputFormatTreeUsingInputFormatMultipleTestCases(t *testing.T) {
	input := ft.NewSequence(
		ft.NewItem(TestCasesName), ft.Newline{},
		ft.NewLoop("i", TestCasesName, ft.NewSequence(
			ft.NewItem("N", "i"), ft.Newline{},
			ft.NewLoop("j", "N_i", ft.NewItem("A", "i", "j")),
			ft.Newline{},
		)),
	)

	decls, err := variables.ListDeclaredVariables(input)
	assert.NoError(t, err)

	for i, d := range decls {
		if d.Name == TestCasesName {
			decls[i] = d.WithType(variables.IndexInt)
		}
	}

	samples := []match.Sample{
		{Input: sample("1", "2", "1 2"), Output: sample("3")},
		{Input: sample("1", "3", "1 1 1"), Output: sample("3")},
	}

	tree, err := ConstructOutputFormatTreeUsingInputFormat(context.Background(), samples, input, decls, Options{MultipleTestCases: true})
	assert.NoError(t, err)
	assert.NotZero(t, tree)
	assert.Equal(t, ft.NewLoop("i", TestCasesName, ft.NewSequence(ft.NewItem("a", "i"), ft.Newline{})).String(), tree.String())

	tree, err = ConstructOutputFormatTreeUsingInputFormat(context.Background(), samples, input, decls, Options{})
	assert.NoError(t, err)
	assert.NotZero(t, tree)
	assert.Equal(t, ft.NewSequence(ft.NewItem("a"), ft.Newline{}).String(), tree.String())
}

func TestConstructOutputFormatTreeUsingInputFormatFallback(t *testing.T) {
	input, decls := yesNoInput(t)

	tree, err := ConstructOutputFormatTreeUsingInputFormat(context.Background(), []match.Sample{
		{Input: sample("3", "1 2"), Output: sample("1")},
		{Input: sample("x"), Output: sample("2")},
	}, input, decls, Options{})
	assert.NoError(t, err)
	assert.NotZero(t, tree)
	assert.Equal(t, ft.NewSequence(ft.NewItem("a"), ft.Newline{}).String(), tree.String())
}

func TestTokenize(t *testing.T) {
	tokens := tokenize("3\r\n-1 100\nx")

	var kinds []tokenKind
	for _, tok := range tokens {
		kinds = append(kinds, tok.kind)
	}

	assert.Equal(t, []tokenKind{intToken, newlineToken, stringToken, stringToken, newlineToken, stringToken}, kinds)
	assert.Equal(t, int64(3), tokens[0].value)
}

func TestEnvPushDoesNotShare(t *testing.T) {
	base := make(env, 2, 4)
	base[0], base[1] = 1, 2

	a := base.push(3)
	b := base.push(4)

	assert.Equal(t, env{1, 2, 3}, a)
	assert.Equal(t, env{1, 2, 4}, b)

	v, ok := a.at(0)
	assert.True(t, ok)
	assert.Equal(t, int64(3), v)

	_, ok = a.at(3)
	assert.False(t, ok)
}

func TestTreeSize(t *testing.T) {
	n := intNode{next: newlineNode{next: loopNode{index: 0, delta: -1, body: intNode{next: eof{}}, next: eof{}}}}
	assert.Equal(t, 2+1+1+2+1, n.treeSize())
	assert.Equal(t, 0, countPlaceholders(n))

	replaced, ok := replaceFirstPlaceholder(loopNode{body: placeholder{}, next: placeholder{}}, eof{})
	assert.True(t, ok)
	assert.Equal(t, 1, countPlaceholders(replaced))
	assert.Equal(t, "Loop(0, 0, EOF, Placeholder)", replaced.String())
}

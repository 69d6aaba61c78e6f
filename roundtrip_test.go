package dumbconf_test

import (
	"testing"

	"github.com/dumbconf/go-dumbconf"
	"github.com/stretchr/testify/require"
)

func TestParse_RoundTripIdentity(t *testing.T) {
	sources := []string{
		"a: 1\nb: 2\n",
		"# leading comment\na: true\n\nb: [1, 2, 3]\n",
		"{a: 1, b: 2}",
		"[\n    1,\n    2,\n]\n",
		"a: {b: [1, {c: null}]}\n",
		"[\n    # first\n    1,\n    2,  # second\n]\n",
		"key: 'single quoted'   # trailing\n",
		"a: 0x2a\nb: 6.02e23\nc: -7\n",
		"a: 1\r\nb: 2\r\n",
		"null",
		"'just a string'\n",
		"{}",
		"[]\n\n# trailing comment\n",
		"True: 1\nNone: 2\n",
	}
	for _, src := range sources {
		t.Run(src, func(t *testing.T) {
			doc, err := dumbconf.Parse([]byte(src))
			require.NoError(t, err)
			require.Equal(t, src, doc.String())
		})
	}
}

func TestNode_Set(t *testing.T) {
	t.Run("value in an inline map", func(t *testing.T) {
		doc, err := dumbconf.Parse([]byte("a: {b: 1, c: 2}\n"))
		require.NoError(t, err)
		require.NoError(t, doc.At("a", "b").Set(9))
		require.Equal(t, "a: {b: 9, c: 2}\n", doc.String())
	})

	t.Run("trailing comment survives", func(t *testing.T) {
		doc, err := dumbconf.Parse([]byte("a: 1  # the a value\nb: 2\n"))
		require.NoError(t, err)
		require.NoError(t, doc.At("a").Set("wat"))
		require.Equal(t, "a: \"wat\"  # the a value\nb: 2\n", doc.String())
	})

	t.Run("container values splice inline", func(t *testing.T) {
		doc, err := dumbconf.Parse([]byte("a: 1\n"))
		require.NoError(t, err)
		require.NoError(t, doc.At("a").Set([]any{1, 2, 3}))
		require.Equal(t, "a: [1, 2, 3]\n", doc.String())
	})

	t.Run("root replacement keeps document trivia", func(t *testing.T) {
		doc, err := dumbconf.Parse([]byte("# header\n[1]\n"))
		require.NoError(t, err)
		require.NoError(t, doc.Root().Set(dumbconf.Map{{Key: "a", Value: 1}}))
		require.Equal(t, "# header\n{a: 1}\n", doc.String())
	})

	t.Run("negative list index", func(t *testing.T) {
		doc, err := dumbconf.Parse([]byte("a: [1, 2, 3]\n"))
		require.NoError(t, err)
		require.NoError(t, doc.At("a", -1).Set(9))
		require.Equal(t, "a: [1, 2, 9]\n", doc.String())
	})

	t.Run("missing key leaves the document untouched", func(t *testing.T) {
		src := "a: 1\n"
		doc, err := dumbconf.Parse([]byte(src))
		require.NoError(t, err)

		err = doc.At("nope").Set(2)
		var keyErr *dumbconf.KeyNotFoundError
		require.ErrorAs(t, err, &keyErr)
		require.Equal(t, "nope", keyErr.Key)
		require.Equal(t, src, doc.String())
	})

	t.Run("indexing into a primitive", func(t *testing.T) {
		doc, err := dumbconf.Parse([]byte("a: 1\n"))
		require.NoError(t, err)

		err = doc.At("a", "b").Set(2)
		var idxErr *dumbconf.NotIndexableError
		require.ErrorAs(t, err, &idxErr)
	})

	t.Run("index out of range", func(t *testing.T) {
		doc, err := dumbconf.Parse([]byte("[1, 2]\n"))
		require.NoError(t, err)

		err = doc.At(5).Set(0)
		var rangeErr *dumbconf.IndexOutOfRangeError
		require.ErrorAs(t, err, &rangeErr)
		require.Equal(t, 2, rangeErr.Len)
	})
}

func TestNode_SetKey(t *testing.T) {
	t.Run("string key", func(t *testing.T) {
		doc, err := dumbconf.Parse([]byte("a: 1\nb: 2\n"))
		require.NoError(t, err)
		require.NoError(t, doc.At("a").SetKey("c"))
		require.Equal(t, "\"c\": 1\nb: 2\n", doc.String())
		v, err := doc.At("c").Value()
		require.NoError(t, err)
		require.Equal(t, int64(1), v)
	})

	t.Run("integer key", func(t *testing.T) {
		doc, err := dumbconf.Parse([]byte("a: 1\nb: 2\n"))
		require.NoError(t, err)
		require.NoError(t, doc.At("a").SetKey(5))
		require.Equal(t, "5: 1\nb: 2\n", doc.String())
	})

	t.Run("list items have no keys", func(t *testing.T) {
		doc, err := dumbconf.Parse([]byte("[1, 2]\n"))
		require.NoError(t, err)

		err = doc.At(0).SetKey("x")
		var mapErr *dumbconf.NotAMapError
		require.ErrorAs(t, err, &mapErr)
	})

	t.Run("container keys are rejected", func(t *testing.T) {
		doc, err := dumbconf.Parse([]byte("a: 1\n"))
		require.NoError(t, err)

		err = doc.At("a").SetKey([]any{1})
		var keyErr *dumbconf.InvalidKeyTypeError
		require.ErrorAs(t, err, &keyErr)
	})

	t.Run("root has no key", func(t *testing.T) {
		doc, err := dumbconf.Parse([]byte("a: 1\n"))
		require.NoError(t, err)
		require.Error(t, doc.Root().SetKey("x"))
	})
}

func TestNode_Delete(t *testing.T) {
	t.Run("first entry of a top-level map", func(t *testing.T) {
		doc, err := dumbconf.Parse([]byte("a: 1\nb: 2\n"))
		require.NoError(t, err)
		require.NoError(t, doc.At("a").Delete())
		require.Equal(t, "b: 2\n", doc.String())
	})

	t.Run("last entry of a top-level map", func(t *testing.T) {
		doc, err := dumbconf.Parse([]byte("a: 1\nb: 2\n"))
		require.NoError(t, err)
		require.NoError(t, doc.At("b").Delete())
		require.Equal(t, "a: 1\n", doc.String())
	})

	t.Run("only entry of a top-level map is guarded", func(t *testing.T) {
		src := "a: 1\n"
		doc, err := dumbconf.Parse([]byte(src))
		require.NoError(t, err)

		err = doc.At("a").Delete()
		require.ErrorIs(t, err, dumbconf.ErrLastTopLevelItem)
		require.Equal(t, src, doc.String())
	})

	t.Run("last item of an inline container", func(t *testing.T) {
		doc, err := dumbconf.Parse([]byte("{a: 1, b: 2}"))
		require.NoError(t, err)
		require.NoError(t, doc.At("b").Delete())
		require.Equal(t, "{a: 1}", doc.String())
	})

	t.Run("first item of an inline container", func(t *testing.T) {
		doc, err := dumbconf.Parse([]byte("{a: 1, b: 2}"))
		require.NoError(t, err)
		require.NoError(t, doc.At("a").Delete())
		require.Equal(t, "{b: 2}", doc.String())
	})

	t.Run("middle item of a multiline list", func(t *testing.T) {
		doc, err := dumbconf.Parse([]byte("[\n    1,\n    2,\n    3,\n]\n"))
		require.NoError(t, err)
		require.NoError(t, doc.At(1).Delete())
		require.Equal(t, "[\n    1,\n    3,\n]\n", doc.String())
	})

	t.Run("first of two items sharing a line", func(t *testing.T) {
		doc, err := dumbconf.Parse([]byte("{\n    a: 1, b: 2,\n}"))
		require.NoError(t, err)
		require.NoError(t, doc.At("a").Delete())
		require.Equal(t, "{\n    b: 2,\n}", doc.String())
	})

	t.Run("second of two items sharing a line", func(t *testing.T) {
		doc, err := dumbconf.Parse([]byte("{\n    a: 1, b: 2,\n}"))
		require.NoError(t, err)
		require.NoError(t, doc.At("b").Delete())
		require.Equal(t, "{\n    a: 1,\n}", doc.String())
	})

	t.Run("comment above the item goes with it", func(t *testing.T) {
		doc, err := dumbconf.Parse([]byte("{\n    # gone\n    a: 1,\n    b: 2,\n}"))
		require.NoError(t, err)
		require.NoError(t, doc.At("a").Delete())
		require.Equal(t, "{\n    b: 2,\n}", doc.String())
	})

	t.Run("negative list index", func(t *testing.T) {
		doc, err := dumbconf.Parse([]byte("[1, 2, 3]\n"))
		require.NoError(t, err)
		require.NoError(t, doc.At(-1).Delete())
		require.Equal(t, "[1, 2]\n", doc.String())
	})

	t.Run("document root cannot be deleted", func(t *testing.T) {
		doc, err := dumbconf.Parse([]byte("a: 1\n"))
		require.NoError(t, err)
		require.Error(t, doc.Root().Delete())
	})
}

func TestNode_SharedViews(t *testing.T) {
	doc, err := dumbconf.Parse([]byte("a: 1\nb: 2\n"))
	require.NoError(t, err)

	// Views are handles to the document, not snapshots: a write through one
	// is visible through every other.
	a := doc.At("a")
	alias := doc.At("a")
	require.NoError(t, a.Set(9))

	v, err := alias.Value()
	require.NoError(t, err)
	require.Equal(t, int64(9), v)
}

func TestNode_ValueAndPath(t *testing.T) {
	doc, err := dumbconf.Parse([]byte("servers: [{host: 'a', port: 1}, {host: 'b', port: 2}]\n"))
	require.NoError(t, err)

	n := doc.At("servers").At(1).At("host")
	require.Equal(t, []any{"servers", int64(1), "host"}, n.Path())

	v, err := n.Value()
	require.NoError(t, err)
	require.Equal(t, "b", v)

	whole, err := doc.Value()
	require.NoError(t, err)
	m, ok := whole.(dumbconf.Map)
	require.True(t, ok)
	require.Equal(t, []any{"servers"}, m.Keys())
}

package dumbconf_test

import (
	"strings"
	"testing"

	"github.com/dumbconf/go-dumbconf"
	"github.com/stretchr/testify/require"
)

func TestUnmarshal_Interface(t *testing.T) {
	var v any
	err := dumbconf.Unmarshal([]byte("a: 1\nb: [true, null]\nc: 'hi'\n"), &v)
	require.NoError(t, err)

	require.Equal(t, dumbconf.Map{
		{Key: "a", Value: int64(1)},
		{Key: "b", Value: []any{true, nil}},
		{Key: "c", Value: "hi"},
	}, v)
}

func TestUnmarshal_Map(t *testing.T) {
	t.Run("ordered Map preserves document order", func(t *testing.T) {
		var v any
		err := dumbconf.Unmarshal([]byte("z: 1\na: 2\n"), &v)
		require.NoError(t, err)
		m, ok := v.(dumbconf.Map)
		require.True(t, ok)
		require.Equal(t, []any{"z", "a"}, m.Keys())

		got, ok := m.Get("a")
		require.True(t, ok)
		require.Equal(t, int64(2), got)

		_, ok = m.Get("missing")
		require.False(t, ok)
	})

	t.Run("into a Go map", func(t *testing.T) {
		var v map[string]int
		err := dumbconf.Unmarshal([]byte("a: 1\nb: 2\n"), &v)
		require.NoError(t, err)
		require.Equal(t, map[string]int{"a": 1, "b": 2}, v)
	})

	t.Run("non-string keys into a typed map", func(t *testing.T) {
		var v map[int64]string
		err := dumbconf.Unmarshal([]byte("{1: 'a', 2: 'b'}"), &v)
		require.NoError(t, err)
		require.Equal(t, map[int64]string{1: "a", 2: "b"}, v)
	})
}

func TestUnmarshal_Struct(t *testing.T) {
	type Server struct {
		Host  string `dumbconf:"host"`
		Port  int    `dumbconf:"port"`
		Skip  string `dumbconf:"-"`
		Plain string
	}

	t.Run("tags and field names", func(t *testing.T) {
		var s Server
		err := dumbconf.Unmarshal([]byte("host: 'a'\nport: 8080\nPlain: 'p'\n"), &s)
		require.NoError(t, err)
		require.Equal(t, Server{Host: "a", Port: 8080, Plain: "p"}, s)
	})

	t.Run("case-insensitive fallback", func(t *testing.T) {
		var s Server
		err := dumbconf.Unmarshal([]byte("HOST: 'a'\nplain: 'p'\n"), &s)
		require.NoError(t, err)
		require.Equal(t, "a", s.Host)
		require.Equal(t, "p", s.Plain)
	})

	t.Run("skipped and unknown keys are ignored", func(t *testing.T) {
		var s Server
		err := dumbconf.Unmarshal([]byte("Skip: 'x'\nextra: 1\n"), &s)
		require.NoError(t, err)
		require.Equal(t, "", s.Skip)
	})

	t.Run("nested structs", func(t *testing.T) {
		type Config struct {
			Name    string   `dumbconf:"name"`
			Servers []Server `dumbconf:"servers"`
		}
		var c Config
		src := "name: 'app'\nservers: [{host: 'a', port: 1}, {host: 'b', port: 2}]\n"
		err := dumbconf.Unmarshal([]byte(src), &c)
		require.NoError(t, err)
		require.Equal(t, Config{
			Name: "app",
			Servers: []Server{
				{Host: "a", Port: 1},
				{Host: "b", Port: 2},
			},
		}, c)
	})
}

func TestUnmarshal_Scalars(t *testing.T) {
	t.Run("int into float is widened", func(t *testing.T) {
		var f float64
		require.NoError(t, dumbconf.Unmarshal([]byte("3"), &f))
		require.Equal(t, 3.0, f)
	})

	t.Run("leading zeros stay decimal", func(t *testing.T) {
		var v map[string]int64
		require.NoError(t, dumbconf.Unmarshal([]byte("a: 010\nb: 09\n"), &v))
		require.Equal(t, map[string]int64{"a": 10, "b": 9}, v)
	})

	t.Run("overflow is rejected", func(t *testing.T) {
		var n int8
		err := dumbconf.Unmarshal([]byte("1000"), &n)
		require.Error(t, err)
		require.Contains(t, err.Error(), "overflows")
	})

	t.Run("negative into uint is rejected", func(t *testing.T) {
		var n uint
		err := dumbconf.Unmarshal([]byte("-1"), &n)
		require.Error(t, err)
	})

	t.Run("type mismatch names both sides", func(t *testing.T) {
		var s string
		err := dumbconf.Unmarshal([]byte("true"), &s)
		require.Error(t, err)
		require.Contains(t, err.Error(), "cannot unmarshal bool into string")
	})

	t.Run("null clears pointers, slices and maps", func(t *testing.T) {
		p := new(int)
		require.NoError(t, dumbconf.Unmarshal([]byte("null"), &p))
		require.Nil(t, p)

		s := []int{1}
		require.NoError(t, dumbconf.Unmarshal([]byte("null"), &s))
		require.Nil(t, s)
	})

	t.Run("pointer targets are allocated", func(t *testing.T) {
		var p *int
		require.NoError(t, dumbconf.Unmarshal([]byte("7"), &p))
		require.NotNil(t, p)
		require.Equal(t, 7, *p)
	})
}

func TestUnmarshal_Lists(t *testing.T) {
	t.Run("into a slice", func(t *testing.T) {
		var v []int
		require.NoError(t, dumbconf.Unmarshal([]byte("[1, 2, 3]"), &v))
		require.Equal(t, []int{1, 2, 3}, v)
	})

	t.Run("into an array", func(t *testing.T) {
		var v [3]int
		require.NoError(t, dumbconf.Unmarshal([]byte("[1, 2, 3]"), &v))
		require.Equal(t, [3]int{1, 2, 3}, v)
	})

	t.Run("array too small", func(t *testing.T) {
		var v [2]int
		err := dumbconf.Unmarshal([]byte("[1, 2, 3]"), &v)
		require.Error(t, err)
		require.Contains(t, err.Error(), "cannot hold")
	})
}

func TestUnmarshal_Errors(t *testing.T) {
	t.Run("non-pointer target", func(t *testing.T) {
		var v map[string]int
		err := dumbconf.Unmarshal([]byte("a: 1\n"), v)
		require.Error(t, err)
		require.Contains(t, err.Error(), "non-pointer")
	})

	t.Run("parse errors carry a position", func(t *testing.T) {
		var v any
		err := dumbconf.Unmarshal([]byte("a: [1\n"), &v)
		var perr *dumbconf.ParseError
		require.ErrorAs(t, err, &perr)
		require.Equal(t, 2, perr.Line)
	})

	t.Run("MaxDepth bounds nesting", func(t *testing.T) {
		var v any
		err := dumbconf.Unmarshal([]byte("[[[[1]]]]"), &v, dumbconf.MaxDepth(2))
		require.Error(t, err)
		require.Contains(t, err.Error(), "nesting depth")
	})

	t.Run("invalid MaxDepth", func(t *testing.T) {
		var v any
		err := dumbconf.Unmarshal([]byte("1"), &v, dumbconf.MaxDepth(0))
		require.Error(t, err)
	})

	t.Run("nil reader", func(t *testing.T) {
		d := dumbconf.NewDecoder(nil)
		var v any
		require.Error(t, d.Decode(&v))
	})
}

type temperature struct {
	Celsius float64
}

func (c *temperature) UnmarshalDumbconf(data []byte) error {
	var raw string
	if err := dumbconf.Unmarshal(data, &raw); err != nil {
		return err
	}
	raw = strings.TrimSuffix(raw, "C")
	return dumbconf.Unmarshal([]byte(raw), &c.Celsius)
}

func TestUnmarshal_CustomUnmarshaler(t *testing.T) {
	type reading struct {
		Temp temperature `dumbconf:"temp"`
	}
	var r reading
	err := dumbconf.Unmarshal([]byte("temp: '21.5C'\n"), &r)
	require.NoError(t, err)
	require.Equal(t, 21.5, r.Temp.Celsius)
}

func TestDecoder_Reader(t *testing.T) {
	var v any
	d := dumbconf.NewDecoder(strings.NewReader("a: 1\n"))
	require.NoError(t, d.Decode(&v))
	require.Equal(t, dumbconf.Map{{Key: "a", Value: int64(1)}}, v)
}

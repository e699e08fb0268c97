package dialect

import "testing"

func TestFromEnum(t *testing.T) {
	cases := []struct {
		n    int32
		want SQL
	}{
		{0, Generic},
		{1, ANSI},
		{8, MySQL},
		{9, PostgreSQL},
		{12, SQLite},
		{99, Generic},
		{-1, Generic},
	}
	for _, c := range cases {
		if got := FromEnum(c.n); got != c.want {
			t.Errorf("FromEnum(%d) = %v, want %v", c.n, got, c.want)
		}
	}
}

func TestSQLStringTotalOverEnumRange(t *testing.T) {
	for n := int32(0); n <= 12; n++ {
		d := FromEnum(n)
		if d.String() == "" {
			t.Errorf("FromEnum(%d).String() is empty", n)
		}
	}
}

func TestJSSourceTypeFromEnum(t *testing.T) {
	cases := []struct {
		n    int32
		want JSSourceType
	}{
		{0, Script},
		{1, Module},
		{2, TypeScript},
		{3, TSX},
		{99, Script},
	}
	for _, c := range cases {
		if got := JSSourceTypeFromEnum(c.n); got != c.want {
			t.Errorf("JSSourceTypeFromEnum(%d) = %v, want %v", c.n, got, c.want)
		}
	}
}

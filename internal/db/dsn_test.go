package db

import "testing"

func TestNormalizeDSN(t *testing.T) {
	cases := map[string]string{
		"":                                 "",
		`"host=db  user=u dbname=d"`:       "host=db user=u dbname=d sslmode=disable",
		"host=db sslmode=require":          "host=db sslmode=require",
		"postgres://u:p@db:5432/d":         "postgres://u:p@db:5432/d",
		"  postgresql://db/d?sslmode=off ": "postgresql://db/d?sslmode=off",
		"not a dsn":                        "not a dsn",
	}
	for in, want := range cases {
		if got := NormalizeDSN(in); got != want {
			t.Errorf("NormalizeDSN(%q) = %q, want %q", in, got, want)
		}
	}
}
